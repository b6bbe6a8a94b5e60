package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"docmint/internal/app"
	"docmint/internal/artifact"
	"docmint/internal/config"
	"docmint/internal/docstate"
	"docmint/internal/export"
	"docmint/internal/search"
	"docmint/internal/snapshot"
	"docmint/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	backend, cleanup, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("state backend failed: %v", err)
	}
	defer cleanup()

	stateStore := store.NewWithDebounce(backend, docstate.DefaultState(), cfg.Debounce)
	stateStore.Initialize(ctx)
	defer stateStore.Close()

	var snapshots *snapshot.Service
	if strings.TrimSpace(cfg.SnapshotsDir) != "" {
		if err := os.MkdirAll(cfg.SnapshotsDir, 0o755); err != nil {
			log.Fatalf("failed to create snapshots dir: %v", err)
		}
		snapshots = snapshot.New(cfg.SnapshotsDir)
	}

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
	}
	searchService := search.NewService(meiliClient, search.NewMemory())

	var artifacts *artifact.Store
	if strings.TrimSpace(cfg.MinioEndpoint) != "" {
		artifacts, err = artifact.New(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Printf("WARNING: artifact storage unavailable, exports are download-only: %v", err)
			artifacts = nil
		}
	}

	service := app.NewService(app.ServiceOptions{
		Store:     stateStore,
		Search:    searchService,
		Exporter:  export.NewService(),
		Artifacts: artifacts,
		Snapshots: snapshots,
		Profile:   cfg.ProfileKey,
	})

	httpServer := app.NewHTTPServer(service, cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("DocMint API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// openBackend selects the durable state backend. Redis is the default;
// Postgres when configured; memory as an explicit opt-in for local runs.
func openBackend(ctx context.Context, cfg config.Config) (store.Backend, func(), error) {
	switch cfg.StateBackend {
	case "postgres":
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		backend, err := store.NewPostgres(ctx, db, cfg.ProfileKey)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Printf("Using Postgres state backend")
		return backend, func() { db.Close() }, nil
	case "memory":
		log.Printf("Using in-memory state backend; state is lost on restart")
		return store.NewMemory(), func() {}, nil
	default:
		backend, err := store.NewRedis(cfg.RedisURL, cfg.ProfileKey)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Using Redis state backend")
		return backend, func() { _ = backend.Close() }, nil
	}
}
