package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr       string
	CORSOrigin string
	// State persistence. Redis is the default backend; Postgres is used
	// when DOCMINT_STATE_BACKEND=postgres and DATABASE_URL is set.
	StateBackend string
	RedisURL     string
	DatabaseURL  string
	ProfileKey   string
	Debounce     time.Duration
	// Snapshot history (git-backed). Empty disables snapshots.
	SnapshotsDir string
	// Directory search - empty URL disables Meilisearch
	MeiliURL       string
	MeiliMasterKey string
	// Export artifact storage - empty endpoint disables MinIO upload
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":8787"),
		CORSOrigin:     getenv("DOCMINT_CORS_ORIGIN", "*"),
		StateBackend:   getenv("DOCMINT_STATE_BACKEND", "redis"),
		RedisURL:       getenv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		ProfileKey:     getenv("DOCMINT_PROFILE", "default"),
		Debounce:       time.Duration(getenvInt("DOCMINT_DEBOUNCE_MS", 500)) * time.Millisecond,
		SnapshotsDir:   getenv("DOCMINT_SNAPSHOTS_DIR", "./data/snapshots"),
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "docmint-exports"),
		MinioUseSSL:    getenvBool("MINIO_USE_SSL", false),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
