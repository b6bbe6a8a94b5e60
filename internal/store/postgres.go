package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres is an alternative durable backend keeping one row per profile
// in an app_state table, for deployments that already run Postgres and
// do not want a Redis dependency.
type Postgres struct {
	db      *sql.DB
	profile string
}

// Open opens a pooled connection and verifies reachability.
func Open(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(20)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// NewPostgres creates the backend and ensures its schema exists.
func NewPostgres(ctx context.Context, db *sql.DB, profile string) (*Postgres, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS app_state (
			profile_key TEXT PRIMARY KEY,
			payload     JSONB NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("ensure app_state: %w", err)
	}
	return &Postgres{db: db, profile: profile}, nil
}

func (p *Postgres) Load(ctx context.Context) ([]byte, bool, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM app_state WHERE profile_key = $1`, p.profile,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load state: %w", err)
	}
	return payload, true, nil
}

func (p *Postgres) Save(ctx context.Context, payload []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO app_state (profile_key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (profile_key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, p.profile, payload)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM app_state WHERE profile_key = $1`, p.profile)
	if err != nil {
		return fmt.Errorf("delete state: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
