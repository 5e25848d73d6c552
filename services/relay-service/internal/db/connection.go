package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

// Connect opens a pool against database.url and verifies it with a ping
func Connect(ctx context.Context) (*pgxpool.Pool, error) {
	connString := viper.GetString("database.url")
	if connString == "" {
		return nil, fmt.Errorf("database.url not configured")
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Migrate creates the tables used by the relay service
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

const schemaSQL = `
	-- Email captures from gated content forms
	CREATE TABLE IF NOT EXISTS email_captures (
	    id UUID PRIMARY KEY,
	    email VARCHAR(320) NOT NULL,
	    template_id VARCHAR(255),
	    source VARCHAR(64) NOT NULL,
	    created_at TIMESTAMP WITH TIME ZONE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_email_captures_email ON email_captures(email);
	CREATE INDEX IF NOT EXISTS idx_email_captures_created_at ON email_captures(created_at);
`
