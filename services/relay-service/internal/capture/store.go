// Package capture persists email addresses collected by gated-content forms.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stoik/leadrelay/internal/models"
)

// Store saves email captures
type Store interface {
	Save(ctx context.Context, email, templateID, source string) (models.EmailCapture, error)
}

// DB is the subset of *pgxpool.Pool used by PostgresStore
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore writes captures to the email_captures table
type PostgresStore struct {
	db  DB
	now func() time.Time
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

// Save inserts a new capture. Repeated captures of the same address are kept as separate rows.
func (s *PostgresStore) Save(ctx context.Context, email, templateID, source string) (models.EmailCapture, error) {
	capture := models.EmailCapture{
		ID:        uuid.New(),
		Email:     email,
		Source:    source,
		CreatedAt: s.now().UTC(),
	}
	if templateID != "" {
		capture.TemplateID = &templateID
	}

	query := `
		INSERT INTO email_captures (id, email, template_id, source, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.Exec(ctx, query,
		capture.ID,
		capture.Email,
		capture.TemplateID,
		capture.Source,
		capture.CreatedAt,
	); err != nil {
		return models.EmailCapture{}, fmt.Errorf("failed to insert email capture: %w", err)
	}

	return capture, nil
}

// Recent returns the latest captures, newest first
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]models.EmailCapture, error) {
	query := `SELECT id, email, template_id, source, created_at
		FROM email_captures ORDER BY created_at DESC LIMIT $1`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query email captures: %w", err)
	}

	captures, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.EmailCapture])
	if err != nil {
		return nil, fmt.Errorf("failed to scan email captures: %w", err)
	}
	return captures, nil
}
