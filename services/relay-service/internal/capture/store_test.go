package capture

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoik/leadrelay/internal/models"
)

type fakeDB struct {
	sql  string
	args []any
	err  error
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.sql = sql
	f.args = args
	return pgconn.NewCommandTag("INSERT 0 1"), f.err
}

func (f *fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestSave(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 9, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	db := &fakeDB{}
	store := NewPostgresStore(db)
	store.now = func() time.Time { return fixed }

	capture, err := store.Save(context.Background(), "lead@example.com", "n8n-starter", models.SourceLeadMagnet)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, capture.ID)
	assert.Equal(t, "lead@example.com", capture.Email)
	require.NotNil(t, capture.TemplateID)
	assert.Equal(t, "n8n-starter", *capture.TemplateID)
	assert.Equal(t, fixed.UTC(), capture.CreatedAt)

	assert.Contains(t, db.sql, "INSERT INTO email_captures")
	require.Len(t, db.args, 5)
	assert.Equal(t, capture.ID, db.args[0])
	assert.Equal(t, "lead@example.com", db.args[1])
	assert.Equal(t, models.SourceLeadMagnet, db.args[3])
}

func TestSaveWithoutTemplate(t *testing.T) {
	db := &fakeDB{}
	capture, err := NewPostgresStore(db).Save(context.Background(), "lead@example.com", "", models.SourceNewsletter)
	require.NoError(t, err)
	assert.Nil(t, capture.TemplateID)
	assert.Nil(t, db.args[2])
}

func TestSaveError(t *testing.T) {
	db := &fakeDB{err: errors.New("connection reset")}
	_, err := NewPostgresStore(db).Save(context.Background(), "lead@example.com", "", models.SourceNewsletter)
	assert.ErrorContains(t, err, "failed to insert email capture")
	assert.ErrorIs(t, err, db.err)
}

// Runs against a real database when LEADRELAY_TEST_DATABASE_URL is set.
func TestPostgresStoreIntegration(t *testing.T) {
	url := os.Getenv("LEADRELAY_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("LEADRELAY_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	// temp tables are per connection
	conn, err := pool.Acquire(ctx)
	require.NoError(t, err)
	defer conn.Release()

	_, err = conn.Exec(ctx, `CREATE TEMP TABLE email_captures (
		id UUID PRIMARY KEY,
		email VARCHAR(320) NOT NULL,
		template_id VARCHAR(255),
		source VARCHAR(64) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL
	)`)
	require.NoError(t, err)

	store := NewPostgresStore(conn)
	first, err := store.Save(ctx, "first@example.com", "", models.SourceNewsletter)
	require.NoError(t, err)
	second, err := store.Save(ctx, "second@example.com", "checklist", models.SourceLeadMagnet)
	require.NoError(t, err)

	recent, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, second.ID, recent[0].ID)
	assert.Equal(t, first.ID, recent[1].ID)
	assert.Nil(t, recent[1].TemplateID)
}
