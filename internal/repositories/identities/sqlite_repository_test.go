package identities

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/authgate/internal/migrations"
	"github.com/dmitrijs2005/authgate/internal/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "authgate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, migrations.SQLiteDir))
	return db
}

func TestSQLiteRepository_EmptyList(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))

	ids, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSQLiteRepository_ReplaceAllKeepsOrder(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	ids := []models.Identity{
		{Username: "zed", Digest: "1", Role: models.RoleUser},
		{Username: "alice", Digest: "2", Role: models.RoleAdmin},
		{Username: "mike", Digest: "3", Role: models.RoleUser},
	}
	require.NoError(t, r.ReplaceAll(ctx, ids))

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids, got)

	require.NoError(t, r.ReplaceAll(ctx, ids[:1]))
	got, err = r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids[:1], got)
}

func TestSQLiteRepository_ReplaceAllIsAtomic(t *testing.T) {
	r := NewSQLiteRepository(setupSQLite(t))
	ctx := context.Background()

	orig := []models.Identity{{Username: "alice", Digest: "1", Role: models.RoleUser}}
	require.NoError(t, r.ReplaceAll(ctx, orig))

	dup := []models.Identity{
		{Username: "bob", Digest: "2", Role: models.RoleUser},
		{Username: "bob", Digest: "3", Role: models.RoleUser},
	}
	err := r.ReplaceAll(ctx, dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace identities")

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, orig, got, "failed replace must roll back")
}

func TestSQLiteRepository_ClosedDB(t *testing.T) {
	db := setupSQLite(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, err := r.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list identities")
}
