package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"gastos/internal/core"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "gastos.db")
	repo, err := NewRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestRepositoryEmpty(t *testing.T) {
	repo, _ := newRepo(t)
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, path := newRepo(t)

	want := []core.Expense{
		{ID: uuid.New(), Description: "Coffee", Category: "food", Date: "2024-01-01", Amount: decimal.RequireFromString("5")},
		{ID: uuid.New(), Description: "Bus", Category: "transport", Date: "2024-01-02", Amount: decimal.RequireFromString("2.10")},
		{ID: uuid.New(), Description: "Coffee", Category: "food", Date: "2024-01-03", Amount: decimal.RequireFromString("-0.5")},
	}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.Equal(t, want[i].Date, got[i].Date)
		assert.True(t, want[i].Amount.Equal(got[i].Amount))
	}

	// Reopening runs migrations again without error and sees the same rows.
	require.NoError(t, repo.Close())
	again, err := NewRepository(path)
	require.NoError(t, err)
	defer again.Close()
	got, err = again.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRepositorySaveReplaces(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	first := []core.Expense{
		{ID: uuid.New(), Description: "a", Amount: decimal.NewFromInt(1)},
		{ID: uuid.New(), Description: "b", Amount: decimal.NewFromInt(2)},
	}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, []core.Expense{first[1], first[0]}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Description)
	assert.Equal(t, "a", got[1].Description)

	require.NoError(t, repo.Save(ctx, nil))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunMigrationsIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gastos.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var tables int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('expenses', 'gastos_schema_migrations')`,
	).Scan(&tables))
	assert.Equal(t, 2, tables)
}
