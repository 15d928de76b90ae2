package category

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := newTestCategoryDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := store.Create(ctx, &types.JobCategory{
		Code:                "ATC",
		NameEN:              "Air Traffic Controller",
		NameME:              "Kontrolor letenja",
		RequiresCertificate: true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	byCode, err := store.GetByCode(ctx, " ATC ")
	require.NoError(t, err)
	require.NotNil(t, byCode)
	require.Equal(t, created.ID, byCode.ID)
	require.Equal(t, "Kontrolor letenja", byCode.LocalizedName())

	missing, err := store.GetByCode(ctx, "AFIS")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepository_ListOrdersByCode(t *testing.T) {
	ctx := context.Background()
	db := newTestCategoryDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	for _, code := range []string{"MET", "AFIS", "ATC"} {
		_, err := store.Create(ctx, &types.JobCategory{Code: code, NameEN: code})
		require.NoError(t, err)
	}

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	require.Equal(t, "AFIS", listed[0].Code)
	require.Equal(t, "MET", listed[2].Code)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestCategoryDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := store.Create(ctx, &types.JobCategory{Code: "FIRE", NameEN: "Firefighter"})
	require.NoError(t, err)

	created.RequiresCertificate = true
	updated, err := store.Update(ctx, created)
	require.NoError(t, err)
	require.True(t, updated.RequiresCertificate)

	require.NoError(t, store.Delete(ctx, created.ID))
	gone, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

// --- Test helpers ---

func newTestCategoryDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:?cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	applyDDL(t, db, "../data/sql/migrations/0001_job_categories.sql")
	return db
}

func applyDDL(t *testing.T, db *bun.DB, path string) {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, stmt := range strings.Split(string(content), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}
