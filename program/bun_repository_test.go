package program

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-trainops/pkg/types"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestRepository_CreateComputesTotalHours(t *testing.T) {
	ctx := context.Background()
	db := newTestProgramDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := store.Create(ctx, &types.TrainingProgram{
		Title:            "Rescue and Firefighting Basics",
		Code:             "rs-101",
		TheoreticalHours: 20,
		PracticalHours:   16,
		OjtHours:         4,
		Version:          "1.0",
		ValidityMonths:   24,
		IsActive:         true,
	})
	require.NoError(t, err)
	require.Equal(t, "RS-101", created.Code)
	// total_hours is a generated column; the store computes it on read.
	require.Equal(t, 40, created.TotalHours)
}

func TestRepository_UpdateRecomputesTotalHours(t *testing.T) {
	ctx := context.Background()
	db := newTestProgramDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := store.Create(ctx, &types.TrainingProgram{
		Title:            "Rescue and Firefighting Basics",
		Code:             "RS-101",
		TheoreticalHours: 20,
		PracticalHours:   16,
		OjtHours:         4,
	})
	require.NoError(t, err)
	require.Equal(t, 40, created.TotalHours)

	created.PracticalHours = 24
	updated, err := store.Update(ctx, created)
	require.NoError(t, err)
	require.Equal(t, 48, updated.TotalHours)
}

func TestRepository_GetByCodeNormalizes(t *testing.T) {
	ctx := context.Background()
	db := newTestProgramDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	created, err := store.Create(ctx, &types.TrainingProgram{Title: "ATC Refresher", Code: "ATC-R"})
	require.NoError(t, err)

	found, err := store.GetByCode(ctx, "  atc-r ")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, created.ID, found.ID)

	missing, err := store.GetByCode(ctx, "")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db := newTestProgramDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	categoryID := uuid.New()
	seedCategory(t, db, categoryID, "RFF")
	seed := []types.TrainingProgram{
		{Title: "Rescue Basics", Code: "RS-101", JobCategoryID: &categoryID, IsActive: true},
		{Title: "Rescue Advanced", Code: "RS-201", JobCategoryID: &categoryID, IsActive: false},
		{Title: "Meteorology Intro", Code: "MET-100", IsActive: true},
	}
	for i := range seed {
		_, err := store.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	byKeyword, err := store.List(ctx, types.ProgramFilter{Keyword: "rescue"})
	require.NoError(t, err)
	require.Equal(t, 2, byKeyword.Total)

	byCategory, err := store.List(ctx, types.ProgramFilter{JobCategoryID: categoryID, OnlyActive: true})
	require.NoError(t, err)
	require.Equal(t, 1, byCategory.Total)
	require.Equal(t, "RS-101", byCategory.Programs[0].Code)
}

func TestRepository_ExistsForCategory(t *testing.T) {
	ctx := context.Background()
	db := newTestProgramDB(t)
	store, err := NewRepository(RepositoryConfig{DB: db})
	require.NoError(t, err)

	categoryID := uuid.New()
	seedCategory(t, db, categoryID, "RFF")
	_, err = store.Create(ctx, &types.TrainingProgram{
		Title: "Rescue Basics", Code: "RS-101", JobCategoryID: &categoryID,
	})
	require.NoError(t, err)

	exists, err := store.ExistsForCategory(ctx, categoryID)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = store.ExistsForCategory(ctx, uuid.New())
	require.NoError(t, err)
	require.False(t, exists)
}

// --- Test helpers ---

func newTestProgramDB(t *testing.T) *bun.DB {
	sqldb, err := sql.Open("sqlite3", ":memory:?cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
		_ = sqldb.Close()
	})
	for _, file := range []string{
		"../data/sql/migrations/0001_job_categories.sql",
		"../data/sql/migrations/0003_profiles.sql",
		"../data/sql/migrations/0005_training_programs.sql",
	} {
		applyDDL(t, db, file)
	}
	return db
}

func seedCategory(t *testing.T, db *bun.DB, id uuid.UUID, code string) {
	t.Helper()
	now := time.Now().UTC()
	_, err := db.Exec(
		"INSERT INTO job_categories (id, code, name_en, requires_certificate, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		id.String(), code, code, false, now, now,
	)
	require.NoError(t, err)
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
