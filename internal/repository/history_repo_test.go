package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/art-lint/artlint-api/internal/models"
)

func setupHistoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SubmissionRecord{}))

	return db
}

func TestHistoryRoundTrip(t *testing.T) {
	db := setupHistoryDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	scores := []int{55, 91, 70}
	for i, score := range scores {
		record := models.SubmissionRecord{
			LessonID:      "lesson-4-cube",
			Score:         score,
			SchemaVersion: models.HistorySchemaVersion,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Append(ctx, &record))
	}

	// A fresh repository over the same storage reproduces the sequence in
	// insertion order.
	reloaded, err := NewHistoryRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 3)
	for i, score := range scores {
		require.Equal(t, score, reloaded[i].Score)
		require.Equal(t, "lesson-4-cube", reloaded[i].LessonID)
		require.Equal(t, models.HistorySchemaVersion, reloaded[i].SchemaVersion)
	}
}

func TestHistoryListByLesson(t *testing.T) {
	db := setupHistoryDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	records := []models.SubmissionRecord{
		{LessonID: "lesson-1-sphere", Score: 82, SchemaVersion: 1},
		{LessonID: "lesson-4-cube", Score: 40, SchemaVersion: 1},
		{LessonID: "lesson-1-sphere", Score: 90, SchemaVersion: 1},
	}
	for i := range records {
		records[i].CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Append(ctx, &records[i]))
	}

	sphere, err := repo.ListByLesson(ctx, "lesson-1-sphere")
	require.NoError(t, err)
	require.Len(t, sphere, 2)
	require.Equal(t, 82, sphere[0].Score)
	require.Equal(t, 90, sphere[1].Score)

	none, err := repo.ListByLesson(ctx, "lesson-2-overlapping")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestHistoryListEmpty(t *testing.T) {
	repo := NewHistoryRepository(setupHistoryDB(t))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, records)
}
