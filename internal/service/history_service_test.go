package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/art-lint/artlint-api/internal/models"
)

type historyRepoStub struct {
	records   []models.SubmissionRecord
	appendErr error
	listErr   error
}

func (s *historyRepoStub) Append(_ context.Context, record *models.SubmissionRecord) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.records = append(s.records, *record)
	return nil
}

func (s *historyRepoStub) List(_ context.Context) ([]models.SubmissionRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

func (s *historyRepoStub) ListByLesson(_ context.Context, lessonID string) ([]models.SubmissionRecord, error) {
	var out []models.SubmissionRecord
	for _, r := range s.records {
		if r.LessonID == lessonID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newTestHistory(repo *historyRepoStub, cache *redis.Client) HistoryService {
	return NewHistoryService(repo, cache, time.Minute, zerolog.New(io.Discard))
}

func TestBestScoreMonotonic(t *testing.T) {
	svc := newTestHistory(&historyRepoStub{}, nil)
	ctx := context.Background()

	_, found := svc.BestScore("lesson-4-cube")
	require.False(t, found)

	require.NoError(t, svc.Record(ctx, "lesson-4-cube", 55))
	best, found := svc.BestScore("lesson-4-cube")
	require.True(t, found)
	require.Equal(t, 55, best)

	require.NoError(t, svc.Record(ctx, "lesson-4-cube", 91))
	best, _ = svc.BestScore("lesson-4-cube")
	require.Equal(t, 91, best)

	// A lower later score never lowers the best.
	require.NoError(t, svc.Record(ctx, "lesson-4-cube", 70))
	best, _ = svc.BestScore("lesson-4-cube")
	require.Equal(t, 91, best)
}

func TestBestScoreIsolationBetweenLessons(t *testing.T) {
	svc := newTestHistory(&historyRepoStub{}, nil)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "lesson-1-sphere", 82))
	require.NoError(t, svc.Record(ctx, "lesson-4-cube", 40))

	best, found := svc.BestScore("lesson-1-sphere")
	require.True(t, found)
	require.Equal(t, 82, best)

	_, found = svc.BestScore("lesson-2-overlapping")
	require.False(t, found)
}

func TestRecordValidation(t *testing.T) {
	svc := newTestHistory(&historyRepoStub{}, nil)
	ctx := context.Background()

	require.Error(t, svc.Record(ctx, "", 50))
	require.ErrorIs(t, svc.Record(ctx, "lesson-1-sphere", 101), ErrInvalidScore)
	require.ErrorIs(t, svc.Record(ctx, "lesson-1-sphere", -1), ErrInvalidScore)
}

func TestRecordKeepsMemoryOnPersistenceFailure(t *testing.T) {
	repo := &historyRepoStub{appendErr: errors.New("disk full")}
	svc := newTestHistory(repo, nil)

	require.NoError(t, svc.Record(context.Background(), "lesson-1-sphere", 77))

	// In-memory state stays authoritative for the process lifetime.
	best, found := svc.BestScore("lesson-1-sphere")
	require.True(t, found)
	require.Equal(t, 77, best)
	require.Empty(t, repo.records)
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	repo := &historyRepoStub{listErr: errors.New("corrupt storage")}
	svc := newTestHistory(repo, nil)

	svc.Load(context.Background())

	require.Empty(t, svc.Records(""))
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	repo := &historyRepoStub{records: []models.SubmissionRecord{
		{ID: 1, LessonID: "lesson-1-sphere", Score: 80, SchemaVersion: models.HistorySchemaVersion},
		{ID: 2, LessonID: "lesson-1-sphere", Score: 95, SchemaVersion: 99},
		{ID: 3, LessonID: "", Score: 70, SchemaVersion: models.HistorySchemaVersion},
		{ID: 4, LessonID: "lesson-4-cube", Score: 150, SchemaVersion: models.HistorySchemaVersion},
	}}
	svc := newTestHistory(repo, nil)

	svc.Load(context.Background())

	records := svc.Records("")
	require.Len(t, records, 1)
	require.Equal(t, "lesson-1-sphere", records[0].LessonID)

	_, found := svc.BestScore("lesson-4-cube")
	require.False(t, found)
}

func TestRecordsPreserveInsertionOrder(t *testing.T) {
	svc := newTestHistory(&historyRepoStub{}, nil)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, "lesson-1-sphere", 40))
	require.NoError(t, svc.Record(ctx, "lesson-4-cube", 60))
	require.NoError(t, svc.Record(ctx, "lesson-1-sphere", 80))

	all := svc.Records("")
	require.Len(t, all, 3)
	require.Equal(t, []int{40, 60, 80}, []int{all[0].Score, all[1].Score, all[2].Score})

	sphere := svc.Records("lesson-1-sphere")
	require.Len(t, sphere, 2)
	require.Equal(t, 40, sphere[0].Score)
	require.Equal(t, 80, sphere[1].Score)
}

func TestProgressSummaryAndCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc := newTestHistory(&historyRepoStub{}, cache)
	ctx := context.Background()

	lessons := []models.Lesson{
		{ID: "lesson-1-sphere"},
		{ID: "lesson-4-cube"},
	}

	require.NoError(t, svc.Record(ctx, "lesson-1-sphere", 55))
	require.NoError(t, svc.Record(ctx, "lesson-1-sphere", 91))

	progress, err := svc.Progress(ctx, lessons)
	require.NoError(t, err)
	require.Equal(t, 2, progress.TotalSubmissions)
	require.Len(t, progress.Lessons, 2)
	require.NotNil(t, progress.Lessons[0].BestScore)
	require.Equal(t, 91, *progress.Lessons[0].BestScore)
	require.Equal(t, 2, progress.Lessons[0].Attempts)
	require.Nil(t, progress.Lessons[1].BestScore)

	require.True(t, mr.Exists(progressCacheKey))

	// Recording invalidates the cached summary.
	require.NoError(t, svc.Record(ctx, "lesson-4-cube", 64))
	require.False(t, mr.Exists(progressCacheKey))

	progress, err = svc.Progress(ctx, lessons)
	require.NoError(t, err)
	require.Equal(t, 3, progress.TotalSubmissions)
	require.NotNil(t, progress.Lessons[1].BestScore)
	require.Equal(t, 64, *progress.Lessons[1].BestScore)
}
