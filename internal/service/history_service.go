package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/art-lint/artlint-api/internal/dto"
	"github.com/art-lint/artlint-api/internal/models"
	"github.com/art-lint/artlint-api/internal/repository"
)

// ErrInvalidScore indicates a score outside the accepted range.
var ErrInvalidScore = errors.New("score outside [0,100]")

const progressCacheKey = "progress:summary"

// HistoryService owns the submission history: an append-only, in-memory
// authoritative sequence backed by durable storage. Persistence failures are
// reported but never roll back the in-memory append; corrupt or missing
// storage degrades to an empty history at load time.
type HistoryService interface {
	Load(ctx context.Context)
	Record(ctx context.Context, lessonID string, score int) error
	BestScore(lessonID string) (int, bool)
	Records(lessonID string) []models.SubmissionRecord
	Progress(ctx context.Context, lessons []models.Lesson) (dto.ProgressResponse, error)
}

type historyService struct {
	repo     repository.HistoryRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time

	mu      sync.RWMutex
	records []models.SubmissionRecord
}

// NewHistoryService constructs a HistoryService. The cache client may be nil;
// progress summaries are then computed on every call.
func NewHistoryService(repo repository.HistoryRepository, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) HistoryService {
	return &historyService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "history_service").Logger(),
		now:      time.Now,
	}
}

// Load repopulates the in-memory sequence from durable storage. Called once
// at process start; storage failure is non-fatal and yields an empty history.
func (s *historyService) Load(ctx context.Context) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("could not load submission history, starting empty")
		stored = nil
	}

	records := make([]models.SubmissionRecord, 0, len(stored))
	for _, record := range stored {
		if record.SchemaVersion != models.HistorySchemaVersion {
			s.logger.Warn().Int("schema_version", record.SchemaVersion).Uint("id", record.ID).Msg("skipping record with unknown schema version")
			continue
		}
		if record.Score < 0 || record.Score > 100 || record.LessonID == "" {
			s.logger.Warn().Uint("id", record.ID).Msg("skipping malformed history record")
			continue
		}
		records = append(records, record)
	}

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	s.logger.Info().Int("records", len(records)).Msg("submission history loaded")
}

// Record appends a scoring event and persists it. The in-memory append is
// authoritative for the process lifetime even when the durable write fails.
func (s *historyService) Record(ctx context.Context, lessonID string, score int) error {
	if lessonID == "" {
		return fmt.Errorf("lesson id is required")
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidScore, score)
	}

	record := models.SubmissionRecord{
		LessonID:      lessonID,
		Score:         score,
		SchemaVersion: models.HistorySchemaVersion,
		CreatedAt:     s.now(),
	}

	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()

	if err := s.repo.Append(ctx, &record); err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID).Msg("failed to persist submission record")
	}

	s.invalidateProgress(ctx)

	s.logger.Info().Str("lesson_id", lessonID).Int("score", score).Msg("submission recorded")

	return nil
}

// BestScore returns the maximum recorded score for the lesson, if any.
func (s *historyService) BestScore(lessonID string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := 0
	found := false
	for _, record := range s.records {
		if record.LessonID != lessonID {
			continue
		}
		if !found || record.Score > best {
			best = record.Score
			found = true
		}
	}

	return best, found
}

// Records returns the recorded sequence in insertion order, optionally
// narrowed to one lesson. The returned slice is a copy.
func (s *historyService) Records(lessonID string) []models.SubmissionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SubmissionRecord, 0, len(s.records))
	for _, record := range s.records {
		if lessonID != "" && record.LessonID != lessonID {
			continue
		}
		out = append(out, record)
	}

	return out
}

// Progress summarizes best score and attempts per catalog lesson, cached
// with a TTL and invalidated on every record.
func (s *historyService) Progress(ctx context.Context, lessons []models.Lesson) (dto.ProgressResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, progressCacheKey).Result(); err == nil {
			var response dto.ProgressResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Msg("progress cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read progress cache")
		}
	}

	response := s.buildProgress(lessons)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, progressCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store progress cache")
			}
		}
	}

	return response, nil
}

func (s *historyService) buildProgress(lessons []models.Lesson) dto.ProgressResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	response := dto.ProgressResponse{
		Lessons:          make([]dto.LessonProgress, 0, len(lessons)),
		TotalSubmissions: len(s.records),
		GeneratedAt:      s.now().UTC(),
	}

	for _, lesson := range lessons {
		progress := dto.LessonProgress{LessonID: lesson.ID}
		for _, record := range s.records {
			if record.LessonID != lesson.ID {
				continue
			}
			progress.Attempts++
			if progress.BestScore == nil || record.Score > *progress.BestScore {
				score := record.Score
				progress.BestScore = &score
			}
		}
		response.Lessons = append(response.Lessons, progress)
	}

	return response
}

func (s *historyService) invalidateProgress(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, progressCacheKey).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate progress cache")
	}
}
