package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/art-lint/artlint-api/internal/dto"
	"github.com/art-lint/artlint-api/internal/models"
)

// ErrLessonNotFound indicates the lesson id is not in the catalog.
var ErrLessonNotFound = errors.New("lesson not found")

// LessonService serves the static lesson catalog joined with history badges.
type LessonService interface {
	List() []dto.LessonSummaryResponse
	Get(id string) (dto.LessonDetailResponse, error)
	Lookup(id string) (models.Lesson, bool)
	Catalog() []models.Lesson
}

type lessonService struct {
	lessons []models.Lesson
	byID    map[string]models.Lesson
	history HistoryService
	logger  zerolog.Logger
}

// NewLessonService constructs a LessonService over the given catalog.
func NewLessonService(lessons []models.Lesson, history HistoryService, logger zerolog.Logger) LessonService {
	byID := make(map[string]models.Lesson, len(lessons))
	for _, lesson := range lessons {
		byID[lesson.ID] = lesson
	}
	return &lessonService{
		lessons: lessons,
		byID:    byID,
		history: history,
		logger:  logger.With().Str("component", "lesson_service").Logger(),
	}
}

func (s *lessonService) List() []dto.LessonSummaryResponse {
	out := make([]dto.LessonSummaryResponse, 0, len(s.lessons))
	for _, lesson := range s.lessons {
		out = append(out, dto.NewLessonSummaryResponse(lesson, s.bestScore(lesson.ID)))
	}
	return out
}

func (s *lessonService) Get(id string) (dto.LessonDetailResponse, error) {
	lesson, ok := s.byID[id]
	if !ok {
		return dto.LessonDetailResponse{}, ErrLessonNotFound
	}

	return dto.LessonDetailResponse{
		LessonSummaryResponse: dto.NewLessonSummaryResponse(lesson, s.bestScore(lesson.ID)),
		Content:               lesson.Content,
		Attempts:              len(s.history.Records(lesson.ID)),
	}, nil
}

func (s *lessonService) Lookup(id string) (models.Lesson, bool) {
	lesson, ok := s.byID[id]
	return lesson, ok
}

func (s *lessonService) Catalog() []models.Lesson {
	return s.lessons
}

func (s *lessonService) bestScore(lessonID string) *int {
	best, ok := s.history.BestScore(lessonID)
	if !ok {
		return nil
	}
	return &best
}
