package dto

import "github.com/art-lint/artlint-api/internal/models"

// LessonSummaryResponse lists a lesson with the user's best-score badge.
type LessonSummaryResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	Topics      []string `json:"topics"`
	BestScore   *int     `json:"best_score"`
}

// LessonDetailResponse adds the markdown content and attempt count.
type LessonDetailResponse struct {
	LessonSummaryResponse
	Content  string `json:"content"`
	Attempts int    `json:"attempts"`
}

// NewLessonSummaryResponse maps a catalog lesson into the API shape.
func NewLessonSummaryResponse(lesson models.Lesson, bestScore *int) LessonSummaryResponse {
	return LessonSummaryResponse{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Difficulty:  lesson.Difficulty,
		Topics:      lesson.Topics,
		BestScore:   bestScore,
	}
}
