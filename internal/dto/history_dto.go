package dto

import (
	"time"

	"github.com/art-lint/artlint-api/internal/models"
)

// HistoryFilter describes query string filters for listing submission records.
type HistoryFilter struct {
	LessonID *string `query:"lesson_id" validate:"omitempty,min=1,max=64"`
}

// SubmissionRecordResponse is one persisted scoring event.
type SubmissionRecordResponse struct {
	LessonID  string `json:"lesson_id"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"`
}

// NewSubmissionRecordResponse maps a stored record into the API shape. The
// timestamp is epoch milliseconds, matching the persisted history layout.
func NewSubmissionRecordResponse(record models.SubmissionRecord) SubmissionRecordResponse {
	return SubmissionRecordResponse{
		LessonID:  record.LessonID,
		Score:     record.Score,
		Timestamp: record.CreatedAt.UnixMilli(),
	}
}

// NewSubmissionRecordResponseSlice maps a record sequence preserving order.
func NewSubmissionRecordResponseSlice(records []models.SubmissionRecord) []SubmissionRecordResponse {
	out := make([]SubmissionRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, NewSubmissionRecordResponse(r))
	}
	return out
}

// LessonProgress summarizes the user's standing on one lesson.
type LessonProgress struct {
	LessonID  string `json:"lesson_id"`
	BestScore *int   `json:"best_score"`
	Attempts  int    `json:"attempts"`
}

// ProgressResponse is the per-lesson best score and attempt summary.
type ProgressResponse struct {
	Lessons          []LessonProgress `json:"lessons"`
	TotalSubmissions int              `json:"total_submissions"`
	GeneratedAt      time.Time        `json:"generated_at"`
}
