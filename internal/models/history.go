package models

import "time"

// HistorySchemaVersion tags persisted records so future format changes can
// be detected at load time.
const HistorySchemaVersion = 1

// SubmissionRecord is one scoring event for a lesson-scoped submission.
// Records are append-only: they are never updated or deleted.
type SubmissionRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LessonID      string    `gorm:"size:64;not null;index" json:"lesson_id"`
	Score         int       `gorm:"not null" json:"score"`
	SchemaVersion int       `gorm:"not null;default:1" json:"schema_version"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName keeps the table name stable regardless of gorm pluralization rules.
func (SubmissionRecord) TableName() string {
	return "submission_records"
}
