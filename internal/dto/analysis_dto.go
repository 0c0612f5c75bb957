package dto

import "github.com/art-lint/artlint-api/pkg/ai"

// AnalyzeRequest describes the multipart fields accompanying the uploaded
// drawing. The file itself arrives as the "file" part.
type AnalyzeRequest struct {
	LessonID string `form:"lesson_id" validate:"omitempty,min=1,max=64"`
}

// ImagePayload is an encoded image as served to clients.
type ImagePayload struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
}

// CritiquePointResponse is one feedback item in the analysis result.
type CritiquePointResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// AnalysisResponse is the aggregated result of one submission. The three
// generated images are nil when the corresponding generation degraded;
// absence is a valid outcome, not an error.
type AnalysisResponse struct {
	OriginalImage      ImagePayload            `json:"original_image"`
	OverlayImage       *ImagePayload           `json:"overlay_image"`
	StructureImage     *ImagePayload           `json:"structure_image"`
	FixedImage         *ImagePayload           `json:"fixed_image"`
	TextCritique       string                  `json:"text_critique"`
	Points             []CritiquePointResponse `json:"points"`
	SuggestedExercises []string                `json:"suggested_exercises"`
	Score              int                     `json:"score"`
	LessonID           string                  `json:"lesson_id,omitempty"`
}

// NewImagePayload wraps a provider image, returning nil for the absent case.
func NewImagePayload(img ai.Image) *ImagePayload {
	if img.IsZero() {
		return nil
	}
	return &ImagePayload{Data: img.Data, MimeType: img.MimeType}
}
