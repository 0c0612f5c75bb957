// Package ai abstracts the multimodal inference provider behind a Provider
// interface with four independent capabilities: one structured critique and
// three image generations. Implementations exist for Gemini and OpenAI.
package ai

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Image is the wire representation of an image: base64 payload plus MIME type.
type Image struct {
	Data     string
	MimeType string
}

// IsZero reports whether the image carries no payload. A zero Image returned
// without an error means the model produced no image for the request.
func (i Image) IsZero() bool {
	return i.Data == ""
}

// CritiquePoint is one specific feedback item in a critique.
type CritiquePoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// CritiqueResult is the structured feedback returned by the critique capability.
type CritiqueResult struct {
	Critique  string          `json:"critique"`
	Score     int             `json:"score"`
	Points    []CritiquePoint `json:"points"`
	Exercises []string        `json:"exercises"`
}

// Provider describes a multimodal model capable of critiquing a drawing and
// generating corrective images. The four calls are independent; each may fail
// without affecting the others.
type Provider interface {
	// Critique analyzes the drawing and returns structured feedback.
	Critique(ctx context.Context, img Image, lessonContext string) (CritiqueResult, error)
	// GenerateOverlay returns the drawing with red correction markings, or a
	// zero Image when the model produced none.
	GenerateOverlay(ctx context.Context, img Image, lessonContext string) (Image, error)
	// GenerateStructureGuide returns a geometric wireframe breakdown overlay.
	GenerateStructureGuide(ctx context.Context, img Image, lessonContext string) (Image, error)
	// GenerateFixedVersion returns a corrected redraw of the submission.
	GenerateFixedVersion(ctx context.Context, img Image, lessonContext string) (Image, error)
}

// Capability labels used in metrics and logging.
const (
	CapabilityCritique  = "critique"
	CapabilityOverlay   = "overlay"
	CapabilityStructure = "structure"
	CapabilityFixed     = "fixed"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "artlint",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of inference provider requests",
	}, []string{"provider", "capability"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "artlint",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed inference provider requests",
	}, []string{"provider", "capability"})
)
