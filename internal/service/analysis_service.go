package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/art-lint/artlint-api/internal/codec"
	"github.com/art-lint/artlint-api/internal/dto"
	"github.com/art-lint/artlint-api/pkg/ai"
)

var (
	// ErrInvalidSubmission indicates the request was rejected before any
	// provider call was dispatched.
	ErrInvalidSubmission = errors.New("invalid submission")
	// ErrAnalysisFailed indicates the mandatory critique step failed; the
	// whole submission fails and no result is produced.
	ErrAnalysisFailed = errors.New("analysis failed")
)

// AnalyzeInput is one submission: an encoded drawing plus optional lesson scope.
type AnalyzeInput struct {
	Image         codec.EncodedImage
	LessonID      string
	LessonContext string
}

// AnalysisService orchestrates one submission: it fans out the four provider
// capabilities concurrently, joins all outcomes, and aggregates them into a
// single result. The critique is load-bearing; the three image generations
// degrade independently.
type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (dto.AnalysisResponse, error)
}

type analysisService struct {
	provider  ai.Provider
	timeout   time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewAnalysisService constructs an AnalysisService instance.
func NewAnalysisService(provider ai.Provider, timeout time.Duration, logger zerolog.Logger) AnalysisService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &analysisService{
		provider:  provider,
		timeout:   timeout,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "analysis_service").Logger(),
	}
}

type imageOutcome struct {
	image ai.Image
	err   error
}

func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (dto.AnalysisResponse, error) {
	if input.Image.IsZero() {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: empty image payload", ErrInvalidSubmission)
	}

	if !codec.AcceptedType(input.Image.MimeType) {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: mime type %s", ErrInvalidSubmission, input.Image.MimeType)
	}

	img := ai.Image{Data: input.Image.Data, MimeType: input.Image.MimeType}

	// Join-all fan-out: every call runs to completion regardless of the
	// others. Each call carries its own timeout so one slow generation
	// cannot stall the join indefinitely.
	var (
		wg          sync.WaitGroup
		critique    ai.CritiqueResult
		critiqueErr error
		overlay     imageOutcome
		structure   imageOutcome
		fixed       imageOutcome
	)

	wg.Add(4)

	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		critique, critiqueErr = s.provider.Critique(callCtx, img, input.LessonContext)
	}()

	generate := func(out *imageOutcome, capability string, call func(context.Context, ai.Image, string) (ai.Image, error)) {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		out.image, out.err = call(callCtx, img, input.LessonContext)
		if out.err != nil {
			s.logger.Warn().Err(out.err).Str("capability", capability).Msg("image generation degraded")
		}
	}

	go generate(&overlay, ai.CapabilityOverlay, s.provider.GenerateOverlay)
	go generate(&structure, ai.CapabilityStructure, s.provider.GenerateStructureGuide)
	go generate(&fixed, ai.CapabilityFixed, s.provider.GenerateFixedVersion)

	wg.Wait()

	if critiqueErr != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %v", ErrAnalysisFailed, critiqueErr)
	}

	if critique.Score < 0 || critique.Score > 100 {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: score %d outside [0,100]", ErrAnalysisFailed, critique.Score)
	}

	if critique.Critique == "" {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: critique text missing", ErrAnalysisFailed)
	}

	response := dto.AnalysisResponse{
		OriginalImage:      dto.ImagePayload{Data: input.Image.Data, MimeType: input.Image.MimeType},
		OverlayImage:       s.imageField(overlay),
		StructureImage:     s.imageField(structure),
		FixedImage:         s.imageField(fixed),
		TextCritique:       s.sanitizer.Sanitize(critique.Critique),
		Points:             s.sanitizePoints(critique.Points),
		SuggestedExercises: s.sanitizeStrings(critique.Exercises),
		Score:              critique.Score,
		LessonID:           input.LessonID,
	}

	s.logger.Info().
		Int("score", response.Score).
		Bool("overlay", response.OverlayImage != nil).
		Bool("structure", response.StructureImage != nil).
		Bool("fixed", response.FixedImage != nil).
		Str("lesson_id", input.LessonID).
		Msg("submission analyzed")

	return response, nil
}

// imageField collapses a generation outcome into present-or-absent. A failed
// or empty generation is a missing field, never an error.
func (s *analysisService) imageField(outcome imageOutcome) *dto.ImagePayload {
	if outcome.err != nil || outcome.image.IsZero() {
		return nil
	}
	return dto.NewImagePayload(outcome.image)
}

// Model output is untrusted; strip any markup before it reaches clients.
func (s *analysisService) sanitizePoints(points []ai.CritiquePoint) []dto.CritiquePointResponse {
	out := make([]dto.CritiquePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.CritiquePointResponse{
			Title:       s.sanitizer.Sanitize(p.Title),
			Description: s.sanitizer.Sanitize(p.Description),
			Severity:    p.Severity,
		})
	}
	return out
}

func (s *analysisService) sanitizeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, s.sanitizer.Sanitize(v))
	}
	return out
}
