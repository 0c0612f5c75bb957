package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/art-lint/artlint-api/internal/codec"
	"github.com/art-lint/artlint-api/pkg/ai"
)

type stubProvider struct {
	critiqueFn  func(ctx context.Context, img ai.Image, lessonContext string) (ai.CritiqueResult, error)
	overlayFn   func(ctx context.Context, img ai.Image, lessonContext string) (ai.Image, error)
	structureFn func(ctx context.Context, img ai.Image, lessonContext string) (ai.Image, error)
	fixedFn     func(ctx context.Context, img ai.Image, lessonContext string) (ai.Image, error)
	calls       atomic.Int64
}

func (s *stubProvider) Critique(ctx context.Context, img ai.Image, lessonContext string) (ai.CritiqueResult, error) {
	s.calls.Add(1)
	return s.critiqueFn(ctx, img, lessonContext)
}

func (s *stubProvider) GenerateOverlay(ctx context.Context, img ai.Image, lessonContext string) (ai.Image, error) {
	s.calls.Add(1)
	return s.overlayFn(ctx, img, lessonContext)
}

func (s *stubProvider) GenerateStructureGuide(ctx context.Context, img ai.Image, lessonContext string) (ai.Image, error) {
	s.calls.Add(1)
	return s.structureFn(ctx, img, lessonContext)
}

func (s *stubProvider) GenerateFixedVersion(ctx context.Context, img ai.Image, lessonContext string) (ai.Image, error) {
	s.calls.Add(1)
	return s.fixedFn(ctx, img, lessonContext)
}

func goodCritique(score int) func(context.Context, ai.Image, string) (ai.CritiqueResult, error) {
	return func(context.Context, ai.Image, string) (ai.CritiqueResult, error) {
		return ai.CritiqueResult{
			Critique: "Strong construction with a consistent light source.",
			Score:    score,
			Points: []ai.CritiquePoint{
				{Title: "Perspective", Description: "Vanishing points converge correctly.", Severity: "low"},
			},
			Exercises: []string{"Draw 10 cubes from imagination"},
		}, nil
	}
}

func goodImage(data string) func(context.Context, ai.Image, string) (ai.Image, error) {
	return func(context.Context, ai.Image, string) (ai.Image, error) {
		return ai.Image{Data: data, MimeType: "image/png"}, nil
	}
}

func failedImage(err error) func(context.Context, ai.Image, string) (ai.Image, error) {
	return func(context.Context, ai.Image, string) (ai.Image, error) {
		return ai.Image{}, err
	}
}

func healthyProvider() *stubProvider {
	return &stubProvider{
		critiqueFn:  goodCritique(82),
		overlayFn:   goodImage("b3ZlcmxheQ=="),
		structureFn: goodImage("c3RydWN0dXJl"),
		fixedFn:     goodImage("Zml4ZWQ="),
	}
}

func testInput() AnalyzeInput {
	return AnalyzeInput{
		Image:         codec.EncodedImage{Data: "b3JpZ2luYWw=", MimeType: "image/png"},
		LessonID:      "lesson-1-sphere",
		LessonContext: "1. The Sphere: The foundation of 3D drawing.",
	}
}

func newTestService(provider ai.Provider) AnalysisService {
	return NewAnalysisService(provider, time.Second, zerolog.New(io.Discard))
}

func TestAnalyzeAggregatesAllResults(t *testing.T) {
	svc := newTestService(healthyProvider())

	result, err := svc.Analyze(context.Background(), testInput())
	require.NoError(t, err)

	require.Equal(t, 82, result.Score)
	require.Equal(t, "b3JpZ2luYWw=", result.OriginalImage.Data)
	require.NotNil(t, result.OverlayImage)
	require.NotNil(t, result.StructureImage)
	require.NotNil(t, result.FixedImage)
	require.Equal(t, "b3ZlcmxheQ==", result.OverlayImage.Data)
	require.NotEmpty(t, result.TextCritique)
	require.Len(t, result.Points, 1)
	require.Len(t, result.SuggestedExercises, 1)
	require.Equal(t, "lesson-1-sphere", result.LessonID)
}

func TestAnalyzeDegradedCombinations(t *testing.T) {
	// Every success/failure combination of the three generations succeeds
	// overall, and each field is present iff its call produced an image.
	for mask := 0; mask < 8; mask++ {
		mask := mask
		t.Run(fmt.Sprintf("mask_%03b", mask), func(t *testing.T) {
			provider := healthyProvider()
			if mask&1 == 0 {
				provider.overlayFn = failedImage(errors.New("overlay backend down"))
			}
			if mask&2 == 0 {
				provider.structureFn = failedImage(errors.New("structure backend down"))
			}
			if mask&4 == 0 {
				provider.fixedFn = failedImage(errors.New("fixed backend down"))
			}

			result, err := newTestService(provider).Analyze(context.Background(), testInput())
			require.NoError(t, err)
			require.Equal(t, mask&1 != 0, result.OverlayImage != nil)
			require.Equal(t, mask&2 != 0, result.StructureImage != nil)
			require.Equal(t, mask&4 != 0, result.FixedImage != nil)
			require.Equal(t, 82, result.Score)
		})
	}
}

func TestAnalyzeCritiqueFailureDominates(t *testing.T) {
	provider := healthyProvider()
	provider.critiqueFn = func(context.Context, ai.Image, string) (ai.CritiqueResult, error) {
		return ai.CritiqueResult{}, errors.New("malformed analysis payload")
	}

	_, err := newTestService(provider).Analyze(context.Background(), testInput())
	require.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyzeRejectsOutOfRangeScore(t *testing.T) {
	provider := healthyProvider()
	provider.critiqueFn = goodCritique(140)

	_, err := newTestService(provider).Analyze(context.Background(), testInput())
	require.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyzeOverlayTimeoutDegrades(t *testing.T) {
	provider := healthyProvider()
	provider.overlayFn = func(ctx context.Context, _ ai.Image, _ string) (ai.Image, error) {
		<-ctx.Done()
		return ai.Image{}, ctx.Err()
	}

	svc := NewAnalysisService(provider, 50*time.Millisecond, zerolog.New(io.Discard))

	result, err := svc.Analyze(context.Background(), testInput())
	require.NoError(t, err)
	require.Nil(t, result.OverlayImage)
	require.NotNil(t, result.StructureImage)
	require.NotNil(t, result.FixedImage)
	require.Equal(t, 82, result.Score)
}

func TestAnalyzeEmptyModelImageIsAbsent(t *testing.T) {
	provider := healthyProvider()
	provider.fixedFn = func(context.Context, ai.Image, string) (ai.Image, error) {
		return ai.Image{}, nil
	}

	result, err := newTestService(provider).Analyze(context.Background(), testInput())
	require.NoError(t, err)
	require.Nil(t, result.FixedImage)
}

func TestAnalyzeEmptyPayloadFailsFast(t *testing.T) {
	provider := healthyProvider()
	svc := newTestService(provider)

	_, err := svc.Analyze(context.Background(), AnalyzeInput{})
	require.ErrorIs(t, err, ErrInvalidSubmission)
	require.Zero(t, provider.calls.Load(), "no provider calls may be issued for invalid input")
}

func TestAnalyzeRejectsUnsupportedMimeType(t *testing.T) {
	provider := healthyProvider()
	input := testInput()
	input.Image.MimeType = "application/pdf"

	_, err := newTestService(provider).Analyze(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidSubmission)
	require.Zero(t, provider.calls.Load())
}

func TestAnalyzeSanitizesModelText(t *testing.T) {
	provider := healthyProvider()
	provider.critiqueFn = func(context.Context, ai.Image, string) (ai.CritiqueResult, error) {
		return ai.CritiqueResult{
			Critique: `<script>alert(1)</script>Nice structure overall.`,
			Score:    70,
			Points: []ai.CritiquePoint{
				{Title: `<img src=x onerror=alert(1)>Shading`, Description: "Too uniform.", Severity: "medium"},
			},
			Exercises: []string{`<b>Practice</b> value scales`},
		}, nil
	}

	result, err := newTestService(provider).Analyze(context.Background(), testInput())
	require.NoError(t, err)
	require.NotContains(t, result.TextCritique, "<script>")
	require.Contains(t, result.TextCritique, "Nice structure overall.")
	require.NotContains(t, result.Points[0].Title, "<img")
	require.NotContains(t, result.SuggestedExercises[0], "<b>")
	require.Contains(t, result.SuggestedExercises[0], "Practice")
}
