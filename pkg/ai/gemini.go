package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"
)

// GeminiConfig defines configuration options for the Gemini provider.
type GeminiConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
	Logger     zerolog.Logger
}

// GeminiProvider implements Provider against the Gemini API. The critique
// uses the text model with a JSON response MIME type; the three generation
// calls use the image model and scan candidates for inline image data.
type GeminiProvider struct {
	cfg    GeminiConfig
	opts   []option.ClientOption
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewGeminiProvider builds a provider using the supplied configuration.
func NewGeminiProvider(cfg GeminiConfig, opts ...option.ClientOption) (*GeminiProvider, error) {
	if cfg.APIKey == "" && len(opts) == 0 {
		return nil, fmt.Errorf("gemini api key is required")
	}

	if cfg.TextModel == "" {
		cfg.TextModel = "gemini-2.5-flash"
	}

	if cfg.ImageModel == "" {
		cfg.ImageModel = "gemini-2.5-flash-image"
	}

	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	}

	return &GeminiProvider{
		cfg:    cfg,
		opts:   opts,
		tracer: otel.Tracer("github.com/art-lint/artlint-api/pkg/ai/gemini"),
		logger: cfg.Logger.With().Str("component", "gemini_provider").Logger(),
	}, nil
}

// Critique sends the drawing to the text model and parses structured feedback.
func (p *GeminiProvider) Critique(parent context.Context, img Image, lessonContext string) (CritiqueResult, error) {
	ctx, span := p.tracer.Start(parent, "gemini.critique", trace.WithAttributes(
		attribute.String("model", p.cfg.TextModel),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		aiDuration.WithLabelValues("gemini", CapabilityCritique).Observe(time.Since(start).Seconds())
	}()

	client, err := genai.NewClient(ctx, p.opts...)
	if err != nil {
		return CritiqueResult{}, p.fail(span, CapabilityCritique, fmt.Errorf("gemini client: %w", err))
	}
	defer client.Close()

	model := client.GenerativeModel(p.cfg.TextModel)
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.4),
		MaxOutputTokens:  ptrInt32(2000),
		ResponseMIMEType: "application/json",
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(critiqueSystemPrompt())},
	}

	blob, err := imageBlob(img)
	if err != nil {
		return CritiqueResult{}, p.fail(span, CapabilityCritique, err)
	}

	resp, err := model.GenerateContent(ctx, blob, genai.Text(critiquePrompt(lessonContext)))
	if err != nil {
		return CritiqueResult{}, p.fail(span, CapabilityCritique, fmt.Errorf("gemini critique: %w", err))
	}

	text := firstText(resp)
	if text == "" {
		return CritiqueResult{}, p.fail(span, CapabilityCritique, fmt.Errorf("gemini critique: empty response"))
	}

	result, err := ParseCritique(text)
	if err != nil {
		return CritiqueResult{}, p.fail(span, CapabilityCritique, err)
	}

	return result, nil
}

// GenerateOverlay asks the image model for red correction markings.
func (p *GeminiProvider) GenerateOverlay(ctx context.Context, img Image, lessonContext string) (Image, error) {
	return p.generateImage(ctx, CapabilityOverlay, img, overlayPrompt(lessonContext))
}

// GenerateStructureGuide asks the image model for a construction wireframe.
func (p *GeminiProvider) GenerateStructureGuide(ctx context.Context, img Image, lessonContext string) (Image, error) {
	return p.generateImage(ctx, CapabilityStructure, img, structurePrompt(lessonContext))
}

// GenerateFixedVersion asks the image model for a corrected redraw.
func (p *GeminiProvider) GenerateFixedVersion(ctx context.Context, img Image, lessonContext string) (Image, error) {
	return p.generateImage(ctx, CapabilityFixed, img, fixedPrompt(lessonContext))
}

func (p *GeminiProvider) generateImage(parent context.Context, capability string, img Image, prompt string) (Image, error) {
	ctx, span := p.tracer.Start(parent, "gemini."+capability, trace.WithAttributes(
		attribute.String("model", p.cfg.ImageModel),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		aiDuration.WithLabelValues("gemini", capability).Observe(time.Since(start).Seconds())
	}()

	client, err := genai.NewClient(ctx, p.opts...)
	if err != nil {
		return Image{}, p.fail(span, capability, fmt.Errorf("gemini client: %w", err))
	}
	defer client.Close()

	blob, err := imageBlob(img)
	if err != nil {
		return Image{}, p.fail(span, capability, err)
	}

	model := client.GenerativeModel(p.cfg.ImageModel)
	resp, err := model.GenerateContent(ctx, blob, genai.Text(prompt))
	if err != nil {
		return Image{}, p.fail(span, capability, fmt.Errorf("gemini %s: %w", capability, err))
	}

	generated := firstInlineImage(resp)
	if generated.IsZero() {
		p.logger.Debug().Str("capability", capability).Msg("model returned no inline image")
	}

	return generated, nil
}

func (p *GeminiProvider) fail(span trace.Span, capability string, err error) error {
	aiFailures.WithLabelValues("gemini", capability).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	p.logger.Warn().Err(err).Str("capability", capability).Msg("gemini request failed")
	return err
}

func imageBlob(img Image) (genai.Part, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	return genai.Blob{MIMEType: img.MimeType, Data: raw}, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func firstInlineImage(resp *genai.GenerateContentResponse) Image {
	if resp == nil || len(resp.Candidates) == 0 {
		return Image{}
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return Image{
					Data:     base64.StdEncoding.EncodeToString(blob.Data),
					MimeType: blob.MIMEType,
				}
			}
		}
	}
	return Image{}
}

func ptrFloat32(v float32) *float32 { return &v }

func ptrInt32(v int32) *int32 { return &v }
