package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OpenAIConfig defines configuration options for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIProvider implements the critique capability against the OpenAI chat
// completion API with vision input. The image-edit style generations the
// overlay workflow needs are not expressible through the images API, so the
// three generation calls report "no image produced" and the pipeline runs in
// degraded mode.
type OpenAIProvider struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIProvider builds a provider using the supplied configuration.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2000
	}

	if cfg.Temperature == 0 {
		cfg.Temperature = 0.4
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		tracer: otel.Tracer("github.com/art-lint/artlint-api/pkg/ai/openai"),
		logger: cfg.Logger.With().Str("component", "openai_provider").Logger(),
	}, nil
}

// Critique sends the drawing through a vision chat completion and parses the
// structured response.
func (p *OpenAIProvider) Critique(parent context.Context, img Image, lessonContext string) (CritiqueResult, error) {
	ctx, span := p.tracer.Start(parent, "openai.critique", trace.WithAttributes(
		attribute.String("model", p.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		aiDuration.WithLabelValues("openai", CapabilityCritique).Observe(time.Since(start).Seconds())
	}()

	dataURL := "data:" + img.MimeType + ";base64," + strings.TrimSpace(img.Data)

	request := openai.ChatCompletionRequest{
		Model:       p.cfg.Model,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: critiqueSystemPrompt(),
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: critiquePrompt(lessonContext),
					},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := p.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return CritiqueResult{}, p.fail(span, fmt.Errorf("openai critique: %w", err))
	}

	if len(resp.Choices) == 0 {
		return CritiqueResult{}, p.fail(span, fmt.Errorf("no choices returned from openai"))
	}

	result, err := ParseCritique(strings.TrimSpace(resp.Choices[0].Message.Content))
	if err != nil {
		return CritiqueResult{}, p.fail(span, err)
	}

	return result, nil
}

// GenerateOverlay reports no image; see the type comment for why.
func (p *OpenAIProvider) GenerateOverlay(ctx context.Context, img Image, lessonContext string) (Image, error) {
	return p.noImage(CapabilityOverlay)
}

// GenerateStructureGuide reports no image; see the type comment for why.
func (p *OpenAIProvider) GenerateStructureGuide(ctx context.Context, img Image, lessonContext string) (Image, error) {
	return p.noImage(CapabilityStructure)
}

// GenerateFixedVersion reports no image; see the type comment for why.
func (p *OpenAIProvider) GenerateFixedVersion(ctx context.Context, img Image, lessonContext string) (Image, error) {
	return p.noImage(CapabilityFixed)
}

func (p *OpenAIProvider) noImage(capability string) (Image, error) {
	p.logger.Debug().Str("capability", capability).Msg("image generation unavailable for openai provider")
	return Image{}, nil
}

func (p *OpenAIProvider) fail(span trace.Span, err error) error {
	aiFailures.WithLabelValues("openai", CapabilityCritique).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	p.logger.Warn().Err(err).Msg("openai request failed")
	return err
}
