package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/art-lint/artlint-api/internal/codec"
	"github.com/art-lint/artlint-api/internal/dto"
	"github.com/art-lint/artlint-api/internal/observability"
	"github.com/art-lint/artlint-api/internal/service"
	"github.com/art-lint/artlint-api/internal/utils"
)

// AnalyzeHandler manages the submission endpoint: it encodes the upload,
// runs the analysis workflow, and records lesson-scoped scores.
type AnalyzeHandler struct {
	codec     *codec.Codec
	analysis  service.AnalysisService
	history   service.HistoryService
	lessons   service.LessonService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAnalyzeHandler builds an analyze handler instance.
func NewAnalyzeHandler(imageCodec *codec.Codec, analysis service.AnalysisService, history service.HistoryService, lessons service.LessonService, validate *validator.Validate, logger zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		codec:     imageCodec,
		analysis:  analysis,
		history:   history,
		lessons:   lessons,
		validator: validate,
		logger:    logger.With().Str("component", "analyze_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AnalyzeHandler) Register(router fiber.Router) {
	router.Post("", h.analyze)
}

func (h *AnalyzeHandler) analyze(c *fiber.Ctx) error {
	payload := dto.AnalyzeRequest{LessonID: c.FormValue("lesson_id")}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	input := service.AnalyzeInput{}
	if payload.LessonID != "" {
		lesson, ok := h.lessons.Lookup(payload.LessonID)
		if !ok {
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		input.LessonID = lesson.ID
		input.LessonContext = lesson.Context()
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	encoded, err := h.codec.Encode(file)
	if err != nil {
		observability.Submissions().WithLabelValues("read_error").Inc()
		return h.handleCodecError(c, err)
	}
	input.Image = encoded

	result, err := h.analysis.Analyze(c.Context(), input)
	if err != nil {
		return h.handleAnalysisError(c, err)
	}

	observability.Submissions().WithLabelValues("success").Inc()
	observability.SubmissionScores().Observe(float64(result.Score))

	// Lesson-scoped submissions are recorded; a persistence problem never
	// fails an already successful analysis.
	if input.LessonID != "" {
		if err := h.history.Record(c.Context(), input.LessonID, result.Score); err != nil {
			h.logger.Error().Err(err).Str("lesson_id", input.LessonID).Msg("failed to record submission score")
		}
	}

	return utils.SendSuccess(c, "submission analyzed", result)
}

func (h *AnalyzeHandler) handleCodecError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, codec.ErrTooLarge):
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "image exceeds maximum allowed size")
	case errors.Is(err, codec.ErrUnsupportedType):
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported image type")
	case errors.Is(err, codec.ErrUnreadable):
		return utils.SendError(c, fiber.StatusBadRequest, "could not read file")
	default:
		h.logger.Error().Err(err).Msg("unexpected codec failure")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}

func (h *AnalyzeHandler) handleAnalysisError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidSubmission):
		observability.Submissions().WithLabelValues("invalid").Inc()
		return utils.SendError(c, fiber.StatusBadRequest, "invalid submission")
	case errors.Is(err, service.ErrAnalysisFailed):
		observability.Submissions().WithLabelValues("analysis_failed").Inc()
		h.logger.Warn().Err(err).Msg("submission analysis failed")
		return utils.SendError(c, fiber.StatusBadGateway, "analysis failed, please try again")
	default:
		observability.Submissions().WithLabelValues("error").Inc()
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
