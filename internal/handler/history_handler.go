package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/art-lint/artlint-api/internal/dto"
	"github.com/art-lint/artlint-api/internal/service"
	"github.com/art-lint/artlint-api/internal/utils"
)

// HistoryHandler serves submission records and the progress summary.
type HistoryHandler struct {
	history   service.HistoryService
	lessons   service.LessonService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewHistoryHandler builds a history handler instance.
func NewHistoryHandler(history service.HistoryService, lessons service.LessonService, validate *validator.Validate, logger zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history:   history,
		lessons:   lessons,
		validator: validate,
		logger:    logger.With().Str("component", "history_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *HistoryHandler) Register(router fiber.Router) {
	router.Get("/history", h.list)
	router.Get("/progress", h.progress)
}

func (h *HistoryHandler) list(c *fiber.Ctx) error {
	filter := dto.HistoryFilter{}
	if lessonID := c.Query("lesson_id"); lessonID != "" {
		filter.LessonID = &lessonID
	}

	if err := h.validator.Struct(filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	lessonID := ""
	if filter.LessonID != nil {
		lessonID = *filter.LessonID
	}

	records := h.history.Records(lessonID)
	return utils.SendSuccess(c, "history retrieved", dto.NewSubmissionRecordResponseSlice(records))
}

func (h *HistoryHandler) progress(c *fiber.Ctx) error {
	progress, err := h.history.Progress(c.Context(), h.lessons.Catalog())
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "progress retrieved", progress)
}
