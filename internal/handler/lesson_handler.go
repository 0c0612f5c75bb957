package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/art-lint/artlint-api/internal/service"
	"github.com/art-lint/artlint-api/internal/utils"
)

// LessonHandler serves the static lesson catalog.
type LessonHandler struct {
	lessons service.LessonService
	logger  zerolog.Logger
}

// NewLessonHandler builds a lesson handler instance.
func NewLessonHandler(lessons service.LessonService, logger zerolog.Logger) *LessonHandler {
	return &LessonHandler{
		lessons: lessons,
		logger:  logger.With().Str("component", "lesson_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *LessonHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *LessonHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "lessons retrieved", h.lessons.List())
}

func (h *LessonHandler) get(c *fiber.Ctx) error {
	lesson, err := h.lessons.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrLessonNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "lesson retrieved", lesson)
}
