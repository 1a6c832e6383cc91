package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cvmentor/interview-api/internal/models"
)

// statusForError maps service-level sentinel errors to HTTP status codes.
// Storage conflicts never reach here: the analysis lifecycle converts them
// into a successful "already exists" result.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrCVNotAnalyzed),
		errors.Is(err, models.ErrIndexOutOfRange),
		errors.Is(err, models.ErrEmailTaken):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrAnalysisUnavailable),
		errors.Is(err, models.ErrQuestionServiceUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, models.ErrInvalidAnalysisShape),
		errors.Is(err, models.ErrIncompleteAnalysisShape),
		errors.Is(err, models.ErrInvalidQuestionPayload):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
