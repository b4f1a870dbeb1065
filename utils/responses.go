package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/neuronstudy/backend/models"
)

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Error создает JSON ответ с ошибкой
func Error(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: err.Error(),
	})
}

// Fail maps an application error onto its HTTP status.
func Fail(c *fiber.Ctx, err error) error {
	return Error(c, StatusFromError(err), err)
}

func StatusFromError(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	switch {
	case errors.Is(err, models.ErrAuthRequired):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrPaymentDeclined):
		return fiber.StatusPaymentRequired
	case errors.Is(err, models.ErrUploadFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
