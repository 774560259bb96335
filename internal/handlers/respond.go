package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/fixmycity/fixmycity-backend/internal/dto"
	"github.com/fixmycity/fixmycity-backend/internal/services"
)

// Fail resolves a service error to the canonical HTTP status mapping:
// validation and upstream-flagged failures are 400, credential failures 401,
// ownership failures 403, missing resources 404, everything else a generic
// 500 with the detail logged server-side only.
func Fail(c *fiber.Ctx, err error, fallback string) error {
	var validation *services.ValidationError

	switch {
	case errors.As(err, &validation):
		return respondError(c, fiber.StatusBadRequest, validation.Message)
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrImageUpload),
		errors.Is(err, services.ErrStaleSubmission):
		return respondError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return respondError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrNotReportOwner):
		return respondError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrReportNotFound):
		return respondError(c, fiber.StatusNotFound, err.Error())
	default:
		slog.Error("handler error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		return respondError(c, fiber.StatusInternalServerError, fallback)
	}
}

func respondError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
}
