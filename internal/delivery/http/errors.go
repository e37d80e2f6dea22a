package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/agriempower/backend/internal/domain"
)

// ErrorHandler renders every error as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

// domainError maps core failures onto HTTP statuses
func domainError(err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrInvalidImage):
		return fiber.NewError(fiber.StatusBadRequest, "Could not read the uploaded image; upload a JPEG, PNG or WebP file of at most 50 megapixels")
	case errors.Is(err, domain.ErrInsufficientData):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Not enough varied training data to fit the fertility model")
	case errors.Is(err, domain.ErrUntrainedModel):
		return fiber.NewError(fiber.StatusConflict, "Fertility model is not trained yet")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}
