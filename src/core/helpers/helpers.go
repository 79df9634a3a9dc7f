package helpers

import (
	"errors"
	"strings"

	"github.com/gemgeek/gemconnect-backend/src/core/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Initialize a validator instance using go-playground's validator package
var Validator = validator.New()

// Validate checks the struct fields against the specified validation tags.
// Failures are returned as INVALID_INPUT errors naming the offending fields.
func Validate(val interface{}) error {
	err := Validator.Struct(val)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return apperrors.Wrap(apperrors.InvalidInput, "Invalid input data", errors.New(strings.Join(msgs, ", ")))
}

// HandleError sends a structured JSON response for errors.
func HandleError(context *fiber.Ctx, statusCode int, message string, err error) error {
	return context.Status(statusCode).JSON(GenerateErrorResponse(message, err))
}

// GenerateErrorResponse creates a custom Fiber-compatible error response object.
func GenerateErrorResponse(message string, err error) fiber.Map {
	var detail interface{}
	if err != nil {
		detail = err.Error()
	}
	return fiber.Map{
		"status":  "error",
		"message": message,
		"error":   detail,
		"data":    nil,
	}
}
