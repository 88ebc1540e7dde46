package serverutils

import "github.com/gofiber/fiber/v2"

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the error type every handler boundary converts to.
// Status drives the HTTP code, Message is the client-visible string,
// Err is the internal cause and is logged but never serialized.
type AppError struct {
	Status  int
	Message string
	Details []FieldError
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(details []FieldError) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Message: "Validation failed",
		Details: details,
	}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

func NewRateLimitedError(message string) *AppError {
	return &AppError{Status: fiber.StatusTooManyRequests, Message: message}
}

// NewServiceUnavailableError covers an unreachable or misconfigured AI
// backend. The contract maps it to 500, not 503.
func NewServiceUnavailableError(message string) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: message}
}

func NewInternalError(err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: "Server error", Err: err}
}
