package types

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrKind is the stable, machine-readable failure classification returned
// alongside every business error.
type ErrKind string

const (
	ErrNotFound     ErrKind = "not_found"
	ErrConflict     ErrKind = "conflict"
	ErrDuplicate    ErrKind = "duplicate"
	ErrInvalidState ErrKind = "invalid_state"
	ErrValidation   ErrKind = "validation_failed"
	ErrOverpayment  ErrKind = "overpayment"
)

type AppError struct {
	Kind    ErrKind `json:"kind"`
	Message string  `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(kind ErrKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *AppError {
	return NewAppError(ErrNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) *AppError {
	return NewAppError(ErrConflict, format, args...)
}

func Duplicate(format string, args ...interface{}) *AppError {
	return NewAppError(ErrDuplicate, format, args...)
}

func InvalidState(format string, args ...interface{}) *AppError {
	return NewAppError(ErrInvalidState, format, args...)
}

func ValidationFailed(format string, args ...interface{}) *AppError {
	return NewAppError(ErrValidation, format, args...)
}

func Overpayment(format string, args ...interface{}) *AppError {
	return NewAppError(ErrOverpayment, format, args...)
}

// StatusCode maps a business error to its HTTP status. Resource conflicts
// come back as 422 so the client can distinguish them from optimistic-lock
// style 409s used elsewhere.
func StatusCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Kind {
	case ErrNotFound:
		return fiber.StatusNotFound
	case ErrConflict:
		return fiber.StatusUnprocessableEntity
	case ErrDuplicate:
		return fiber.StatusConflict
	case ErrInvalidState:
		return fiber.StatusUnprocessableEntity
	case ErrValidation:
		return fiber.StatusBadRequest
	case ErrOverpayment:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// WriteError renders err through the standard response envelope. Unknown
// errors stay generic 500s so gorm internals never leak to clients.
func WriteError(ctx *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ctx.Status(StatusCode(err)).JSON(fiber.Map{
			"success": false,
			"kind":    appErr.Kind,
			"error":   appErr.Message,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
