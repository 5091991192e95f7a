package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFound("job order %s not found", "JO2501010001"), fiber.StatusNotFound},
		{Conflict("driver busy on %s", "JO-1"), fiber.StatusUnprocessableEntity},
		{Duplicate("invoice already exists"), fiber.StatusConflict},
		{InvalidState("already cancelled"), fiber.StatusUnprocessableEntity},
		{ValidationFailed("volume required for LTL"), fiber.StatusBadRequest},
		{Overpayment("outstanding is 600000"), fiber.StatusUnprocessableEntity},
		{errors.New("driver: connection reset"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestAppErrorMessageFormatting(t *testing.T) {
	err := Conflict("driver %d already committed to job order %s", 3, "JO-1")
	if err.Kind != ErrConflict {
		t.Errorf("kind = %s, want %s", err.Kind, ErrConflict)
	}
	want := "driver 3 already committed to job order JO-1"
	if err.Message != want {
		t.Errorf("message = %q, want %q", err.Message, want)
	}
}

func TestAppErrorUnwrapsThroughWrapping(t *testing.T) {
	base := Duplicate("invoice for JO JO-9 already exists")
	wrapped := fmt.Errorf("create invoice: %w", base)

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("expected errors.As to find AppError")
	}
	if StatusCode(wrapped) != fiber.StatusConflict {
		t.Errorf("wrapped duplicate should map to 409, got %d", StatusCode(wrapped))
	}
}
