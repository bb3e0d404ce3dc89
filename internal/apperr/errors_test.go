package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{Unauthenticated(), fiber.StatusUnauthorized},
		{InvalidArgument("Missing name"), fiber.StatusBadRequest},
		{InvalidOperation("A folder doesn't have content"), fiber.StatusBadRequest},
		{NotFound("Not found"), fiber.StatusNotFound},
		{Storage("disk full"), fiber.StatusInternalServerError},
		{errors.New("plain"), fiber.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("Not found")), fiber.StatusNotFound},
	}
	for _, tc := range testCases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestPublicMessage(t *testing.T) {
	if got := PublicMessage(NotFound("Not found")); got != "Not found" {
		t.Errorf("PublicMessage = %q", got)
	}
	// store internals never reach the body
	if got := PublicMessage(Storage("mongo: connection refused")); got != "Internal server error" {
		t.Errorf("PublicMessage = %q", got)
	}
	if got := PublicMessage(errors.New("boom")); got != "Internal server error" {
		t.Errorf("PublicMessage = %q", got)
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(Unauthenticated(), CodeUnauthenticated) {
		t.Error("IsCode should match the carried code")
	}
	if IsCode(errors.New("plain"), CodeNotFound) {
		t.Error("IsCode should reject plain errors")
	}
}
