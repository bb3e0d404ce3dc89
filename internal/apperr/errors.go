package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Code classifies failures the way the HTTP layer reports them.
type Code int

const (
	CodeUnauthenticated Code = iota
	CodeInvalidArgument
	CodeNotFound
	CodeInvalidOperation
	CodeStorage
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Unauthenticated() *Error {
	return New(CodeUnauthenticated, "Unauthorized")
}

func InvalidArgument(msg string) *Error {
	return New(CodeInvalidArgument, msg)
}

func NotFound(msg string) *Error {
	return New(CodeNotFound, msg)
}

func InvalidOperation(msg string) *Error {
	return New(CodeInvalidOperation, msg)
}

func Storage(msg string) *Error {
	return New(CodeStorage, msg)
}

// HTTPStatus maps an error to the status code the API responds with.
// Anything that is not an *Error is treated as an internal failure.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return fiber.StatusInternalServerError
	}
	switch e.Code {
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeInvalidArgument, CodeInvalidOperation:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// PublicMessage returns the body-safe message for an error. Internal
// errors are replaced so store internals never leak to clients.
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != CodeStorage {
		return e.Message
	}
	return "Internal server error"
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
