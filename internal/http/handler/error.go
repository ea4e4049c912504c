package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"uwaveapi/internal/http/middleware"
	"uwaveapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_INPUT", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

var kindStatus = []struct {
	kind   error
	status int
}{
	{service.ErrBadRequest, fiber.StatusBadRequest},
	{service.ErrUnauthorized, fiber.StatusUnauthorized},
	{service.ErrForbidden, fiber.StatusForbidden},
	{service.ErrNotFound, fiber.StatusNotFound},
	{service.ErrConflict, fiber.StatusConflict},
	{service.ErrInvalidInput, fiber.StatusUnprocessableEntity},
	{service.ErrUnavailable, fiber.StatusServiceUnavailable},
}

func codeFor(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity:
		return "INVALID_INPUT"
	case fiber.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}

// unprocessable reports a malformed request body.
func unprocessable(format string, args ...any) error {
	return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf(format, args...))
}

// respond translates a handler or service error into the error envelope.
// Anything unrecognised becomes a 500 whose cause only reaches the request log.
func respond(c *fiber.Ctx, err error) error {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		for _, ks := range kindStatus {
			if errors.Is(svcErr.Kind, ks.kind) {
				return writeError(c, ks.status, codeFor(ks.status), svcErr.Message)
			}
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code < fiber.StatusInternalServerError {
		return writeError(c, fiberErr.Code, codeFor(fiberErr.Code), fiberErr.Message)
	}

	c.Locals(middleware.ErrorLocalKey, err)
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			switch fiberErr.Code {
			case fiber.StatusNotFound:
				return writeError(c, fiberErr.Code, "NOT_FOUND", "resource not found")
			case fiber.StatusMethodNotAllowed:
				return writeError(c, fiberErr.Code, "METHOD_NOT_ALLOWED", "method not allowed")
			case fiber.StatusRequestEntityTooLarge:
				return writeError(c, fiberErr.Code, "PAYLOAD_TOO_LARGE", "request body too large")
			}
		}
		return respond(c, err)
	}
}
