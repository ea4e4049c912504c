package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"uwaveapi/internal/model"
	"uwaveapi/internal/service"
	serviceMocks "uwaveapi/internal/service/mocks"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		rid := c.Locals(RequestIDLocalKey)
		return c.SendString(rid.(string))
	})

	t.Run("should generate new request id if not present", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("should preserve existing request id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.Equal(t, "info", logData["level"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.NotContains(t, logData, "trace_id")
}

func TestLogger_TraceID(t *testing.T) {
	var buf bytes.Buffer
	traceID := trace.TraceID{0x0a, 0xf7, 0x65, 0x19, 0x16, 0xcd, 0x43, 0xdd, 0x84, 0x48, 0xeb, 0x21, 0x1c, 0x80, 0x31, 0x9c}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     trace.SpanID{0xb7, 0xad, 0x6b, 0x71, 0x69, 0x20, 0x33, 0x31},
		TraceFlags: trace.FlagsSampled,
	})

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.SetUserContext(trace.ContextWithSpanContext(c.UserContext(), sc))
		return c.Next()
	})
	app.Use(LoggerWithWriter(&buf, time.UTC))
	app.Get("/traced", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	_, err := app.Test(httptest.NewRequest("GET", "/traced", nil))
	require.NoError(t, err)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, traceID.String(), logData["trace_id"])
}

func TestLogger_Errors(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/boom", func(c *fiber.Ctx) error {
		c.Locals(ErrorLocalKey, errors.New("connection refused"))
		return c.SendStatus(fiber.StatusInternalServerError)
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	t.Run("internal error", func(t *testing.T) {
		buf.Reset()
		resp, _ := app.Test(httptest.NewRequest("GET", "/boom", nil))
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
		assert.Equal(t, "error", logData["level"])
		assert.Equal(t, "connection refused", logData["error"])
	})

	t.Run("returned error", func(t *testing.T) {
		buf.Reset()
		resp, _ := app.Test(httptest.NewRequest("GET", "/teapot", nil))
		assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

		var logData map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
		assert.Equal(t, "warn", logData["level"])
		assert.Equal(t, float64(fiber.StatusTeapot), logData["status"])
	})
}

func newAuthApp(a Authenticator, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(Authenticate(a))
	handlers := append(guards, func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u != nil {
			return c.SendString(u.Username)
		}
		return c.SendString("anonymous")
	})
	app.Get("/me", handlers...)
	return app
}

func TestAuthenticate(t *testing.T) {
	alice := &model.User{ID: "u1", Username: "alice"}

	tests := []struct {
		name       string
		setup      func(req *http.Request)
		token      string
		authErr    error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "anonymous",
			setup:      func(r *http.Request) {},
			wantStatus: fiber.StatusOK,
			wantBody:   "anonymous",
		},
		{
			name:       "query token",
			setup:      func(r *http.Request) { r.URL.RawQuery = "token=tok" },
			token:      "tok",
			wantStatus: fiber.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "authorization header",
			setup:      func(r *http.Request) { r.Header.Set("Authorization", "JWT tok") },
			token:      "tok",
			wantStatus: fiber.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "cookie",
			setup:      func(r *http.Request) { r.Header.Set("Cookie", "uwsession=tok") },
			token:      "tok",
			wantStatus: fiber.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "invalid token",
			setup:      func(r *http.Request) { r.URL.RawQuery = "token=tok" },
			token:      "tok",
			authErr:    &service.Error{Kind: service.ErrBadRequest, Message: "Invalid token"},
			wantStatus: fiber.StatusBadRequest,
			wantBody:   "Invalid token",
		},
		{
			name:       "banned",
			setup:      func(r *http.Request) { r.URL.RawQuery = "token=tok" },
			token:      "tok",
			authErr:    &service.Error{Kind: service.ErrForbidden, Message: "You have been banned"},
			wantStatus: fiber.StatusForbidden,
			wantBody:   "You have been banned",
		},
		{
			name:       "lookup failure",
			setup:      func(r *http.Request) { r.URL.RawQuery = "token=tok" },
			token:      "tok",
			authErr:    errors.New("db down"),
			wantStatus: fiber.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := new(serviceMocks.MockAuthService)
			if tt.token != "" {
				if tt.authErr != nil {
					a.On("Authenticate", mock.Anything, tt.token).Return(nil, tt.authErr).Once()
				} else {
					a.On("Authenticate", mock.Anything, tt.token).Return(alice, nil).Once()
				}
			}
			app := newAuthApp(a)

			req := httptest.NewRequest("GET", "/me", nil)
			tt.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				buf := new(bytes.Buffer)
				buf.ReadFrom(resp.Body)
				assert.Equal(t, tt.wantBody, buf.String())
			}
			a.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	a := new(serviceMocks.MockAuthService)
	a.On("Authenticate", mock.Anything, "listener").Return(&model.User{Username: "bob", Role: model.RoleDefault}, nil)
	a.On("Authenticate", mock.Anything, "mod").Return(&model.User{Username: "alice", Role: model.RoleModerator}, nil)

	app := newAuthApp(a, RequireUser(), RequireRole(model.RoleModerator))

	tests := []struct {
		name       string
		query      string
		wantStatus int
	}{
		{name: "anonymous", query: "", wantStatus: fiber.StatusUnauthorized},
		{name: "below role", query: "token=listener", wantStatus: fiber.StatusForbidden},
		{name: "moderator", query: "token=mod", wantStatus: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me?"+tt.query, nil)
			resp, _ := app.Test(req)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
