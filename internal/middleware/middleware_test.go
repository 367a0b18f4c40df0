package middleware

import (
	"LivenessGateway/pkg/log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() (*fiber.App, Middleware) {
	m := New(log.NewDiscardLogger(), "*")
	app := fiber.New()
	app.Use(m.NewCORSMiddleware())
	app.Use(m.NewRequestIDMiddleware())
	app.Use(m.NewLoggingMiddleware())
	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(m.GetRequestID(c))
	})
	return app, m
}

func TestRequestIDGenerated(t *testing.T) {
	app, _ := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/id", nil), -1)
	require.NoError(t, err)
	assert.Len(t, resp.Header.Get(RequestIDKey), 26)
}

func TestRequestIDPropagated(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(RequestIDKey, "client-supplied")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "client-supplied", resp.Header.Get(RequestIDKey))
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	app, _ := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestSanitizeRequestBody(t *testing.T) {
	out := sanitizeRequestBody([]byte(`{"sourceImage":"aGVsbG8=","targetImage":12,"similarityThreshold":90}`))
	assert.Contains(t, out, `"sourceImage":"[image 8B]"`)
	assert.Contains(t, out, `"targetImage":"[image]"`)
	assert.Contains(t, out, `"similarityThreshold":90`)

	assert.Equal(t, "[non-JSON body]", sanitizeRequestBody([]byte("not json")))
}
