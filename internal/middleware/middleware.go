package middleware

import (
	"LivenessGateway/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Middleware interface {
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	NewCORSMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type middleware struct {
	loggingMiddleware   *loggingMiddleware
	requestIDMiddleware fiber.Handler
	corsMiddleware      fiber.Handler
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, allowOrigins string) Middleware {
	logging := newLoggingMiddleware(logger)
	requestID := newRequestIDMiddleware(utils.New())

	return &middleware{
		loggingMiddleware:   logging,
		requestIDMiddleware: requestID,
		corsMiddleware:      newCORSMiddleware(allowOrigins),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

func (m *middleware) NewCORSMiddleware() fiber.Handler {
	return m.corsMiddleware
}
