package handlerUtil

import (
	"LivenessGateway/pkg/log"
	"LivenessGateway/pkg/response"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	CodeTimeout  = "TIMEOUT"
	CodeInternal = "INTERNAL"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
	Code    string `json:"code,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle writes err as {error, success:false, code}. Typed response errors
// keep their status; timeouts become 504; anything else is a 500 carrying
// the error text.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		fields["kind"] = respErr.Kind
		if respErr.Code >= fiber.StatusInternalServerError {
			h.logger.WithFields(fields).Error("Operation failed with error response")
		} else {
			h.logger.WithFields(fields).Warn("Operation failed with error response")
		}
		return c.Status(respErr.Code).JSON(ErrorResponse{
			Error: err.Error(),
			Code:  respErr.Kind,
		})
	}

	if errors.Is(err, context.DeadlineExceeded) {
		h.logger.WithFields(fields).Error("Operation timed out")
		return h.HandleRequestTimeout(c)
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: err.Error(),
		Code:  CodeInternal,
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusGatewayTimeout).JSON(ErrorResponse{
		Error: "biometric service did not respond in time",
		Code:  CodeTimeout,
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
