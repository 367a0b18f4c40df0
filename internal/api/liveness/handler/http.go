package livenessHandler

import (
	livenessService "LivenessGateway/internal/api/liveness/service"
	"LivenessGateway/internal/middleware"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type LivenessHandler struct {
	log                 *logrus.Logger
	validator           *validator.Validate
	middleware          middleware.Middleware
	livenessService     livenessService.ILivenessService
	similarityThreshold float64
	timeout             time.Duration
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ls livenessService.ILivenessService,
	similarityThreshold float64,
	timeout time.Duration,
) *LivenessHandler {
	return &LivenessHandler{
		livenessService:     ls,
		log:                 log,
		validator:           validator,
		middleware:          middleware,
		similarityThreshold: similarityThreshold,
		timeout:             timeout,
	}
}

func (h *LivenessHandler) Start(srv fiber.Router) {
	srv.Post("/create-liveness-session", h.CreateLivenessSession)
	srv.Get("/get-liveness-results", h.GetLivenessResults)
	srv.Post("/compare-faces", h.CompareFaces)
}
