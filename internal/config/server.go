package config

import (
	"LivenessGateway/internal/api/liveness"
	livenessHandler "LivenessGateway/internal/api/liveness/handler"
	livenessService "LivenessGateway/internal/api/liveness/service"
	"LivenessGateway/internal/middleware"
	"LivenessGateway/pkg/rekognition"
	"LivenessGateway/pkg/s3"
	"LivenessGateway/pkg/utils"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	env         *Env
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	awsSession  *session.Session
	rekognition rekognition.IRekognition
	s3Client    s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.env == nil {
		return nil, fmt.Errorf("environment is required")
	}
	if server.rekognition == nil {
		return nil, fmt.Errorf("rekognition client is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, server.env.CORSAllowOrigins)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithEnv(env *Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.env == nil {
			return fmt.Errorf("environment must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.env.CORSAllowOrigins)
		return nil
	}
}

func WithAWSSession() ServerOption {
	return func(s *Server) error {
		if s.env == nil {
			return fmt.Errorf("environment must be initialized before the AWS session")
		}
		sess, err := rekognition.NewSession(rekognition.Config{
			Region:          s.env.AWSRegion,
			Profile:         s.env.AWSProfile,
			AccessKeyID:     s.env.AWSAccessKeyID,
			SecretAccessKey: s.env.AWSSecretAccessKey,
		})
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create AWS session: %v", err)
			}
			return fmt.Errorf("failed to create AWS session: %w", err)
		}
		s.awsSession = sess
		return nil
	}
}

// WithRekognitionClient uses client when given, otherwise builds one on the
// AWS session from WithAWSSession.
func WithRekognitionClient(client rekognition.IRekognition) ServerOption {
	return func(s *Server) error {
		if client != nil {
			s.rekognition = client
			return nil
		}
		if s.awsSession == nil {
			return fmt.Errorf("AWS session must be initialized before the rekognition client")
		}
		s.rekognition = rekognition.NewFromSession(s.awsSession)
		return nil
	}
}

// WithS3Presigner is a no-op unless PRESIGN_AUDIT_IMAGES is enabled.
func WithS3Presigner(client s3.ItfS3) ServerOption {
	return func(s *Server) error {
		if s.env == nil || !s.env.PresignAuditImages {
			return nil
		}
		if client != nil {
			s.s3Client = client
			return nil
		}
		if s.awsSession == nil {
			return fmt.Errorf("AWS session must be initialized before the S3 presigner")
		}
		s.s3Client = s3.New(s.awsSession)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	livenessServices := livenessService.NewLivenessService(
		s.log,
		s.rekognition,
		s.s3Client,
		s.utils,
		livenessService.Options{
			LivenessThreshold: s.env.LivenessConfidenceThreshold,
			AuditImagesLimit:  s.env.AuditImagesLimit,
			OutputBucket:      s.env.OutputBucket,
			OutputKeyPrefix:   s.env.OutputKeyPrefix,
		},
	)
	livenessHandlers := livenessHandler.New(
		s.log,
		s.validator,
		s.middleware,
		livenessServices,
		s.env.CompareSimilarityThreshold,
		s.env.RekognitionTimeout,
	)

	s.engine.Use(s.middleware.NewCORSMiddleware())
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	s.setupHealthCheck()
	s.handlers = append(s.handlers, livenessHandlers)

	router := s.engine.Group("/api")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	return s.engine.Listen(fmt.Sprintf(":%s", s.env.AppPort))
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.engine.ShutdownWithTimeout(timeout)
}

func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(liveness.HealthResponse{
			Status: "healthy",
		})
	})
}
