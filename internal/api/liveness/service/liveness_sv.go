package livenessService

import (
	"LivenessGateway/internal/api/liveness"
	"LivenessGateway/internal/entity"
	contextPkg "LivenessGateway/pkg/context"
	"LivenessGateway/pkg/log"
	"LivenessGateway/pkg/rekognition"
	"LivenessGateway/pkg/response"
	"context"
	"errors"

	"github.com/google/uuid"
)

func (s *livenessService) CreateSession(ctx context.Context) (string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	sessionID, err := s.client.CreateLivenessSession(ctx, entity.LivenessSessionSettings{
		ClientRequestToken: uuid.NewString(),
		AuditImagesLimit:   s.opts.AuditImagesLimit,
		OutputBucket:       s.opts.OutputBucket,
		OutputKeyPrefix:    s.opts.OutputKeyPrefix,
	})
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"outcome":    "failed",
		}).Error("Failed to create liveness session")
		return "", upstreamError(err)
	}

	s.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"outcome":    "created",
	}).Info("Liveness session created")

	return sessionID, nil
}

func (s *livenessService) GetSessionResults(ctx context.Context, sessionID string) (*liveness.LivenessResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if sessionID == "" {
		return nil, liveness.ErrSessionIDRequired
	}

	session, err := s.client.GetLivenessSessionResults(ctx, sessionID)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"error":      err.Error(),
			"outcome":    "failed",
		}).Error("Failed to get liveness session results")
		return nil, upstreamError(err)
	}

	result := NormalizeSession(session, s.opts.LivenessThreshold, s.utils)
	s.presignImages(ctx, &result)

	fields := log.Fields{
		"request_id":       requestID,
		"session_id":       result.SessionID,
		"status":           result.Status,
		"is_live":          result.IsLive,
		"audit_images":     len(result.AuditImages),
		"reference_image":  result.ReferenceImage != nil,
		"challenge_exists": result.Challenge != nil,
		"outcome":          "fetched",
	}
	if result.Confidence != nil {
		fields["confidence"] = *result.Confidence
	}
	s.log.WithFields(fields).Info("Liveness session results fetched")

	return &result, nil
}

func (s *livenessService) presignImages(ctx context.Context, result *liveness.LivenessResult) {
	if s.presigner == nil {
		return
	}

	if result.ReferenceImage != nil {
		s.presignImage(ctx, result.ReferenceImage)
	}
	for i := range result.AuditImages {
		s.presignImage(ctx, &result.AuditImages[i])
	}
}

// presignImage leaves the image untouched when presigning fails; the storage
// locator is still returned as-is.
func (s *livenessService) presignImage(ctx context.Context, img *liveness.Image) {
	obj := img.S3Object
	if obj == nil || obj.Bucket == nil || obj.Name == nil {
		return
	}

	version := ""
	if obj.Version != nil {
		version = *obj.Version
	}

	urlStr, err := s.presigner.PresignObject(*obj.Bucket, *obj.Name, version)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"bucket":     *obj.Bucket,
			"key":        *obj.Name,
			"error":      err.Error(),
		}).Warn("Failed to presign audit image")
		return
	}

	img.PresignedURL = urlStr
}

func upstreamError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, rekognition.ErrSessionNotFound) {
		return response.Wrap(liveness.ErrSessionNotFound, err)
	}
	return response.Wrap(liveness.ErrUpstream, err)
}
