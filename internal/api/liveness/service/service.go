package livenessService

import (
	"LivenessGateway/internal/api/liveness"
	"LivenessGateway/pkg/rekognition"
	"LivenessGateway/pkg/s3"
	"LivenessGateway/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type ILivenessService interface {
	CreateSession(ctx context.Context) (string, error)
	GetSessionResults(ctx context.Context, sessionID string) (*liveness.LivenessResult, error)
	CompareFaces(ctx context.Context, sourceImage, targetImage string, similarityThreshold float64) (*liveness.FaceComparisonResult, error)
}

type Options struct {
	LivenessThreshold float64
	AuditImagesLimit  int64
	OutputBucket      string
	OutputKeyPrefix   string
}

type livenessService struct {
	log       *logrus.Logger
	client    rekognition.IRekognition
	presigner s3.ItfS3
	utils     utils.IUtils
	opts      Options
}

// NewLivenessService wires the biometric client. presigner may be nil, in
// which case storage locators are returned without presigned URLs.
func NewLivenessService(
	log *logrus.Logger,
	client rekognition.IRekognition,
	presigner s3.ItfS3,
	utils utils.IUtils,
	opts Options,
) ILivenessService {
	return &livenessService{
		log:       log,
		client:    client,
		presigner: presigner,
		utils:     utils,
		opts:      opts,
	}
}
