package rekognition

import (
	"LivenessGateway/internal/entity"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/rekognition/rekognitioniface"
)

var ErrSessionNotFound = errors.New("face liveness session not found")

// IRekognition is the subset of the biometric service the gateway relies on.
type IRekognition interface {
	CreateLivenessSession(ctx context.Context, settings entity.LivenessSessionSettings) (string, error)
	GetLivenessSessionResults(ctx context.Context, sessionID string) (*entity.LivenessSession, error)
	CompareFaces(ctx context.Context, source, target []byte, similarityThreshold float64) (*entity.FaceComparison, error)
}

type Config struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
}

type rekognitionClient struct {
	api rekognitioniface.RekognitionAPI
}

func New(cfg Config) (IRekognition, error) {
	sess, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return NewFromSession(sess), nil
}

func NewFromSession(sess *session.Session) IRekognition {
	return NewWithAPI(rekognition.New(sess))
}

func NewWithAPI(api rekognitioniface.RekognitionAPI) IRekognition {
	return &rekognitionClient{api: api}
}

// NewSession builds an AWS session from static keys when both are set, and
// from the shared config / default chain otherwise.
func NewSession(cfg Config) (*session.Session, error) {
	awsCfg := aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            awsCfg,
		Profile:           cfg.Profile,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, err
	}

	return sess, nil
}

func (r *rekognitionClient) CreateLivenessSession(ctx context.Context, settings entity.LivenessSessionSettings) (string, error) {
	input := &rekognition.CreateFaceLivenessSessionInput{}
	if settings.ClientRequestToken != "" {
		input.ClientRequestToken = aws.String(settings.ClientRequestToken)
	}

	if settings.AuditImagesLimit > 0 || settings.OutputBucket != "" {
		input.Settings = &rekognition.CreateFaceLivenessSessionRequestSettings{}
		if settings.AuditImagesLimit > 0 {
			input.Settings.AuditImagesLimit = aws.Int64(settings.AuditImagesLimit)
		}
		if settings.OutputBucket != "" {
			input.Settings.OutputConfig = &rekognition.LivenessOutputConfig{
				S3Bucket: aws.String(settings.OutputBucket),
			}
			if settings.OutputKeyPrefix != "" {
				input.Settings.OutputConfig.S3KeyPrefix = aws.String(settings.OutputKeyPrefix)
			}
		}
	}

	out, err := r.api.CreateFaceLivenessSessionWithContext(ctx, input)
	if err != nil {
		return "", wrapError(ctx, "create face liveness session", err)
	}

	sessionID := aws.StringValue(out.SessionId)
	if sessionID == "" {
		return "", errors.New("create face liveness session: empty session id in response")
	}

	return sessionID, nil
}

// GetLivenessSessionResults leaves Challenge unset; the results output of
// this SDK version does not expose challenge metadata.
func (r *rekognitionClient) GetLivenessSessionResults(ctx context.Context, sessionID string) (*entity.LivenessSession, error) {
	out, err := r.api.GetFaceLivenessSessionResultsWithContext(ctx, &rekognition.GetFaceLivenessSessionResultsInput{
		SessionId: aws.String(sessionID),
	})
	if err != nil {
		return nil, wrapError(ctx, "get face liveness session results", err)
	}

	result := &entity.LivenessSession{
		SessionID:      aws.StringValue(out.SessionId),
		Status:         aws.StringValue(out.Status),
		Confidence:     out.Confidence,
		ReferenceImage: toAuditImage(out.ReferenceImage),
		AuditImages:    make([]entity.AuditImage, 0, len(out.AuditImages)),
	}
	for _, img := range out.AuditImages {
		if img == nil {
			continue
		}
		result.AuditImages = append(result.AuditImages, *toAuditImage(img))
	}

	return result, nil
}

func (r *rekognitionClient) CompareFaces(ctx context.Context, source, target []byte, similarityThreshold float64) (*entity.FaceComparison, error) {
	out, err := r.api.CompareFacesWithContext(ctx, &rekognition.CompareFacesInput{
		SimilarityThreshold: aws.Float64(similarityThreshold),
		SourceImage:         &rekognition.Image{Bytes: source},
		TargetImage:         &rekognition.Image{Bytes: target},
	})
	if err != nil {
		return nil, wrapError(ctx, "compare faces", err)
	}

	result := &entity.FaceComparison{
		FaceMatches:    make([]entity.FaceMatch, 0, len(out.FaceMatches)),
		UnmatchedFaces: make([]entity.ComparedFace, 0, len(out.UnmatchedFaces)),
	}
	for _, m := range out.FaceMatches {
		if m == nil {
			continue
		}
		result.FaceMatches = append(result.FaceMatches, entity.FaceMatch{
			Similarity: m.Similarity,
			Face:       toComparedFace(m.Face),
		})
	}
	for _, f := range out.UnmatchedFaces {
		if f == nil {
			continue
		}
		result.UnmatchedFaces = append(result.UnmatchedFaces, toComparedFace(f))
	}
	if out.SourceImageFace != nil {
		result.SourceImageFace = &entity.SourceImageFace{
			BoundingBox: toBoundingBox(out.SourceImageFace.BoundingBox),
			Confidence:  out.SourceImageFace.Confidence,
		}
	}

	return result, nil
}

func wrapError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}

	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == rekognition.ErrCodeSessionNotFoundException {
		return fmt.Errorf("%s: %w: %s", op, ErrSessionNotFound, aerr.Message())
	}

	return fmt.Errorf("%s: %w", op, err)
}

func toAuditImage(img *rekognition.AuditImage) *entity.AuditImage {
	if img == nil {
		return nil
	}

	out := &entity.AuditImage{
		BoundingBox: toBoundingBox(img.BoundingBox),
		Bytes:       img.Bytes,
	}
	if img.S3Object != nil {
		out.S3Object = &entity.S3Object{
			Bucket:  img.S3Object.Bucket,
			Name:    img.S3Object.Name,
			Version: img.S3Object.Version,
		}
	}

	return out
}

func toBoundingBox(b *rekognition.BoundingBox) *entity.BoundingBox {
	if b == nil {
		return nil
	}
	return &entity.BoundingBox{
		Width:  b.Width,
		Height: b.Height,
		Left:   b.Left,
		Top:    b.Top,
	}
}

func toComparedFace(f *rekognition.ComparedFace) entity.ComparedFace {
	if f == nil {
		return entity.ComparedFace{}
	}

	out := entity.ComparedFace{
		BoundingBox: toBoundingBox(f.BoundingBox),
		Confidence:  f.Confidence,
	}
	for _, l := range f.Landmarks {
		if l == nil {
			continue
		}
		out.Landmarks = append(out.Landmarks, entity.Landmark{Type: l.Type, X: l.X, Y: l.Y})
	}
	if f.Pose != nil {
		out.Pose = &entity.Pose{Roll: f.Pose.Roll, Yaw: f.Pose.Yaw, Pitch: f.Pose.Pitch}
	}
	if f.Quality != nil {
		out.Quality = &entity.ImageQuality{Brightness: f.Quality.Brightness, Sharpness: f.Quality.Sharpness}
	}

	return out
}
