package livenessService

import (
	"LivenessGateway/internal/api/liveness"
	"LivenessGateway/internal/entity"
	"LivenessGateway/pkg/utils"
	"strings"
)

// IsLive requires a completed session whose confidence strictly exceeds
// threshold. A session without a confidence score is never live.
func IsLive(status string, confidence *float64, threshold float64) bool {
	return strings.EqualFold(status, entity.LivenessStatusSucceeded) &&
		confidence != nil &&
		*confidence > threshold
}

func NormalizeSession(session *entity.LivenessSession, threshold float64, u utils.IUtils) liveness.LivenessResult {
	result := liveness.LivenessResult{
		SessionID:   session.SessionID,
		Status:      session.Status,
		Confidence:  session.Confidence,
		IsLive:      IsLive(session.Status, session.Confidence, threshold),
		AuditImages: make([]liveness.Image, 0, len(session.AuditImages)),
	}

	if session.ReferenceImage != nil {
		ref := NormalizeImage(*session.ReferenceImage, u)
		result.ReferenceImage = &ref
	}

	for _, img := range session.AuditImages {
		result.AuditImages = append(result.AuditImages, NormalizeImage(img, u))
	}

	if session.Challenge != nil {
		result.Challenge = &entity.Challenge{
			Type:    session.Challenge.Type,
			Version: session.Challenge.Version,
		}
	}

	return result
}

func NormalizeImage(img entity.AuditImage, u utils.IUtils) liveness.Image {
	out := liveness.Image{
		Bytes:    u.EncodeBase64(img.Bytes),
		S3Object: img.S3Object,
	}
	if img.BoundingBox != nil {
		out.BoundingBox = *img.BoundingBox
	}
	return out
}

func NormalizeComparison(cmp *entity.FaceComparison, threshold float64) liveness.FaceComparisonResult {
	result := liveness.FaceComparisonResult{
		Matches:             cmp.FaceMatches,
		UnmatchedFaces:      cmp.UnmatchedFaces,
		TotalMatches:        len(cmp.FaceMatches),
		SimilarityThreshold: threshold,
	}
	if result.Matches == nil {
		result.Matches = []entity.FaceMatch{}
	}
	if result.UnmatchedFaces == nil {
		result.UnmatchedFaces = []entity.ComparedFace{}
	}
	if cmp.SourceImageFace != nil {
		result.SourceImageFace = *cmp.SourceImageFace
	}
	return result
}
