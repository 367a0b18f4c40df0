package livenessService

import (
	"LivenessGateway/internal/api/liveness"
	contextPkg "LivenessGateway/pkg/context"
	"LivenessGateway/pkg/log"
	"LivenessGateway/pkg/response"
	"context"
)

func (s *livenessService) CompareFaces(ctx context.Context, sourceImage, targetImage string, similarityThreshold float64) (*liveness.FaceComparisonResult, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if sourceImage == "" || targetImage == "" {
		return nil, liveness.ErrImagesRequired
	}
	if similarityThreshold < 0 || similarityThreshold > 100 {
		return nil, liveness.ErrInvalidThreshold
	}

	source, err := s.utils.DecodeBase64Image(sourceImage)
	if err != nil {
		return nil, response.Wrap(liveness.ErrInvalidImageEncoding, err)
	}
	target, err := s.utils.DecodeBase64Image(targetImage)
	if err != nil {
		return nil, response.Wrap(liveness.ErrInvalidImageEncoding, err)
	}

	s.log.WithFields(log.Fields{
		"request_id":           requestID,
		"similarity_threshold": similarityThreshold,
		"source_bytes":         len(source),
		"target_bytes":         len(target),
	}).Debug("Comparing faces")

	cmp, err := s.client.CompareFaces(ctx, source, target, similarityThreshold)
	if err != nil {
		s.log.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"outcome":    "failed",
		}).Error("Failed to compare faces")
		return nil, upstreamError(err)
	}

	result := NormalizeComparison(cmp, similarityThreshold)

	for i, match := range result.Matches {
		fields := log.Fields{
			"request_id": requestID,
			"match":      i + 1,
		}
		if match.Similarity != nil {
			fields["similarity"] = *match.Similarity
		}
		if match.Face.Confidence != nil {
			fields["confidence"] = *match.Face.Confidence
		}
		s.log.WithFields(fields).Debug("Face match")
	}

	s.log.WithFields(log.Fields{
		"request_id":      requestID,
		"total_matches":   result.TotalMatches,
		"unmatched_faces": len(result.UnmatchedFaces),
		"outcome":         "compared",
	}).Info("Face comparison completed")

	return &result, nil
}
