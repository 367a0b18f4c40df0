package liveness

import (
	"LivenessGateway/internal/entity"
)

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	Success   bool   `json:"success"`
}

type GetResultsRequest struct {
	SessionID string `query:"sessionId" validate:"required"`
}

// Image is an audit or reference image with its bytes already base64 encoded.
type Image struct {
	BoundingBox  entity.BoundingBox `json:"BoundingBox"`
	Bytes        *string            `json:"Bytes"`
	S3Object     *entity.S3Object   `json:"S3Object"`
	PresignedURL string             `json:"PresignedUrl,omitempty"`
}

type LivenessResult struct {
	SessionID      string            `json:"sessionId"`
	Status         string            `json:"status"`
	Confidence     *float64          `json:"confidence"`
	IsLive         bool              `json:"isLive"`
	ReferenceImage *Image            `json:"referenceImage"`
	AuditImages    []Image           `json:"auditImages"`
	Challenge      *entity.Challenge `json:"challenge"`
}

type LivenessResultsResponse struct {
	Success bool `json:"success"`
	LivenessResult
}

// CompareFacesRequest carries the images only; the threshold is read from
// the raw body so that an explicit null is not mistaken for an absent field.
type CompareFacesRequest struct {
	SourceImage string `json:"sourceImage" validate:"required"`
	TargetImage string `json:"targetImage" validate:"required"`
}

const SimilarityThresholdField = "similarityThreshold"

type FaceComparisonResult struct {
	Matches             []entity.FaceMatch     `json:"matches"`
	UnmatchedFaces      []entity.ComparedFace  `json:"unmatchedFaces"`
	SourceImageFace     entity.SourceImageFace `json:"sourceImageFace"`
	TotalMatches        int                    `json:"totalMatches"`
	SimilarityThreshold float64                `json:"similarityThreshold"`
}

type CompareFacesResponse struct {
	Success bool `json:"success"`
	FaceComparisonResult
}

type HealthResponse struct {
	Status string `json:"status"`
}
