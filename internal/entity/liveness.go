package entity

const (
	LivenessStatusCreated    = "CREATED"
	LivenessStatusInProgress = "IN_PROGRESS"
	LivenessStatusSucceeded  = "SUCCEEDED"
	LivenessStatusFailed     = "FAILED"
	LivenessStatusExpired    = "EXPIRED"
)

type BoundingBox struct {
	Width  *float64 `json:"Width,omitempty"`
	Height *float64 `json:"Height,omitempty"`
	Left   *float64 `json:"Left,omitempty"`
	Top    *float64 `json:"Top,omitempty"`
}

type S3Object struct {
	Bucket  *string `json:"Bucket,omitempty"`
	Name    *string `json:"Name,omitempty"`
	Version *string `json:"Version,omitempty"`
}

// AuditImage is a frame captured by the liveness check. Bytes holds the raw
// image payload exactly as the service returned it.
type AuditImage struct {
	BoundingBox *BoundingBox
	Bytes       []byte
	S3Object    *S3Object
}

type Challenge struct {
	Type    *string `json:"Type"`
	Version *string `json:"Version"`
}

// LivenessSession is the raw view of a session as reported by the
// biometric service.
type LivenessSession struct {
	SessionID      string
	Status         string
	Confidence     *float64
	ReferenceImage *AuditImage
	AuditImages    []AuditImage
	Challenge      *Challenge
}

type LivenessSessionSettings struct {
	ClientRequestToken string
	AuditImagesLimit   int64
	OutputBucket       string
	OutputKeyPrefix    string
}
