package entity

type Landmark struct {
	Type *string  `json:"Type,omitempty"`
	X    *float64 `json:"X,omitempty"`
	Y    *float64 `json:"Y,omitempty"`
}

type Pose struct {
	Roll  *float64 `json:"Roll,omitempty"`
	Yaw   *float64 `json:"Yaw,omitempty"`
	Pitch *float64 `json:"Pitch,omitempty"`
}

type ImageQuality struct {
	Brightness *float64 `json:"Brightness,omitempty"`
	Sharpness  *float64 `json:"Sharpness,omitempty"`
}

type ComparedFace struct {
	BoundingBox *BoundingBox  `json:"BoundingBox,omitempty"`
	Confidence  *float64      `json:"Confidence,omitempty"`
	Landmarks   []Landmark    `json:"Landmarks,omitempty"`
	Pose        *Pose         `json:"Pose,omitempty"`
	Quality     *ImageQuality `json:"Quality,omitempty"`
}

type FaceMatch struct {
	Similarity *float64     `json:"Similarity,omitempty"`
	Face       ComparedFace `json:"Face"`
}

type SourceImageFace struct {
	BoundingBox *BoundingBox `json:"BoundingBox,omitempty"`
	Confidence  *float64     `json:"Confidence,omitempty"`
}

type FaceComparison struct {
	FaceMatches     []FaceMatch
	UnmatchedFaces  []ComparedFace
	SourceImageFace *SourceImageFace
}
