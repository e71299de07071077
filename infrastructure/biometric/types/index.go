package types

import (
	"context"
	"errors"
)

// EmbeddingVector is a fixed-length face descriptor produced by the external
// extractor. The dimensionality is whatever the extractor emits; the engine
// never inspects individual components, only distances between vectors.
type EmbeddingVector []float64

// Detection is a single validated face found in an image.
type Detection struct {
	Embedding        EmbeddingVector
	BoxArea          float64
	EyeDistance      float64
	ExpressionScores []float64
}

// FaceExtractorType is the boundary to the external detector/embedder.
// Implementations must bound their work with the supplied context.
type FaceExtractorType interface {
	Extract(ctx context.Context, image string) (*Detection, error)
}

var (
	ErrNoFaceDetected   = errors.New("no face detected in image")
	ErrMultipleFaces    = errors.New("multiple faces detected, ensure only one face is visible")
	ErrFaceTooSmall     = errors.New("face too small or too far from camera")
	ErrFaceNotClear     = errors.New("face not clearly visible, look directly at the camera")
	ErrNoValidFaces     = errors.New("no valid faces found in provided images")
	ErrTooFewSamples    = errors.New("not enough valid samples for enrollment")
	ErrExtractorFailure = errors.New("face extractor unavailable")
)

type VerificationResult struct {
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
	Distance   float64 `json:"distance"`
}

type LivenessResult struct {
	IsLive     bool    `json:"isLive"`
	Confidence float64 `json:"confidence"`
}

type BiometricServiceType interface {
	VerifyImage(ctx context.Context, image string, enrolled []EmbeddingVector) VerificationResult
	CheckLiveness(ctx context.Context, image string) LivenessResult
	Enroll(ctx context.Context, images []string) ([]EmbeddingVector, error)
}
