package biometric

import (
	"context"
	"errors"
	"math"
	"time"

	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/logger"
)

// FaceService wraps the external embedding extractor with the matching,
// liveness and enrollment policy. Verification itself is pure vector math;
// only the extractor call touches the network.
type FaceService struct {
	Extractor      types.FaceExtractorType
	Threshold      float64
	ExtractTimeout time.Duration
}

// EuclideanDistance returns the L2 distance between two embeddings, or +Inf
// when the dimensions disagree so a malformed vector can never match.
func EuclideanDistance(a types.EmbeddingVector, b types.EmbeddingVector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// Verify matches a sample against every enrolled embedding and keeps the
// nearest one. A user enrolled from several angles should match if any
// single angle is close, so this is a minimum, not an average.
//
// Confidence is 1 - distance clamped at 0. It is a relative score, not a
// calibrated probability. Equality at the threshold counts as verified.
func (fs *FaceService) Verify(sample types.EmbeddingVector, enrolled []types.EmbeddingVector) types.VerificationResult {
	if len(enrolled) == 0 {
		return types.VerificationResult{Verified: false, Confidence: 0, Distance: math.Inf(1)}
	}

	minDistance := math.Inf(1)
	for _, stored := range enrolled {
		distance := EuclideanDistance(sample, stored)
		if distance < minDistance {
			minDistance = distance
		}
	}

	confidence := math.Max(0, 1-minDistance)
	return types.VerificationResult{
		Verified:   confidence >= fs.Threshold,
		Confidence: confidence,
		Distance:   minDistance,
	}
}

// VerifyImage extracts an embedding from a raw sample and runs Verify. Any
// extractor failure degrades to an unverified result rather than an error:
// an attacker probing the endpoint must not be able to tell "system broken"
// from "face rejected".
func (fs *FaceService) VerifyImage(ctx context.Context, image string, enrolled []types.EmbeddingVector) types.VerificationResult {
	if len(enrolled) == 0 {
		return types.VerificationResult{Verified: false, Confidence: 0, Distance: math.Inf(1)}
	}

	detection, err := fs.extract(ctx, image)
	if err != nil {
		if !errors.Is(err, types.ErrNoFaceDetected) && !errors.Is(err, types.ErrMultipleFaces) {
			logger.Error("face extraction failed during verification", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
		}
		return types.VerificationResult{Verified: false, Confidence: 0, Distance: math.Inf(1)}
	}
	return fs.Verify(detection.Embedding, enrolled)
}

func (fs *FaceService) extract(ctx context.Context, image string) (*types.Detection, error) {
	timeout := fs.ExtractTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fs.Extractor.Extract(ctx, image)
}
