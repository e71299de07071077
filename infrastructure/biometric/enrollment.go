package biometric

import (
	"context"

	"attendly.io/application/constants"
	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/logger"
)

// Enroll validates every sample independently and returns the surviving
// embeddings. Enrollment is all-or-nothing: a sample that fails validation
// is dropped, never substituted, and fewer than the minimum number of
// survivors fails the whole batch so a caller can never end up with a
// partially enrolled face.
func (fs *FaceService) Enroll(ctx context.Context, images []string) ([]types.EmbeddingVector, error) {
	embeddings := []types.EmbeddingVector{}
	for _, image := range images {
		detection, err := fs.extract(ctx, image)
		if err != nil {
			logger.Warning("enrollment sample rejected", logger.LoggerOptions{
				Key:  "reason",
				Data: err.Error(),
			})
			continue
		}
		if err := validateDetection(detection); err != nil {
			logger.Warning("enrollment sample rejected", logger.LoggerOptions{
				Key:  "reason",
				Data: err.Error(),
			})
			continue
		}
		embeddings = append(embeddings, detection.Embedding)
	}

	if len(embeddings) == 0 {
		return nil, types.ErrNoValidFaces
	}
	if len(embeddings) < constants.MIN_ENROLLMENT_SAMPLES {
		return nil, types.ErrTooFewSamples
	}
	return embeddings, nil
}

// ValidateSample runs the per-sample quality gates on a single image and
// returns the detection when it passes. Used by the single-image
// registration preview so clients can retake a bad shot before submitting
// the full batch.
func (fs *FaceService) ValidateSample(ctx context.Context, image string) (*types.Detection, error) {
	detection, err := fs.extract(ctx, image)
	if err != nil {
		return nil, err
	}
	if err := validateDetection(detection); err != nil {
		return nil, err
	}
	return detection, nil
}

func validateDetection(detection *types.Detection) error {
	if detection.BoxArea < constants.MIN_FACE_BOX_AREA {
		return types.ErrFaceTooSmall
	}
	if detection.EyeDistance < constants.MIN_EYE_DISTANCE {
		return types.ErrFaceNotClear
	}
	return nil
}
