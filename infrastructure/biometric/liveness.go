package biometric

import (
	"context"
	"math"

	"attendly.io/application/constants"
	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/logger"
)

const expressionNoiseFloor = 0.1

// LivenessScore folds a set of expression-intensity scores into [0,1].
// A lively sample shows one dominant expression plus some spread above the
// noise floor; a flat photo rarely produces either.
func LivenessScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	maxScore := 0.0
	diversity := 0
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
		if score > expressionNoiseFloor {
			diversity++
		}
	}
	return math.Min(1, maxScore*0.5+float64(diversity)*0.1)
}

// CheckLiveness is a coarse anti-spoofing heuristic, not a security
// guarantee on its own. It gates attendance marking together with, never
// instead of, the identity check.
func (fs *FaceService) CheckLiveness(ctx context.Context, image string) types.LivenessResult {
	detection, err := fs.extract(ctx, image)
	if err != nil {
		logger.Warning("face extraction failed during liveness check", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return types.LivenessResult{IsLive: false, Confidence: 0}
	}

	score := LivenessScore(detection.ExpressionScores)
	return types.LivenessResult{
		IsLive:     score > constants.LIVENESS_SCORE_THRESHOLD,
		Confidence: score,
	}
}
