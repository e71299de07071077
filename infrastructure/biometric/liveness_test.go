package biometric

import (
	"context"
	"math"
	"testing"

	"attendly.io/infrastructure/biometric/types"
)

func TestLivenessScore(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		expected float64
	}{
		{
			name:     "no scores",
			scores:   []float64{},
			expected: 0,
		},
		{
			name:     "single strong expression",
			scores:   []float64{0.8},
			expected: 0.8*0.5 + 0.1,
		},
		{
			name:     "flat photo style scores stay below the floor",
			scores:   []float64{0.05, 0.02, 0.01},
			expected: 0.05 * 0.5,
		},
		{
			name:     "diverse expressions add to the score",
			scores:   []float64{0.6, 0.3, 0.2, 0.15},
			expected: 0.6*0.5 + 4*0.1,
		},
		{
			name:     "score clamps at 1",
			scores:   []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			expected: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := LivenessScore(tc.scores)
			if math.Abs(result-tc.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestCheckLiveness(t *testing.T) {
	tests := []struct {
		name      string
		detection *types.Detection
		err       error
		wantLive  bool
	}{
		{
			name:      "lively sample passes",
			detection: &types.Detection{ExpressionScores: []float64{0.7, 0.3}},
			wantLive:  true,
		},
		{
			name:      "flat sample fails",
			detection: &types.Detection{ExpressionScores: []float64{0.1}},
			wantLive:  false,
		},
		{
			name:     "extraction failure fails closed",
			err:      types.ErrNoFaceDetected,
			wantLive: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &FaceService{
				Extractor: &fakeExtractor{detection: tc.detection, err: tc.err},
				Threshold: 0.6,
			}
			result := fs.CheckLiveness(context.Background(), "sample")
			if result.IsLive != tc.wantLive {
				t.Errorf("isLive: expected %v, got %v", tc.wantLive, result.IsLive)
			}
			if tc.err != nil && result.Confidence != 0 {
				t.Errorf("confidence should be 0 on extraction failure, got %v", result.Confidence)
			}
		})
	}
}
