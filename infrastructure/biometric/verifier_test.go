package biometric

import (
	"context"
	"math"
	"testing"

	"attendly.io/infrastructure/biometric/types"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        types.EmbeddingVector
		b        types.EmbeddingVector
		expected float64
	}{
		{
			name:     "identical vectors",
			a:        types.EmbeddingVector{0.1, 0.2, 0.3},
			b:        types.EmbeddingVector{0.1, 0.2, 0.3},
			expected: 0,
		},
		{
			name:     "unit distance",
			a:        types.EmbeddingVector{0, 0},
			b:        types.EmbeddingVector{1, 0},
			expected: 1,
		},
		{
			name:     "pythagorean",
			a:        types.EmbeddingVector{0, 0},
			b:        types.EmbeddingVector{3, 4},
			expected: 5,
		},
		{
			name:     "mismatched dimensions",
			a:        types.EmbeddingVector{0, 0},
			b:        types.EmbeddingVector{0, 0, 0},
			expected: math.Inf(1),
		},
		{
			name:     "empty vectors",
			a:        types.EmbeddingVector{},
			b:        types.EmbeddingVector{},
			expected: math.Inf(1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := EuclideanDistance(tc.a, tc.b)
			if math.Abs(result-tc.expected) > 1e-9 && !(math.IsInf(result, 1) && math.IsInf(tc.expected, 1)) {
				t.Errorf("expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	fs := &FaceService{Threshold: 0.6}

	tests := []struct {
		name           string
		sample         types.EmbeddingVector
		enrolled       []types.EmbeddingVector
		wantVerified   bool
		wantConfidence float64
	}{
		{
			name:           "exact match has confidence 1",
			sample:         types.EmbeddingVector{0.5, 0.5},
			enrolled:       []types.EmbeddingVector{{0.5, 0.5}},
			wantVerified:   true,
			wantConfidence: 1,
		},
		{
			name:           "no enrolled embeddings always fails",
			sample:         types.EmbeddingVector{0.5, 0.5},
			enrolled:       []types.EmbeddingVector{},
			wantVerified:   false,
			wantConfidence: 0,
		},
		{
			name:           "nil enrolled always fails",
			sample:         types.EmbeddingVector{0.5, 0.5},
			enrolled:       nil,
			wantVerified:   false,
			wantConfidence: 0,
		},
		{
			name:           "equality at threshold counts as verified",
			sample:         types.EmbeddingVector{0, 0},
			enrolled:       []types.EmbeddingVector{{0.4, 0}},
			wantVerified:   true,
			wantConfidence: 0.6,
		},
		{
			name:           "below threshold fails",
			sample:         types.EmbeddingVector{0, 0},
			enrolled:       []types.EmbeddingVector{{0.5, 0}},
			wantVerified:   false,
			wantConfidence: 0.5,
		},
		{
			name:   "nearest enrollment wins over the average",
			sample: types.EmbeddingVector{0, 0},
			enrolled: []types.EmbeddingVector{
				{3, 4},
				{0.1, 0},
				{2, 0},
			},
			wantVerified:   true,
			wantConfidence: 0.9,
		},
		{
			name:           "distance above 1 clamps confidence to 0",
			sample:         types.EmbeddingVector{0, 0},
			enrolled:       []types.EmbeddingVector{{3, 4}},
			wantVerified:   false,
			wantConfidence: 0,
		},
		{
			name:           "dimension mismatch never matches",
			sample:         types.EmbeddingVector{0, 0},
			enrolled:       []types.EmbeddingVector{{0, 0, 0}},
			wantVerified:   false,
			wantConfidence: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := fs.Verify(tc.sample, tc.enrolled)
			if result.Verified != tc.wantVerified {
				t.Errorf("verified: expected %v, got %v", tc.wantVerified, result.Verified)
			}
			if math.Abs(result.Confidence-tc.wantConfidence) > 1e-9 {
				t.Errorf("confidence: expected %v, got %v", tc.wantConfidence, result.Confidence)
			}
		})
	}
}

func TestVerifyConfigurableThreshold(t *testing.T) {
	strict := &FaceService{Threshold: 0.95}
	result := strict.Verify(types.EmbeddingVector{0, 0}, []types.EmbeddingVector{{0.1, 0}})
	if result.Verified {
		t.Errorf("confidence 0.9 should fail a 0.95 threshold")
	}

	lenient := &FaceService{Threshold: 0.5}
	result = lenient.Verify(types.EmbeddingVector{0, 0}, []types.EmbeddingVector{{0.5, 0}})
	if !result.Verified {
		t.Errorf("confidence 0.5 should pass a 0.5 threshold")
	}
}

func TestVerifyImageDegradesExtractorFailures(t *testing.T) {
	enrolled := []types.EmbeddingVector{{0.1, 0.2}}

	tests := []struct {
		name string
		err  error
	}{
		{name: "no face", err: types.ErrNoFaceDetected},
		{name: "multiple faces", err: types.ErrMultipleFaces},
		{name: "extractor down", err: types.ErrExtractorFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &FaceService{
				Extractor: &fakeExtractor{err: tc.err},
				Threshold: 0.6,
			}
			result := fs.VerifyImage(context.Background(), "sample", enrolled)
			if result.Verified || result.Confidence != 0 {
				t.Errorf("extractor failure must read as not verified, got %+v", result)
			}
		})
	}
}

func TestVerifyImageMatches(t *testing.T) {
	fs := &FaceService{
		Extractor: &fakeExtractor{detection: goodDetection(types.EmbeddingVector{0.1, 0})},
		Threshold: 0.6,
	}
	result := fs.VerifyImage(context.Background(), "sample", []types.EmbeddingVector{{0, 0}})
	if !result.Verified {
		t.Errorf("expected a match at distance 0.1")
	}
	if math.Abs(result.Confidence-0.9) > 1e-9 {
		t.Errorf("expected confidence 0.9, got %v", result.Confidence)
	}
}
