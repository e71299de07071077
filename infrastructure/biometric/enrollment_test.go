package biometric

import (
	"context"
	"errors"
	"testing"

	"attendly.io/infrastructure/biometric/types"
)

// fakeExtractor serves canned responses, either one response for every
// image or a per-image script.
type fakeExtractor struct {
	detection *types.Detection
	err       error

	byImage map[string]fakeExtraction
}

type fakeExtraction struct {
	detection *types.Detection
	err       error
}

func (fe *fakeExtractor) Extract(_ context.Context, image string) (*types.Detection, error) {
	if fe.byImage != nil {
		scripted, found := fe.byImage[image]
		if !found {
			return nil, types.ErrNoFaceDetected
		}
		return scripted.detection, scripted.err
	}
	return fe.detection, fe.err
}

func goodDetection(embedding types.EmbeddingVector) *types.Detection {
	return &types.Detection{
		Embedding:   embedding,
		BoxArea:     12_000,
		EyeDistance: 60,
	}
}

func TestEnroll(t *testing.T) {
	tests := []struct {
		name      string
		script    map[string]fakeExtraction
		images    []string
		wantCount int
		wantErr   error
	}{
		{
			name: "three valid frontal images enroll",
			script: map[string]fakeExtraction{
				"a": {detection: goodDetection(types.EmbeddingVector{0.1, 0.2})},
				"b": {detection: goodDetection(types.EmbeddingVector{0.2, 0.3})},
				"c": {detection: goodDetection(types.EmbeddingVector{0.3, 0.4})},
			},
			images:    []string{"a", "b", "c"},
			wantCount: 3,
		},
		{
			name: "one failing sample sinks the batch",
			script: map[string]fakeExtraction{
				"a": {detection: goodDetection(types.EmbeddingVector{0.1, 0.2})},
				"b": {detection: goodDetection(types.EmbeddingVector{0.2, 0.3})},
				"c": {err: types.ErrMultipleFaces},
			},
			images:  []string{"a", "b", "c"},
			wantErr: types.ErrTooFewSamples,
		},
		{
			name: "small face is dropped not substituted",
			script: map[string]fakeExtraction{
				"a": {detection: goodDetection(types.EmbeddingVector{0.1, 0.2})},
				"b": {detection: &types.Detection{Embedding: types.EmbeddingVector{0.2, 0.3}, BoxArea: 500, EyeDistance: 60}},
				"c": {detection: goodDetection(types.EmbeddingVector{0.3, 0.4})},
			},
			images:  []string{"a", "b", "c"},
			wantErr: types.ErrTooFewSamples,
		},
		{
			name: "narrow eye distance is rejected",
			script: map[string]fakeExtraction{
				"a": {detection: &types.Detection{Embedding: types.EmbeddingVector{0.1}, BoxArea: 12_000, EyeDistance: 20}},
			},
			images:  []string{"a", "a", "a"},
			wantErr: types.ErrTooFewSamples,
		},
		{
			name: "no faces at all",
			script: map[string]fakeExtraction{
				"a": {err: types.ErrNoFaceDetected},
			},
			images:  []string{"a", "a", "a"},
			wantErr: types.ErrNoValidFaces,
		},
		{
			name: "extra valid samples all survive",
			script: map[string]fakeExtraction{
				"a": {detection: goodDetection(types.EmbeddingVector{0.1, 0.2})},
			},
			images:    []string{"a", "a", "a", "a", "a"},
			wantCount: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &FaceService{
				Extractor: &fakeExtractor{byImage: tc.script},
				Threshold: 0.6,
			}
			embeddings, err := fs.Enroll(context.Background(), tc.images)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
				if embeddings != nil {
					t.Errorf("no embeddings should be returned on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(embeddings) != tc.wantCount {
				t.Errorf("expected %d embeddings, got %d", tc.wantCount, len(embeddings))
			}
		})
	}
}

func TestValidateSample(t *testing.T) {
	fs := &FaceService{
		Extractor: &fakeExtractor{detection: goodDetection(types.EmbeddingVector{0.1})},
		Threshold: 0.6,
	}
	detection, err := fs.ValidateSample(context.Background(), "sample")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detection.Embedding) == 0 {
		t.Errorf("expected an embedding back")
	}

	fs = &FaceService{
		Extractor: &fakeExtractor{err: types.ErrMultipleFaces},
		Threshold: 0.6,
	}
	_, err = fs.ValidateSample(context.Background(), "sample")
	if !errors.Is(err, types.ErrMultipleFaces) {
		t.Errorf("expected ErrMultipleFaces, got %v", err)
	}
}
