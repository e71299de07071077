package biometric

import (
	"context"
	"encoding/json"

	"attendly.io/infrastructure/biometric/types"
	"attendly.io/infrastructure/logger"
	"attendly.io/infrastructure/network"
)

// RemoteExtractor talks to the external detector/embedder service. The
// service owns the heavy model work; this client only translates its
// responses into detections and the shared error vocabulary.
type RemoteExtractor struct {
	Network *network.NetworkController
}

type extractRequest struct {
	Image *string `json:"image"`
}

type extractResponse struct {
	Success          bool      `json:"success"`
	FaceCount        int       `json:"face_count"`
	Embedding        []float64 `json:"embedding"`
	BoxArea          float64   `json:"box_area"`
	EyeDistance      float64   `json:"eye_distance"`
	ExpressionScores []float64 `json:"expression_scores"`
	Error            *string   `json:"error"`
}

func (re *RemoteExtractor) Extract(ctx context.Context, image string) (*types.Detection, error) {
	response, statusCode, err := re.Network.Post(ctx, "/extract-face", &map[string]string{}, extractRequest{Image: &image})
	if err != nil {
		logger.Error("error calling face extractor", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, types.ErrExtractorFailure
	}
	if statusCode == nil || *statusCode != 200 {
		logger.Error("face extractor responded with non-200 status code", logger.LoggerOptions{
			Key:  "status_code",
			Data: statusCode,
		})
		return nil, types.ErrExtractorFailure
	}

	var result extractResponse
	if err := json.Unmarshal(*response, &result); err != nil {
		logger.Error("error unmarshaling face extractor response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, types.ErrExtractorFailure
	}

	if result.FaceCount == 0 {
		return nil, types.ErrNoFaceDetected
	}
	if result.FaceCount > 1 {
		return nil, types.ErrMultipleFaces
	}
	if !result.Success || len(result.Embedding) == 0 {
		return nil, types.ErrExtractorFailure
	}

	return &types.Detection{
		Embedding:        result.Embedding,
		BoxArea:          result.BoxArea,
		EyeDistance:      result.EyeDistance,
		ExpressionScores: result.ExpressionScores,
	}, nil
}
