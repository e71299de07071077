package biometric

import (
	"os"
	"strconv"
	"time"

	"attendly.io/application/constants"
	"attendly.io/infrastructure/network"
)

var FaceBiometricService *FaceService

func InitialiseBiometricService() {
	threshold := constants.FACE_MATCH_THRESHOLD
	if raw := os.Getenv("FACE_MATCH_THRESHOLD"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			threshold = parsed
		}
	}
	FaceBiometricService = &FaceService{
		Extractor: &RemoteExtractor{
			Network: &network.NetworkController{
				BaseUrl: os.Getenv("FACE_EXTRACTOR_BASE_URL"),
			},
		},
		Threshold:      threshold,
		ExtractTimeout: 10 * time.Second,
	}
}
