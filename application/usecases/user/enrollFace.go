package user

import (
	"context"
	"errors"

	"attendly.io/application/repository"
	"attendly.io/infrastructure/biometric"
	"attendly.io/infrastructure/logger"
)

var ErrUserNotFound = errors.New("user not found")

// EnrollFace captures a user's face template from a batch of images.
// Every image must pass quality checks or the whole batch is
// rejected, a template assembled from weak samples would misverify at
// the clock every morning after.
func EnrollFace(ctx context.Context, userID string, images []string) (int, error) {
	userRepo := repository.UserRepo()
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}

	embeddings, err := biometric.FaceBiometricService.Enroll(ctx, images)
	if err != nil {
		return 0, err
	}

	stored := make([][]float64, len(embeddings))
	for i, embedding := range embeddings {
		stored[i] = embedding
	}

	if _, err := userRepo.UpdatePartialByID(ctx, userID, map[string]interface{}{
		"faceEnrolled":   true,
		"faceEmbeddings": stored,
	}); err != nil {
		return 0, err
	}

	logger.Info("face enrollment completed", logger.LoggerOptions{
		Key:  "userID",
		Data: userID,
	}, logger.LoggerOptions{
		Key:  "samples",
		Data: len(stored),
	})
	return len(stored), nil
}
