package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"attendly.io/application/repository"
	authinfra "attendly.io/infrastructure/auth"
	"attendly.io/infrastructure/cryptography"
	"attendly.io/infrastructure/logger"
	messagequeue "attendly.io/infrastructure/message_queue"
	queue_tasks "attendly.io/infrastructure/message_queue/tasks"
	mq_types "attendly.io/infrastructure/message_queue/types"
)

var ErrInvalidResetCode = errors.New("this reset code is invalid or has expired")

// RequestPasswordReset emails a short lived code to the account's
// address. It reports success whether or not the account exists so the
// endpoint cannot be used to probe for registered emails.
func RequestPasswordReset(ctx context.Context, email string) error {
	user, err := repository.UserRepo().FindOneByFilter(ctx, map[string]interface{}{
		"email": email,
	})
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return nil
	}

	otp, err := authinfra.GenerateOTP(6, user.Email)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(queue_tasks.EmailPayload{
		To:       user.Email,
		Subject:  "Reset your Attendly password",
		Template: "reset_password",
		Opts: map[string]any{
			"Name": user.Name,
			"Code": *otp,
		},
	})
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  payload,
		Priority: mq_types.High,
	})
	return nil
}

// ResetPassword trades a valid code for a new password. The code is
// single use, the failure streak clears with the password and any
// live session is revoked.
func ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	userRepo := repository.UserRepo()
	user, err := userRepo.FindOneByFilter(ctx, map[string]interface{}{
		"email": input.Email,
	})
	if err != nil {
		return err
	}
	if user == nil || !user.IsActive {
		return ErrInvalidResetCode
	}

	if _, valid := authinfra.VerifyOTP(user.Email, input.Code); !valid {
		return ErrInvalidResetCode
	}

	hashed, err := cryptography.CryptoHahser.HashString(input.NewPassword, nil)
	if err != nil {
		return err
	}

	affected, err := userRepo.UpdatePartialByID(ctx, user.ID, map[string]interface{}{
		"password":          string(hashed),
		"updatedAt":         time.Now(),
		"loginFailureCount": int64(0),
		"lockedUntil":       nil,
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("could not update password")
	}

	if err := LoginGuard.RecordSuccess(ctx, user.ID); err != nil {
		logger.Error("could not clear failure streak after password reset", logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
	}
	authinfra.SignOutUser(sessionKey(user.ID), "password reset")

	logger.Info("password reset completed", logger.LoggerOptions{
		Key:  "userID",
		Data: user.ID,
	})
	return nil
}
