package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/constants"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	authusecase "attendly.io/application/usecases/auth"
	userusecase "attendly.io/application/usecases/user"
	"attendly.io/application/utils"
	"attendly.io/infrastructure/lockout"
	messagequeue "attendly.io/infrastructure/message_queue"
	queue_tasks "attendly.io/infrastructure/message_queue/tasks"
	mq_types "attendly.io/infrastructure/message_queue/types"
	server_response "attendly.io/infrastructure/serverResponse"
	"attendly.io/infrastructure/validator"
)

func RegisterUser(ctx *interfaces.ApplicationContext[dto.RegisterUserDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	account, err := userusecase.CreateUser(reqCtx, userusecase.CreateUserInput{
		Name:       ctx.Body.Name,
		Email:      strings.ToLower(ctx.Body.Email),
		Password:   ctx.Body.Password,
		Department: ctx.Body.Department,
		EmployeeID: ctx.Body.EmployeeID,
		Position:   ctx.Body.Position,
		Phone:      ctx.Body.Phone,
	})
	if err != nil {
		if errors.Is(err, userusecase.ErrEmailTaken) {
			apperrors.EntityAlreadyExistsError(ctx.Ctx, err.Error())
			return
		}
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}

	emailPayload, _ := json.Marshal(queue_tasks.EmailPayload{
		To:       account.Email,
		Subject:  "Welcome to Attendly",
		Template: "welcome",
		Opts: map[string]any{
			"Name":       account.Name,
			"Department": account.Department,
		},
	})
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  emailPayload,
		Priority: mq_types.Low,
	})

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "account created. enroll your face to start marking attendance.", map[string]any{
		"userID":       account.ID,
		"faceEnrolled": account.FaceEnrolled,
	}, nil, utils.GetUIntPointer(constants.ACCOUNT_CREATED))
}

func LoginUser(ctx *interfaces.ApplicationContext[dto.LoginDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	deviceID := ""
	if ctx.DeviceID != nil {
		deviceID = *ctx.DeviceID
	}
	result, err := authusecase.LoginUser(reqCtx, authusecase.LoginInput{
		Email:     strings.ToLower(ctx.Body.Email),
		Password:  ctx.Body.Password,
		IPAddress: ctx.GetStringContextData("IPAddress"),
		DeviceID:  deviceID,
		UserAgent: ctx.UserAgent,
	})
	if err != nil {
		var rateLimited lockout.RateLimitedError
		var locked lockout.LockedError
		switch {
		case errors.As(err, &rateLimited):
			apperrors.TooManyRequestsError(ctx.Ctx, "too many sign in attempts from this address. wait a while and try again.", &rateLimited.RetryAfter)
		case errors.As(err, &locked):
			apperrors.AccountLockedError(ctx.Ctx, &locked.Until)
		case errors.Is(err, lockout.ErrTooManyAttempts):
			apperrors.TooManyRequestsError(ctx.Ctx, "too many sign in attempts from this address. wait a while and try again.", nil)
		case errors.Is(err, lockout.ErrAccountLocked):
			apperrors.AccountLockedError(ctx.Ctx, nil)
		case errors.Is(err, authusecase.ErrInvalidCredentials):
			apperrors.AuthenticationError(ctx.Ctx, err.Error())
		case errors.Is(err, authusecase.ErrAccountDisabled):
			apperrors.ForbiddenError(ctx.Ctx, err.Error())
		default:
			apperrors.UnknownError(ctx.Ctx, err, nil)
		}
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "signed in", map[string]any{
		"token": result.Token,
		"account": map[string]any{
			"id":           result.UserID,
			"name":         result.Name,
			"email":        result.Email,
			"role":         result.Role,
			"faceEnrolled": result.Enrolled,
		},
	}, nil, nil)
}

func ForgotPassword(ctx *interfaces.ApplicationContext[dto.ForgotPasswordDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := authusecase.RequestPasswordReset(reqCtx, strings.ToLower(ctx.Body.Email)); err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}

	// the response never says whether the account exists
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK,
		"if that email belongs to an account, a reset code is on its way", nil, nil, nil)
}

func ResetPassword(ctx *interfaces.ApplicationContext[dto.ResetPasswordDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := authusecase.ResetPassword(reqCtx, authusecase.ResetPasswordInput{
		Email:       strings.ToLower(ctx.Body.Email),
		Code:        ctx.Body.Code,
		NewPassword: ctx.Body.NewPassword,
	})
	if err != nil {
		if errors.Is(err, authusecase.ErrInvalidResetCode) {
			apperrors.ClientError(ctx.Ctx, err.Error(), nil, nil)
			return
		}
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK,
		"password updated. sign in with your new password.", nil, nil, nil)
}

func LogoutUser(ctx *interfaces.ApplicationContext[any]) {
	authusecase.SignOutUser(ctx.GetStringContextData("UserID"), "user initiated signout")
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "signed out", nil, nil, nil)
}
