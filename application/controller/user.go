package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	"attendly.io/application/repository"
	userusecase "attendly.io/application/usecases/user"
	"attendly.io/infrastructure/biometric"
	biometric_types "attendly.io/infrastructure/biometric/types"
	server_response "attendly.io/infrastructure/serverResponse"
	"attendly.io/infrastructure/validator"
)

func EnrollFace(ctx *interfaces.ApplicationContext[dto.EnrollFaceDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	samples, err := userusecase.EnrollFace(reqCtx, ctx.GetStringContextData("UserID"), ctx.Body.Images)
	if err != nil {
		switch {
		case errors.Is(err, userusecase.ErrUserNotFound):
			apperrors.NotFoundError(ctx.Ctx, "account not found")
		case errors.Is(err, biometric_types.ErrTooFewSamples),
			errors.Is(err, biometric_types.ErrNoValidFaces):
			apperrors.ClientError(ctx.Ctx, err.Error(), nil, nil)
		default:
			apperrors.UnknownError(ctx.Ctx, err, nil)
		}
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face enrolled", map[string]any{
		"samples": samples,
	}, nil, nil)
}

// ValidateFaceSample lets the client preflight a single capture
// before submitting the full enrollment batch.
func ValidateFaceSample(ctx *interfaces.ApplicationContext[dto.ValidateFaceSampleDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	detection, err := biometric.FaceBiometricService.ValidateSample(reqCtx, ctx.Body.Image)
	if err != nil {
		apperrors.ClientError(ctx.Ctx, err.Error(), nil, nil)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "sample accepted", map[string]any{
		"boxArea":     detection.BoxArea,
		"eyeDistance": detection.EyeDistance,
	}, nil, nil)
}

func GetProfile(ctx *interfaces.ApplicationContext[any]) {
	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := repository.UserRepo().FindByID(reqCtx, ctx.GetStringContextData("UserID"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "account not found")
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "profile fetched", map[string]any{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"department":   user.Department,
		"employeeID":   user.EmployeeID,
		"position":     user.Position,
		"phone":        user.Phone,
		"faceEnrolled": user.FaceEnrolled,
		"lastLogin":    user.LastLogin,
	}, nil, nil)
}
