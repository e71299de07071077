package middlewares

import (
	"strings"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/interfaces"
	authusecase "attendly.io/application/usecases/auth"
	"attendly.io/entities"
)

func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], requiredRole *entities.UserRole) (*interfaces.ApplicationContext[any], bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == nil {
		apperrors.AuthenticationError(ctx.Ctx, "provide an auth token")
		return nil, false
	}
	authToken := strings.TrimPrefix(*authHeader, "Bearer ")

	deviceID := ""
	if ctx.DeviceID != nil {
		deviceID = *ctx.DeviceID
	}
	authResult := authusecase.IsUserSignedIn(authToken, deviceID)
	if !authResult.IsAuthenticated {
		apperrors.AuthenticationError(ctx.Ctx, authResult.ErrorMessage)
		return nil, false
	}

	if requiredRole != nil && authResult.Role != string(*requiredRole) {
		apperrors.ForbiddenError(ctx.Ctx, "you do not have permission to perform this action")
		return nil, false
	}

	ctx.SetContextData("UserID", authResult.UserID)
	ctx.SetContextData("Email", authResult.Email)
	ctx.SetContextData("Name", authResult.Name)
	ctx.SetContextData("Role", authResult.Role)
	ctx.SetContextData("UserAgent", authResult.UserAgent)
	ctx.SetContextData("DeviceID", authResult.DeviceID)

	return ctx, true
}
