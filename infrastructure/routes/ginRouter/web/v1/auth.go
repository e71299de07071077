package routev1

import (
	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	middlewares "attendly.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func AuthRouter(router *gin.RouterGroup) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.RegisterUserDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.RegisterUser(&interfaces.ApplicationContext[dto.RegisterUserDTO]{
				Ctx:       ctx,
				Keys:      appContext.Keys,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				Body:      &body,
			})
		})

		authRouter.POST("/login", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.LoginDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.LoginUser(&interfaces.ApplicationContext[dto.LoginDTO]{
				Ctx:       ctx,
				Keys:      appContext.Keys,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				Body:      &body,
			})
		})

		authRouter.POST("/forgot-password", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ForgotPasswordDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ForgotPassword(&interfaces.ApplicationContext[dto.ForgotPasswordDTO]{
				Ctx:       ctx,
				Keys:      appContext.Keys,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				Body:      &body,
			})
		})

		authRouter.POST("/reset-password", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ResetPasswordDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ResetPassword(&interfaces.ApplicationContext[dto.ResetPasswordDTO]{
				Ctx:       ctx,
				Keys:      appContext.Keys,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				Body:      &body,
			})
		})

		authRouter.POST("/logout", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.LogoutUser(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
