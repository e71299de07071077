package routev1

import (
	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	middlewares "attendly.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func UserRouter(router *gin.RouterGroup) {
	userRouter := router.Group("/user")
	{
		userRouter.POST("/enroll-face", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.EnrollFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollFace(&interfaces.ApplicationContext[dto.EnrollFaceDTO]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
				Body:     &body,
			})
		})

		userRouter.POST("/validate-sample", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ValidateFaceSampleDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ValidateFaceSample(&interfaces.ApplicationContext[dto.ValidateFaceSampleDTO]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
				Body:     &body,
			})
		})

		userRouter.GET("/profile", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.GetProfile(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
