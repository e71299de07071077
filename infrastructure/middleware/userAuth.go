package middlewares

import (
	"attendly.io/application/interfaces"
	"attendly.io/application/middlewares"
	"attendly.io/application/utils"
	"attendly.io/entities"
	"github.com/gin-gonic/gin"
)

func UserAuthenticationMiddleware(requiredRole *entities.UserRole) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var savedCtx *interfaces.ApplicationContext[any]
		if saved, exists := ctx.Get("AppContext"); exists {
			savedCtx = saved.(*interfaces.ApplicationContext[any])
		} else {
			savedCtx = &interfaces.ApplicationContext[any]{
				DeviceID: utils.GetStringPointer(ctx.Request.Header.Get("X-Device-Id")),
			}
		}
		appContext, next := middlewares.UserAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:       ctx,
			Keys:      savedCtx.Keys,
			Header:    ctx.Request.Header,
			DeviceID:  savedCtx.DeviceID,
			UserAgent: savedCtx.UserAgent,
		}, requiredRole)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
