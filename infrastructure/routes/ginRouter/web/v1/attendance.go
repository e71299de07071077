package routev1

import (
	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/controller"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	"attendly.io/entities"
	middlewares "attendly.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

var adminOnly = entities.RoleAdmin

func AttendanceRouter(router *gin.RouterGroup) {
	attendanceRouter := router.Group("/attendance")
	{
		attendanceRouter.POST("/check-in", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.MarkAttendanceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CheckIn(&interfaces.ApplicationContext[dto.MarkAttendanceDTO]{
				Ctx:       ctx,
				Keys:      appContext.Keys,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				Body:      &body,
			})
		})

		attendanceRouter.POST("/check-out", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.MarkAttendanceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CheckOut(&interfaces.ApplicationContext[dto.MarkAttendanceDTO]{
				Ctx:       ctx,
				Keys:      appContext.Keys,
				DeviceID:  appContext.DeviceID,
				UserAgent: appContext.UserAgent,
				Body:      &body,
			})
		})

		attendanceRouter.GET("/today", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.TodayStatus(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.GET("/history", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.AttendanceRangeDTO
			if err := ctx.ShouldBindQuery(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AttendanceHistory(&interfaces.ApplicationContext[dto.AttendanceRangeDTO]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
				Body:     &body,
			})
		})

		attendanceRouter.GET("/stats", middlewares.UserAuthenticationMiddleware(nil), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.AttendanceRangeDTO
			if err := ctx.ShouldBindQuery(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AttendanceStats(&interfaces.ApplicationContext[dto.AttendanceRangeDTO]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
				Body:     &body,
			})
		})

		attendanceRouter.GET("/date/:date", middlewares.UserAuthenticationMiddleware(&adminOnly), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.DayAttendance(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
				Param: map[string]any{
					"date": ctx.Param("date"),
				},
			})
		})

		attendanceRouter.PATCH("/:id", middlewares.UserAuthenticationMiddleware(&adminOnly), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.AdminUpdateAttendanceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.AdminUpdateAttendance(&interfaces.ApplicationContext[dto.AdminUpdateAttendanceDTO]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
				Body: &body,
			})
		})

		attendanceRouter.DELETE("/:id", middlewares.UserAuthenticationMiddleware(&adminOnly), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.AdminDeleteAttendance(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
				Param: map[string]any{
					"id": ctx.Param("id"),
				},
			})
		})
	}
}
