package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "attendly.io/application/appErrors"
	"attendly.io/application/attendance"
	"attendly.io/application/controller/dto"
	"attendly.io/application/interfaces"
	"attendly.io/entities"
	server_response "attendly.io/infrastructure/serverResponse"
	"attendly.io/infrastructure/useragent"
	"attendly.io/infrastructure/validator"
)

func markInputFromDTO(ctx *interfaces.ApplicationContext[dto.MarkAttendanceDTO]) attendance.MarkInput {
	input := attendance.MarkInput{
		FaceSample: ctx.Body.FaceImage,
		IPAddress:  ctx.GetStringContextData("IPAddress"),
		Notes:      ctx.Body.Notes,
	}
	if ctx.Body.Location != nil {
		input.Location = &entities.Location{
			Latitude:  ctx.Body.Location.Latitude,
			Longitude: ctx.Body.Location.Longitude,
			Address:   ctx.Body.Location.Address,
		}
	} else if lat, latFound := ctx.Keys["Latitude"].(float64); latFound {
		// fall back to the address's geo lookup when the client sent none
		if lon, lonFound := ctx.Keys["Longitude"].(float64); lonFound {
			input.Location = &entities.Location{
				Latitude:  lat,
				Longitude: lon,
				Address:   ctx.GetStringContextData("City"),
			}
		}
	}
	if ctx.UserAgent != "" {
		agent := useragent.ParseUserAgent(ctx.UserAgent)
		deviceID := ""
		if ctx.DeviceID != nil {
			deviceID = *ctx.DeviceID
		}
		input.DeviceInfo = &entities.DeviceInfo{
			DeviceID:    deviceID,
			DeviceModel: agent.Device,
			OSVersion:   agent.OSVersion,
		}
	}
	return input
}

func respondMarkError(ctx interface{}, err error) {
	switch {
	case errors.Is(err, attendance.ErrUserNotFound):
		apperrors.NotFoundError(ctx, "account not found")
	case errors.Is(err, attendance.ErrNotEnrolled):
		apperrors.FaceNotEnrolledError(ctx)
	case errors.Is(err, attendance.ErrNotVerified):
		apperrors.FaceVerificationFailedError(ctx)
	case errors.Is(err, attendance.ErrNotLive):
		apperrors.ClientError(ctx, "we could not confirm a live face. do not use a photo of a photo.", nil, nil)
	case errors.Is(err, attendance.ErrAlreadyMarked):
		apperrors.AttendanceAlreadyMarkedError(ctx, "attendance already marked for today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		apperrors.ClientError(ctx, "you have not checked in today", nil, nil)
	default:
		apperrors.UnknownError(ctx, err, nil)
	}
}

func CheckIn(ctx *interfaces.ApplicationContext[dto.MarkAttendanceDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	event, err := attendance.LedgerInstance().RecordCheckIn(reqCtx, ctx.GetStringContextData("UserID"), markInputFromDTO(ctx))
	if err != nil {
		respondMarkError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "checked in", map[string]any{
		"id":         event.ID,
		"timestamp":  event.Timestamp,
		"isLate":     event.IsLate,
		"confidence": event.Confidence,
	}, nil, nil)
}

func CheckOut(ctx *interfaces.ApplicationContext[dto.MarkAttendanceDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	event, err := attendance.LedgerInstance().RecordCheckOut(reqCtx, ctx.GetStringContextData("UserID"), markInputFromDTO(ctx))
	if err != nil {
		respondMarkError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "checked out", map[string]any{
		"id":           event.ID,
		"timestamp":    event.Timestamp,
		"isEarlyLeave": event.IsEarlyLeave,
		"confidence":   event.Confidence,
	}, nil, nil)
}

func TodayStatus(ctx *interfaces.ApplicationContext[any]) {
	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status, err := attendance.LedgerInstance().TodayStatus(reqCtx, ctx.GetStringContextData("UserID"))
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "today's attendance", status, nil, nil)
}

func AttendanceHistory(ctx *interfaces.ApplicationContext[dto.AttendanceRangeDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	privileged := ctx.GetStringContextData("Role") == string(entities.RoleAdmin)
	events, err := attendance.LedgerInstance().History(reqCtx, ctx.GetStringContextData("UserID"), privileged, ctx.Body.UserID, ctx.Body.From, ctx.Body.To)
	if err != nil {
		if errors.Is(err, attendance.ErrForbidden) {
			apperrors.ForbiddenError(ctx.Ctx, "only administrators can read another user's attendance")
			return
		}
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance history", map[string]any{
		"events": events,
	}, nil, nil)
}

func DayAttendance(ctx *interfaces.ApplicationContext[any]) {
	day, ok := ctx.Param["date"].(string)
	if !ok || day == "" {
		apperrors.ClientError(ctx.Ctx, "date missing", nil, nil)
		return
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		apperrors.ClientError(ctx.Ctx, "date must look like 2006-01-02", nil, nil)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	privileged := ctx.GetStringContextData("Role") == string(entities.RoleAdmin)
	events, err := attendance.LedgerInstance().DayRecords(reqCtx, privileged, day)
	if err != nil {
		if errors.Is(err, attendance.ErrForbidden) {
			apperrors.ForbiddenError(ctx.Ctx, "only administrators can list a day's attendance")
			return
		}
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance for "+day, map[string]any{
		"day":    day,
		"events": events,
	}, nil, nil)
}

func AttendanceStats(ctx *interfaces.ApplicationContext[dto.AttendanceRangeDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summary, err := attendance.LedgerInstance().Stats(reqCtx, ctx.GetStringContextData("UserID"), ctx.Body.From, ctx.Body.To)
	if err != nil {
		apperrors.UnknownError(ctx.Ctx, err, nil)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance stats", summary, nil, nil)
}

func AdminUpdateAttendance(ctx *interfaces.ApplicationContext[dto.AdminUpdateAttendanceDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(*ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}

	eventID, ok := ctx.Param["id"].(string)
	if !ok || eventID == "" {
		apperrors.ClientError(ctx.Ctx, "record id missing", nil, nil)
		return
	}

	mutation := attendance.AdminMutation{
		Timestamp:       ctx.Body.Timestamp,
		RejectionReason: ctx.Body.RejectionReason,
	}
	if ctx.Body.Kind != nil {
		kind := entities.AttendanceKind(*ctx.Body.Kind)
		mutation.Kind = &kind
	}
	if ctx.Body.Status != nil {
		status := entities.ApprovalStatus(*ctx.Body.Status)
		mutation.Status = &status
	}
	if ctx.Body.Location != nil {
		mutation.Location = &entities.Location{
			Latitude:  ctx.Body.Location.Latitude,
			Longitude: ctx.Body.Location.Longitude,
			Address:   ctx.Body.Location.Address,
		}
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	privileged := ctx.GetStringContextData("Role") == string(entities.RoleAdmin)
	updated, err := attendance.LedgerInstance().AdminUpdate(reqCtx, ctx.GetStringContextData("UserID"), privileged, eventID, mutation)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrForbidden):
			apperrors.ForbiddenError(ctx.Ctx, "only administrators can correct attendance records")
		case errors.Is(err, attendance.ErrNotFound):
			apperrors.NotFoundError(ctx.Ctx, "attendance record not found")
		default:
			apperrors.UnknownError(ctx.Ctx, err, nil)
		}
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance record updated", updated, nil, nil)
}

func AdminDeleteAttendance(ctx *interfaces.ApplicationContext[any]) {
	eventID, ok := ctx.Param["id"].(string)
	if !ok || eventID == "" {
		apperrors.ClientError(ctx.Ctx, "record id missing", nil, nil)
		return
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	privileged := ctx.GetStringContextData("Role") == string(entities.RoleAdmin)
	err := attendance.LedgerInstance().AdminDelete(reqCtx, ctx.GetStringContextData("UserID"), privileged, eventID)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrForbidden):
			apperrors.ForbiddenError(ctx.Ctx, "only administrators can delete attendance records")
		case errors.Is(err, attendance.ErrNotFound):
			apperrors.NotFoundError(ctx.Ctx, "attendance record not found")
		default:
			apperrors.UnknownError(ctx.Ctx, err, nil)
		}
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance record deleted", nil, nil, nil)
}
