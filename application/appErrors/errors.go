package apperrors

import (
	"net/http"
	"time"

	"attendly.io/application/constants"
	"attendly.io/application/utils"
	"attendly.io/infrastructure/logger"
	server_response "attendly.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed", nil, *errMessages, nil)
}

func EntityAlreadyExistsError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusConflict, message, nil, nil, nil)
}

func AuthenticationError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized, message, nil, nil, nil)
}

func ForbiddenError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusForbidden, message, nil, nil, nil)
}

func FaceNotEnrolledError(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusPreconditionFailed,
		"You have not enrolled your face yet. Complete face enrollment before marking attendance.",
		nil, nil, utils.GetUIntPointer(constants.FACE_NOT_ENROLLED))
}

func FaceVerificationFailedError(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusUnauthorized,
		"We could not verify that this is you. Try again in better lighting.",
		nil, nil, utils.GetUIntPointer(constants.FACE_VERIFICATION_FAILED))
}

func AttendanceAlreadyMarkedError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusConflict, message,
		nil, nil, utils.GetUIntPointer(constants.ATTENDANCE_ALREADY_MARKED))
}

func AccountLockedError(ctx interface{}, until *time.Time) {
	var payload map[string]any
	if until != nil {
		payload = map[string]any{
			"lockedUntil":       until,
			"retryAfterSeconds": int64(time.Until(*until).Seconds()),
		}
	}
	server_response.Responder.Respond(ctx, http.StatusLocked,
		"This account is temporarily locked after too many failed sign in attempts. Try again later.",
		payload, nil, utils.GetUIntPointer(constants.ACCOUNT_LOCKED_OUT))
}

func TooManyRequestsError(ctx interface{}, message string, retryAfter *time.Duration) {
	var payload map[string]any
	if retryAfter != nil {
		payload = map[string]any{
			"retryAfterSeconds": int64(retryAfter.Seconds()),
		}
	}
	server_response.Responder.Respond(ctx, http.StatusTooManyRequests, message, payload, nil, nil)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed", nil, nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Our service is temporarily down. Our team is working to fix it. Please check back later.", nil, nil, nil)
}

func UnknownError(ctx interface{}, err error, responseCode *uint) {
	logger.Error("unknown error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusBadRequest,
		"Something went wrong somewhere. Please check back later.", nil, nil, responseCode)
}

func CustomError(ctx interface{}, msg string, responseCode *uint) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, nil, responseCode)
}

func UnsupportedUserAgent(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest,
		"unsupported user agent", nil, nil, nil)
}

func MalformedHeader(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest,
		"malformed header information", nil, nil, nil)
}

func ClientError(ctx interface{}, msg string, errs []error, responseCode *uint) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, nil, errs, responseCode)
}
