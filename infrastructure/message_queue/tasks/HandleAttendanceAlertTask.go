package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"attendly.io/application/repository"
	"attendly.io/entities"
	"attendly.io/infrastructure/logger"
	mq_types "attendly.io/infrastructure/message_queue/types"
	"attendly.io/infrastructure/messaging/emails"
	"github.com/hibiken/asynq"
)

var HandleAttendanceAlertTaskName mq_types.Queues = "attendance_alert"

type AttendanceAlertPayload struct {
	UserID    string
	Kind      entities.AttendanceKind
	Timestamp time.Time
	Flag      string
}

// HandleAttendanceAlertTask emails the employee a receipt of their
// mark. Delivery is off the request path, a slow email provider must
// not slow down the clock.
func HandleAttendanceAlertTask(ctx context.Context, t *asynq.Task) error {
	var payload AttendanceAlertPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("an error occured while unmarshalling attendance alert payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}

	user, err := repository.UserRepo().FindByID(ctx, payload.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Warning("attendance alert for unknown user", logger.LoggerOptions{
			Key:  "userID",
			Data: payload.UserID,
		})
		return nil
	}

	kindLabel := "check-in"
	if payload.Kind == entities.KindCheckOut {
		kindLabel = "check-out"
	}
	success := emails.EmailService.SendEmail(user.Email,
		fmt.Sprintf("Your %s was recorded", kindLabel),
		"attendance_alert", map[string]any{
			"Name": user.Name,
			"Kind": kindLabel,
			"Time": payload.Timestamp.Format("3:04 PM, Jan 2 2006"),
			"Flag": payload.Flag,
		})
	if !success {
		return fmt.Errorf("failed to send attendance alert to %s", user.Email)
	}
	return nil
}
