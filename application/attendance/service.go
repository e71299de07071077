package attendance

import (
	"encoding/json"
	"os"
	"sync"

	"attendly.io/infrastructure/biometric"
	"attendly.io/infrastructure/logger"
	messagequeue "attendly.io/infrastructure/message_queue"
	queue_tasks "attendly.io/infrastructure/message_queue/tasks"
	mq_types "attendly.io/infrastructure/message_queue/types"
)

var ledgerOnce = sync.Once{}

var sharedLedger *Ledger

// LedgerInstance wires the ledger against Mongo, the live biometric
// service and the task queue.
func LedgerInstance() *Ledger {
	ledgerOnce.Do(func() {
		sharedLedger = &Ledger{
			Store:           &MongoEventStore{},
			Users:           &MongoUserDirectory{},
			Faces:           biometric.FaceBiometricService,
			Clock:           SystemClock{},
			RequireLiveness: os.Getenv("REQUIRE_LIVENESS") == "true",
			Notify:          enqueueAlert,
		}
	})
	return sharedLedger
}

func enqueueAlert(notification Notification) {
	payload, err := json.Marshal(queue_tasks.AttendanceAlertPayload{
		UserID:    notification.UserID,
		Kind:      notification.Kind,
		Timestamp: notification.Timestamp,
	})
	if err != nil {
		logger.Error("could not marshal attendance alert payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleAttendanceAlertTaskName,
		Payload:  payload,
		Priority: mq_types.Low,
	})
}
