package queue

import (
	"encoding/json"

	"github.com/souqline/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDispatch persists and fans out a notification.
	TaskNotificationDispatch = constants.TaskNotificationDispatch
)

// NotificationDispatchPayload is the notification dispatch task payload.
// RecipientID 0 with the admin role fans the message out to every admin.
type NotificationDispatchPayload struct {
	RecipientRole string `json:"recipient_role"`
	RecipientID   uint   `json:"recipient_id"`
	Kind          string `json:"kind"`
	Message       string `json:"message"`
	Link          string `json:"link,omitempty"`
}

// NewNotificationDispatchTask builds the notification dispatch task.
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, body), nil
}
