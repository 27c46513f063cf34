package tasks

import (
	"encoding/json"

	"slotserve/models"

	"github.com/hibiken/asynq"
)

const TypeNoShowNotice = "noshow:notify"

// NewNoShowNoticeTask builds the queue task for one no-show notice.
func NewNoShowNoticeTask(payload models.NoShowNoticePayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNoShowNotice, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
