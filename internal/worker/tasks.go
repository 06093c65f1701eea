package worker

import (
	"encoding/json"

	"sitesketch-service/internal/consumers"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeAcknowledgementEmail = "acknowledgement-email"
)

// Task Creators

func NewAcknowledgementEmailTask(payload consumers.AcknowledgementEmailDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAcknowledgementEmail, data), nil
}
