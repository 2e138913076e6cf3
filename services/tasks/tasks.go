package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// Task types for booking side effects. Each confirmed submission fans
// out into independent tasks so one collaborator's failure or latency
// never blocks another's delivery.
const (
	TypeOwnerEmail    = "notify:owner_email"
	TypeCustomerEmail = "notify:customer_email"
	TypeWebhook       = "notify:partner_webhook"
	TypeCalendarEvent = "calendar:create_event"
	TypeBookingRecord = "records:insert"
)

// NotifyPayload carries the original submission to every handler.
type NotifyPayload struct {
	Request models.BookingRequest `json:"request"`
}

func newNotifyTask(taskType string, req models.BookingRequest) (*asynq.Task, error) {
	b, err := json.Marshal(NotifyPayload{Request: req})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, b), nil
}
