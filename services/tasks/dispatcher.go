package tasks

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/iono-such-things/hvac-ai-secretary/models"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// Dispatcher enqueues the detached side-effect tasks that follow a
// confirmed submission. Enqueue failures are logged and dropped: by the
// time anything is dispatched here the reservation is already durable,
// so only the side notification degrades.
type Dispatcher struct {
	Client *asynq.Client

	// Presence flags for the optional collaborators; absent ones are
	// simply not enqueued.
	CustomerEmail bool
	Webhook       bool
	CalendarEvent bool
	Record        bool
}

// NewDispatcher returns a dispatcher backed by the given Redis options.
func NewDispatcher(redisOpts asynq.RedisClientOpt) *Dispatcher {
	return &Dispatcher{Client: asynq.NewClient(redisOpts)}
}

// BookingConfirmed fans a confirmed slot booking out to the configured
// collaborators.
func (d *Dispatcher) BookingConfirmed(ctx context.Context, req models.BookingRequest) {
	d.enqueue(ctx, TypeOwnerEmail, req)
	if d.CustomerEmail && req.Email != "" {
		d.enqueue(ctx, TypeCustomerEmail, req)
	}
	if d.CalendarEvent {
		d.enqueue(ctx, TypeCalendarEvent, req)
	}
	if d.Record {
		d.enqueue(ctx, TypeBookingRecord, req)
	}
	if d.Webhook {
		d.enqueue(ctx, TypeWebhook, req)
	}
}

// CallbackRequested dispatches the notifications for a call-back
// request; no calendar event is created and no slot is involved.
func (d *Dispatcher) CallbackRequested(ctx context.Context, req models.BookingRequest) {
	d.enqueue(ctx, TypeOwnerEmail, req)
	if d.Record {
		d.enqueue(ctx, TypeBookingRecord, req)
	}
	if d.Webhook {
		d.enqueue(ctx, TypeWebhook, req)
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, taskType string, req models.BookingRequest) {
	logger := utils.GetLogger()
	task, err := newNotifyTask(taskType, req)
	if err != nil {
		logger.Error("failed to build task", zap.String("type", taskType), zap.Error(err))
		return
	}
	if _, err := d.Client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		logger.Error("failed to enqueue task", zap.String("type", taskType), zap.Error(err))
	}
}
