package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	recordsRepo "github.com/iono-such-things/hvac-ai-secretary/database/repository/records"
	"github.com/iono-such-things/hvac-ai-secretary/models"
	"github.com/iono-such-things/hvac-ai-secretary/services/calendar"
	"github.com/iono-such-things/hvac-ai-secretary/services/notification"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// Worker consumes the side-effect queue. Failed handlers are retried by
// asynq and every failure lands in the operational log; nothing here can
// reach back and change a booking outcome.
type Worker struct {
	Email       notification.EmailSender
	NotifyEmail string
	Company     string
	Phone       string
	Timezone    *time.Location

	Webhook  *notification.WebhookClient
	Calendar calendar.Authority
	Records  recordsRepo.Repository
}

// Run starts the asynq server in the background.
func (w *Worker) Run(redisOpts asynq.RedisClientOpt) {
	logger := utils.GetLogger()

	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 5,
		Queues:      map[string]int{"default": 1},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeOwnerEmail, w.handleOwnerEmail)
	mux.HandleFunc(TypeCustomerEmail, w.handleCustomerEmail)
	mux.HandleFunc(TypeWebhook, w.handleWebhook)
	mux.HandleFunc(TypeCalendarEvent, w.handleCalendarEvent)
	mux.HandleFunc(TypeBookingRecord, w.handleBookingRecord)

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Fatal("side-effect worker failed to start", zap.Error(err))
		}
	}()
}

func decodePayload(task *asynq.Task) (models.BookingRequest, error) {
	var p NotifyPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return models.BookingRequest{}, err
	}
	return p.Request, nil
}

func (w *Worker) handleOwnerEmail(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	req, err := decodePayload(task)
	if err != nil {
		return err
	}
	if w.NotifyEmail == "" {
		return nil
	}
	subject := notification.OwnerSubject(req)
	body := notification.OwnerBody(req, time.Now().In(w.Timezone))
	if err := w.Email.Send(w.NotifyEmail, subject, body); err != nil {
		logger.Warn("owner notification email failed", zap.Error(err))
		return err
	}
	return nil
}

func (w *Worker) handleCustomerEmail(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	req, err := decodePayload(task)
	if err != nil {
		return err
	}
	if req.Email == "" {
		return nil
	}
	subject := notification.CustomerSubject(w.Company, req.Date)
	body := notification.CustomerBody(req, w.Company, w.Phone)
	if err := w.Email.Send(req.Email, subject, body); err != nil {
		logger.Warn("customer confirmation email failed", zap.Error(err))
		return err
	}
	return nil
}

func (w *Worker) handleWebhook(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	req, err := decodePayload(task)
	if err != nil {
		return err
	}
	if w.Webhook == nil {
		return nil
	}
	if err := w.Webhook.Deliver(ctx, req, ""); err != nil {
		logger.Warn("partner webhook delivery failed", zap.Error(err))
		return err
	}
	logger.Info("partner webhook delivered", zap.String("type", req.Type))
	return nil
}

// handleCalendarEvent creates the best-effort calendar event for
// deployments where the block registry is the authority but a calendar
// is connected. When the calendar itself is the authority the event was
// already created during reservation and this task is never enqueued.
func (w *Worker) handleCalendarEvent(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	req, err := decodePayload(task)
	if err != nil {
		return err
	}
	if w.Calendar == nil || !w.Calendar.Connected() {
		logger.Debug("calendar event skipped: not connected")
		return nil
	}
	link, err := w.Calendar.Reserve(ctx, req)
	if err != nil {
		logger.Warn("calendar event creation failed", zap.Error(err))
		return err
	}
	logger.Info("calendar event created", zap.String("link", link))
	return nil
}

func (w *Worker) handleBookingRecord(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	req, err := decodePayload(task)
	if err != nil {
		return err
	}
	if w.Records == nil {
		return nil
	}
	record := models.BookingRecord{
		Type:     req.Type,
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		Service:  req.Service,
		Address:  req.Address,
		Date:     req.Date,
		Hour:     req.Slot,
		BestTime: req.BestTime,
		Notes:    req.Notes,
	}
	if _, err := w.Records.Create(ctx, record); err != nil {
		logger.Warn("booking record insert failed", zap.Error(err))
		return err
	}
	return nil
}
