package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// WebhookClient delivers the full submission payload to a partner
// endpoint (Make.com style automation).
type WebhookClient struct {
	URL    string
	Client *http.Client
}

// NewWebhookClient returns a client for the partner webhook URL.
func NewWebhookClient(url string) *WebhookClient {
	return &WebhookClient{
		URL:    url,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// WebhookPayload is the wire shape posted to the partner endpoint.
type WebhookPayload struct {
	Type         string `json:"type"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Service      string `json:"service"`
	Address      string `json:"address,omitempty"`
	Date         string `json:"date,omitempty"`
	Slot         *int   `json:"slot"`
	BestTime     string `json:"best_time,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CalendarLink string `json:"calendarLink,omitempty"`
	SubmittedAt  string `json:"submittedAt"`
}

// Deliver posts the payload; a non-2xx response is an error so the task
// queue can retry.
func (w *WebhookClient) Deliver(ctx context.Context, req models.BookingRequest, calendarLink string) error {
	payload := WebhookPayload{
		Type:         req.Type,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Service:      req.Service,
		Address:      req.Address,
		Date:         req.Date,
		Slot:         req.Slot,
		BestTime:     req.BestTime,
		Notes:        req.Notes,
		CalendarLink: calendarLink,
		SubmittedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("partner webhook returned %d", resp.StatusCode)
	}
	return nil
}
