package models

import "time"

// Booking request kinds.
const (
	RequestBooking  = "booking"
	RequestCallback = "callback"
)

// BookingRequest is a visitor submission: either a time-slot booking
// carrying Date/Slot, or a call-back request carrying only contact and
// service fields plus a free-text preferred time.
type BookingRequest struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Service  string `json:"service"`
	Address  string `json:"address"`
	Date     string `json:"date"`
	Slot     *int   `json:"slot"`
	BestTime string `json:"best_time"`
	Notes    string `json:"notes"`
}

// IsCallback reports whether the request never touches availability state.
func (r BookingRequest) IsCallback() bool {
	return r.Type == RequestCallback
}

// Booking outcome statuses.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeConflict  = "conflict"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// BookingOutcome is the definitive result of a submission.
type BookingOutcome struct {
	Status string `json:"status"`
	Date   string `json:"date,omitempty"`
	Hour   int    `json:"hour,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// BookingRecord is the durable row written for a confirmed submission
// when a database is configured.
type BookingRecord struct {
	ID        string    `bson:"id" json:"id"`
	Type      string    `bson:"type" json:"type"`
	Name      string    `bson:"name" json:"name"`
	Phone     string    `bson:"phone" json:"phone"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	Service   string    `bson:"service" json:"service"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Date      string    `bson:"date,omitempty" json:"date,omitempty"`
	Hour      *int      `bson:"hour,omitempty" json:"hour,omitempty"`
	BestTime  string    `bson:"bestTime,omitempty" json:"bestTime,omitempty"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
