package notification

// EmailSender delivers a single message. Delivery is best-effort from
// the booking flow's perspective: failures are logged by the task
// worker, never propagated as a booking failure.
type EmailSender interface {
	Send(to, subject, body string) error
}
