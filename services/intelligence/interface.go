package ai

import "context"

// ChatService backs the site chat widget with a hosted language model.
type ChatService interface {
	// StartSession opens a session for a visitor and returns the session
	// ID with the opening greeting.
	StartSession(ctx context.Context, customerName string) (string, string, error)
	// Message sends one visitor turn and returns the assistant's reply.
	Message(ctx context.Context, sessionID, message string) (string, error)
}
