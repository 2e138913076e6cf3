package models

// ChatMessage is one turn in a chat session.
type ChatMessage struct {
	Sender  string `json:"sender"` // "user" or "assistant"
	Message string `json:"message"`
}

// ChatContext is the conversation history cached per session.
type ChatContext struct {
	CustomerName string        `json:"customerName,omitempty"`
	History      []ChatMessage `json:"history"`
}
