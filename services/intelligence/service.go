package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iono-such-things/hvac-ai-secretary/models"
)

// CompanyProfile feeds the assistant's system prompt.
type CompanyProfile struct {
	Name        string
	Phone       string
	ServiceArea string
}

// DefaultChatService implements ChatService on top of a Gemini model
// with Redis-cached conversation context.
type DefaultChatService struct {
	client  *GeminiClient
	store   *RedisContextStore
	profile CompanyProfile
}

func NewDefaultChatService(apiKey string, store *RedisContextStore, profile CompanyProfile) (*DefaultChatService, error) {
	client, err := NewGeminiClient(apiKey)
	if err != nil {
		return nil, err
	}
	return &DefaultChatService{client: client, store: store, profile: profile}, nil
}

func (s *DefaultChatService) systemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the assistant for %s, a local, family-owned heating and air conditioning business serving %s.\n\n", s.profile.Name, s.profile.ServiceArea)
	b.WriteString("SERVICES OFFERED: heater repair, A/C repair, system installation, fan motor replacement, preventative maintenance plans, hot water tank replacement and repair.\n\n")
	b.WriteString("YOUR ROLE: answer questions about services, pricing, and scheduling; help visitors book appointments or request a call-back; give general HVAC troubleshooting advice.\n\n")
	b.WriteString("EMERGENCIES: no heat in winter, no AC in hot weather, gas smell, carbon monoxide concerns, water leaking from equipment. For these, prioritize collecting contact information and address for immediate dispatch")
	if s.profile.Phone != "" {
		fmt.Fprintf(&b, ", and give out the phone number %s", s.profile.Phone)
	}
	b.WriteString(".\n\nKeep responses conversational, warm, and helpful, and end by offering to schedule service.")
	return b.String()
}

// StartSession opens a chat session and returns its ID plus a greeting.
func (s *DefaultChatService) StartSession(ctx context.Context, customerName string) (string, string, error) {
	sessionID := uuid.New().String()
	chatCtx := &models.ChatContext{CustomerName: customerName, History: []models.ChatMessage{}}
	if err := s.store.Set(ctx, sessionID, chatCtx); err != nil {
		return "", "", fmt.Errorf("chat: cache session: %w", err)
	}

	first := strings.Fields(customerName)
	greeting := fmt.Sprintf("Hi! I'm the assistant for %s. How can I help you today?", s.profile.Name)
	if len(first) > 0 {
		greeting = fmt.Sprintf("Hi %s! I'm the assistant for %s. How can I help you today?", first[0], s.profile.Name)
	}
	return sessionID, greeting, nil
}

// Message appends the visitor's turn, asks the model, and caches the
// extended history.
func (s *DefaultChatService) Message(ctx context.Context, sessionID, message string) (string, error) {
	chatCtx, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("chat: load session: %w", err)
	}
	if chatCtx == nil {
		return "", fmt.Errorf("chat: session %s not found or expired", sessionID)
	}

	chatCtx.History = append(chatCtx.History, models.ChatMessage{Sender: "user", Message: message})

	var prompt strings.Builder
	prompt.WriteString(s.systemPrompt())
	prompt.WriteString("\n\nConversation so far:\n")
	for _, m := range chatCtx.History {
		fmt.Fprintf(&prompt, "%s: %s\n", m.Sender, m.Message)
	}
	prompt.WriteString("assistant:")

	genCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	reply, err := s.client.GenerateContent(genCtx, prompt.String())
	if err != nil {
		return "", fmt.Errorf("chat: generate reply: %w", err)
	}
	reply = strings.TrimSpace(reply)

	chatCtx.History = append(chatCtx.History, models.ChatMessage{Sender: "assistant", Message: reply})
	if err := s.store.Set(ctx, sessionID, chatCtx); err != nil {
		return "", fmt.Errorf("chat: cache session: %w", err)
	}
	return reply, nil
}
