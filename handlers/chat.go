package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ai "github.com/iono-such-things/hvac-ai-secretary/services/intelligence"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// ChatHandler serves the site chat widget. The assistant is optional;
// without an API key the endpoints answer 503.
type ChatHandler struct {
	Service ai.ChatService
}

func NewChatHandler(svc ai.ChatService) *ChatHandler {
	return &ChatHandler{Service: svc}
}

// StartChat handles POST /api/chat/start.
func (h *ChatHandler) StartChat(c *gin.Context) {
	if h.Service == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "chat unavailable", "assistant is not configured")
		return
	}
	var input struct {
		CustomerName string `json:"customerName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sessionID, greeting, err := h.Service.StartSession(c.Request.Context(), input.CustomerName)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to start chat", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessionId": sessionID, "message": greeting})
}

// ChatMessage handles POST /api/chat/message.
func (h *ChatHandler) ChatMessage(c *gin.Context) {
	if h.Service == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "chat unavailable", "assistant is not configured")
		return
	}
	var input struct {
		SessionID string `json:"sessionId" binding:"required"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reply, err := h.Service.Message(c.Request.Context(), input.SessionID, input.Message)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate reply", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": reply})
}
