package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iono-such-things/hvac-ai-secretary/services/calendar"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// CalendarHandler serves the one-time Google Calendar consent flow and
// the connection status endpoint. The integration is optional; without
// credentials the endpoints answer accordingly.
type CalendarHandler struct {
	Calendar *calendar.GoogleCalendar
}

func NewCalendarHandler(cal *calendar.GoogleCalendar) *CalendarHandler {
	return &CalendarHandler{Calendar: cal}
}

// GoogleAuth handles GET /auth/google: redirect to the consent screen.
func (h *CalendarHandler) GoogleAuth(c *gin.Context) {
	if h.Calendar == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "calendar unavailable", "Google Calendar is not configured")
		return
	}
	c.Redirect(http.StatusFound, h.Calendar.AuthURL())
}

// GoogleCallback handles GET /auth/google/callback?code=...
func (h *CalendarHandler) GoogleCallback(c *gin.Context) {
	if h.Calendar == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "calendar unavailable", "Google Calendar is not configured")
		return
	}
	code := c.Query("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "missing code")
		return
	}
	if err := h.Calendar.HandleCallback(c.Request.Context(), code); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "calendar authorization failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Google Calendar connected. Bookings will now create calendar events.",
	})
}

// Status handles GET /api/calendar/status.
func (h *CalendarHandler) Status(c *gin.Context) {
	connected := h.Calendar != nil && h.Calendar.Connected()
	c.JSON(http.StatusOK, gin.H{"connected": connected})
}
