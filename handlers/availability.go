package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iono-such-things/hvac-ai-secretary/database/repository/blocks"
	"github.com/iono-such-things/hvac-ai-secretary/services/schedule"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// AvailabilityHandler serves the slot listing and the administrative
// block/unblock commands.
type AvailabilityHandler struct {
	Engine schedule.AvailabilityEngine
	Blocks blocks.Repository
}

func NewAvailabilityHandler(engine schedule.AvailabilityEngine, repo blocks.Repository) *AvailabilityHandler {
	return &AvailabilityHandler{Engine: engine, Blocks: repo}
}

// GetAvailability handles GET /api/availability?date=YYYY-MM-DD.
// A malformed date is a request error; a closed or fully-blocked day is
// a successful response with an empty slot list.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if !schedule.ValidDate(date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "date param required (YYYY-MM-DD)")
		return
	}

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "date": date, "slots": slots})
}

// GetBlocked handles GET /api/availability/blocked: the full block state
// for the admin UI.
func (h *AvailabilityHandler) GetBlocked(c *gin.Context) {
	state, err := h.Blocks.State(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load block state", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "dates": state.Dates, "slots": state.Slots})
}

type dateInput struct {
	Date string `json:"date" binding:"required"`
}

type slotInput struct {
	Date string `json:"date" binding:"required"`
	Hour *int   `json:"hour" binding:"required"`
}

// BlockDate handles POST /api/availability/block-date.
func (h *AvailabilityHandler) BlockDate(c *gin.Context) {
	var input dateInput
	if err := c.ShouldBindJSON(&input); err != nil || !schedule.ValidDate(input.Date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "date required (YYYY-MM-DD)")
		return
	}
	if err := h.Blocks.BlockDate(c.Request.Context(), input.Date); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to block date", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": input.Date + " blocked"})
}

// UnblockDate handles POST /api/availability/unblock-date. Any per-hour
// blocks for the date are removed along with the all-day block.
func (h *AvailabilityHandler) UnblockDate(c *gin.Context) {
	var input dateInput
	if err := c.ShouldBindJSON(&input); err != nil || !schedule.ValidDate(input.Date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "date required (YYYY-MM-DD)")
		return
	}
	if err := h.Blocks.UnblockDate(c.Request.Context(), input.Date); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to unblock date", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": input.Date + " unblocked"})
}

// BlockSlot handles POST /api/availability/block-slot.
func (h *AvailabilityHandler) BlockSlot(c *gin.Context) {
	var input slotInput
	if err := c.ShouldBindJSON(&input); err != nil || !schedule.ValidDate(input.Date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "date and hour required")
		return
	}
	if err := h.Blocks.BlockSlot(c.Request.Context(), input.Date, *input.Hour); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to block slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "slot blocked"})
}

// UnblockSlot handles POST /api/availability/unblock-slot.
func (h *AvailabilityHandler) UnblockSlot(c *gin.Context) {
	var input slotInput
	if err := c.ShouldBindJSON(&input); err != nil || !schedule.ValidDate(input.Date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid request", "date and hour required")
		return
	}
	if err := h.Blocks.UnblockSlot(c.Request.Context(), input.Date, *input.Hour); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to unblock slot", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "slot unblocked"})
}
