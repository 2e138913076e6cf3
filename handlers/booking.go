package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iono-such-things/hvac-ai-secretary/models"
	"github.com/iono-such-things/hvac-ai-secretary/services/booking"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

// BookingHandler serves the visitor submission endpoint.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// SubmitBooking handles POST /api/bookings. The reservation is durable
// before the response is written; a second client can never observe the
// slot as free after this returns 201.
func (h *BookingHandler) SubmitBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Type == "" {
		req.Type = models.RequestBooking
	}

	outcome := h.Service.Submit(c.Request.Context(), req)

	switch outcome.Status {
	case models.OutcomeConfirmed:
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "Request received! We will be in touch shortly.",
			"outcome": outcome,
		})
	case models.OutcomeConflict:
		c.JSON(http.StatusConflict, gin.H{
			"success":  false,
			"conflict": true,
			"message":  "That time slot is already booked. Please choose another.",
			"outcome":  outcome,
		})
	case models.OutcomeRejected:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": outcome.Reason,
			"outcome": outcome,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to process the request. Please call us instead.",
			"outcome": outcome,
		})
	}
}
