package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every endpoint handler for route
// registration.
type HandlerBundle struct {
	// Availability and admin block commands.
	GetAvailability gin.HandlerFunc
	GetBlocked      gin.HandlerFunc
	BlockDate       gin.HandlerFunc
	UnblockDate     gin.HandlerFunc
	BlockSlot       gin.HandlerFunc
	UnblockSlot     gin.HandlerFunc

	// Bookings.
	SubmitBooking gin.HandlerFunc

	// Chat widget.
	StartChat   gin.HandlerFunc
	ChatMessage gin.HandlerFunc

	// Calendar integration.
	GoogleAuth     gin.HandlerFunc
	GoogleCallback gin.HandlerFunc
	CalendarStatus gin.HandlerFunc
}
