package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/iono-such-things/hvac-ai-secretary/handlers"
)

// RegisterAvailabilityRoutes registers the slot listing and the
// administrative block commands.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("", hb.GetAvailability)
		api.GET("/blocked", hb.GetBlocked)
		api.POST("/block-date", hb.BlockDate)
		api.POST("/unblock-date", hb.UnblockDate)
		api.POST("/block-slot", hb.BlockSlot)
		api.POST("/unblock-slot", hb.UnblockSlot)
	}
}

// RegisterBookingRoutes registers the visitor submission endpoint.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/bookings", hb.SubmitBooking)
}

// RegisterChatRoutes registers the chat widget endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.POST("/start", hb.StartChat)
		api.POST("/message", hb.ChatMessage)
	}
}

// RegisterCalendarRoutes registers the Google Calendar consent flow and
// status endpoint.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/auth/google", hb.GoogleAuth)
	r.GET("/auth/google/callback", hb.GoogleCallback)
	r.GET("/api/calendar/status", hb.CalendarStatus)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})
}

// RegisterStaticSite serves the marketing site.
func RegisterStaticSite(r *gin.Engine, publicDir string) {
	if publicDir == "" {
		return
	}
	r.Static("/site", publicDir)
	r.StaticFile("/", publicDir+"/index.html")
}

// RegisterRoutes wires all endpoint groups plus CORS.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, publicDir string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterStaticSite(r, publicDir)
}
