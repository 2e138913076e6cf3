package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/iono-such-things/hvac-ai-secretary/config"
	"github.com/iono-such-things/hvac-ai-secretary/database"
	"github.com/iono-such-things/hvac-ai-secretary/database/repository/blocks"
	recordsRepo "github.com/iono-such-things/hvac-ai-secretary/database/repository/records"
	"github.com/iono-such-things/hvac-ai-secretary/handlers"
	"github.com/iono-such-things/hvac-ai-secretary/middleware"
	"github.com/iono-such-things/hvac-ai-secretary/routes"
	"github.com/iono-such-things/hvac-ai-secretary/services/booking"
	"github.com/iono-such-things/hvac-ai-secretary/services/calendar"
	ai "github.com/iono-such-things/hvac-ai-secretary/services/intelligence"
	"github.com/iono-such-things/hvac-ai-secretary/services/notification"
	"github.com/iono-such-things/hvac-ai-secretary/services/schedule"
	"github.com/iono-such-things/hvac-ai-secretary/services/tasks"
	"github.com/iono-such-things/hvac-ai-secretary/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timezone %q: %v", cfg.Timezone, err)
	}

	// Optional collaborators are resolved once here and passed down;
	// everything below branches on presence.
	mongoClient, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}

	var blockRepo blocks.Repository
	switch cfg.BlockStore {
	case "mongo":
		if mongoClient == nil {
			logger.Sugar().Fatalf("main: BLOCK_STORE=mongo requires DATABASE_URL")
		}
		blockRepo = blocks.NewMongoRepo(mongoClient, "hvac")
	default:
		blockRepo = blocks.NewFileRepo(cfg.BlockStoreFile)
	}

	var records recordsRepo.Repository
	if mongoClient != nil {
		records = recordsRepo.NewMongoRecordRepo(mongoClient, "hvac")
	}

	googleCal, err := calendar.NewGoogleCalendar(calendar.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURI:  cfg.GoogleRedirectURI,
		TokenFile:    cfg.GoogleTokenFile,
		Timezone:     cfg.Timezone,
		SpanHours:    cfg.ApptSpanHours,
		CompanyName:  cfg.CompanyName,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar integration: %v", err)
	}

	hours := schedule.DefaultBusinessHours()
	engine := &schedule.DefaultAvailabilityEngine{Hours: hours, Blocks: blockRepo}

	guard := &schedule.DefaultConflictGuard{
		Hours:       hours,
		Blocks:      blockRepo,
		UseCalendar: cfg.CalendarAuthority,
	}
	if googleCal != nil {
		guard.Calendar = googleCal
	}

	// Side-effect queue. The reservation itself never rides this queue;
	// only notifications do.
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
	dispatcher := tasks.NewDispatcher(redisOpts)
	dispatcher.CustomerEmail = true
	dispatcher.Webhook = cfg.PartnerWebhookURL != ""
	// When the calendar is the reservation authority the event already
	// exists by the time side effects run.
	dispatcher.CalendarEvent = googleCal != nil && !cfg.CalendarAuthority
	dispatcher.Record = records != nil

	worker := &tasks.Worker{
		Email:       notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom),
		NotifyEmail: cfg.NotifyEmail,
		Company:     cfg.CompanyName,
		Phone:       cfg.CompanyPhone,
		Timezone:    loc,
		Records:     records,
	}
	if googleCal != nil {
		worker.Calendar = googleCal
	}
	if cfg.PartnerWebhookURL != "" {
		worker.Webhook = notification.NewWebhookClient(cfg.PartnerWebhookURL)
	}
	worker.Run(redisOpts)

	bookingService := &booking.DefaultBookingService{
		Hours:   hours,
		Guard:   guard,
		Effects: dispatcher,
	}

	var chatService ai.ChatService
	if cfg.GeminiAPIKey != "" {
		ctxStore := ai.NewRedisContextStore(utils.GetChatCacheClient(), 30*time.Minute)
		chatService, err = ai.NewDefaultChatService(cfg.GeminiAPIKey, ctxStore, ai.CompanyProfile{
			Name:        cfg.CompanyName,
			Phone:       cfg.CompanyPhone,
			ServiceArea: cfg.ServiceArea,
		})
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize chat assistant: %v", err)
		}
	}

	availabilityHandler := handlers.NewAvailabilityHandler(engine, blockRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	chatHandler := handlers.NewChatHandler(chatService)
	calendarHandler := handlers.NewCalendarHandler(googleCal)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		GetAvailability: availabilityHandler.GetAvailability,
		GetBlocked:      availabilityHandler.GetBlocked,
		BlockDate:       availabilityHandler.BlockDate,
		UnblockDate:     availabilityHandler.UnblockDate,
		BlockSlot:       availabilityHandler.BlockSlot,
		UnblockSlot:     availabilityHandler.UnblockSlot,

		SubmitBooking: bookingHandler.SubmitBooking,

		StartChat:   chatHandler.StartChat,
		ChatMessage: chatHandler.ChatMessage,

		GoogleAuth:     calendarHandler.GoogleAuth,
		GoogleCallback: calendarHandler.GoogleCallback,
		CalendarStatus: calendarHandler.Status,
	}

	routes.RegisterRoutes(router, handlerBundle, cfg.PublicDir)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("main: server forced to shutdown", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
