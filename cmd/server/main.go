package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checklist_manager/internal/config"
	"checklist_manager/internal/database"
	"checklist_manager/internal/handlers"
	"checklist_manager/internal/migrations"
	"checklist_manager/internal/redis"
	"checklist_manager/internal/repository"
	"checklist_manager/internal/services"
	"checklist_manager/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	loc := cfg.Location()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := migrations.RunMigrations(ctx, db, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	subtaskRepo := repository.NewSubtaskRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	// Initialize services
	notifier := services.NewNoopNotifier()
	if cfg.NotifyDelays && cfg.WhatsAppAPIURL != "" {
		whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)
		notifier = services.NewWhatsAppNotifier(whatsappClient, userRepo)
	}
	userService := services.NewUserService(userRepo)
	holidayService := services.NewHolidayService(holidayRepo, redisClient, cfg.CacheTTLDuration())
	checklistService := services.NewChecklistService(subtaskRepo, holidayService, notifier, loc)

	scheduler := services.NewSchedulerService(loc)
	if cfg.ReconcileInterval > 0 {
		if _, err := scheduler.ScheduleReconcile(time.Duration(cfg.ReconcileInterval)*time.Minute, checklistService); err != nil {
			log.Fatalf("Failed to schedule reconcile sweep: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Setup routes
	router := gin.Default()
	handlers.Register(
		router,
		userService,
		handlers.NewChecklistHandler(checklistService, redisClient, cfg.FlashTTLDuration()),
		handlers.NewHolidayHandler(holidayService),
	)

	srv := &http.Server{Addr: ":" + cfg.ServerPort, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Server shutdown: %v", err)
		}
	}()

	// Start server
	log.Infof("Server starting on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Info("Shutdown complete")
}
