package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webbaby/internal/config"
	"webbaby/internal/database"
	"webbaby/internal/handlers"
	"webbaby/internal/repository"
	"webbaby/internal/security"
	"webbaby/internal/service"
	"webbaby/internal/validation"
)

func main() {
	// hash-password prints a bcrypt hash for AUTH_PASSWORD_HASH
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: server hash-password <password>")
			os.Exit(2)
		}
		hash, err := security.HashPassword(os.Args[2])
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	// gen-secret prints a random value for JWT_SECRET
	if len(os.Args) > 1 && os.Args[1] == "gen-secret" {
		secret, err := security.GenerateSecret(32)
		if err != nil {
			log.Fatalf("Failed to generate secret: %v", err)
		}
		fmt.Println(secret)
		return
	}

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	loc := cfg.Location()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Seed the generic recommendation table
	if err := db.SeedRecommendations(); err != nil {
		log.Printf("Warning: Failed to seed recommendations: %v", err)
	}

	// Initialize repositories
	feedRepo := repository.NewFeedRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	toothRepo := repository.NewToothRepository(db)
	configRepo := repository.NewConfigRepository(db)
	recommendationRepo := repository.NewRecommendationRepository(db)

	// Initialize services
	profileService := service.NewProfileService(configRepo, loc)
	if _, err := profileService.EnsureDefault(cfg.BirthTimestamp, cfg.BirthWeightGrams); err != nil {
		log.Fatalf("Failed to create default settings: %v", err)
	}

	recommendationService := service.NewRecommendationService(profileService, measurementRepo, recommendationRepo, loc, cfg.Debug)
	feedingService := service.NewFeedingService(feedRepo, recommendationService, loc, service.NightWindow{
		StartHour: cfg.NightStartHour,
		EndHour:   cfg.NightEndHour,
	})
	growthService := service.NewGrowthService(measurementRepo, profileService, loc)
	noteService := service.NewNoteService(noteRepo)
	teethingService := service.NewTeethingService(toothRepo)
	authService := service.NewAuthService(cfg.AuthPasswordHash, cfg.JWTSecret, cfg.TokenTTL)
	backupService := service.NewBackupService(db)

	if authService.Enabled() {
		log.Println("Write protection enabled")
	} else {
		log.Println("Write protection disabled: AUTH_PASSWORD_HASH or JWT_SECRET not set")
	}

	if cfg.DigestToEmail != "" {
		if err := validation.ValidateEmail(cfg.DigestToEmail); err != nil {
			log.Printf("Warning: DIGEST_TO_EMAIL ignored: %v", err)
			cfg.DigestToEmail = ""
		}
	}
	if cfg.SESFromEmail != "" {
		if err := validation.ValidateEmail(cfg.SESFromEmail); err != nil {
			log.Fatalf("Invalid SES_FROM_EMAIL: %v", err)
		}
	}

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	digestService := service.NewDigestService(feedingService, recommendationService, profileService,
		emailService, cfg.DigestToEmail, cfg.DigestHour, loc)

	// Token requests are limited per client address
	loginLimiter := security.NewRateLimiter(10, time.Minute)
	defer loginLimiter.Stop()

	// Setup routes
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, handlers.Handlers{
		Middleware: handlers.NewMiddleware(authService, loginLimiter),
		Feeding:    handlers.NewFeedingHandler(feedingService, recommendationService, loc),
		Growth:     handlers.NewGrowthHandler(growthService),
		Notes:      handlers.NewNoteHandler(noteService),
		Teething:   handlers.NewTeethingHandler(teethingService),
		Config:     handlers.NewConfigHandler(profileService),
		Auth:       handlers.NewAuthHandler(authService),
		Backup:     handlers.NewBackupHandler(backupService),
		Static:     handlers.NewSPAHandler(cfg.StaticFilesPath),
	})

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the daily digest loop
	go digestService.Run(ctx)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}
