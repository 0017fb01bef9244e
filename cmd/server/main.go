package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/Kishori-12/fitstreak-ai/internal/cache"
	"github.com/Kishori-12/fitstreak-ai/internal/config"
	"github.com/Kishori-12/fitstreak-ai/internal/database"
	"github.com/Kishori-12/fitstreak-ai/internal/handlers"
	"github.com/Kishori-12/fitstreak-ai/internal/jobs"
	"github.com/Kishori-12/fitstreak-ai/internal/repository"
	"github.com/Kishori-12/fitstreak-ai/internal/security"
	"github.com/Kishori-12/fitstreak-ai/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
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

	// Local fallback cache for progress documents
	fileCache, err := cache.NewFileCache(cfg.CacheDir)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, progressRepo, cfg.SessionDuration, cfg.TokenSecret)
	progressService := service.NewProgressService(progressRepo, fileCache, cfg.SuccessWindowDays, cfg.SuccessThreshold)
	leaderboardService := service.NewLeaderboardService(progressRepo, 5*time.Minute)
	settingsService := service.NewSettingsService(settingsRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{"openid", "email", "profile"},
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService, oauthConfig, cfg.OAuthRedirectBaseURL)
	progressHandler := handlers.NewProgressHandler(progressService, settingsService, emailService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Setup routes
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("GET /auth/google/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.OAuthCallback)

	// Habit tracking
	mux.HandleFunc("GET /api/progress", middleware.RequireAuth(progressHandler.GetProgress))
	mux.HandleFunc("POST /api/habits/{habitID}/complete", middleware.RequireAuth(progressHandler.CompleteHabit))
	mux.HandleFunc("PUT /api/habits", middleware.RequireAuth(progressHandler.ReplaceHabits))
	mux.HandleFunc("GET /api/analytics", middleware.RequireAuth(progressHandler.GetAnalytics))
	mux.HandleFunc("GET /api/export", middleware.RequireAuth(progressHandler.Export))
	mux.HandleFunc("POST /api/import", middleware.RequireAuth(progressHandler.Import))

	// Leaderboard and settings
	mux.HandleFunc("GET /api/leaderboard", middleware.RequireAuth(leaderboardHandler.GetLeaderboard))
	mux.HandleFunc("GET /api/settings", middleware.RequireAuth(settingsHandler.GetSettings))
	mux.HandleFunc("PUT /api/settings", middleware.RequireAuth(settingsHandler.UpdateSettings))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := jobs.NewScheduler(authService, progressService, leaderboardService, emailService, settingsRepo)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Warm the leaderboard so the first request is served from cache
	if err := leaderboardService.Refresh(); err != nil {
		log.Printf("Warning: initial leaderboard refresh failed: %v", err)
	}

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
