package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pinehollow/cabin-bookings/internal/http/handlers"
	apimw "github.com/pinehollow/cabin-bookings/internal/http/middleware"
	"github.com/pinehollow/cabin-bookings/internal/platform/cache"
	"github.com/pinehollow/cabin-bookings/internal/platform/identity"
	"github.com/pinehollow/cabin-bookings/internal/platform/mailer"
	"github.com/pinehollow/cabin-bookings/internal/repo/postgres"
	"github.com/pinehollow/cabin-bookings/internal/service"
	"github.com/pinehollow/cabin-bookings/pkg/config"
	"github.com/pinehollow/cabin-bookings/pkg/database"
	"github.com/pinehollow/cabin-bookings/pkg/events"
	"github.com/pinehollow/cabin-bookings/pkg/logger"
	mw "github.com/pinehollow/cabin-bookings/pkg/middleware"
)

func main() {
	cfg := config.Load()

	// Connect to database
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to redis cache
	cacheClient, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
	if err != nil {
		logger.Error("Failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer cacheClient.Close()

	// Connect to event bus
	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Mailer
	var mail mailer.Service
	if cfg.Email.DevMode {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailer(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Identity provider
	provider := identity.NewHTTPProvider(cfg.Identity.UserinfoURL, cfg.Identity.Timeout)

	// Initialize repositories
	cabinRepo := postgres.NewCabinRepository(pool)
	guestRepo := postgres.NewGuestRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	// Initialize services
	availability := service.NewAvailabilityService(bookingRepo)
	cabinService := service.NewCabinService(cabinRepo, settingsRepo, availability, cacheClient)
	guestService := service.NewGuestService(guestRepo, eventBus)
	bookingService := service.NewBookingService(bookingRepo, cabinRepo, settingsRepo, cacheClient, eventBus, mail)

	// Initialize handlers
	h := handlers.New(cabinService, bookingService, guestService, provider, cacheClient, cfg)

	loginLimiter := apimw.NewRateLimiter(cacheClient, apimw.RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		KeyFunc:  apimw.LoginRateLimitKeyFunc,
	})

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.With(loginLimiter.Middleware()).Post("/auth/login", h.Login)
		r.Get("/cabins", h.ListCabins)
		r.Get("/cabins/{cabinID}", h.GetCabin)
		r.Get("/settings", h.GetSettings)

		// Guest routes (session required)
		r.Route("/guest", func(r chi.Router) {
			r.Use(apimw.RequireSession(cfg.Auth.JWTSecret))
			r.Get("/profile", h.GetProfile)
			r.Patch("/profile", h.UpdateProfile)
			r.Route("/reservations", func(r chi.Router) {
				r.Get("/", h.ListReservations)
				r.Post("/", h.CreateReservation)
				r.Get("/{id}", h.GetReservation)
				r.Patch("/{id}", h.UpdateReservation)
				r.Delete("/{id}", h.DeleteReservation)
			})
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("API server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting API server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API server error", "error", err)
		os.Exit(1)
	}
}
