package main

import (
	"reservation-service/internal/catalog"
	"reservation-service/internal/handler"
	"reservation-service/internal/middleware"
	"reservation-service/internal/reservation"
	"reservation-service/pkg/config"
	"reservation-service/pkg/database"
	"reservation-service/pkg/logger"
	"reservation-service/pkg/mailer"
	"reservation-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting reservation service...", zap.String("environment", cfg.Server.Env))

	// Initialize database (includes schema migration)
	if err := database.InitDB(cfg, log); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established and migrations completed")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// The mail transport is constructed once and shared across requests.
	// Without an SMTP account the service still takes reservations and
	// simply skips the confirmation emails.
	var notifier reservation.Notifier
	if cfg.SMTP.User != "" {
		notifier = mailer.New(cfg.SMTP)
		log.Info("SMTP notifier configured", zap.String("host", cfg.SMTP.Host))
	} else {
		notifier = mailer.Noop{}
		log.Warn("EMAIL_USER not set, confirmation emails disabled")
	}

	repo := reservation.NewGormRepository(database.GetDB())
	service := reservation.NewService(repo, notifier, log)
	reservations := handler.NewReservationHandler(service, cfg.IsDevelopment())

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Probes and metrics
	e.GET("/", handler.Root)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", prometheus.HandlerFunc())

	// One intake route per storage-unit offering, all backed by the same
	// pipeline parameterized by unit type.
	for _, unit := range catalog.All() {
		e.POST(unit.Route, reservations.CreateReservation(unit.Key))
		log.Info("Registered intake route",
			zap.String("route", unit.Route), zap.String("unit_type", unit.Key))
	}

	e.RouteNotFound("/*", handler.NotFound)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
