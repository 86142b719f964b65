package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"shipment-tracker/cache"
	"shipment-tracker/config"
	"shipment-tracker/core"
	"shipment-tracker/database"
	"shipment-tracker/geocode"
	"shipment-tracker/handlers"
	"shipment-tracker/repositories"
	"shipment-tracker/routes"
	geocodeworker "shipment-tracker/workers/geocode"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}

	logger, err := core.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	db, err := database.Connect(cfg.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	trackingCache := cache.NewTrackingCache(cfg.Redis, logger)
	geocoder := geocode.NewClient(cfg.Geocoder)

	users := repositories.NewUserRepository(db)
	shipments := repositories.NewShipmentRepository(db)

	app := fiber.New()
	routes.SetupRoutes(app, cfg.SessionSecret,
		handlers.NewAuthHandler(users, cfg, logger),
		handlers.NewTrackingHandler(shipments, trackingCache, cfg, logger),
		handlers.NewShipmentHandler(shipments, trackingCache, logger),
		handlers.NewAdminHandler(users, shipments, trackingCache, logger),
	)

	orchestrator := core.NewOrchestrator(logger, []core.Worker{
		geocodeworker.NewWorker(logger, db, geocoder),
	})

	c, err := orchestrator.Start(context.Background())
	if err != nil {
		logger.Fatal("Failed to start workers", zap.Error(err))
	}
	defer c.Stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	// Wait for termination signal to exit gracefully
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
