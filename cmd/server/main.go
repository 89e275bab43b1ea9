package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/workspace-reservation/internal/booking"
	"github.com/iliyamo/workspace-reservation/internal/config"
	"github.com/iliyamo/workspace-reservation/internal/database"
	"github.com/iliyamo/workspace-reservation/internal/handler"
	"github.com/iliyamo/workspace-reservation/internal/queue"
	"github.com/iliyamo/workspace-reservation/internal/repository"
	"github.com/iliyamo/workspace-reservation/internal/router"
)

func main() {
	// Load .env for local development; in deployed environments the
	// variables come from the platform and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	resourceRepo := repository.NewResourceRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	if cfg.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.SeedDemoFloor(ctx, resourceRepo); err != nil {
			log.Fatalf("seed: %v", err)
		}
		cancel()
	}

	engine := booking.NewEngine(resourceRepo, reservationRepo,
		time.Duration(cfg.CancelGraceMin)*time.Minute)

	bookingHandler := handler.NewBookingHandler(engine, resourceRepo, reservationRepo)
	mapHandler := handler.NewMapHandler(resourceRepo, reservationRepo)
	adminHandler := handler.NewAdminHandler(resourceRepo, reservationRepo)

	// Redis is optional: with no client, rate limiting and response
	// caching silently disable themselves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and map caching disabled")
	}

	// Background consumer that appends confirmed bookings to the log
	// file; it reconnects on broker failures and never stops the server.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, bookingHandler, mapHandler, adminHandler, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
