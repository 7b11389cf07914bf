package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/greattime/events-api/internal/config"
	"github.com/greattime/events-api/internal/database"
	"github.com/greattime/events-api/internal/handler"
	"github.com/greattime/events-api/internal/middleware"
	"github.com/greattime/events-api/internal/queue"
	"github.com/greattime/events-api/internal/repository"
	"github.com/greattime/events-api/internal/router"
	"github.com/greattime/events-api/internal/settings"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	admins := repository.NewAdminRepo(db)
	halls := repository.NewHallRepo(db)
	bookings := repository.NewBookingRepo(db)
	store := settings.NewStore()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Background notification consumer; reconnects on broker failures.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, admins),
		Halls:     handler.NewHallHandler(halls),
		Bookings:  handler.NewBookingHandler(bookings, halls, store),
		Dashboard: handler.NewDashboardHandler(halls, bookings),
		Payments:  handler.NewPaymentsHandler(bookings),
		Settings:  handler.NewSettingsHandler(store),
	}, cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
