package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/rubsun/film-catalog/internal/config"
	"github.com/rubsun/film-catalog/internal/database"
	"github.com/rubsun/film-catalog/internal/handler"
	"github.com/rubsun/film-catalog/internal/middleware"
	"github.com/rubsun/film-catalog/internal/queue"
	"github.com/rubsun/film-catalog/internal/rating"
	"github.com/rubsun/film-catalog/internal/repository"
	"github.com/rubsun/film-catalog/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	// Nil when redis is unreachable; cache and rate limiting then disable themselves.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable: response cache and rate limiting disabled")
	}

	actorRepo := repository.NewActorRepo(db)
	filmRepo := repository.NewFilmRepo(db)
	linkRepo := repository.NewFilmActorRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	ratingClient := rating.NewClient(cfg.RatingAPIURL, cfg.RatingAPIKey)

	actorHandler := handler.NewActorHandler(actorRepo, filmRepo)
	filmHandler := handler.NewFilmHandler(filmRepo, actorRepo, linkRepo, ratingClient)
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, actorHandler, filmHandler)
	router.RegisterEditor(e, actorHandler, filmHandler, cfg.JWTSecret)

	go func() {
		if err := queue.StartCastConsumer(); err != nil {
			log.Printf("cast consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Print("shutdown signal received")

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(timeoutCtx); err != nil {
		log.Printf("shutdown did not complete cleanly: %v", err)
	}
	log.Print("server stopped")
}
