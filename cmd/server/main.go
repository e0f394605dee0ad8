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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/akarpov/product_api/internal/config"
	"github.com/akarpov/product_api/internal/es"
	"github.com/akarpov/product_api/internal/hash"
	"github.com/akarpov/product_api/internal/httpserver"
	"github.com/akarpov/product_api/internal/logging"
	authmw "github.com/akarpov/product_api/internal/middleware/auth"
	loggingmw "github.com/akarpov/product_api/internal/middleware/logging"
	"github.com/akarpov/product_api/internal/mykafka"
	"github.com/akarpov/product_api/internal/repo"
	"github.com/akarpov/product_api/internal/service"
	"github.com/akarpov/product_api/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store init error: %v", err)
	}

	hasher := hash.New(cfg.BcryptCost)
	issuer := &tokens.Issuer{Secret: cfg.JWTSecret, TTL: cfg.TokenTTL}
	producer := mykafka.NewProducer(cfg.KafkaBrokers)

	esClient, err := es.NewClient(cfg)
	if err != nil {
		log.Fatalf("elasticsearch init error: %v", err)
	}

	if cfg.Seed {
		if err := repo.Seed(context.Background(), store, hasher); err != nil {
			log.Fatalf("seed error: %v", err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc: &service.AuthService{Users: store, Hasher: hasher, Issuer: issuer, Producer: producer},
		},
		CatalogHandler: &httpserver.CatalogHTTP{
			Svc: &service.CatalogService{Products: store, Producer: producer, ES: esClient},
		},
		AuthMW: authmw.New(issuer),
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort, "store", cfg.StoreDriver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}

func openStore(cfg *config.Config) (repo.Store, error) {
	switch cfg.StoreDriver {
	case "memory", "":
		return repo.NewMemoryStore(), nil
	case "sqlite", "postgres":
		config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
		return repo.OpenGorm(cfg.StoreDriver, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
