package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/TwinDots/tdcardsave/internal/audit"
	"github.com/TwinDots/tdcardsave/internal/config"
	"github.com/TwinDots/tdcardsave/internal/database"
	"github.com/TwinDots/tdcardsave/internal/gateway"
	"github.com/TwinDots/tdcardsave/internal/handler"
	"github.com/TwinDots/tdcardsave/internal/middleware"
	"github.com/TwinDots/tdcardsave/internal/repository"
	"github.com/TwinDots/tdcardsave/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Caller().Logger()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if cfg.AutoMigrate {
		if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
		if err := database.SeedData(context.Background(), pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed reference data")
		}
	}

	endpoints, err := cfg.Endpoints()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid gateway endpoints")
	}

	orderRepo := repository.NewOrderRepository(pool)
	refRepo := repository.NewReferenceRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)

	builder := service.NewBuilder(refRepo, refRepo)
	submitter := gateway.NewSubmitter(gateway.NewClient(cfg.GatewayTimeout))
	attempts := audit.NewLogger(auditRepo)

	paymentSvc := service.NewPaymentService(cfg.Credentials(), cfg.Policy(),
		builder, submitter, endpoints, orderRepo, attempts)

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(pool)
	router.GET("/health", healthHandler.Health)

	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	api := router.Group("/api/v1")
	{
		api.POST("/payments", paymentHandler.Process)
		api.POST("/admin/payments", paymentHandler.ProcessBackOffice)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
