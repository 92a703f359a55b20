// Command server runs the event relay ingestion server: it wires
// configuration, the proof-of-work and certificate services, object
// storage, and the HTTP router, then serves until an interrupt or
// terminate signal triggers a graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adorsys-gis/eventrelay/internal/api"
	"github.com/adorsys-gis/eventrelay/internal/certificate"
	"github.com/adorsys-gis/eventrelay/internal/config"
	"github.com/adorsys-gis/eventrelay/internal/logger"
	"github.com/adorsys-gis/eventrelay/internal/pow"
	"github.com/adorsys-gis/eventrelay/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.MustLoad()

	logger.Initialize(cfg.LogLevel, cfg.LogPretty)
	log := logger.GetLogger()
	log.Info().Str("env", cfg.Env).Msg("starting event relay ingestion server")

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	powSvc := pow.New(cfg.PowDifficulty, time.Duration(cfg.PowChallengeLifetimeMinutes)*time.Minute)
	certSvc := certificate.New([]byte(cfg.JWTSecret), time.Duration(cfg.CertificateValidityHours)*time.Hour)

	ctx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelInit()

	log.Info().Str("bucket", cfg.S3Bucket).Str("region", cfg.S3Region).Msg("connecting to object storage")
	store, err := storage.NewStore(ctx, storage.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		ForcePathStyle:  cfg.S3ForcePathStyle,
		UploadTimeout:   time.Duration(cfg.S3UploadTimeoutSeconds) * time.Second,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	cache := storage.NewExistenceCache(storage.CacheConfig{
		Enabled:  cfg.RedisEnabled,
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		TTL:      time.Duration(cfg.ExistenceCacheTTLSeconds) * time.Second,
	})
	defer func() {
		if closeErr := cache.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing existence cache")
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		CertService:         certSvc,
		PowHandlers:         api.NewPowHandlers(powSvc, certSvc),
		EventHandlers:       api.NewEventHandlers(store, cache),
		MaxRequestBodyBytes: cfg.MaxRequestBodyBytes,
		RequestTimeout:      time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if serveErr := srv.ListenAndServe(); serveErr != nil && serveErr != http.ErrServerClosed {
			log.Fatal().Err(serveErr).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error().Err(shutdownErr).Msg("graceful shutdown failed")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
