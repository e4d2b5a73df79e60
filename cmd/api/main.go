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

	_ "PhraseAudioService/docs"
	"PhraseAudioService/internal/config"
	"PhraseAudioService/internal/converter"
	"PhraseAudioService/internal/handler"
	"PhraseAudioService/internal/logger"
	"PhraseAudioService/internal/middleware"
	"PhraseAudioService/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title        Phrase Audio API
// @version      1.0
// @description  Stores and serves per-user phrase recordings.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main(): %v", err)
	}

	logr, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		log.Fatalf("main(): %v", err)
	}
	defer logr.Sync()

	db, err := storage.Open(context.Background(), cfg.Database)
	if err != nil {
		logr.Fatalf("main(): %v", err)
	}
	defer db.Close()
	if cfg.Database.Driver == config.DriverSQLite {
		if err := storage.EnsureSchema(context.Background(), db); err != nil {
			logr.Fatalf("main(): %v", err)
		}
	}

	ffmpeg, err := converter.New(cfg.Audio, logr)
	if err != nil {
		logr.Fatalf("main(): %v", err)
	}
	if err := ffmpeg.CheckInstalled(); err != nil {
		logr.Warnf("main(): %v, audio conversion will fail until it is installed", err)
	}

	audioHandler := handler.NewAudioHandler(
		storage.NewAccessor(db),
		storage.NewAudioRepository(cfg.Database.Driver),
		storage.NewPayloadStore(cfg.Audio.StorageMode, cfg.Audio.AudioDir),
		ffmpeg,
		cfg.Audio.MaxUploadBytes,
		logr,
	)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogMiddleware(logr))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost}
	corsConfig.AllowHeaders = []string{"*"}
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")
	api.Use(middleware.RateLimitMiddleware(cfg.Limit.PerSecond, cfg.Limit.Burst))
	handler.RegisterRoutes(api, audioHandler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Infof("main(): listening on %s (db=%s, storage=%s)", cfg.Addr(), cfg.Database.Driver, cfg.Audio.StorageMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatalf("main(): server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Infof("main(): received %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Errorf("main(): graceful shutdown failed: %v", err)
	}
}
