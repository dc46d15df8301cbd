package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"time"

	"smartwaste/common"
	"smartwaste/dashboard/config"
	"smartwaste/dashboard/handlers"
	"smartwaste/dashboard/metrics"
	"smartwaste/dashboard/sample"
	"smartwaste/dashboard/services"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var configPath = flag.String("config", "config.yaml", "Path to the optional YAML config file.")

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Info(".env file not found, using system environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	common.MustSetupLogging(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.GinMode)
	metrics.Register()

	snapshot := sample.Snapshot()
	dashboardService := services.NewDashboardService(snapshot, cfg.MapSettings())
	log.WithFields(log.Fields{
		"city": snapshot.City,
		"bins": len(snapshot.Bins),
	}).Info("Loaded sample snapshot")

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, cfg.Map.TileURL)
	hub := handlers.NewSessionHub(dashboardHandler)
	hub.OnSessionsChanged(func(n int) {
		metrics.WebSocketSessions.Set(float64(n))
	})
	go hub.Start()
	defer hub.Stop()

	router, err := handlers.NewRouter(handlers.RouterOptions{
		AllowedOrigins:     cfg.Server.AllowedOrigins,
		RateLimitPerMinute: cfg.RateLimit.PerMinute,
	}, dashboardHandler, handlers.NewWebSocketHandler(hub))
	if err != nil {
		log.WithError(err).Fatal("Failed to build router")
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	ctx, cancel := common.GracefulContext(context.Background())
	defer cancel()

	go func() {
		log.Infof("Starting smart waste dashboard on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server stopped")
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
	log.Info("Smart waste dashboard stopped")
}
