package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"movi/internal/api"
	"movi/internal/api/handlers"
	"movi/internal/assistant"
	"movi/internal/clock"
	"movi/internal/config"
	"movi/internal/dispatch"
	"movi/internal/logger"
	"movi/internal/repository/memory"
	"movi/internal/services"
	"movi/internal/ws"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New("movi", cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	driverRepo := memory.NewDriverRepository(memory.DefaultRoster())
	realClock := clock.NewReal()
	conversationRepo := memory.NewConversationRepository(realClock.Now)

	// Initialize the text-generation client; without an API key every call
	// takes the local fallback.
	assistantClient, err := assistant.NewFromConfig(ctx, cfg.Assistant, log)
	if err != nil {
		log.Error("could not create text generation client", "error", err)
		os.Exit(1)
	}

	// Initialize services
	hub := ws.NewHub(log, cfg.Server.AllowedOrigins)
	dispatcher := dispatch.NewMockDispatcher(driverRepo, cfg.Simulation, nil)
	supportService := services.NewSupportService(conversationRepo, assistantClient, realClock, log)
	sessionManager := services.NewSessionManager(services.RideDeps{
		Fares:      assistantClient,
		Picker:     dispatcher,
		Estimator:  dispatcher,
		Clock:      realClock,
		Notifier:   services.NewNotificationService(log, hub),
		Logger:     log,
		Simulation: cfg.Simulation,
	}, conversationRepo, hub, supportService)
	rosterService := services.NewRosterService(driverRepo, cfg.Geo.GeohashPrecision)

	// Setup router
	router := api.NewRouter(
		sessionManager,
		handlers.NewSessionHandler(sessionManager),
		handlers.NewRideHandler(),
		handlers.NewDriverHandler(),
		handlers.NewMapHandler(),
		handlers.NewSupportHandler(supportService),
		handlers.NewCatalogHandler(rosterService),
		handlers.NewStreamHandler(hub),
	)

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), logger.RequestLogger(log), cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	router.Setup(engine)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting Movi server", "addr", cfg.Server.Port, "assistant_configured", assistantClient.Configured())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sessionManager.CloseAll(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	return c
}
