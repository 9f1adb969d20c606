// The company-management server: auth, users, projects, service catalog,
// client companies, service requests, messaging, and the real-time hub.
//
// @title        Company Management API
// @version      1.0
// @description  Company management and client messaging service.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/companycore/management-system/docs"
	"github.com/companycore/management-system/internal/api"
	"github.com/companycore/management-system/internal/api/handler"
	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/core/service"
	"github.com/companycore/management-system/internal/infrastructure/config"
	mongodb "github.com/companycore/management-system/internal/infrastructure/db/mongo"
	redisdb "github.com/companycore/management-system/internal/infrastructure/db/redis"
	"github.com/companycore/management-system/internal/realtime"
	"github.com/companycore/management-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "server"})
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Service: "server",
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})

	// Dependencies are hard requirements: refuse to serve without them.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() { _ = rdb.Close() }()

	// Repositories.
	userRepo := mongodb.NewUserRepository(db)
	projectRepo := mongodb.NewProjectRepository(db)
	serviceRepo := mongodb.NewServiceRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":            userRepo,
		"projects":         projectRepo,
		"service_requests": requestRepo,
		"messages":         messageRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// Token verification shares the Redis denylist with the gateway.
	verifier := auth.NewVerifier(cfg.JWTSecret, 0, redisdb.NewDenylist(rdb))

	// Real-time delivery.
	hub := realtime.NewHub(log)
	dispatcher := realtime.NewDispatcher(0, hub, log)
	dispatcher.Start(ctx)

	// Services. Request approval opens projects, so the request service
	// depends on the project service, not its repository.
	projectService := service.NewProjectService(projectRepo, log)
	services := api.Services{
		Auth:     service.NewAuthService(userRepo, verifier),
		Users:    service.NewUserService(userRepo, log),
		Projects: projectService,
		Catalog:  service.NewCatalogService(serviceRepo, companyRepo, log),
		Requests: service.NewRequestService(requestRepo, serviceRepo, projectService, log),
		Messages: service.NewMessageService(messageRepo, dispatcher, log),
	}

	e := api.NewRouter(api.Deps{
		Services:  services,
		Verifier:  verifier,
		Hub:       hub,
		Readiness: handler.NewReadinessHandler(db, rdb),
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
