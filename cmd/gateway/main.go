// The edge gateway: verifies bearer tokens, rewrites identity headers, and
// proxies API traffic to the configured upstreams.
package main

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/companycore/management-system/internal/auth"
	"github.com/companycore/management-system/internal/gateway"
	"github.com/companycore/management-system/internal/infrastructure/config"
	redisdb "github.com/companycore/management-system/internal/infrastructure/db/redis"
	"github.com/companycore/management-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{Service: "gateway"})
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("configuration error")
	}

	log := logger.Init(logger.Options{
		Service: "gateway",
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})

	// The gateway consults the same denylist the server writes on logout,
	// so revoked tokens die at the edge.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unavailable")
	}
	defer func() { _ = rdb.Close() }()

	verifier := auth.NewVerifier(cfg.JWTSecret, 0, redisdb.NewDenylist(rdb))

	up, err := parseUpstreams(cfg.Upstream)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid upstream configuration")
	}

	e := gateway.New(verifier, up, log)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway stopped")
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

func parseUpstreams(cfg config.UpstreamConfig) (gateway.Upstreams, error) {
	parse := func(raw string, dst **url.URL) error {
		u, err := url.Parse(raw)
		if err != nil {
			return err
		}
		*dst = u
		return nil
	}

	var up gateway.Upstreams
	for _, p := range []struct {
		raw string
		dst **url.URL
	}{
		{cfg.Auth, &up.Auth},
		{cfg.Users, &up.Users},
		{cfg.Projects, &up.Projects},
		{cfg.Catalog, &up.Catalog},
		{cfg.Requests, &up.Requests},
		{cfg.Messages, &up.Messages},
		{cfg.Realtime, &up.Realtime},
	} {
		if err := parse(p.raw, p.dst); err != nil {
			return gateway.Upstreams{}, err
		}
	}
	return up, nil
}
