package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/vaultpass/passgen-go/internal/config"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/handler"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/repository"
	"github.com/vaultpass/passgen-go/internal/service"
)

const dbOpenTimeout = 10 * time.Second

// buildRoutes assembles the API handlers. Generation is always served;
// accounts and presets are added only when the database opens, in which case
// the returned closer is non-nil.
func buildRoutes(ctx context.Context, cfg config.Config, hashParams crypto.HashParams, limiter *middleware.IPRateLimiter) (handler.Routes, io.Closer, error) {
	source, err := crypto.ParseSource(cfg.RandomSource)
	if err != nil {
		return handler.Routes{}, nil, err
	}

	genService := service.NewGeneratorService(source)
	routes := handler.Routes{
		Generator: handler.NewGeneratorHandler(genService),
		Limiter:   limiter,
	}

	openCtx, cancel := context.WithTimeout(ctx, dbOpenTimeout)
	defer cancel()

	db, err := repository.Open(openCtx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database unavailable, account and preset routes disabled", "driver", cfg.DatabaseDriver, "error", err)
		return routes, nil, nil
	}

	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(repository.NewAccountRepository(db), crypto.NewHasher(hashParams), tokens)
	presetService := service.NewPresetService(repository.NewPresetRepository(db), genService)

	routes.Auth = handler.NewAuthHandler(authService)
	routes.Presets = handler.NewPresetHandler(presetService)
	routes.Tokens = tokens
	return routes, db, nil
}
