package main

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/genricoloni/mprisbar/internal/bus"
	"github.com/genricoloni/mprisbar/internal/config"
	"github.com/genricoloni/mprisbar/internal/directory"
	"github.com/genricoloni/mprisbar/internal/domain"
	"github.com/genricoloni/mprisbar/internal/engine"
	"github.com/genricoloni/mprisbar/internal/host"
	"github.com/genricoloni/mprisbar/internal/render"
	"github.com/genricoloni/mprisbar/internal/session"
)

// AppOptions wires the full cell pipeline. Kept apart from main so the
// dependency graph can be validated in tests.
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),

	fx.Provide(
		newLogger,
		config.Load,
		newBusClient,
		newDirectory,
		newSession,
		newRenderer,
		host.NewStdout,
		newHost,
		engine.New,
	),

	fx.Invoke(registerHooks),
)

// newLogger creates the zap logger. Logs go to stderr; stdout carries the
// rendered cell.
func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newBusClient() (bus.Client, error) {
	return bus.Connect()
}

func newDirectory(logger *zap.Logger, client bus.Client) domain.Directory {
	return directory.New(logger, client)
}

func newSession(logger *zap.Logger, client bus.Client, dir domain.Directory, cfg *config.Config) domain.Session {
	return session.New(logger, client, dir, cfg)
}

func newRenderer(logger *zap.Logger, cfg *config.Config) domain.Renderer {
	return render.New(logger, cfg)
}

func newHost(h *host.Stdout) domain.Host {
	return h
}

// registerHooks ties the engine and the host input loop to the app lifecycle
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, eng *engine.Engine, h *host.Stdout, client bus.Client) {
	h.SetClickHandler(eng.HandleClick)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := eng.Start(ctx); err != nil {
				return err
			}
			go func() {
				if err := h.Run(context.Background()); err != nil {
					logger.Warn("click input loop ended", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return multierr.Append(eng.Stop(ctx), client.Close())
		},
	})
}
