package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/chommie/chommie-server/internal/config"
	"github.com/chommie/chommie-server/internal/core"
	"github.com/chommie/chommie-server/internal/session"
	transporthttp "github.com/chommie/chommie-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	hub             *core.Hub
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with the provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	if len(cfg.Rooms) == 0 {
		return nil, errors.New("at least one room must be configured")
	}

	secret := cfg.SessionSecret
	if secret == "" {
		generated, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		secret = generated
		logger.Warn().Msg("session_secret not set, generated an ephemeral one; sessions will not survive restarts")
	}

	sessions := session.NewService(session.Config{
		Secret: []byte(secret),
		Issuer: "chommie",
		TTL:    cfg.SessionTTL,
	})

	rooms := core.NewRoomDirectory(cfg.Rooms)
	hub := core.NewHub(rooms, logger)
	server := transporthttp.NewServer(hub, sessions, cfg, logger)

	logger.Info().Strs("rooms", rooms.Names()).Msg("room directory loaded")

	return &App{
		server:          server,
		hub:             hub,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}, nil
}

// Run starts the hub and the HTTP server, and blocks until context
// cancellation or a fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
