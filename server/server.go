// Package server wires the HTTP layer, the store, and background runners.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/moodroute/moodroute/internal/profile"
	apiv1 "github.com/moodroute/moodroute/server/router/api/v1"
	"github.com/moodroute/moodroute/server/runner/sessionsweep"
	"github.com/moodroute/moodroute/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
}

func NewServer(ctx context.Context, serverProfile *profile.Profile, storeInstance *store.Store) (*Server, error) {
	server := &Server{
		Profile: serverProfile,
		Store:   storeInstance,
	}

	echoServer := echo.New()
	echoServer.Debug = serverProfile.IsDev()
	echoServer.HideBanner = true
	echoServer.HidePort = true

	echoServer.Use(echomiddleware.RecoverWithConfig(echomiddleware.RecoverConfig{
		LogErrorFunc: func(_ echo.Context, err error, stack []byte) error {
			slog.Error("panic recovered", "error", err, "stack", string(stack))
			return err
		},
	}))
	echoServer.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		ContentTypeNosniff: "nosniff",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	echoServer.Use(echomiddleware.BodyLimit("8M"))

	apiService, err := apiv1.NewAPIV1Service(serverProfile, storeInstance)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create API service")
	}
	apiService.RegisterRoutes(echoServer)

	server.echoServer = echoServer
	return server, nil
}

func (s *Server) Start(ctx context.Context) error {
	go sessionsweep.NewRunner(s.Store).Run(ctx)

	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server started",
		slog.String("address", address),
		slog.String("model", s.Profile.OpenAIModel),
		slog.Bool("liveApiConfigured", s.Profile.IsLiveModelConfigured()),
		slog.Bool("githubConfigured", s.Profile.IsGithubConfigured()),
	)
	if err := s.echoServer.Start(address); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "failed to start server")
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}
	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server shutdown")
}
