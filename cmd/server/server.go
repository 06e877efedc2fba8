package main

import (
	"errors"
	"time"

	"github.com/JaimeStill/product-catalog/internal/api"
	"github.com/JaimeStill/product-catalog/internal/config"
	"github.com/JaimeStill/product-catalog/internal/infrastructure"
	"github.com/JaimeStill/product-catalog/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	api   *api.API
	http  server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	apiSys, err := api.New(cfg, infra)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	apiSys.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"env", cfg.Env(),
	)

	return &Server{
		infra: infra,
		api:   apiSys,
		http:  server.New(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.api.Start(s.infra.Lifecycle, s.http.Stopped()); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown stops the listener, then drains the asset queue, all within
// timeout, and finally closes the database.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")

	return errors.Join(
		s.infra.Lifecycle.Shutdown(timeout),
		s.infra.Close(),
	)
}
