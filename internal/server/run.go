package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iwvelando/property-forecast/internal/market"
	"go.uber.org/zap"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server runs the API together with the optional market data refresher.
type Server struct {
	httpServer *http.Server
	store      *market.Store
	refresher  *market.Refresher
	logger     *zap.Logger
}

// New loads the configured market data and builds a server for cfg.
func New(cfg *Config, logger *zap.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	load := market.FileLoader(cfg.Markets.File)
	table, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load market data: %w", err)
	}
	store := market.NewStore(table)

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      NewHandler(logger, store, cfg.UploadSizeBytes(), version),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		store:  store,
		logger: logger,
	}

	if cfg.Markets.Refresh != "" {
		s.refresher, err = market.NewRefresher(store, cfg.Markets.Refresh, load, logger)
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Markets returns the store the server reads market data from.
func (s *Server) Markets() *market.Store {
	return s.store
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.refresher != nil {
		s.refresher.Start()
		defer func() {
			<-s.refresher.Stop().Done()
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("server listening",
		zap.String("op", "server.Run"),
		zap.String("address", s.httpServer.Addr),
		zap.Bool("refresh", s.refresher != nil),
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down", zap.String("op", "server.Run"))
	return s.httpServer.Shutdown(shutdownCtx)
}
