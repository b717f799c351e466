// Package server implements the browser dashboard: an HTML page whose
// values are driven by a datastar Server-Sent Events stream, one coordinator
// per page view.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/ecodash/internal/config"
	"github.com/agbru/ecodash/internal/logging"
	"github.com/agbru/ecodash/internal/metrics"
	"github.com/agbru/ecodash/internal/portfolio"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the dashboard page, its SSE stream and operational
// endpoints.
type Server struct {
	board    portfolio.Board
	config   config.AppConfig
	logger   logging.Logger
	recorder *metrics.Recorder
	security SecurityConfig
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(sc SecurityConfig) Option {
	return func(s *Server) { s.security = sc }
}

// New builds a server for board. The board must already be valid; a
// malformed board is reported on each stream instead of animating.
func New(board portfolio.Board, cfg config.AppConfig, logger logging.Logger, recorder *metrics.Recorder, opts ...Option) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		board:    board,
		config:   cfg,
		logger:   logger,
		recorder: recorder,
		security: DefaultSecurityConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Serve listens on the configured address and blocks until ctx is cancelled
// or the listener fails. Open streams see their request context cancelled,
// which unmounts their coordinators.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	eg.Go(func() error {
		s.logger.Info("dashboard listening", logging.String("addr", s.config.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down dashboard server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
