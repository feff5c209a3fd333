// Package handlers provides the HTTP server for the GraphQL API together
// with its health, metrics and playground routes.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server wraps the HTTP server serving the router.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	endpoint   string

	mu       sync.Mutex
	listener net.Listener
	done     chan struct{}
}

// NewServer constructs a Server listening on the given port.
func NewServer(port int, handler http.Handler, logger *zap.Logger) *Server {
	endpoint := fmt.Sprintf(":%d", port)
	return &Server{
		httpServer: &http.Server{
			Addr:              endpoint,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger:   logger.Named("http_server"),
		endpoint: endpoint,
		done:     make(chan struct{}),
	}
}

// Start binds the listener and serves in the background. Bind errors are
// returned directly; serve errors after binding are logged.
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.endpoint)
	if err != nil {
		return fmt.Errorf("HTTP listen error: %w", err)
	}

	s.mu.Lock()
	s.listener = lis
	s.mu.Unlock()

	s.logger.Info("Starting HTTP server", zap.String("endpoint", lis.Addr().String()))
	go func() {
		defer close(s.done)
		if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP serve error", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address, or the configured endpoint before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.endpoint
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts the HTTP server down.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.mu.Lock()
	started := s.listener != nil
	s.mu.Unlock()
	if started {
		<-s.done
	}
	s.logger.Info("Server stopped")
}
