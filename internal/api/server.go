// Package api exposes the back-office over HTTP: public unsubscribe and
// webhook endpoints plus the authenticated owner/admin panel API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/localpages/backoffice/internal/pkg/logger"
)

// Server wraps the HTTP server with sane timeouts and graceful shutdown.
type Server struct {
	srv *http.Server
}

// NewServer creates a server listening on host:port with the given
// handler.
func NewServer(host string, port int, handler http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins serving. Blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	logger.Info("http server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("http server shutting down")
	return s.srv.Shutdown(ctx)
}
