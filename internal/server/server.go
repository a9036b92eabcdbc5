// Package server serves the generated site for local development.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	ferrors "github.com/rvgswg/rvgswg/internal/foundation/errors"
	"github.com/rvgswg/rvgswg/internal/logfields"
)

// DefaultAddr is where `run` listens unless told otherwise.
const DefaultAddr = "localhost:8800"

const shutdownTimeout = 5 * time.Second

// Server is a static file server over one directory.
type Server struct {
	addr   string
	dir    string
	logger *slog.Logger
}

// New creates a server for dir on addr. An empty addr means DefaultAddr.
func New(addr, dir string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{addr: addr, dir: dir, logger: slog.Default()}
}

func (s *Server) WithLogger(logger *slog.Logger) *Server {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Handler serves the directory tree, logging one debug line per request.
func (s *Server) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Serving request", "method", r.Method, logfields.Path(r.URL.Path))
		files.ServeHTTP(w, r)
	})
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryRuntime, "cannot listen").
			Fatal().
			WithContext("addr", s.addr).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("Starting HTTP server", "url", "http://"+ln.Addr().String()+"/", logfields.Path(s.dir))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return ferrors.WrapError(err, ferrors.CategoryRuntime, "http server failed").Fatal().Build()
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server shutdown error", logfields.Error(err))
		return err
	}
	return nil
}
