package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Options are the listener settings for one server.
type Options struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	// ShutdownTimeout bounds how long Run waits for in-flight requests.
	ShutdownTimeout time.Duration
}

// Server is an http.Server that stops when its context is cancelled.
type Server struct {
	name            string
	srv             *http.Server
	shutdownTimeout time.Duration
}

func New(name string, opts Options, handler http.Handler) *Server {
	return &Server{
		name: name,
		srv: &http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			ReadHeaderTimeout: opts.ReadHeaderTimeout,
			ReadTimeout:       opts.ReadTimeout,
			WriteTimeout:      opts.WriteTimeout,
			IdleTimeout:       opts.IdleTimeout,
		},
		shutdownTimeout: opts.ShutdownTimeout,
	}
}

// Run serves until the listener fails or ctx is done. On ctx it drains
// in-flight requests and returns nil; a drain that overruns ShutdownTimeout
// is reported as an error.
func (s *Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.srv.ListenAndServe()
	}()
	slog.Info("server listening", "server", s.name, "addr", s.srv.Addr)

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("%s server: %w", s.name, err)
	case <-ctx.Done():
	}

	slog.Info("server draining", "server", s.name, "timeout", s.shutdownTimeout)
	drainCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("%s server shutdown: %w", s.name, err)
	}
	return nil
}
