package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-shelf-auth/internal/config"
	"github.com/MKhiriev/go-shelf-auth/internal/handler"
	"github.com/MKhiriev/go-shelf-auth/internal/logger"
)

type server struct {
	httpServer Server
	closers    []Closer
	logger     *logger.Logger
}

// NewServer creates the HTTP server for handlers. closers run in order after
// the server has shut down.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger, closers ...Closer) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		closers:    closers,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Err(err).Str("func", "*server.Shutdown").Msg("error releasing resource")
		}
	}
}

// run serves until ctx is done or the listener exits on its own, then shuts
// down and waits for the listener goroutine to return.
func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil {
		return errNoServersAreCreated
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		s.logger.Info().Msg("Launching HTTP server")
		s.httpServer.RunServer()
	}()

	select {
	case <-ctx.Done():
	case <-stopped:
		s.logger.Warn().Msg("HTTP server stopped before shutdown was requested")
	}

	s.Shutdown()
	<-stopped

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
