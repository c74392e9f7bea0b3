// Package server implements the development HTTP server: static files from
// a document root, CORS and no-cache headers on every response, override-
// first content types, an optional ISO catalogue API, and a serve loop that
// stops when its context is cancelled.
package server

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Server owns one http.Server bound to a listener chosen by the caller.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger

	// grace bounds the drain phase on shutdown. Zero closes immediately.
	grace time.Duration
}

// New creates a Server for the given options. grace is the shutdown drain
// timeout; zero means in-flight requests are cut off at cancellation.
func New(opts Options, grace time.Duration, logger *logrus.Logger) *Server {
	return &Server{
		httpServer: &http.Server{Handler: NewRouter(opts, logger)},
		logger:     logger,
		grace:      grace,
	}
}

// Serve accepts connections on ln until ctx is cancelled or the listener
// fails. Cancellation is a normal stop and returns nil; the listener is
// closed in every case.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errorLog := s.logger.WriterLevel(logrus.WarnLevel)
	defer func() { _ = errorLog.Close() }()
	s.httpServer.ErrorLog = log.New(errorLog, "", 0)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Debug("stop requested, closing listener")
	s.stop()

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) stop() {
	if s.grace <= 0 {
		_ = s.httpServer.Close()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.WithError(err).Warn("graceful shutdown timed out, closing remaining connections")
		_ = s.httpServer.Close()
	}
}
