package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPService runs an http.Server as a Service.
type HTTPService struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	logger          *zap.Logger
}

// NewHTTPService wraps srv. Stop waits up to shutdownTimeout for in-flight
// requests before closing connections.
//
// Precondition: srv and logger must be non-nil.
func NewHTTPService(srv *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) *HTTPService {
	if srv == nil || logger == nil {
		panic("server: NewHTTPService precondition violated: server and logger must be non-nil")
	}
	return &HTTPService{srv: srv, shutdownTimeout: shutdownTimeout, logger: logger}
}

// Start serves until Stop is called.
func (h *HTTPService) Start() error {
	h.logger.Info("http server listening", zap.String("addr", h.srv.Addr))
	return ignoreClosed(h.srv.ListenAndServe(), http.ErrServerClosed)
}

// Stop shuts the server down gracefully.
func (h *HTTPService) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err := h.srv.Shutdown(ctx); err != nil {
		h.logger.Warn("http shutdown incomplete, closing", zap.Error(err))
		_ = h.srv.Close()
	}
}
