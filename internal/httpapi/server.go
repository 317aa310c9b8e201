// Package httpapi serves pick lists over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Server wires the HTTP routes of the ranking engine.
type Server struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
	src     contract.StatsSource
	metrics *metrics.Metrics
}

// NewServer creates a server. Every request starts from a copy of baseCfg.
func NewServer(baseCfg *contract.Config, mgr contract.StoreManager, src contract.StatsSource, m *metrics.Metrics) *Server {
	if m == nil {
		m = metrics.New()
	}
	return &Server{baseCfg: baseCfg, mgr: mgr, src: src, metrics: m}
}

// Register attaches all routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.instrument("healthz", s.handleHealth))
	mux.HandleFunc("GET /picklist", s.instrument("picklist", s.handlePickList))
	mux.HandleFunc("GET /columns", s.instrument("columns", s.handleColumns))
	mux.HandleFunc("GET /weights/validate", s.instrument("weights_validate", s.handleValidateWeights))
	mux.HandleFunc("GET /strategies", s.instrument("strategies", s.handleStrategies))
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
}

// Handler returns a mux with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		_, _ = fmt.Fprintf(os.Stderr, "🌐 Serving pick lists on http://%s\n", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	_, _ = fmt.Fprintln(os.Stderr, "🛑 Server stopped")
	return nil
}
