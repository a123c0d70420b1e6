//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/markkurossi/fantastic4/log"
)

// PullService serves the metrics for the Prometheus pull method.
type PullService struct {
	pullEndpoint string
	gatherer     prometheus.Gatherer
	logger       *log.Logger
}

// NewPullService creates a new Prometheus pull service serving the
// metrics of gatherer at pullEndpoint.
func NewPullService(pullEndpoint string, gatherer prometheus.Gatherer,
	logger *log.Logger) *PullService {

	return &PullService{
		pullEndpoint: pullEndpoint,
		gatherer:     gatherer,
		logger:       logger.WithModule("metrics"),
	}
}

// Handler returns the HTTP handler of the service.
func (s *PullService) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer,
		promhttp.HandlerOpts{}))
	return mux
}

// Run runs the service until ctx is done.
func (s *PullService) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:           s.pullEndpoint,
		Handler:        s.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving metrics", "endpoint", s.pullEndpoint)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
