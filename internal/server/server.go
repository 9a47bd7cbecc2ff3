// Package server exposes the monitor over a small debug HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"perfoverlay/internal/model"
)

// Controller is the part of the monitor the API drives.
type Controller interface {
	Start()
	Pause()
	LatestReport() (model.PerformanceReportV2, bool)
}

func NewRouter(ctrl Controller, metrics http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(logRequests)

	if metrics != nil {
		r.Handle("/metrics", metrics).Methods(http.MethodGet)
	}
	r.HandleFunc("/report", func(w http.ResponseWriter, _ *http.Request) {
		report, ok := ctrl.LatestReport()
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logrus.WithError(err).Debug("encode report")
		}
	}).Methods(http.MethodGet)
	r.HandleFunc("/start", func(w http.ResponseWriter, _ *http.Request) {
		ctrl.Start()
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)
	r.HandleFunc("/pause", func(w http.ResponseWriter, _ *http.Request) {
		ctrl.Pause()
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPost)

	return r
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"component": "server",
			"method":    r.Method,
			"path":      r.URL.Path,
			"took":      time.Since(start),
		}).Debug("request")
	})
}

// Run serves handler on addr until ctx is cancelled.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logrus.WithField("addr", addr).Info("debug server listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("debug server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("debug server shutdown: %w", err)
		}
		return nil
	}
}
