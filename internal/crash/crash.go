// Package crash recovers panics raised on monitoring paths so they never take
// the host process down, reporting them to Sentry when a DSN is configured.
package crash

import (
	"fmt"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

var (
	initialized bool
	initMu      sync.RWMutex
)

// Init configures the Sentry client. An empty dsn leaves reporting disabled.
func Init(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
		SampleRate:       1.0,
	})
	if err != nil {
		return fmt.Errorf("init sentry: %w", err)
	}

	initMu.Lock()
	initialized = true
	initMu.Unlock()
	return nil
}

func IsInitialized() bool {
	initMu.RLock()
	defer initMu.RUnlock()
	return initialized
}

// Flush waits for queued events. Call before the process exits.
func Flush(timeout time.Duration) {
	if !IsInitialized() {
		return
	}
	sentry.Flush(timeout)
}

// Recover must be deferred directly; recover() only works from the deferred
// frame itself.
func Recover() {
	if r := recover(); r != nil {
		report(r)
	}
}

// Go runs f on a new goroutine that recovers its own panics.
func Go(f func()) {
	go func() {
		defer Recover()
		f()
	}()
}

// Call runs f and swallows any panic it raises. It reports whether f
// returned normally.
func Call(f func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			report(r)
			ok = false
		}
	}()
	f()
	return true
}

func report(r any) {
	logrus.WithField("panic", r).Error("recovered panic in monitoring path")
	if !IsInitialized() {
		return
	}
	if hub := sentry.CurrentHub(); hub != nil {
		hub.Recover(r)
	}
}
