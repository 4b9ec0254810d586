// Package app wires settings, logging and the processing pipeline into a
// single application object consumed by the CLI.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/computerscienceiscool/queryctl/pkg/cache"
	"github.com/computerscienceiscool/queryctl/pkg/config"
	"github.com/computerscienceiscool/queryctl/pkg/core"
	"github.com/computerscienceiscool/queryctl/pkg/logging"
)

// App holds the per-invocation state: the immutable settings snapshot, the
// logging context and the memoized processors.
type App struct {
	Settings    *config.Settings
	Log         *logging.Context
	Queries     *cache.Memo
	Simulations *cache.Memo
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.Log.Logger()
}

// ProcessOrSimulate runs the real query pipeline, or the DEV-mode
// simulation which injects a runtime failure for the literal query "fail".
func (a *App) ProcessOrSimulate(query string) (string, error) {
	logger := a.Logger()

	if a.Settings.IsDev() {
		logger.Debug("Simulating logic in DEV mode...")

		upper, err := a.Simulations.Get(query)
		if err != nil {
			var simErr *core.SimulatedFailureError
			if errors.As(err, &simErr) {
				logger.Error("Simulated failure raised", "input", simErr.Input)
			} else {
				logger.Error("Unhandled error during query processing", "error", err)
			}
			return "", err
		}
		return fmt.Sprintf("Processed (DEV MOCK): %s", upper), nil
	}

	result, err := a.Queries.Get(query)
	if err != nil {
		logger.Error("Unhandled error during query processing", "error", err)
		return "", err
	}
	return result, nil
}

// ClearCaches drops every memoized entry. Useful for tests and debugging.
func (a *App) ClearCaches() {
	a.Queries.Clear()
	a.Simulations.Clear()
	a.Logger().Info("All caches cleared.")
}

// LogCacheStats writes the memo counters to the logger.
func (a *App) LogCacheStats() {
	logger := a.Logger()
	q := a.Queries.Stats()
	s := a.Simulations.Stats()
	logger.Info("cache stats",
		"query_hits", q.Hits, "query_misses", q.Misses, "query_size", q.Size,
		"sim_hits", s.Hits, "sim_misses", s.Misses, "sim_size", s.Size)
}

// Close tears the logger down. Safe to call on every exit path.
func (a *App) Close() {
	a.Log.Teardown()
}
