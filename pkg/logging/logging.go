// Package logging configures the process-wide logger: a console handler
// and a size-rotated file handler fanned out through slog-multi, with the
// resolved environment name tagged onto every record.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/computerscienceiscool/queryctl/pkg/config"
)

// SettingsProvider supplies the configuration the logger needs. Satisfied
// by *config.Settings; tests inject stubs instead of patching globals.
type SettingsProvider interface {
	Env() string
	IsDev() bool
	LogDir() string
	RotateMaxBytes() int
	RotateBackups() int
	DefaultLevel() string
	RotateScheme() string
}

// SetupOptions tunes a Setup call.
type SetupOptions struct {
	// ConsoleLevel overrides the console handler level. When nil the
	// level is DEBUG in DEV and the settings default otherwise.
	ConsoleLevel *slog.Level

	// Reset flushes, closes and detaches existing handlers before
	// attaching new ones. Without it a configured context is a no-op.
	Reset bool

	// ConsoleWriter overrides os.Stderr, for tests.
	ConsoleWriter io.Writer
}

// Context owns the logger's handler set for one process. The configured
// flag is explicit: repeated Setup calls without Reset never grow the
// handler count.
type Context struct {
	mu         sync.Mutex
	configured bool
	logger     *slog.Logger
	handlers   []slog.Handler
	closers    []io.Closer
}

// NewContext returns an unconfigured logging context.
func NewContext() *Context {
	return &Context{}
}

// Setup attaches the console and rotating-file handlers. It is a no-op
// when already configured unless opts.Reset is set.
func (c *Context) Setup(p SettingsProvider, opts SetupOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.configured && !opts.Reset {
		return nil
	}
	if opts.Reset {
		c.teardownLocked()
	}

	if err := os.MkdirAll(p.LogDir(), 0o755); err != nil {
		return err
	}

	consoleOut := opts.ConsoleWriter
	if consoleOut == nil {
		consoleOut = io.Writer(os.Stderr)
	}
	consoleLevel := consoleLevelFor(p, opts)

	fileSink, fileCloser := fileWriter(p)
	console := newBracketHandler(consoleOut, consoleLevel)
	file := newBracketHandler(fileSink, slog.LevelDebug)

	envTag := slogmulti.NewHandleInlineMiddleware(
		func(ctx context.Context, record slog.Record, next func(context.Context, slog.Record) error) error {
			record.AddAttrs(slog.String(envKey, p.Env()))
			return next(ctx, record)
		})

	c.handlers = []slog.Handler{console, file}
	c.closers = []io.Closer{fileCloser}
	c.logger = slog.New(slogmulti.Pipe(envTag).Handler(slogmulti.Fanout(console, file)))
	c.configured = true
	return nil
}

// Teardown flushes and closes every attached sink and detaches it from the
// context. Cleanup is best-effort: errors are swallowed.
func (c *Context) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
}

func (c *Context) teardownLocked() {
	for _, closer := range c.closers {
		_ = closer.Close()
	}
	c.closers = nil
	c.handlers = nil
	c.logger = nil
	c.configured = false
}

// Configured reports whether handlers are currently attached.
func (c *Context) Configured() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.configured
}

// HandlerCount returns the number of attached handlers.
func (c *Context) HandlerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handlers)
}

// Logger returns the configured logger, or slog's default when setup has
// not run.
func (c *Context) Logger() *slog.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// fileWriter builds the rotating file sink for the configured scheme.
func fileWriter(p SettingsProvider) (io.Writer, io.Closer) {
	path := filepath.Join(p.LogDir(), config.LogFileName)

	if p.RotateScheme() == config.RotateRenamed {
		w := newRenamedRotateWriter(path, int64(p.RotateMaxBytes()), p.RotateBackups())
		return w, w
	}

	// lumberjack sizes in megabytes; round the byte threshold up so a
	// small override still rotates.
	maxMB := p.RotateMaxBytes() / (1024 * 1024)
	if maxMB < 1 {
		maxMB = 1
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxMB,
		MaxBackups: p.RotateBackups(),
	}
	return w, w
}

func consoleLevelFor(p SettingsProvider, opts SetupOptions) slog.Level {
	if opts.ConsoleLevel != nil {
		return *opts.ConsoleLevel
	}
	if p.IsDev() {
		return slog.LevelDebug
	}
	return ParseLevel(p.DefaultLevel())
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
