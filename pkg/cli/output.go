package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/computerscienceiscool/queryctl/pkg/app"
	"github.com/computerscienceiscool/queryctl/pkg/config"
)

// Formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Result is the structured payload emitted by --format json.
type Result struct {
	Environment string `json:"environment"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// outputOptions collects the rendering-relevant flags.
type outputOptions struct {
	format   string
	verbose  bool
	useColor bool
}

// envCommentary returns the contextual message for the environment and the
// formatter matching its severity.
func envCommentary(env string) (string, func(string, bool) string) {
	switch env {
	case config.EnvDev:
		return "DEV environment: Full diagnostics enabled", FormatDebug
	case config.EnvUAT:
		return "UAT environment: Pre-production validation", FormatInfo
	case config.EnvProd:
		return "PROD environment: Logs and diagnostics are limited", FormatWarning
	default:
		return "Unknown environment", FormatInfo
	}
}

// emitResult renders the processed result as JSON or text. Verbose runs
// write commentary to stdout; quiet runs route it through the logger
// instead, never both.
func emitResult(w io.Writer, a *app.App, query, processed string, opts outputOptions) error {
	logger := a.Logger()
	env := a.Settings.Environment
	commentary, formatEnvMessage := envCommentary(env)

	if opts.format == FormatJSON {
		payload := Result{
			Environment: env,
			Input:       query,
			Output:      processed,
		}
		encoded, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		fmt.Fprintln(w, string(encoded))

		if opts.verbose {
			fmt.Fprintln(w, FormatInfo(fmt.Sprintf("Processed query: %s", processed), opts.useColor))
			fmt.Fprintln(w, formatEnvMessage(commentary, opts.useColor))
		} else {
			logger.Info("Processed query", "output", processed)
			if a.Settings.IsProd() {
				logger.Warn(commentary)
			} else {
				logger.Info(commentary)
			}
		}
		return nil
	}

	lines := []string{
		"[RESULT]",
		fmt.Sprintf("Input query    : %s", query),
		fmt.Sprintf("Processed value: %s", processed),
	}

	if opts.verbose {
		lines = append(lines, formatEnvMessage(commentary, opts.useColor))
	} else {
		logger.Info("Processed query", "output", processed)
		switch env {
		case config.EnvDev:
			logger.Debug(commentary)
		case config.EnvProd:
			logger.Warn(commentary)
		default:
			logger.Info(commentary)
		}
	}

	PrintLines(w, lines, opts.useColor)
	return nil
}
