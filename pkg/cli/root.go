// Package cli implements the queryctl command: flag parsing, output
// formatting, diagnostics and exit-code mapping.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/computerscienceiscool/queryctl/pkg/app"
	"github.com/computerscienceiscool/queryctl/pkg/config"
	"github.com/computerscienceiscool/queryctl/pkg/logging"
)

// consoleSilent sits above ERROR so a quiet run writes nothing to the
// console handler; records still reach the file handler.
const consoleSilent = slog.LevelError + 4

type rootFlags struct {
	query      string
	format     string
	colorMode  string
	env        string
	dotenvPath string
	verbose    bool
	quiet      bool
	debug      bool
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "queryctl",
		Short: "Environment-aware query processing CLI",
		Long: `queryctl processes queries using a reusable core library, with rich
output, diagnostics, and environment-based configuration loaded from .env files.

Environment variable loading priority:
  1. DOTENV_PATH   - set via --dotenv-path or env var to force a specific file
  2. .env.override - enforced values (e.g., for CI/CD or production)
  3. .env          - default team-wide configuration
  4. .env.local    - developer-local overrides (ignored by Git)
  5. .env.test     - used when QUERYCTL_TEST=1 is set
  6. .env.sample   - fallback when no other .env file is present

Examples:
  queryctl --query 'hello world'
  queryctl --query 'log test' --dotenv-path config/dev.env
  queryctl --query 'data' --env uat --format text --verbose`,
		Version:       Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), flags, out, errOut)
		},
	}

	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "Query string to process")
	cmd.Flags().StringVar(&flags.format, "format", FormatJSON, "Output format (text|json)")
	cmd.Flags().StringVar(&flags.colorMode, "color", ColorAuto, "Color mode (auto|always|never)")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Enable console output (stdout/stderr)")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Suppress console output; route messages to the log file")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable rich diagnostics. Implies --verbose")
	cmd.Flags().StringVar(&flags.env, "env", "", "Environment override (dev|uat|prod)")
	cmd.Flags().StringVar(&flags.dotenvPath, "dotenv-path", "", "Explicit dotenv file to load")

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd
}

func runRoot(ctx context.Context, flags *rootFlags, out, errOut io.Writer) error {
	if err := validateChoices(flags); err != nil {
		fmt.Fprintln(errOut, FormatError(err.Error(), ShouldUseColor(flags.colorMode)))
		return &exitError{code: ExitArgParse, err: err}
	}

	verbose := (flags.verbose || flags.debug) && !flags.quiet
	useColor := ShouldUseColor(flags.colorMode)

	logOpts := logging.SetupOptions{Reset: true}
	if !verbose {
		silent := consoleSilent
		logOpts.ConsoleLevel = &silent
	}

	a, err := app.Bootstrap(config.Options{
		Environment: flags.env,
		DotenvPath:  flags.dotenvPath,
		Verbose:     verbose,
	}, logOpts)
	if err != nil {
		fmt.Fprintln(errOut, FormatError(fmt.Sprintf("Error: %v", err), useColor))
		return &exitError{code: ExitRuntimeError, err: err}
	}
	defer a.Close()

	logger := a.Logger()

	cancelled := func() error {
		msg := "Processing cancelled by user."
		if verbose {
			fmt.Fprintln(errOut, FormatWarning(msg, useColor))
		} else {
			logger.Warn(msg)
		}
		return &exitError{code: ExitCancelled, err: ctx.Err()}
	}
	if ctx.Err() != nil {
		return cancelled()
	}

	done := make(chan error, 1)
	go func() {
		done <- processAndEmit(a, flags, verbose, useColor, out, errOut)
	}()

	select {
	case <-ctx.Done():
		return cancelled()
	case err := <-done:
		return err
	}
}

func processAndEmit(a *app.App, flags *rootFlags, verbose, useColor bool, out, errOut io.Writer) error {
	logger := a.Logger()

	printDotenvDebug(out, a.Settings, flags.debug, useColor)
	if flags.debug {
		printDebugDiagnostics(out, flags, a.Settings, useColor)
	}

	if verbose {
		fmt.Fprintln(out, FormatInfo("Processing query...", useColor))
	} else {
		logger.Info("Processing query...")
	}

	if strings.TrimSpace(flags.query) == "" {
		fmt.Fprintln(errOut, FormatError("Error: --query is required.", useColor))
		return &exitError{code: ExitInvalidUsage}
	}

	processed, err := a.ProcessOrSimulate(flags.query)
	if err != nil {
		fmt.Fprintln(errOut, FormatError(fmt.Sprintf("Error: %v", err), useColor))
		if flags.debug {
			for chain := err; chain != nil; chain = errors.Unwrap(chain) {
				fmt.Fprintf(errOut, "  caused by: %v\n", chain)
			}
		}
		return &exitError{code: ExitRuntimeError, err: err}
	}

	if err := emitResult(out, a, flags.query, processed, outputOptions{
		format:   flags.format,
		verbose:  verbose,
		useColor: useColor,
	}); err != nil {
		return &exitError{code: ExitRuntimeError, err: err}
	}

	if flags.debug {
		a.LogCacheStats()
	}
	return nil
}

func validateChoices(flags *rootFlags) error {
	switch flags.format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("argument error: invalid --format value %q (choose text or json)", flags.format)
	}
	switch flags.colorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("argument error: invalid --color value %q (choose auto, always or never)", flags.colorMode)
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(os.Stdout, os.Stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	// Anything else came out of flag parsing.
	fmt.Fprintln(os.Stderr, FormatError(fmt.Sprintf("argument error: %v", err), ShouldUseColor(ColorAuto)))
	return ExitArgParse
}

// Version reports the module version from build metadata.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "unknown (not installed)"
}
