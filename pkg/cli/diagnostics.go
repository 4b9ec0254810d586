package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/computerscienceiscool/queryctl/pkg/config"
)

// printDotenvDebug reports which dotenv file resolution selected, plus its
// key/value pairs. Gated on --debug together with the debug-env-load
// variable so routine runs stay quiet.
func printDotenvDebug(w io.Writer, settings *config.Settings, debug, useColor bool) {
	if !debug || !settings.DebugEnvLoad {
		return
	}

	paths := settings.DotenvPaths()
	if len(paths) == 0 {
		fmt.Fprintln(w, FormatDebug("[dotenv-debug] No .env file found or resolved.", useColor))
		return
	}

	path := paths[0]
	fmt.Fprintln(w, FormatDebug(fmt.Sprintf("[dotenv-debug] Selected .env file: %s", path), useColor))

	values, err := config.ReadDotenvValues(path)
	if err != nil {
		fmt.Fprintln(w, FormatDebug(fmt.Sprintf("[dotenv-debug] Failed to read .env file: %v", err), useColor))
		return
	}
	if len(values) == 0 {
		fmt.Fprintln(w, FormatDebug("[dotenv-debug] .env file exists but contains no key-value pairs.", useColor))
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintln(w, FormatDebug("[dotenv-debug] Loaded key-value pairs:", useColor))
	for _, k := range keys {
		fmt.Fprintln(w, FormatDebug(fmt.Sprintf("[dotenv-debug]   %s=%s", k, values[k]), useColor))
	}
}

// printDebugDiagnostics dumps the parsed flags, environment and dotenv
// resolution when --debug is active.
func printDebugDiagnostics(w io.Writer, flags *rootFlags, settings *config.Settings, useColor bool) {
	emit := func(line string) {
		fmt.Fprintln(w, FormatDebug(line, useColor))
	}

	emit("=== DEBUG DIAGNOSTICS ===")
	emit(fmt.Sprintf("Query           : %q", flags.query))
	emit(fmt.Sprintf("Format          : %s", flags.format))
	emit(fmt.Sprintf("Color           : %s", flags.colorMode))
	emit(fmt.Sprintf("Verbose         : %t", flags.verbose))
	emit(fmt.Sprintf("Quiet           : %t", flags.quiet))
	emit(fmt.Sprintf("Debug           : %t", flags.debug))
	emit(fmt.Sprintf("Environment     : %s", settings.Environment))
	emit(fmt.Sprintf("Loaded dotenv   : %s", settings.LoadedDotenv))
	emit(fmt.Sprintf("Resolved dotenvs: %v", settings.DotenvPaths()))
	emit("=== END DEBUG DIAGNOSTICS ===")
}
