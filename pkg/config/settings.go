package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Settings is an immutable snapshot of the resolved configuration for one
// invocation. It is constructed once by Load and passed down; components
// never re-read the process environment after this point.
type Settings struct {
	Environment    string
	RootDir        string
	LoadedDotenv   string // path of the dotenv file that was loaded, or ""
	LogLevel       string
	LogMaxBytes    int
	LogBackupCount int
	RotationScheme string
	DebugEnvLoad   bool
	TestMode       bool

	resolvedDotenvs []string
}

// Options carries early CLI overrides applied before the snapshot is built.
type Options struct {
	RootDir     string // defaults to the current working directory
	DotenvPath  string // --dotenv-path
	Environment string // --env
	Verbose     bool   // log the loaded dotenv path
}

// Load applies early overrides, loads at most one dotenv file into the
// process environment, and returns the resulting settings snapshot.
//
// A --dotenv-path pointing at a missing file is a non-fatal condition: a
// warning is written to stderr and resolution continues with defaults.
func Load(opts Options) (*Settings, error) {
	rootDir := opts.RootDir
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		rootDir = wd
	}

	if opts.Environment != "" {
		os.Setenv(EnvVarEnvironment, strings.ToUpper(strings.TrimSpace(opts.Environment)))
	}

	if opts.DotenvPath != "" {
		abs, err := filepath.Abs(opts.DotenvPath)
		if err == nil && fileExists(abs) {
			os.Setenv(EnvVarDotenvPath, abs)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: dotenv path not found: %s\n", opts.DotenvPath)
		}
	}

	loaded, err := LoadDotenv(rootDir)
	if err != nil {
		return nil, err
	}
	if loaded != "" && (opts.Verbose || debugEnvLoad()) {
		fmt.Fprintf(os.Stderr, "[settings] Loaded environment variables from: %s\n", loaded)
	}

	v := viper.New()
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("rotate_scheme", RotateStandard)
	v.BindEnv("environment", EnvVarEnvironment)
	v.BindEnv("log_level", EnvVarLogLevel)
	v.BindEnv("rotate_scheme", EnvVarRotateScheme)

	env := strings.ToUpper(strings.TrimSpace(v.GetString("environment")))
	if env == "" {
		env = DefaultEnvironment
	}

	return &Settings{
		Environment:    env,
		RootDir:        rootDir,
		LoadedDotenv:   loaded,
		LogLevel:       strings.ToUpper(strings.TrimSpace(v.GetString("log_level"))),
		LogMaxBytes:    safeInt(EnvVarLogMaxBytes, DefaultLogMaxBytes),
		LogBackupCount: safeInt(EnvVarLogBackups, DefaultLogBackups),
		RotationScheme: v.GetString("rotate_scheme"),
		DebugEnvLoad:   debugEnvLoad(),
		TestMode:       IsTestMode(),

		resolvedDotenvs: ResolveDotenvPaths(rootDir),
	}, nil
}

// IsDev reports whether the environment is DEV.
func (s *Settings) IsDev() bool { return s.Environment == EnvDev }

// IsUAT reports whether the environment is UAT.
func (s *Settings) IsUAT() bool { return s.Environment == EnvUAT }

// IsProd reports whether the environment is PROD.
func (s *Settings) IsProd() bool { return s.Environment == EnvProd }

// LogDir returns the per-environment log directory, e.g. logs/DEV.
func (s *Settings) LogDir() string {
	return filepath.Join(s.RootDir, LogDirName, s.Environment)
}

// Env returns the environment label. Part of the provider surface
// consumed by pkg/logging.
func (s *Settings) Env() string { return s.Environment }

// RotateMaxBytes returns the rotation size threshold.
func (s *Settings) RotateMaxBytes() int { return s.LogMaxBytes }

// RotateBackups returns how many rotated backups to keep.
func (s *Settings) RotateBackups() int { return s.LogBackupCount }

// DefaultLevel returns the configured console log level name.
func (s *Settings) DefaultLevel() string { return s.LogLevel }

// RotateScheme returns the backup naming scheme in use.
func (s *Settings) RotateScheme() string { return s.RotationScheme }

// DotenvPaths returns the dotenv candidates as resolved at load time, for
// diagnostics output.
func (s *Settings) DotenvPaths() []string {
	return s.resolvedDotenvs
}

// safeInt reads an integer environment variable, falling back to a default
// on missing or unparseable values.
func safeInt(envVar string, def int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[settings] Invalid int for %s=%q; using default %d\n", envVar, val, def)
		return def
	}
	return n
}
