package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ResolveDotenvPaths determines which dotenv files are candidates for
// loading, in priority order:
//
//  1. DOTENV_PATH (explicit override; returned even when the file is
//     missing so diagnostics can report it)
//  2. .env.test, only when test mode is active and the file exists
//  3. first existing of .env.override, .env, .env.local
//  4. .env.sample as a fallback
//
// At most one path is returned except for the explicit override case,
// where the single override path is returned unconditionally.
func ResolveDotenvPaths(rootDir string) []string {
	if custom := os.Getenv(EnvVarDotenvPath); custom != "" {
		if _, err := os.Stat(custom); err != nil && debugEnvLoad() {
			fmt.Fprintf(os.Stderr, "[settings] %s is set to %s but the file does not exist\n", EnvVarDotenvPath, custom)
		}
		return []string{custom}
	}

	if IsTestMode() {
		testEnv := filepath.Join(rootDir, DotenvTest)
		if fileExists(testEnv) {
			return []string{testEnv}
		}
		return nil
	}

	for _, name := range dotenvCandidates {
		path := filepath.Join(rootDir, name)
		if fileExists(path) {
			return []string{path}
		}
	}

	sample := filepath.Join(rootDir, DotenvSample)
	if fileExists(sample) {
		return []string{sample}
	}
	return nil
}

// LoadDotenv loads the first resolvable dotenv file into the process
// environment and returns its path, or "" when nothing was loaded.
// Variables already present in the environment win, except in test mode
// where file values override them.
func LoadDotenv(rootDir string) (string, error) {
	for _, path := range ResolveDotenvPaths(rootDir) {
		if !fileExists(path) {
			continue
		}
		var err error
		if IsTestMode() {
			err = godotenv.Overload(path)
		} else {
			err = godotenv.Load(path)
		}
		if err != nil {
			return "", fmt.Errorf("loading dotenv file %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// ReadDotenvValues parses a dotenv file without touching the process
// environment. Used by --debug diagnostics.
func ReadDotenvValues(path string) (map[string]string, error) {
	return godotenv.Read(path)
}

// IsTestMode reports whether the test-mode marker variable is set.
func IsTestMode() bool {
	return os.Getenv(EnvVarTestMode) == "1"
}

func debugEnvLoad() bool {
	return os.Getenv(EnvVarDebugEnvLoad) == "1"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
