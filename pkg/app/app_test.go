package app

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/computerscienceiscool/queryctl/pkg/config"
	"github.com/computerscienceiscool/queryctl/pkg/core"
	"github.com/computerscienceiscool/queryctl/pkg/logging"
)

func clearAppEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		config.EnvVarDotenvPath, config.EnvVarTestMode, config.EnvVarEnvironment,
		config.EnvVarRotateScheme, config.EnvVarLogLevel,
	} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func newTestApp(t *testing.T, env string) *App {
	t.Helper()
	clearAppEnv(t)

	a, err := Bootstrap(
		config.Options{RootDir: t.TempDir(), Environment: env},
		logging.SetupOptions{Reset: true, ConsoleWriter: io.Discard},
	)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestBootstrap(t *testing.T) {
	a := newTestApp(t, "dev")

	assert.True(t, a.Settings.IsDev())
	assert.True(t, a.Log.Configured())
	assert.Equal(t, 2, a.Log.HandlerCount())
	assert.NotNil(t, a.Queries)
	assert.NotNil(t, a.Simulations)
}

func TestProcessOrSimulate(t *testing.T) {
	t.Run("dev mode mocks the result", func(t *testing.T) {
		a := newTestApp(t, "dev")

		got, err := a.ProcessOrSimulate("hello")
		require.NoError(t, err)
		assert.Equal(t, "Processed (DEV MOCK): HELLO", got)
	})

	t.Run("dev mode injects the simulated failure", func(t *testing.T) {
		a := newTestApp(t, "dev")

		_, err := a.ProcessOrSimulate("fail")
		require.Error(t, err)
		var sErr *core.SimulatedFailureError
		assert.True(t, errors.As(err, &sErr))
	})

	t.Run("failures re-execute on every call", func(t *testing.T) {
		a := newTestApp(t, "dev")

		_, err1 := a.ProcessOrSimulate("fail")
		_, err2 := a.ProcessOrSimulate("fail")
		require.Error(t, err1)
		require.Error(t, err2)
		assert.Equal(t, 2, a.Simulations.Stats().Misses)
	})

	t.Run("non-dev processes through the query memo", func(t *testing.T) {
		a := newTestApp(t, "prod")

		got, err := a.ProcessOrSimulate("  spaced out  ")
		require.NoError(t, err)
		assert.Equal(t, "spaced out", got)

		// "fail" is only special in DEV.
		got, err = a.ProcessOrSimulate("fail")
		require.NoError(t, err)
		assert.Equal(t, "fail", got)
	})

	t.Run("repeated queries hit the cache", func(t *testing.T) {
		a := newTestApp(t, "uat")

		first, err := a.ProcessOrSimulate("cached")
		require.NoError(t, err)
		second, err := a.ProcessOrSimulate("cached")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		stats := a.Queries.Stats()
		assert.Equal(t, 1, stats.Hits)
		assert.Equal(t, 1, stats.Misses)
	})
}

func TestSimulatedFailureLogging(t *testing.T) {
	clearAppEnv(t)
	console := &bytes.Buffer{}
	a, err := Bootstrap(
		config.Options{RootDir: t.TempDir(), Environment: "dev"},
		logging.SetupOptions{Reset: true, ConsoleWriter: console},
	)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	_, err = a.ProcessOrSimulate("fail")
	require.Error(t, err)
	assert.Contains(t, console.String(), "Simulated failure raised")
	assert.Contains(t, console.String(), "input=fail")
}

func TestClearCaches(t *testing.T) {
	a := newTestApp(t, "prod")

	_, err := a.ProcessOrSimulate("something")
	require.NoError(t, err)
	require.NotZero(t, a.Queries.Stats().Size)

	a.ClearCaches()
	assert.Zero(t, a.Queries.Stats().Size)
	assert.Zero(t, a.Simulations.Stats().Size)
}

func TestClose(t *testing.T) {
	a := newTestApp(t, "dev")
	a.Close()
	assert.False(t, a.Log.Configured())
}
