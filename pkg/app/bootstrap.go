package app

import (
	"fmt"

	"github.com/computerscienceiscool/queryctl/pkg/cache"
	"github.com/computerscienceiscool/queryctl/pkg/config"
	"github.com/computerscienceiscool/queryctl/pkg/logging"
)

// Bootstrap loads settings, configures logging and returns a ready App.
func Bootstrap(opts config.Options, logOpts logging.SetupOptions) (*App, error) {
	settings, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	logCtx := logging.NewContext()
	if err := logCtx.Setup(settings, logOpts); err != nil {
		return nil, fmt.Errorf("configuring logging: %w", err)
	}

	return &App{
		Settings:    settings,
		Log:         logCtx,
		Queries:     cache.NewQueryMemo(),
		Simulations: cache.NewSimulationMemo(),
	}, nil
}
