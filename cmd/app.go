package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/example/frarold/internal/aspc"
	"github.com/example/frarold/internal/calendar"
	"github.com/example/frarold/internal/config"
	"github.com/example/frarold/internal/fulfillment"
	"github.com/example/frarold/internal/logging"
	"github.com/example/frarold/internal/match"
	"github.com/example/frarold/internal/search"
)

// app holds the wired service shared by every subcommand that talks to the menu API.
type app struct {
	cfg   config.Config
	log   *zap.Logger
	menus *aspc.Client
	svc   *fulfillment.Service
}

func newApp() (*app, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireToken(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	dates, err := calendar.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", calendar.Timezone, err)
	}

	menus := aspc.New(cfg.MenuAPI, log)
	agg := &search.Aggregator{
		Menus: menus,
		Matcher: match.New(match.Config{
			Threshold: cfg.Search.Threshold,
			Mode:      match.Mode(cfg.Search.Mode),
		}),
		Policy: searchPolicy(cfg.Search.Policy),
		Log:    log,
	}

	return &app{
		cfg:   cfg,
		log:   log,
		menus: menus,
		svc:   &fulfillment.Service{Menus: menus, Search: agg, Dates: dates, Log: log},
	}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

func searchPolicy(name string) search.Policy {
	if name == config.PolicyPartial {
		return search.PolicyPartial
	}
	return search.PolicyAllOrNothing
}
