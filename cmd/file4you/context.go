package main

import (
	"fmt"
	"log/slog"

	"github.com/ZanzyTHEbar/file4you/f4y/config"
	"github.com/ZanzyTHEbar/file4you/f4y/history"
	"github.com/ZanzyTHEbar/file4you/f4y/organizer"
	"github.com/ZanzyTHEbar/file4you/f4y/ports"
	"github.com/ZanzyTHEbar/file4you/f4y/schema"
)

// commandContext carries the lazily loaded configuration shared by all
// subcommands.
type commandContext struct {
	configFlag *string
	cfg        *config.File4YouConfig
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads the configuration once and caches it.
func (c *commandContext) ensureConfig() (*config.File4YouConfig, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	loaded, err := config.LoadConfig(*c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.cfg = &loaded.File4You
	return c.cfg, nil
}

// buildOrganizer wires an organizer for one schema variant. The returned
// cleanup closes the history ledger and must run after the pass finishes.
func (c *commandContext) buildOrganizer(variant schema.Variant, interactive bool) (*organizer.Organizer, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	var recorder *history.Provider
	cleanup := func() {}
	if cfg.History.Enabled {
		recorder, err = history.NewProvider(cfg.History.Path)
		if err != nil {
			// The ledger is best-effort; run without it rather than fail.
			slog.Warn("History ledger unavailable", "path", cfg.History.Path, "error", err)
			recorder = nil
		} else {
			cleanup = func() {
				if err := recorder.Close(); err != nil {
					slog.Warn("Failed to close history ledger", "error", err)
				}
			}
		}
	}

	var terminal ports.Interactor
	if interactive {
		terminal = ports.NewConsole()
	}

	var org *organizer.Organizer
	if recorder != nil {
		org, err = organizer.New(cfg, variant, terminal, recorder)
	} else {
		org, err = organizer.New(cfg, variant, terminal, nil)
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return org, cleanup, nil
}
