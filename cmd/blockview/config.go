package main

import (
	"github.com/mewmew/blockview/config"
	"github.com/pkg/errors"
)

func loadConfig(path string, maxInstructionWidth int) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, errors.WithStack(err)
	}
	return cfg.Derive(maxInstructionWidth), nil
}
