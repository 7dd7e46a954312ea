// Package cliconf holds process-environment configuration for the CLI.
package cliconf

import (
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Env configures the CLI from the process environment. Flags override these.
type Env struct {
	// InfraDir is the directory containing cdk.json, relative to the working
	// directory or absolute.
	InfraDir string `env:"PAGECRAFT_INFRA_DIR" envDefault:"infra/cdk"`

	// Deployment is the default deployment identifier (e.g., "Dev").
	Deployment string `env:"PAGECRAFT_DEPLOYMENT"`
}

// Load parses the environment and resolves InfraDir to an absolute path.
func Load() (*Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}

	abs, err := filepath.Abs(cfg.InfraDir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving infra dir %q", cfg.InfraDir)
	}
	cfg.InfraDir = abs

	return &cfg, nil
}
