package main

import (
	"context"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cmdexec"
	"go.uber.org/zap"
)

type SynthCmd struct{}

func (c *SynthCmd) Run(cfg *cliconf.Env, _ *zap.Logger) error {
	return cmdexec.Run(context.Background(), cfg.InfraDir, "cdk", "synth", "--quiet")
}
