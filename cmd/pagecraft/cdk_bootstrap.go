package main

import (
	"context"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cmdexec"
	"go.uber.org/zap"
)

type BootstrapCmd struct{}

func (c *BootstrapCmd) Run(cfg *cliconf.Env, log *zap.Logger) error {
	ctx := context.Background()

	cctx, err := cdkctx.Load(cfg.InfraDir)
	if err != nil {
		return err
	}

	log.Info("bootstrapping CDK", zap.String("qualifier", cctx.Qualifier))
	return cmdexec.Run(ctx, cfg.InfraDir, "cdk", "bootstrap",
		"--qualifier", cctx.Qualifier,
		"--toolkit-stack-name", "CDKToolkit-"+cctx.Qualifier,
	)
}
