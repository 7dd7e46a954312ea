package main

import (
	"context"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cmdexec"
	"go.uber.org/zap"
)

type DiffCmd struct {
	Deployment string `arg:"" optional:"" help:"Deployment name (e.g., Stag, Prod). Defaults to PAGECRAFT_DEPLOYMENT."`
}

func (c *DiffCmd) Run(cfg *cliconf.Env, _ *zap.Logger) error {
	ctx := context.Background()

	cctx, err := cdkctx.Load(cfg.InfraDir)
	if err != nil {
		return err
	}

	deployment, err := resolveDeployment(cfg, cctx, c.Deployment)
	if err != nil {
		return err
	}

	args := append([]string{"diff"}, cctx.StackGlobs(deployment)...)
	return cmdexec.Run(ctx, cfg.InfraDir, "cdk", args...)
}
