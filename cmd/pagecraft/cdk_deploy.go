package main

import (
	"context"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cmdexec"
	"go.uber.org/zap"
)

type DeployCmd struct {
	Deployment string `arg:"" optional:"" help:"Deployment name (e.g., Stag, Prod). Defaults to PAGECRAFT_DEPLOYMENT."`
}

func (c *DeployCmd) Run(cfg *cliconf.Env, log *zap.Logger) error {
	ctx := context.Background()

	cctx, err := cdkctx.Load(cfg.InfraDir)
	if err != nil {
		return err
	}

	deployment, err := resolveDeployment(cfg, cctx, c.Deployment)
	if err != nil {
		return err
	}

	log.Info("deploying stacks",
		zap.String("deployment", deployment),
		zap.Strings("globs", cctx.StackGlobs(deployment)))

	args := []string{"deploy", "--require-approval", "never"}
	args = append(args, cctx.StackGlobs(deployment)...)
	return cmdexec.Run(ctx, cfg.InfraDir, "cdk", args...)
}
