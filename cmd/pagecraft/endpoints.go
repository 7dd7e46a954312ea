package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cfnread"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"go.uber.org/zap"
)

type EndpointsCmd struct {
	Deployment string `arg:"" optional:"" help:"Deployment name (e.g., Stag, Prod). Defaults to PAGECRAFT_DEPLOYMENT."`
}

func (c *EndpointsCmd) Run(cfg *cliconf.Env, _ *zap.Logger) error {
	ctx := context.Background()

	cctx, err := cdkctx.Load(cfg.InfraDir)
	if err != nil {
		return err
	}

	deployment, err := resolveDeployment(cfg, cctx, c.Deployment)
	if err != nil {
		return err
	}

	for _, region := range cctx.AllRegions() {
		api, err := cfnread.NewClient(ctx, region)
		if err != nil {
			return err
		}

		stacks := []string{cctx.SharedStackName(region), cctx.DeploymentStackName(deployment, region)}
		for _, stack := range stacks {
			fmt.Fprintf(os.Stdout, "=== %s (%s) ===\n", stack, region)

			outputs, err := cfnread.StackOutputs(ctx, api, stack)
			if err != nil {
				fmt.Fprintln(os.Stdout, "(not deployed)")
				fmt.Fprintln(os.Stdout)
				continue
			}

			keys := make([]string, 0, len(outputs))
			for key := range outputs {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(os.Stdout, "%-28s %s\n", key, outputs[key])
			}
			fmt.Fprintln(os.Stdout)
		}
	}

	return nil
}
