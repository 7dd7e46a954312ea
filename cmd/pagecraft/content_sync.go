package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"github.com/pagecrafthq/pagecraft/cmd/internal/contentsync"
	"go.uber.org/zap"
)

type ContentSyncCmd struct {
	Dir        string `arg:"" help:"Directory with site content (HTML files and assets)." type:"existingdir"`
	Deployment string `arg:"" optional:"" help:"Deployment name (e.g., Stag, Prod). Defaults to PAGECRAFT_DEPLOYMENT."`
	DryRun     bool   `help:"Print the upload plan without uploading."`
}

func (c *ContentSyncCmd) Run(cfg *cliconf.Env, log *zap.Logger) error {
	ctx := context.Background()

	cctx, err := cdkctx.Load(cfg.InfraDir)
	if err != nil {
		return err
	}

	deployment, err := resolveDeployment(cfg, cctx, c.Deployment)
	if err != nil {
		return err
	}

	objects, err := contentsync.Plan(c.Dir)
	if err != nil {
		return err
	}

	// Bucket names carry the region ident, so every configured region has its
	// own bucket to fill.
	for _, region := range cctx.AllRegions() {
		bucket := cctx.SiteBucketName(deployment, region)

		if c.DryRun {
			for _, obj := range objects {
				fmt.Fprintf(os.Stdout, "s3://%s/%-40s %s\n", bucket, obj.Key, obj.ContentType)
			}
			continue
		}

		api, err := contentsync.NewClient(ctx, region)
		if err != nil {
			return err
		}

		log.Info("syncing content",
			zap.String("dir", c.Dir),
			zap.String("region", region),
			zap.String("bucket", bucket),
			zap.Int("objects", len(objects)))

		if err := contentsync.Upload(ctx, api, bucket, objects, log); err != nil {
			return err
		}
	}

	return nil
}
