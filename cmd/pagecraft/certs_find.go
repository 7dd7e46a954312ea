package main

import (
	"context"

	"github.com/pagecrafthq/pagecraft/cmd/internal/acmlookup"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"go.uber.org/zap"
)

type CertsFindCmd struct {
	Domain string `help:"Domain to find a certificate for. Defaults to the configured base domain."`
}

// Run resolves the lookup leg of the certificate precedence: it searches
// us-east-1 for an issued certificate covering the domain and records the ARN
// in cdk.context.json. An explicitly configured certificate ARN still takes
// precedence at synth time.
func (c *CertsFindCmd) Run(cfg *cliconf.Env, log *zap.Logger) error {
	ctx := context.Background()

	cctx, err := cdkctx.Load(cfg.InfraDir)
	if err != nil {
		return err
	}

	domain := c.Domain
	if domain == "" {
		domain = cctx.BaseDomainName
	}

	api, err := acmlookup.NewClient(ctx)
	if err != nil {
		return err
	}

	arn, err := acmlookup.Find(ctx, api, domain, log)
	if err != nil {
		return err
	}

	if err := cctx.WriteIssuedCertificateArn(cfg.InfraDir, arn); err != nil {
		return err
	}

	log.Info("recorded issued certificate in CDK context",
		zap.String("domain", domain),
		zap.String("arn", arn),
		zap.String("context_file", cdkctx.ContextFile))
	log.Info("redeploy to attach the certificate to the distribution")
	return nil
}
