package main

import (
	"github.com/cockroachdb/errors"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
)

// resolveDeployment picks the deployment from the argument or the
// PAGECRAFT_DEPLOYMENT environment default, and validates it against the
// configured deployments.
func resolveDeployment(cfg *cliconf.Env, cctx *cdkctx.CDKContext, arg string) (string, error) {
	deployment := arg
	if deployment == "" {
		deployment = cfg.Deployment
	}
	if deployment == "" {
		return "", errors.Newf("no deployment given: pass one of %v or set PAGECRAFT_DEPLOYMENT",
			cctx.Deployments)
	}
	if !cctx.IsValidDeployment(deployment) {
		return "", errors.Newf("unknown deployment %q, configured deployments: %v",
			deployment, cctx.Deployments)
	}
	return deployment, nil
}
