package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkcdn"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkcerts"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkdns"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdksite"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

// NewDeployment creates the site stack contents for one deployment in one
// region: the website bucket and, when enabled, the CloudFront distribution
// plus its DNS alias records.
func NewDeployment(stack awscdk.Stack, shared *Shared, deploymentIdent string) {
	cfg := pccdkutil.ConfigFromScope(stack)

	siteProps := pccdksite.Props{}
	if cfg.ContentDir != "" {
		siteProps.ContentDir = jsii.String(cfg.ContentDir)
	}
	site := pccdksite.New(stack, siteProps)

	if !cfg.CDNEnabled {
		// The site is reachable on the bare S3 website endpoint.
		return
	}

	// CloudFront alias names are exclusive across distributions, so only the
	// primary region's distribution carries the certificate and alias list.
	// Secondary distributions stay on the default CloudFront certificate.
	primary := pccdkutil.IsPrimaryRegionStack(stack, stack)

	cdnProps := pccdkcdn.Props{
		Site:         site,
		Certificates: pccdkcerts.None(),
		LogBucket:    shared.Logs.Bucket(),
	}
	if primary {
		cdnProps.Certificates = pccdkcerts.Lookup(stack)
		cdnProps.Aliases = cfg.SiteAliases(deploymentIdent)
	}

	cdn := pccdkcdn.New(stack, cdnProps)

	// Alias records are global; register them once, from the primary region.
	if primary && cdnProps.Certificates.IsIssued() {
		for _, domain := range cfg.SiteAliases(deploymentIdent) {
			pccdkdns.AliasRecords(stack, "Alias"+domainConstructID(domain),
				shared.DNS.HostedZone(), domain, cdn.Distribution())
		}
	}
}

// domainConstructID turns a domain into a CDK construct ID fragment.
func domainConstructID(domain string) string {
	id := make([]rune, 0, len(domain))
	for _, r := range domain {
		if r == '.' || r == '-' {
			continue
		}
		id = append(id, r)
	}
	return string(id)
}
