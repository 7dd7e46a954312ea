// Package cdk declares the pagecraft infrastructure: per-region shared
// foundations (DNS, logs, certificate) and per-deployment site stacks
// (bucket, CDN, alias records).
package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkcerts"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkdns"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdklogs"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

// Shared holds the foundational constructs of a region.
type Shared struct {
	DNS   pccdkdns.DNS
	Logs  pccdklogs.Logs
	Certs pccdkcerts.Certificates
}

// NewShared creates the shared stack contents for one region.
//
// Every region gets an access-log bucket and a hosted zone reference. The
// certificate is resolved only in the primary region (which must be us-east-1
// when a certificate is wanted, since CloudFront accepts viewer certificates
// from nowhere else); other regions reach it through SSM.
func NewShared(stack awscdk.Stack) *Shared {
	shared := &Shared{}

	shared.Logs = pccdklogs.New(stack, "AccessLogs", pccdklogs.Props{
		Purpose: jsii.String("CDN and site access logs"),
	})

	shared.DNS = pccdkdns.New(stack, pccdkdns.Props{})

	cfg := pccdkutil.ConfigFromScope(stack)
	wantsCertificate := cfg.CertificateArn != "" || cfg.IssuedCertificateArn != "" || cfg.CreateCertificate

	if pccdkutil.IsPrimaryRegionStack(stack, stack) && wantsCertificate {
		shared.Certs = pccdkcerts.New(stack, pccdkcerts.Props{
			HostedZone: shared.DNS.HostedZone(),
		})
	}

	return shared
}
