// Package pccdkcerts provides the ACM certificate the CDN presents to viewers.
//
// The certificate source follows a fixed precedence: an operator-provided ARN
// wins, then a previously issued certificate discovered through the ACM API
// (`pagecraft certs find`), then a newly created DNS-validated certificate.
// Only issued certificates are attached to the distribution; a freshly created
// certificate that may still be pending validation leaves the CDN on the
// default CloudFront certificate until validation completes.
//
// CloudFront only accepts certificates from us-east-1, so the construct must
// be created in a us-east-1 stack. The resulting ARN is stored in SSM
// Parameter Store so site stacks in other regions can reference it.
package pccdkcerts

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkparams"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

const paramsNamespace = "certs"

// certRegion is the only region CloudFront accepts viewer certificates from.
const certRegion = "us-east-1"

// Certificates provides access to the site certificate.
type Certificates interface {
	// Certificate returns the ACM certificate, or nil when none is configured.
	Certificate() awscertificatemanager.ICertificate

	// IsIssued reports whether the certificate is known to be validated and
	// therefore usable as a CloudFront viewer certificate. A provided or
	// discovered certificate is always issued; a newly created one only counts
	// as issued when DNS delegation is complete so its DNS validation can
	// succeed during deployment.
	IsIssued() bool
}

// Props configures the Certificates construct.
type Props struct {
	// HostedZone is the Route53 hosted zone used for DNS validation when a new
	// certificate is created. Optional; without it a new certificate falls
	// back to CNAME records the operator must create by hand.
	HostedZone awsroute53.IHostedZone
}

type certificates struct {
	certificate awscertificatemanager.ICertificate
	issued      bool
}

// None returns a Certificates value carrying no certificate. Distributions
// outside the primary region use it to stay on the default CloudFront
// certificate: alias names are exclusive across distributions, so only one
// region's distribution may present the site certificate.
func None() Certificates {
	return &certificates{}
}

// New resolves the site certificate in the shared us-east-1 stack.
//
// Depending on the configured precedence it either imports an existing
// certificate by ARN or creates a new one for the apex domain plus
// "*.{domain}". The resolved ARN is stored in SSM Parameter Store under
// /{qualifier}/certs/site-cert-arn for cross-region access.
//
// It panics when created outside us-east-1 since CloudFront would reject the
// certificate anyway.
func New(scope constructs.Construct, props Props) Certificates {
	scope = constructs.NewConstruct(scope, jsii.String("Certificates"))
	con := &certificates{}

	if region := *awscdk.Stack_Of(scope).Region(); region != certRegion {
		panic("pccdkcerts: CloudFront viewer certificates must live in " + certRegion +
			", but this stack deploys to " + region)
	}

	cfg := pccdkutil.ConfigFromScope(scope)

	switch SelectSource(cfg.CertificateArn, cfg.IssuedCertificateArn, cfg.CreateCertificate) {
	case SourceProvided:
		con.certificate = awscertificatemanager.Certificate_FromCertificateArn(scope,
			jsii.String("ProvidedCertificate"), jsii.String(cfg.CertificateArn))
		con.issued = true

	case SourceDiscovered:
		con.certificate = awscertificatemanager.Certificate_FromCertificateArn(scope,
			jsii.String("DiscoveredCertificate"), jsii.String(cfg.IssuedCertificateArn))
		con.issued = true

	case SourceCreated:
		certProps := &awscertificatemanager.CertificateProps{
			DomainName:              cfg.BaseDomainNamePtr(),
			SubjectAlternativeNames: &[]*string{jsii.String("*." + cfg.BaseDomainName)},
		}
		if props.HostedZone != nil {
			certProps.Validation = awscertificatemanager.CertificateValidation_FromDns(props.HostedZone)
		}
		con.certificate = awscertificatemanager.NewCertificate(scope,
			jsii.String("SiteCertificate"), certProps)

		// DNS validation can only complete when the zone is actually delegated.
		con.issued = cfg.DNSDelegated && props.HostedZone != nil

	case SourceNone:
		return con
	}

	pccdkparams.Store(scope, "CertificateArnParam", paramsNamespace, "site-cert-arn",
		con.certificate.CertificateArn())

	return con
}

// Lookup resolves the site certificate inside a deployment stack.
//
// Provided and discovered ARNs are known at synth time and are imported
// directly, keeping the precedence identical to New. A created certificate's
// ARN is only known to the shared stack, so it is retrieved from SSM
// Parameter Store: locally in the primary region, via a cross-region custom
// resource elsewhere.
//
// When no issued certificate is available the returned construct carries a
// nil certificate and IsIssued reports false, which makes the CDN fall back
// to the default CloudFront certificate.
func Lookup(scope constructs.Construct) Certificates {
	scope = constructs.NewConstruct(scope, jsii.String("LookupCertificates"))
	con := &certificates{}

	cfg := pccdkutil.ConfigFromScope(scope)
	if !cfg.HasIssuedCertificate() {
		return con
	}

	switch SelectSource(cfg.CertificateArn, cfg.IssuedCertificateArn, cfg.CreateCertificate) {
	case SourceProvided:
		con.certificate = awscertificatemanager.Certificate_FromCertificateArn(scope,
			jsii.String("ProvidedCertificate"), jsii.String(cfg.CertificateArn))

	case SourceDiscovered:
		con.certificate = awscertificatemanager.Certificate_FromCertificateArn(scope,
			jsii.String("DiscoveredCertificate"), jsii.String(cfg.IssuedCertificateArn))

	case SourceCreated:
		var certArn *string
		region := *awscdk.Stack_Of(scope).Region()
		if pccdkutil.IsPrimaryRegion(scope, region) {
			certArn = pccdkparams.LookupLocal(scope, paramsNamespace, "site-cert-arn")
		} else {
			certArn = pccdkparams.Lookup(scope, "LookupCertificateArn",
				paramsNamespace, "site-cert-arn", "site-cert-arn-lookup")
		}
		con.certificate = awscertificatemanager.Certificate_FromCertificateArn(scope,
			jsii.String("SharedCertificate"), certArn)

	case SourceNone:
		return con
	}

	con.issued = true
	return con
}

func (c *certificates) Certificate() awscertificatemanager.ICertificate {
	return c.certificate
}

func (c *certificates) IsIssued() bool {
	return c.issued
}
