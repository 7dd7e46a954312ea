// Package pccdkcdn provides the CloudFront distribution fronting the site's
// S3 website endpoint.
//
// The origin is the bucket's website endpoint (plain HTTP only; website
// endpoints do not terminate TLS), which keeps S3's own index/error document
// handling. The distribution has two cache behaviors: a long-TTL default for
// fingerprinted assets and a short-TTL "*.html" behavior so page updates
// surface quickly.
//
// The viewer certificate is conditional: with an issued ACM certificate the
// distribution serves the alias domains over SNI; without one it stays on the
// default CloudFront certificate and carries no aliases, since CloudFront
// rejects aliases that no certificate covers.
package pccdkcdn

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkcerts"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdksite"
)

// DistributionDomainOutputKey is the CloudFormation output key for the
// distribution's CloudFront domain name.
const DistributionDomainOutputKey = "CdnDistributionDomain"

// CDN provides access to the site's CloudFront distribution.
type CDN interface {
	// Distribution returns the CloudFront distribution.
	Distribution() awscloudfront.IDistribution

	// UsesSiteCertificate reports whether the distribution presents the site's
	// own ACM certificate (and therefore answers for the alias domains).
	UsesSiteCertificate() bool
}

// Props configures the CDN construct.
type Props struct {
	// Site is the website bucket construct the distribution fronts.
	// Required.
	Site pccdksite.Site

	// Certificates resolves the viewer certificate. Required; use
	// pccdkcerts.Lookup in deployment stacks. A non-issued certificate leaves
	// the distribution on the default CloudFront certificate.
	Certificates pccdkcerts.Certificates

	// Aliases are the domain names the distribution answers for. Only applied
	// when the certificate is issued.
	Aliases []string

	// LogBucket optionally receives CloudFront access logs.
	LogBucket awss3.IBucket
}

type cdn struct {
	distribution awscloudfront.IDistribution
	usesSiteCert bool
}

// New creates the CloudFront distribution for the enclosing deployment stack.
// The distribution's domain name is exported as a stack output.
func New(scope constructs.Construct, props Props) CDN {
	scope = constructs.NewConstruct(scope, jsii.String("CDN"))
	con := &cdn{}

	origin := awscloudfrontorigins.NewHttpOrigin(props.Site.WebsiteDomain(),
		&awscloudfrontorigins.HttpOriginProps{
			// S3 website endpoints serve plain HTTP only.
			ProtocolPolicy: awscloudfront.OriginProtocolPolicy_HTTP_ONLY,
		})

	// Pages revalidate quickly; everything else keeps the managed long-TTL
	// policy from the default behavior.
	htmlCachePolicy := awscloudfront.NewCachePolicy(scope, jsii.String("HtmlCachePolicy"),
		&awscloudfront.CachePolicyProps{
			Comment:                    jsii.String("Short TTL for HTML documents"),
			MinTtl:                     awscdk.Duration_Seconds(jsii.Number(0)),
			DefaultTtl:                 awscdk.Duration_Minutes(jsii.Number(5)),
			MaxTtl:                     awscdk.Duration_Hours(jsii.Number(1)),
			EnableAcceptEncodingGzip:   jsii.Bool(true),
			EnableAcceptEncodingBrotli: jsii.Bool(true),
		})

	distProps := &awscloudfront.DistributionProps{
		Comment: jsii.Sprintf("Static site distribution (%s)", *props.Site.Bucket().BucketName()),
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               origin,
			AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_GET_HEAD(),
			CachePolicy:          awscloudfront.CachePolicy_CACHING_OPTIMIZED(),
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			Compress:             jsii.Bool(true),
		},
		AdditionalBehaviors: &map[string]*awscloudfront.BehaviorOptions{
			"*.html": {
				Origin:               origin,
				AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_GET_HEAD(),
				CachePolicy:          htmlCachePolicy,
				ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
				Compress:             jsii.Bool(true),
			},
		},
		DefaultRootObject: jsii.String(props.Site.IndexDocument()),
		ErrorResponses: &[]*awscloudfront.ErrorResponse{
			{
				HttpStatus:         jsii.Number(404),
				ResponseHttpStatus: jsii.Number(404),
				ResponsePagePath:   jsii.String("/" + props.Site.ErrorDocument()),
				Ttl:                awscdk.Duration_Minutes(jsii.Number(1)),
			},
		},
		PriceClass:             awscloudfront.PriceClass_PRICE_CLASS_100,
		EnableIpv6:             jsii.Bool(true),
		HttpVersion:            awscloudfront.HttpVersion_HTTP2_AND_3,
		MinimumProtocolVersion: awscloudfront.SecurityPolicyProtocol_TLS_V1_2_2021,
	}

	if props.Certificates.IsIssued() && props.Certificates.Certificate() != nil {
		distProps.Certificate = props.Certificates.Certificate()
		distProps.DomainNames = jsii.Strings(props.Aliases...)
		con.usesSiteCert = true
	}

	if props.LogBucket != nil {
		distProps.EnableLogging = jsii.Bool(true)
		distProps.LogBucket = props.LogBucket
		distProps.LogFilePrefix = jsii.String("cdn/")
	}

	con.distribution = awscloudfront.NewDistribution(scope, jsii.String("Distribution"), distProps)

	awscdk.NewCfnOutput(awscdk.Stack_Of(scope), jsii.String(DistributionDomainOutputKey),
		&awscdk.CfnOutputProps{
			Value:       con.distribution.DistributionDomainName(),
			Description: jsii.String("CloudFront domain name for the site"),
		})

	return con
}

func (c *cdn) Distribution() awscloudfront.IDistribution {
	return c.distribution
}

func (c *cdn) UsesSiteCertificate() bool {
	return c.usesSiteCert
}
