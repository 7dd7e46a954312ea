// Package pccdksite provides the S3 static-website bucket for a deployment.
//
// The bucket is configured for website hosting (index and error documents),
// uses S3-managed encryption, and carries a public-read bucket policy. S3
// website endpoints only work with publicly readable objects, so the construct
// relaxes the bucket's public access block and grants anonymous s3:GetObject
// on all objects.
package pccdksite

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkparams"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

const paramsNamespace = "site"

// WebsiteURLOutputKey is the CloudFormation output key for the bucket's
// website endpoint URL.
const WebsiteURLOutputKey = "SiteWebsiteURL"

// DefaultIndexDocument is served for directory requests.
const DefaultIndexDocument = "index.html"

// DefaultErrorDocument is served for missing objects.
const DefaultErrorDocument = "error.html"

// Site provides access to the website bucket of a deployment.
type Site interface {
	// Bucket returns the website bucket.
	Bucket() awss3.IBucket

	// WebsiteDomain returns the bucket's website endpoint domain name
	// (e.g., "bucket.s3-website-us-east-1.amazonaws.com"). This is the CDN
	// origin; website endpoints speak plain HTTP only.
	WebsiteDomain() *string

	// IndexDocument returns the configured index document name.
	IndexDocument() string

	// ErrorDocument returns the configured error document name.
	ErrorDocument() string
}

// Props configures the Site construct.
type Props struct {
	// BucketName overrides the derived bucket name. Optional; the default is
	// "{qualifier}-{deployment}-site" in kebab case.
	BucketName *string

	// IndexDocument and ErrorDocument override the website documents.
	// Optional; default to index.html and error.html.
	IndexDocument *string
	ErrorDocument *string

	// ContentDir optionally points at a local directory whose contents are
	// uploaded to the bucket at deploy time. When nil, content is published
	// out-of-band (e.g., with `pagecraft content sync`).
	ContentDir *string
}

type site struct {
	bucket        awss3.IBucket
	indexDocument string
	errorDocument string
}

// New creates the website bucket for the enclosing deployment stack.
//
// Prod buckets are retained on stack deletion; all other deployments destroy
// the bucket (and its objects) with the stack. The bucket name is stored in
// SSM Parameter Store under /{qualifier}/site/{deployment}/bucket-name so the
// CLI can find it, and the website URL is exported as a stack output.
func New(scope constructs.Construct, props Props) Site {
	scope = constructs.NewConstruct(scope, jsii.String("Site"))

	con := &site{
		indexDocument: DefaultIndexDocument,
		errorDocument: DefaultErrorDocument,
	}
	if props.IndexDocument != nil && *props.IndexDocument != "" {
		con.indexDocument = *props.IndexDocument
	}
	if props.ErrorDocument != nil && *props.ErrorDocument != "" {
		con.errorDocument = *props.ErrorDocument
	}

	// Bucket names are global; include the region ident so the same deployment
	// can exist in multiple regions.
	region := *awscdk.Stack_Of(scope).Region()
	bucketName := pccdkutil.ResourceName(scope,
		"site-"+pccdkutil.RegionIdentLower(region), pccdkutil.CasingKebab)
	if props.BucketName != nil && *props.BucketName != "" {
		bucketName = *props.BucketName
	}

	deploymentIdent := pccdkutil.DeploymentIdent(scope)

	bucketProps := &awss3.BucketProps{
		BucketName:           jsii.String(bucketName),
		WebsiteIndexDocument: jsii.String(con.indexDocument),
		WebsiteErrorDocument: jsii.String(con.errorDocument),
		Encryption:           awss3.BucketEncryption_S3_MANAGED,
		// The public-read policy below requires lifting the account-default
		// public access block for this bucket.
		BlockPublicAccess: awss3.NewBlockPublicAccess(&awss3.BlockPublicAccessOptions{
			BlockPublicAcls:       jsii.Bool(false),
			BlockPublicPolicy:     jsii.Bool(false),
			IgnorePublicAcls:      jsii.Bool(false),
			RestrictPublicBuckets: jsii.Bool(false),
		}),
	}

	if deploymentIdent == "Prod" {
		bucketProps.RemovalPolicy = awscdk.RemovalPolicy_RETAIN
	} else {
		bucketProps.RemovalPolicy = awscdk.RemovalPolicy_DESTROY
		bucketProps.AutoDeleteObjects = jsii.Bool(true)
	}

	bucket := awss3.NewBucket(scope, jsii.String("Bucket"), bucketProps)
	con.bucket = bucket

	bucket.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Sid:        jsii.String("PublicReadGetObject"),
		Effect:     awsiam.Effect_ALLOW,
		Principals: &[]awsiam.IPrincipal{awsiam.NewAnyPrincipal()},
		Actions:    jsii.Strings("s3:GetObject"),
		Resources:  &[]*string{bucket.ArnForObjects(jsii.String("*"))},
	}))

	if props.ContentDir != nil && *props.ContentDir != "" {
		awss3deployment.NewBucketDeployment(scope, jsii.String("Content"),
			&awss3deployment.BucketDeploymentProps{
				Sources: &[]awss3deployment.ISource{
					awss3deployment.Source_Asset(props.ContentDir, nil),
				},
				DestinationBucket: bucket,
			})
	}

	pccdkparams.Store(scope, "BucketNameParam", paramsNamespace,
		paramName(deploymentIdent), jsii.String(bucketName))

	awscdk.NewCfnOutput(awscdk.Stack_Of(scope), jsii.String(WebsiteURLOutputKey), &awscdk.CfnOutputProps{
		Value:       bucket.BucketWebsiteUrl(),
		Description: jsii.String("S3 website endpoint for the site bucket"),
	})

	return con
}

func paramName(deploymentIdent string) string {
	return strings.ToLower(deploymentIdent) + "/bucket-name"
}

func (s *site) Bucket() awss3.IBucket {
	return s.bucket
}

func (s *site) WebsiteDomain() *string {
	return s.bucket.BucketWebsiteDomainName()
}

func (s *site) IndexDocument() string {
	return s.indexDocument
}

func (s *site) ErrorDocument() string {
	return s.errorDocument
}
