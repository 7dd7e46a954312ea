// Package pccdklogs provides a standardized S3 access-log bucket construct.
//
// CloudFront and S3 server access logging both deliver into this bucket. Log
// delivery uses bucket ACLs, so the bucket enables ACL-based object ownership,
// which current CDK defaults otherwise forbid. All log buckets created with
// this construct export their names as stack outputs for CLI discovery.
package pccdklogs

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// Logs provides access to an S3 bucket receiving access logs.
type Logs interface {
	// Bucket returns the log delivery bucket.
	Bucket() awss3.IBucket
}

// Props configures the Logs construct.
type Props struct {
	// Purpose describes what the logs are for (e.g., "CDN access logs").
	// Used in the CfnOutput description.
	// Required.
	Purpose *string

	// RetentionDays is how long log objects are kept before lifecycle expiry.
	// Defaults to 30 days.
	RetentionDays *float64
}

type logs struct {
	bucket awss3.IBucket
}

// New creates a Logs construct with standardized configuration.
//
// The bucket is created with:
//   - ACL-enabled object ownership (required for CloudFront log delivery)
//   - S3-managed encryption and a full public access block
//   - A lifecycle rule expiring objects after RetentionDays
//   - RemovalPolicy DESTROY with auto-deleted objects (logs die with the stack)
//
// A CfnOutput is created with key "{id}LogBucket" carrying the bucket name.
func New(scope constructs.Construct, id string, props Props) Logs {
	scope = constructs.NewConstruct(scope, jsii.String(id))
	con := &logs{}

	retention := 30.0
	if props.RetentionDays != nil {
		retention = *props.RetentionDays
	}

	bucket := awss3.NewBucket(scope, jsii.String("Bucket"), &awss3.BucketProps{
		ObjectOwnership:   awss3.ObjectOwnership_OBJECT_WRITER,
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
		LifecycleRules: &[]*awss3.LifecycleRule{
			{
				Expiration: awscdk.Duration_Days(jsii.Number(retention)),
			},
		},
	})
	con.bucket = bucket

	awscdk.NewCfnOutput(scope, jsii.String("LogBucketOutput"), &awscdk.CfnOutputProps{
		Key:         jsii.String(id + "LogBucket"),
		Description: jsii.String("S3 access log bucket for " + *props.Purpose),
		Value:       bucket.BucketName(),
	})

	return con
}

func (l *logs) Bucket() awss3.IBucket {
	return l.bucket
}
