// Package pccdkdns provides the Route53 hosted zone for the site and the alias
// records that point site domains at the CloudFront distribution.
//
// The hosted zone is created in the primary region and its ID is stored in SSM
// Parameter Store. Secondary regions look up the stored ID to reference the
// same zone without recreating it.
package pccdkdns

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkparams"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

// NameServersOutputKey is the CloudFormation output key for the hosted zone's NS records.
// Use this with `pagecraft endpoints` (or the AWS CLI) to retrieve the name
// servers that the domain registrar must delegate to.
const NameServersOutputKey = "HostedZoneNameServers"

const paramsNamespace = "dns"

// DNS provides access to a Route53 hosted zone that works across regions.
type DNS interface {
	// HostedZone returns the Route53 hosted zone.
	// In the primary region, this is the actual zone.
	// In secondary regions, this is a reference to the primary zone.
	HostedZone() awsroute53.IHostedZone
}

// Props configures the DNS construct.
type Props struct {
	// ZoneDomainName is the domain name for the hosted zone (e.g., "example.com").
	// If nil, uses the base domain name from config.
	ZoneDomainName *string
}

type dns struct {
	hostedZone awsroute53.IHostedZone
}

// New creates a DNS construct that manages a Route53 hosted zone.
//
// In the primary region: Creates a new hosted zone and stores the zone ID
// in SSM Parameter Store for cross-region access.
//
// In secondary regions: Looks up the zone ID from SSM and creates a reference
// to the existing hosted zone.
func New(scope constructs.Construct, props Props) DNS {
	scope = constructs.NewConstruct(scope, jsii.String("DNS"))
	con := &dns{}

	zoneName := props.ZoneDomainName
	if zoneName == nil {
		zoneName = pccdkutil.BaseDomainNamePtr(scope)
	}

	region := *awscdk.Stack_Of(scope).Region()

	if pccdkutil.IsPrimaryRegion(scope, region) {
		hostedZone := awsroute53.NewHostedZone(scope, jsii.String("HostedZone"),
			&awsroute53.HostedZoneProps{
				ZoneName: zoneName,
			})
		con.hostedZone = hostedZone

		pccdkparams.Store(scope, "HostedZoneIDParam", paramsNamespace, "hosted-zone-id",
			hostedZone.HostedZoneId())

		awscdk.NewCfnOutput(awscdk.Stack_Of(scope), jsii.String(NameServersOutputKey), &awscdk.CfnOutputProps{
			Value:       awscdk.Fn_Join(jsii.String(","), hostedZone.HostedZoneNameServers()),
			Description: jsii.String("Comma-separated list of NS records for DNS delegation"),
		})
	} else {
		hostedZoneID := pccdkparams.Lookup(scope, "LookupHostedZoneID",
			paramsNamespace, "hosted-zone-id", "hosted-zone-id-lookup")

		con.hostedZone = awsroute53.HostedZone_FromHostedZoneAttributes(scope, jsii.String("HostedZone"),
			&awsroute53.HostedZoneAttributes{
				HostedZoneId: hostedZoneID,
				ZoneName:     zoneName,
			})
	}

	return con
}

func (d *dns) HostedZone() awsroute53.IHostedZone {
	return d.hostedZone
}

// AliasRecords creates A and AAAA alias records in the given zone pointing a
// site domain at a CloudFront distribution. Records are global; create them
// once (in the primary region) per domain.
func AliasRecords(
	scope constructs.Construct, id string, zone awsroute53.IHostedZone,
	domain string, distribution awscloudfront.IDistribution,
) {
	scope = constructs.NewConstruct(scope, jsii.String(id))
	target := awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(distribution))

	awsroute53.NewARecord(scope, jsii.String("Alias"), &awsroute53.ARecordProps{
		Zone:       zone,
		RecordName: jsii.String(domain),
		Target:     target,
	})
	awsroute53.NewAaaaRecord(scope, jsii.String("AliasV6"), &awsroute53.AaaaRecordProps{
		Zone:       zone,
		RecordName: jsii.String(domain),
		Target:     target,
	})
}
