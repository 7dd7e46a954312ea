// Package cfnread reads CloudFormation stack outputs through the AWS SDK.
package cfnread

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/cockroachdb/errors"
)

// DescribeStacksAPI is the slice of the CloudFormation client used here.
type DescribeStacksAPI interface {
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput,
		optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
}

// NewClient builds a CloudFormation client for the given region using the
// default credential chain.
func NewClient(ctx context.Context, region string) (*cloudformation.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return cloudformation.NewFromConfig(cfg), nil
}

// StackOutputs returns the outputs of a stack as a key/value map.
func StackOutputs(ctx context.Context, api DescribeStacksAPI, stackName string) (map[string]string, error) {
	resp, err := api.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "describing stack %s", stackName)
	}

	if len(resp.Stacks) == 0 {
		return nil, errors.Newf("stack %s not found", stackName)
	}

	outputs := make(map[string]string, len(resp.Stacks[0].Outputs))
	for _, o := range resp.Stacks[0].Outputs {
		outputs[aws.ToString(o.OutputKey)] = aws.ToString(o.OutputValue)
	}
	return outputs, nil
}
