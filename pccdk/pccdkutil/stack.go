package pccdkutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/iancoleman/strcase"
)

// SharedStackName returns the CloudFormation stack name for a shared stack.
// This is the canonical function for generating shared stack names.
func SharedStackName(qualifier, regionIdent string) string {
	base := strcase.ToLowerCamel(fmt.Sprintf("%s-%s", qualifier, regionIdent))
	return base + "Shared"
}

// DeploymentStackName returns the CloudFormation stack name for a deployment stack.
// This is the canonical function for generating deployment stack names.
func DeploymentStackName(qualifier, regionIdent, deploymentIdent string) string {
	base := strcase.ToLowerCamel(fmt.Sprintf("%s-%s", qualifier, regionIdent))
	return base + deploymentIdent
}

// NewStackFromConfig creates a new CDK Stack using a validated Config.
// The stack carries the configured tags and, for deployment stacks, stores the
// deployment identifier in its context for retrieval via DeploymentIdent.
func NewStackFromConfig(
	scope constructs.Construct, cfg *Config, region string, deploymentIdent ...string,
) awscdk.Stack {
	var stackName string
	var description string

	regionAcronym := cfg.RegionIdent(region)
	baseIdent := strcase.ToLowerCamel(fmt.Sprintf("%s-%s", cfg.Qualifier, regionAcronym))

	switch {
	case len(deploymentIdent) > 0 && deploymentIdent[0] != "":
		dident := deploymentIdent[0]
		if strings.ToUpper(string(dident[0])) != string(dident[0]) {
			panic("deployment identifier must start with a upper-case letter, got: " + dident)
		}

		stackName = DeploymentStackName(cfg.Qualifier, regionAcronym, dident)
		description = fmt.Sprintf("%s (region: %s, deployment: %s)", baseIdent, region, dident)
	case len(deploymentIdent) > 0:
		panic("invalid deploymentIdent: " + deploymentIdent[0])
	default:
		stackName = SharedStackName(cfg.Qualifier, regionAcronym)
		description = fmt.Sprintf("%s (region: %s)", baseIdent, region)
	}

	stack := awscdk.NewStack(scope, jsii.String(stackName), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String(os.Getenv("CDK_DEFAULT_ACCOUNT")),
			Region:  jsii.String(region),
		},
		Description: jsii.String(description),
		Synthesizer: awscdk.NewDefaultStackSynthesizer(&awscdk.DefaultStackSynthesizerProps{
			Qualifier: jsii.String(cfg.Qualifier),
		}),
	})

	// Store deployment identifier in stack context for retrieval via DeploymentIdent().
	if len(deploymentIdent) > 0 && deploymentIdent[0] != "" {
		StoreDeploymentIdent(stack, deploymentIdent[0])
	}

	for key, value := range cfg.Tags {
		awscdk.Tags_Of(stack).Add(jsii.String(key), jsii.String(value), nil)
	}

	return stack
}

// deploymentIdentContextKey is the well-known key used to store the deployment
// identifier in a stack's context.
const deploymentIdentContextKey = "__pccdkutil_deployment_ident"

// StoreDeploymentIdent stores the deployment identifier in the construct's context.
// NewStackFromConfig calls this for deployment stacks; tests use it directly.
func StoreDeploymentIdent(scope constructs.Construct, deploymentIdent string) {
	scope.Node().SetContext(jsii.String(deploymentIdentContextKey), deploymentIdent)
}

// DeploymentIdent returns the deployment identifier of the enclosing deployment
// stack, or the empty string inside a shared stack.
func DeploymentIdent(scope constructs.Construct) string {
	val := scope.Node().TryGetContext(jsii.String(deploymentIdentContextKey))
	if val == nil {
		return ""
	}
	ident, ok := val.(string)
	if !ok {
		return ""
	}
	return ident
}
