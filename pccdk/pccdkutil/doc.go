// Package pccdkutil provides utilities for the pagecraft AWS CDK application.
//
// # Quick Start
//
// Use [SetupApp] to configure a multi-region, multi-deployment CDK application:
//
//	func main() {
//	    defer jsii.Close()
//	    app := awscdk.NewApp(nil)
//
//	    pccdkutil.SetupApp(app, pccdkutil.AppConfig{
//	        Prefix: "pagecraft-",
//	    },
//	        func(stack awscdk.Stack) *Shared { return NewShared(stack) },
//	        func(stack awscdk.Stack, shared *Shared, deploymentIdent string) {
//	            NewDeployment(stack, shared, deploymentIdent)
//	        },
//	    )
//
//	    app.Synth(nil)
//	}
//
// # CDK Context Configuration
//
// The package reads configuration from CDK context (cdk.json). With prefix
// "pagecraft-":
//
//	{
//	  "pagecraft-qualifier": "pagecraft",
//	  "pagecraft-primary-region": "us-east-1",
//	  "pagecraft-secondary-regions": ["eu-west-1"],
//	  "pagecraft-deployments": ["Dev", "Stag", "Prod"],
//	  "pagecraft-base-domain-name": "example.com",
//	  "pagecraft-cdn-enabled": true,
//	  "pagecraft-create-certificate": true
//	}
//
// Optional keys control the TLS certificate the CDN presents. An explicitly
// provided "pagecraft-certificate-arn" always wins; otherwise a previously
// issued certificate recorded under "pagecraft-issued-certificate-arn"
// (written by `pagecraft certs find`) is used; otherwise a new certificate
// is requested when "pagecraft-create-certificate" is set.
//
// # Stack Creation Order
//
// [SetupApp] creates stacks with the following dependency order:
//  1. Primary shared stack
//  2. Secondary shared stacks (depend on primary shared)
//  3. Primary deployment stacks (depend on primary shared)
//  4. Secondary deployment stacks (depend on primary deployment)
package pccdkutil
