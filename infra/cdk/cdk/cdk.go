package main

import (
	"github.com/pagecrafthq/pagecraft/infra/cdk"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

func main() {
	defer jsii.Close()
	app := awscdk.NewApp(nil)

	pccdkutil.SetupApp(app, pccdkutil.AppConfig{
		Prefix: cdk.ContextPrefix,
	},
		cdk.NewShared,
		cdk.NewDeployment,
	)

	app.Synth(nil)
}
