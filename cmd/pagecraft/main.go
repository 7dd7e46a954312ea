// Command pagecraft is the operator CLI for the pagecraft static-site
// infrastructure: it wraps the CDK toolchain, resolves issued ACM
// certificates into CDK context, uploads site content, and reports the
// deployed endpoints.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"go.uber.org/zap"
)

// version is stamped by the release build.
var version = "dev"

type App struct {
	Version kong.VersionFlag `help:"Show version."`
	Verbose bool             `short:"v" help:"Enable debug logging."`

	Doctor DoctorCmd `cmd:"" help:"Check that all required tools are present."`
	Cdk    struct {
		Bootstrap BootstrapCmd `cmd:"" help:"Bootstrap CDK in the current AWS account/region."`
		Synth     SynthCmd     `cmd:"" help:"Synthesize all stacks."`
		Diff      DiffCmd      `cmd:"" help:"Show CDK diff for a deployment."`
		Deploy    DeployCmd    `cmd:"" help:"Deploy CDK stacks for a deployment."`
	} `cmd:"" help:"CDK commands."`
	Endpoints EndpointsCmd `cmd:"" help:"Show the deployed site endpoints and name servers."`
	Certs     struct {
		Find CertsFindCmd `cmd:"" help:"Find an issued ACM certificate for the domain and record it in CDK context."`
	} `cmd:"" help:"Certificate commands."`
	Content struct {
		Sync ContentSyncCmd `cmd:"" help:"Upload a content directory to the deployment's site bucket."`
	} `cmd:"" help:"Site content commands."`
}

func main() {
	cfg, err := cliconf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var app App
	ctx := kong.Parse(&app,
		kong.Name("pagecraft"),
		kong.Description("Static website hosting CLI (S3, CloudFront, ACM)."),
		kong.Vars{"version": version},
		kong.Bind(cfg),
	)

	log := newLogger(app.Verbose)
	defer log.Sync() //nolint:errcheck // stderr sync is best-effort

	if err := ctx.Run(log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return log
}
