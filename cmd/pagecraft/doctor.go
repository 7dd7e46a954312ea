package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pagecrafthq/pagecraft/cmd/internal/bincheck"
	"github.com/pagecrafthq/pagecraft/cmd/internal/cliconf"
	"go.uber.org/zap"
)

// requiredBinaries are the external tools the CLI shells out to. The CDK CLI
// needs node; go builds the CDK app during synthesis.
var requiredBinaries = []string{"node", "cdk", "go"}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(_ *cliconf.Env, _ *zap.Logger) error {
	ctx := context.Background()
	checker := bincheck.NewChecker()

	var missing []string
	for _, name := range requiredBinaries {
		res := checker.Check(ctx, name)
		if !res.InPath {
			fmt.Fprintf(os.Stdout, "%-8s MISSING\n", name)
			missing = append(missing, name)
			continue
		}
		fmt.Fprintf(os.Stdout, "%-8s ok  %s\n", name, res.Version)
	}

	if len(missing) > 0 {
		return errors.Newf("missing required tools: %v", missing)
	}
	return nil
}
