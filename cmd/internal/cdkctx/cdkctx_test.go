package cdkctx_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cdkctx"
)

const testCdkJSON = `{
  "app": "go run ./cdk",
  "context": {
    "@aws-cdk/core:bootstrapQualifier": "pagecraft",
    "pagecraft-primary-region": "us-east-1",
    "pagecraft-secondary-regions": ["eu-west-1"],
    "pagecraft-deployments": ["Dev", "Stag", "Prod"],
    "pagecraft-base-domain-name": "example.com"
  }
}`

func writeCdkDir(t *testing.T, cdkJSON string) string {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cdk.json"), []byte(cdkJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeCdkDir(t, testCdkJSON)

	c, err := cdkctx.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if c.Qualifier != "pagecraft" {
		t.Errorf("Qualifier = %q, want pagecraft", c.Qualifier)
	}
	if c.Prefix != "pagecraft-" {
		t.Errorf("Prefix = %q, want pagecraft-", c.Prefix)
	}
	if c.PrimaryRegion != "us-east-1" {
		t.Errorf("PrimaryRegion = %q, want us-east-1", c.PrimaryRegion)
	}
	if len(c.Deployments) != 3 || c.Deployments[1] != "Stag" {
		t.Errorf("Deployments = %v, want [Dev Stag Prod]", c.Deployments)
	}
	if c.BaseDomainName != "example.com" {
		t.Errorf("BaseDomainName = %q, want example.com", c.BaseDomainName)
	}
	if len(c.SecondaryRegions) != 1 || c.SecondaryRegions[0] != "eu-west-1" {
		t.Errorf("SecondaryRegions = %v, want [eu-west-1]", c.SecondaryRegions)
	}
	regions := c.AllRegions()
	if len(regions) != 2 || regions[0] != "us-east-1" || regions[1] != "eu-west-1" {
		t.Errorf("AllRegions() = %v, want [us-east-1 eu-west-1]", regions)
	}
}

func TestLoad_QualifierIndependentOfPrefix(t *testing.T) {
	dir := writeCdkDir(t, `{
  "context": {
    "@aws-cdk/core:bootstrapQualifier": "webinfra",
    "pagecraft-primary-region": "us-east-1",
    "pagecraft-deployments": ["Prod"],
    "pagecraft-base-domain-name": "example.com"
  }
}`)

	c, err := cdkctx.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Qualifier != "webinfra" {
		t.Errorf("Qualifier = %q, want webinfra", c.Qualifier)
	}
	if c.Prefix != "pagecraft-" {
		t.Errorf("Prefix = %q, want the fixed pagecraft- context prefix", c.Prefix)
	}
	if got := c.SharedStackName("us-east-1"); got != "webinfraUse1Shared" {
		t.Errorf("SharedStackName() = %q, want webinfraUse1Shared", got)
	}
}

func TestLoad_ContextFileOverrides(t *testing.T) {
	dir := writeCdkDir(t, testCdkJSON)

	overlay := `{"pagecraft-primary-region": "eu-west-1"}`
	if err := os.WriteFile(filepath.Join(dir, cdkctx.ContextFile), []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := cdkctx.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.PrimaryRegion != "eu-west-1" {
		t.Errorf("PrimaryRegion = %q, want eu-west-1 from %s", c.PrimaryRegion, cdkctx.ContextFile)
	}
}

func TestLoad_MissingKey(t *testing.T) {
	dir := writeCdkDir(t, `{"context": {"@aws-cdk/core:bootstrapQualifier": "pagecraft"}}`)

	if _, err := cdkctx.Load(dir); err == nil {
		t.Error("Load() should fail when required context keys are missing")
	}
}

func TestStackNames(t *testing.T) {
	c := &cdkctx.CDKContext{
		Qualifier:        "pagecraft",
		Prefix:           "pagecraft-",
		PrimaryRegion:    "us-east-1",
		SecondaryRegions: []string{"eu-west-1"},
		Deployments:      []string{"Dev", "Prod"},
	}

	if got := c.SharedStackName("us-east-1"); got != "pagecraftUse1Shared" {
		t.Errorf("SharedStackName() = %q, want pagecraftUse1Shared", got)
	}
	if got := c.DeploymentStackName("Prod", "us-east-1"); got != "pagecraftUse1Prod" {
		t.Errorf("DeploymentStackName(Prod) = %q, want pagecraftUse1Prod", got)
	}
	if got := c.DeploymentStackName("Prod", "eu-west-1"); got != "pagecraftEuw1Prod" {
		t.Errorf("DeploymentStackName(Prod, eu-west-1) = %q, want pagecraftEuw1Prod", got)
	}
	if got := c.SiteBucketName("Dev", "us-east-1"); got != "pagecraft-dev-site-use1" {
		t.Errorf("SiteBucketName(Dev) = %q, want pagecraft-dev-site-use1", got)
	}
	if got := c.SiteBucketName("Dev", "eu-west-1"); got != "pagecraft-dev-site-euw1" {
		t.Errorf("SiteBucketName(Dev, eu-west-1) = %q, want pagecraft-dev-site-euw1", got)
	}

	globs := c.StackGlobs("Dev")
	if len(globs) != 2 || globs[0] != "pagecraft*Shared" || globs[1] != "pagecraft*Dev" {
		t.Errorf("StackGlobs(Dev) = %v, want [pagecraft*Shared pagecraft*Dev]", globs)
	}

	if !c.IsValidDeployment("Dev") || c.IsValidDeployment("Qa") {
		t.Error("IsValidDeployment should accept Dev and reject Qa")
	}
}

func TestWriteIssuedCertificateArn(t *testing.T) {
	dir := writeCdkDir(t, testCdkJSON)

	existing := `{"availability-zones:account=1:region=us-east-1": ["us-east-1a"]}`
	if err := os.WriteFile(filepath.Join(dir, cdkctx.ContextFile), []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := cdkctx.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	const arn = "arn:aws:acm:us-east-1:123456789012:certificate/abc"
	if err := c.WriteIssuedCertificateArn(dir, arn); err != nil {
		t.Fatalf("WriteIssuedCertificateArn() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, cdkctx.ContextFile))
	if err != nil {
		t.Fatal(err)
	}
	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(data, &overlay); err != nil {
		t.Fatalf("written %s is not valid JSON: %v", cdkctx.ContextFile, err)
	}

	var got string
	if err := json.Unmarshal(overlay["pagecraft-issued-certificate-arn"], &got); err != nil || got != arn {
		t.Errorf("stored ARN = %q (err %v), want %q", got, err, arn)
	}
	if _, ok := overlay["availability-zones:account=1:region=us-east-1"]; !ok {
		t.Error("existing context entries should be preserved")
	}
}

func TestWriteIssuedCertificateArn_CreatesFile(t *testing.T) {
	dir := writeCdkDir(t, testCdkJSON)

	c, err := cdkctx.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	const arn = "arn:aws:acm:us-east-1:123456789012:certificate/abc"
	if err := c.WriteIssuedCertificateArn(dir, arn); err != nil {
		t.Fatalf("WriteIssuedCertificateArn() error: %v", err)
	}

	c2, err := cdkctx.Load(dir)
	if err != nil {
		t.Fatalf("Load() after write error: %v", err)
	}
	if c2.Qualifier != "pagecraft" {
		t.Errorf("Qualifier = %q after write, want pagecraft", c2.Qualifier)
	}
}
