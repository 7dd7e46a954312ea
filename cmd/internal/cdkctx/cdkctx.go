// Package cdkctx reads and updates the CDK context of the infra app.
//
// The CLI derives stack names, regions and domains from cdk.json, and
// persists discovered values (the issued certificate ARN) into
// cdk.context.json so synthesis picks them up.
package cdkctx

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	infracdk "github.com/pagecrafthq/pagecraft/infra/cdk"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

// ContextFile is the CDK context overlay file the CLI writes to.
const ContextFile = "cdk.context.json"

// CDKContext is the subset of CDK context the CLI needs.
type CDKContext struct {
	Qualifier        string
	Prefix           string
	PrimaryRegion    string
	SecondaryRegions []string
	Deployments      []string
	BaseDomainName   string
}

// Load reads cdk.json (and cdk.context.json overrides) from the infra
// directory. Context keys use the same ContextPrefix as the app; the
// bootstrap qualifier is independent of it.
func Load(cdkDir string) (*CDKContext, error) {
	merged, err := mergedContext(cdkDir)
	if err != nil {
		return nil, err
	}

	qualifier, err := getString(merged, "@aws-cdk/core:bootstrapQualifier")
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", cdkDir)
	}
	prefix := infracdk.ContextPrefix

	c := &CDKContext{Qualifier: qualifier, Prefix: prefix}

	if c.PrimaryRegion, err = getString(merged, prefix+"primary-region"); err != nil {
		return nil, errors.Wrapf(err, "in %s", cdkDir)
	}
	if c.Deployments, err = getStringSlice(merged, prefix+"deployments"); err != nil {
		return nil, errors.Wrapf(err, "in %s", cdkDir)
	}
	if c.BaseDomainName, err = getString(merged, prefix+"base-domain-name"); err != nil {
		return nil, errors.Wrapf(err, "in %s", cdkDir)
	}
	c.SecondaryRegions = getOptionalStringSlice(merged, prefix+"secondary-regions")

	return c, nil
}

// AllRegions returns the primary region followed by the secondary regions.
func (c *CDKContext) AllRegions() []string {
	return append([]string{c.PrimaryRegion}, c.SecondaryRegions...)
}

// IsValidDeployment reports whether name is a configured deployment.
func (c *CDKContext) IsValidDeployment(name string) bool {
	return slices.Contains(c.Deployments, name)
}

// StackGlobs returns the CDK stack selection patterns for a deployment:
// all shared stacks plus the deployment's stacks in every region.
func (c *CDKContext) StackGlobs(deployment string) []string {
	return []string{c.Qualifier + "*Shared", c.Qualifier + "*" + deployment}
}

// DeploymentStackName returns the CloudFormation stack name of a deployment
// in the given region.
func (c *CDKContext) DeploymentStackName(deployment, region string) string {
	return pccdkutil.DeploymentStackName(c.Qualifier,
		pccdkutil.RegionIdentFor(region), deployment)
}

// SharedStackName returns the CloudFormation stack name of the shared stack
// in the given region.
func (c *CDKContext) SharedStackName(region string) string {
	return pccdkutil.SharedStackName(c.Qualifier,
		pccdkutil.RegionIdentFor(region))
}

// SiteBucketName returns the site bucket name for a deployment in the given
// region, mirroring the region-suffixed name the pccdksite construct derives.
func (c *CDKContext) SiteBucketName(deployment, region string) string {
	label := "site-" + pccdkutil.RegionIdentLower(region)
	return pccdkutil.ResourceNameFor(c.Qualifier, deployment, label, pccdkutil.CasingKebab)
}

// WriteIssuedCertificateArn persists a discovered certificate ARN into
// cdk.context.json under "{prefix}issued-certificate-arn", creating the file
// if needed. Existing context entries are preserved.
func (c *CDKContext) WriteIssuedCertificateArn(cdkDir, arn string) error {
	ctxFile := filepath.Join(cdkDir, ContextFile)

	overlay := map[string]json.RawMessage{}
	data, err := os.ReadFile(ctxFile)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &overlay); err != nil {
			return errors.Wrapf(err, "parsing %s", ctxFile)
		}
	case os.IsNotExist(err):
		// first write creates the file
	default:
		return errors.Wrapf(err, "reading %s", ctxFile)
	}

	encoded, err := json.Marshal(arn)
	if err != nil {
		return errors.Wrap(err, "encoding certificate ARN")
	}
	overlay[c.Prefix+"issued-certificate-arn"] = encoded

	out, err := json.MarshalIndent(overlay, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", ctxFile)
	}
	if err := os.WriteFile(ctxFile, append(out, '\n'), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", ctxFile)
	}
	return nil
}

// mergedContext loads the context object from cdk.json and applies any
// overrides from cdk.context.json on top, matching CDK's own precedence.
func mergedContext(cdkDir string) (map[string]json.RawMessage, error) {
	cdkJSON := filepath.Join(cdkDir, "cdk.json")
	data, err := os.ReadFile(cdkJSON)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", cdkJSON)
	}

	var cfg struct {
		Context map[string]json.RawMessage `json:"context"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", cdkJSON)
	}

	merged := cfg.Context
	if merged == nil {
		merged = map[string]json.RawMessage{}
	}

	ctxFile := filepath.Join(cdkDir, ContextFile)
	overlayData, err := os.ReadFile(ctxFile)
	if os.IsNotExist(err) {
		return merged, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "reading %s", ctxFile)
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(overlayData, &overlay); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", ctxFile)
	}
	for k, v := range overlay {
		merged[k] = v
	}
	return merged, nil
}

func getString(m map[string]json.RawMessage, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", errors.Newf("context key %q is not set", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.Newf("context key %q must be a string", key)
	}
	return s, nil
}

func getOptionalStringSlice(m map[string]json.RawMessage, key string) []string {
	raw, ok := m[key]
	if !ok {
		return nil
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil
	}
	return ss
}

func getStringSlice(m map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := m[key]
	if !ok {
		return nil, errors.Newf("context key %q is not set", key)
	}
	var ss []string
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil, errors.Newf("context key %q must be an array of strings", key)
	}
	return ss, nil
}
