package pccdkutil

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Scope-based convenience functions that retrieve Config from the construct tree.
// These provide ergonomic access deep in construct trees without passing *Config explicitly.

// IsPrimaryRegion checks if the given region is the primary region.
// Retrieves Config from the construct tree.
func IsPrimaryRegion(scope constructs.Construct, region string) bool {
	return ConfigFromScope(scope).IsPrimaryRegion(region)
}

// IsPrimaryRegionStack checks if the given stack is in the primary region.
// Retrieves Config from the construct tree.
func IsPrimaryRegionStack(scope constructs.Construct, stack awscdk.Stack) bool {
	return ConfigFromScope(scope).IsPrimaryRegionStack(stack)
}

// BaseDomainName returns the apex domain the site is hosted under.
// Retrieves Config from the construct tree.
func BaseDomainName(scope constructs.Construct) string {
	return ConfigFromScope(scope).BaseDomainName
}

// BaseDomainNamePtr returns the apex domain as a jsii string pointer.
// Retrieves Config from the construct tree.
func BaseDomainNamePtr(scope constructs.Construct) *string {
	return ConfigFromScope(scope).BaseDomainNamePtr()
}

// Qualifier returns the CDK qualifier.
// Retrieves Config from the construct tree.
func Qualifier(scope constructs.Construct) string {
	return ConfigFromScope(scope).Qualifier
}

// PrimaryRegion returns the primary region.
// Retrieves Config from the construct tree.
func PrimaryRegion(scope constructs.Construct) string {
	return ConfigFromScope(scope).PrimaryRegion
}

// DNSDelegated returns whether DNS delegation has been completed.
// Retrieves Config from the construct tree.
func DNSDelegated(scope constructs.Construct) bool {
	return ConfigFromScope(scope).DNSDelegated
}

// CDNEnabled returns whether a CloudFront distribution should front the site.
// Retrieves Config from the construct tree.
func CDNEnabled(scope constructs.Construct) bool {
	return ConfigFromScope(scope).CDNEnabled
}

// Config holds all CDK context values validated upfront.
// It centralizes context reading and validation to provide clear error messages.
type Config struct {
	Prefix           string   `validate:"required"`
	Qualifier        string   `validate:"required,max=10"`
	PrimaryRegion    string   `validate:"required"`
	SecondaryRegions []string `validate:"dive,required"`
	Deployments      []string `validate:"required,dive,required"`
	BaseDomainName   string   `validate:"required,fqdn"`

	// Validation flags for foundational infrastructure
	DNSDelegated bool // true when DNS delegation is complete

	// Certificate inputs. CertificateArn is an operator-provided ARN and has
	// the highest precedence. IssuedCertificateArn is a previously issued
	// certificate discovered via `pagecraft certs find`. CreateCertificate
	// requests a new DNS-validated certificate when neither ARN is set.
	CertificateArn       string `validate:"omitempty,startswith=arn:"`
	IssuedCertificateArn string `validate:"omitempty,startswith=arn:"`
	CreateCertificate    bool

	// CDN inputs
	CDNEnabled   bool
	ExtraAliases []string `validate:"dive,fqdn"`

	// ContentDir optionally points at a directory of site content (HTML files
	// and assets) that is uploaded to the site bucket at deploy time.
	ContentDir string

	// Tags are applied to every stack.
	Tags map[string]string
}

// NewConfig reads and validates all CDK context values.
// Returns an error if any required value is missing or invalid.
func NewConfig(scope constructs.Construct, acfg AppConfig) (*Config, error) {
	var readErrs []string

	cfg := &Config{
		Prefix: acfg.Prefix,
	}

	cfg.Qualifier, readErrs = readContextString(scope, acfg.Prefix+"qualifier", readErrs)
	cfg.PrimaryRegion, readErrs = readContextString(scope, acfg.Prefix+"primary-region", readErrs)
	cfg.SecondaryRegions, readErrs = readContextStringSlice(scope, acfg.Prefix+"secondary-regions", readErrs)
	cfg.Deployments, readErrs = readContextStringSlice(scope, acfg.Prefix+"deployments", readErrs)
	cfg.BaseDomainName, readErrs = readContextString(scope, acfg.Prefix+"base-domain-name", readErrs)
	cfg.DNSDelegated = readOptionalContextBool(scope, acfg.Prefix+"dns-delegated", false)
	cfg.CertificateArn = readOptionalContextString(scope, acfg.Prefix+"certificate-arn")
	cfg.IssuedCertificateArn = readOptionalContextString(scope, acfg.Prefix+"issued-certificate-arn")
	cfg.CreateCertificate = readOptionalContextBool(scope, acfg.Prefix+"create-certificate", false)
	cfg.CDNEnabled = readOptionalContextBool(scope, acfg.Prefix+"cdn-enabled", true)
	cfg.ExtraAliases = readOptionalContextStringSlice(scope, acfg.Prefix+"extra-aliases")
	cfg.ContentDir = readOptionalContextString(scope, acfg.Prefix+"content-dir")
	cfg.Tags, readErrs = readOptionalContextStringMap(scope, acfg.Prefix+"tags", readErrs)

	// Validate that all regions are known
	if cfg.PrimaryRegion != "" && !IsKnownRegion(cfg.PrimaryRegion) {
		readErrs = append(readErrs, fmt.Sprintf(
			"unknown primary region %q - add it to pccdkutil.RegionIdents", cfg.PrimaryRegion))
	}
	for _, region := range cfg.SecondaryRegions {
		if !IsKnownRegion(region) {
			readErrs = append(readErrs, fmt.Sprintf(
				"unknown secondary region %q - add it to pccdkutil.RegionIdents", region))
		}
	}

	if len(readErrs) > 0 {
		return nil, errors.Errorf("CDK context read errors:\n  - %s", strings.Join(readErrs, "\n  - "))
	}

	// Validate using struct tags
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				msgs = append(msgs, formatValidationError(e))
			}
			return nil, errors.Errorf("CDK context validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
		}
		return nil, errors.Errorf("CDK context validation failed: %w", err)
	}

	return cfg, nil
}

// AllRegions returns the primary region plus all secondary regions.
func (c *Config) AllRegions() []string {
	return append([]string{c.PrimaryRegion}, c.SecondaryRegions...)
}

// RegionIdent returns the acronym identifier for a region.
func (c *Config) RegionIdent(region string) string {
	return RegionIdentFor(region)
}

// IsPrimaryRegion checks if the given region is the primary region.
func (c *Config) IsPrimaryRegion(region string) bool {
	return region == c.PrimaryRegion
}

// IsPrimaryRegionStack checks if the given stack is in the primary region.
func (c *Config) IsPrimaryRegionStack(stack awscdk.Stack) bool {
	return *stack.Region() == c.PrimaryRegion
}

// BaseDomainNamePtr returns the apex domain as a jsii string pointer.
func (c *Config) BaseDomainNamePtr() *string {
	return jsii.String(c.BaseDomainName)
}

// SiteDomain returns the fully qualified domain a deployment is served from.
// Prod serves the apex domain; every other deployment serves a subdomain
// named after the lowercased deployment identifier.
func (c *Config) SiteDomain(deploymentIdent string) string {
	if deploymentIdent == "Prod" {
		return c.BaseDomainName
	}
	return strings.ToLower(deploymentIdent) + "." + c.BaseDomainName
}

// SiteAliases returns the alias list the CDN answers for in a deployment.
// Prod gets the apex plus "www"; other deployments get their subdomain.
// ExtraAliases are appended for Prod only.
func (c *Config) SiteAliases(deploymentIdent string) []string {
	domain := c.SiteDomain(deploymentIdent)
	if deploymentIdent != "Prod" {
		return []string{domain}
	}

	aliases := []string{domain, "www." + domain}
	return append(aliases, c.ExtraAliases...)
}

// HasIssuedCertificate reports whether deployment stacks can count on a
// validated certificate being available: either an ARN was provided or
// discovered, or a new certificate is created against a delegated zone so
// its DNS validation completes during deployment.
func (c *Config) HasIssuedCertificate() bool {
	if c.CertificateArn != "" || c.IssuedCertificateArn != "" {
		return true
	}
	return c.CreateCertificate && c.DNSDelegated
}

// configContextKey is the well-known key used to store validated Config in the construct tree.
const configContextKey = "__pccdkutil_config"

// StoreConfig stores a validated Config in the app's context so it can be retrieved
// anywhere in the construct tree via ConfigFromScope.
func StoreConfig(app awscdk.App, cfg *Config) {
	app.Node().SetContext(jsii.String(configContextKey), cfg)
}

// ConfigFromScope retrieves the validated Config from the construct tree.
// It panics if Config was not stored (i.e., SetupApp was not called).
func ConfigFromScope(scope constructs.Construct) *Config {
	val := scope.Node().TryGetContext(jsii.String(configContextKey))
	if val == nil {
		panic("pccdkutil.Config not found in construct tree - was SetupApp or StoreConfig called?")
	}
	cfg, ok := val.(*Config)
	if !ok {
		panic(fmt.Sprintf("pccdkutil.Config has unexpected type %T", val))
	}
	return cfg
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s exceeds maximum length of %s (got %q)", e.Field(), e.Param(), e.Value())
	case "fqdn":
		return fmt.Sprintf("%s must be a valid domain name (got %q)", e.Field(), e.Value())
	case "startswith":
		return fmt.Sprintf("%s must start with %q (got %q)", e.Field(), e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed validation %q", e.Field(), e.Tag())
	}
}

func readContextString(scope constructs.Construct, key string, errs []string) (string, []string) {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return "", append(errs, fmt.Sprintf("context key %q is not set", key))
	}
	s, ok := val.(string)
	if !ok {
		return "", append(errs, fmt.Sprintf("context key %q must be a string, got %T", key, val))
	}
	return s, errs
}

func readContextStringSlice(scope constructs.Construct, key string, errs []string) ([]string, []string) {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return nil, append(errs, fmt.Sprintf("context key %q is not set", key))
	}

	slice, ok := val.([]any)
	if !ok {
		return nil, append(errs, fmt.Sprintf("context key %q must be an array, got %T", key, val))
	}

	result := make([]string, 0, len(slice))
	for i, v := range slice {
		s, ok := v.(string)
		if !ok {
			return nil, append(errs, fmt.Sprintf("context key %q[%d] must be a string, got %T", key, i, v))
		}
		result = append(result, s)
	}
	return result, errs
}

func readOptionalContextString(scope constructs.Construct, key string) string {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return s
}

func readOptionalContextStringSlice(scope constructs.Construct, key string) []string {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return nil
	}
	slice, ok := val.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(slice))
	for _, v := range slice {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func readOptionalContextStringMap(
	scope constructs.Construct, key string, errs []string,
) (map[string]string, []string) {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return nil, errs
	}
	m, ok := val.(map[string]any)
	if !ok {
		return nil, append(errs, fmt.Sprintf("context key %q must be an object, got %T", key, val))
	}
	result := make(map[string]string, len(m))
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			return nil, append(errs, fmt.Sprintf("context key %q[%q] must be a string, got %T", key, k, v))
		}
		result[k] = s
	}
	return result, errs
}

func readOptionalContextBool(scope constructs.Construct, key string, fallback bool) bool {
	val := scope.Node().TryGetContext(jsii.String(key))
	if val == nil {
		return fallback
	}
	b, ok := val.(bool)
	if !ok {
		return fallback
	}
	return b
}
