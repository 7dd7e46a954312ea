//nolint:paralleltest // jsii runtime doesn't support parallel tests
package pccdkutil_test

import (
	"strings"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/pagecrafthq/pagecraft/pccdk/pccdkutil"
)

func TestNewConfig(t *testing.T) {
	defer jsii.Close()

	tests := []struct {
		name        string
		context     map[string]any
		wantErr     bool
		errContains []string
	}{
		{
			name: "valid config",
			context: map[string]any{
				"pagecraft-qualifier":         "pagecraft",
				"pagecraft-primary-region":    "us-east-1",
				"pagecraft-secondary-regions": []any{"eu-west-1"},
				"pagecraft-deployments":       []any{"Dev", "Stag", "Prod"},
				"pagecraft-base-domain-name":  "example.com",
			},
			wantErr: false,
		},
		{
			name: "valid config with certificate inputs",
			context: map[string]any{
				"pagecraft-qualifier":          "pagecraft",
				"pagecraft-primary-region":     "us-east-1",
				"pagecraft-secondary-regions":  []any{},
				"pagecraft-deployments":        []any{"Prod"},
				"pagecraft-base-domain-name":   "example.com",
				"pagecraft-certificate-arn":    "arn:aws:acm:us-east-1:123456789012:certificate/abc",
				"pagecraft-create-certificate": true,
				"pagecraft-extra-aliases":      []any{"cdn.example.org"},
				"pagecraft-tags":               map[string]any{"project": "pagecraft"},
			},
			wantErr: false,
		},
		{
			name: "missing qualifier",
			context: map[string]any{
				"pagecraft-primary-region":    "us-east-1",
				"pagecraft-secondary-regions": []any{},
				"pagecraft-deployments":       []any{"Dev"},
				"pagecraft-base-domain-name":  "example.com",
			},
			wantErr:     true,
			errContains: []string{"pagecraft-qualifier"},
		},
		{
			name: "qualifier too long",
			context: map[string]any{
				"pagecraft-qualifier":         "averylongqualifier",
				"pagecraft-primary-region":    "us-east-1",
				"pagecraft-secondary-regions": []any{},
				"pagecraft-deployments":       []any{"Dev"},
				"pagecraft-base-domain-name":  "example.com",
			},
			wantErr:     true,
			errContains: []string{"Qualifier", "maximum length"},
		},
		{
			name: "invalid domain name",
			context: map[string]any{
				"pagecraft-qualifier":         "pagecraft",
				"pagecraft-primary-region":    "us-east-1",
				"pagecraft-secondary-regions": []any{},
				"pagecraft-deployments":       []any{"Dev"},
				"pagecraft-base-domain-name":  "not a domain",
			},
			wantErr:     true,
			errContains: []string{"BaseDomainName", "valid domain name"},
		},
		{
			name: "invalid certificate arn",
			context: map[string]any{
				"pagecraft-qualifier":         "pagecraft",
				"pagecraft-primary-region":    "us-east-1",
				"pagecraft-secondary-regions": []any{},
				"pagecraft-deployments":       []any{"Dev"},
				"pagecraft-base-domain-name":  "example.com",
				"pagecraft-certificate-arn":   "not-an-arn",
			},
			wantErr:     true,
			errContains: []string{"CertificateArn", "arn:"},
		},
		{
			name: "unknown primary region",
			context: map[string]any{
				"pagecraft-qualifier":         "pagecraft",
				"pagecraft-primary-region":    "mars-north-1",
				"pagecraft-secondary-regions": []any{},
				"pagecraft-deployments":       []any{"Dev"},
				"pagecraft-base-domain-name":  "example.com",
			},
			wantErr:     true,
			errContains: []string{"unknown primary region"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := awscdk.NewApp(&awscdk.AppProps{
				Context: &tt.context,
			})

			cfg, err := pccdkutil.NewConfig(app, pccdkutil.AppConfig{Prefix: "pagecraft-"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				for _, want := range tt.errContains {
					if !strings.Contains(err.Error(), want) {
						t.Errorf("error %q should contain %q", err.Error(), want)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Qualifier == "" {
				t.Error("Qualifier should be set")
			}
		})
	}
}

func TestConfig_SiteDomain(t *testing.T) {
	cfg := &pccdkutil.Config{BaseDomainName: "example.com"}

	if got := cfg.SiteDomain("Prod"); got != "example.com" {
		t.Errorf("SiteDomain(Prod) = %q, want %q", got, "example.com")
	}
	if got := cfg.SiteDomain("Stag"); got != "stag.example.com" {
		t.Errorf("SiteDomain(Stag) = %q, want %q", got, "stag.example.com")
	}
}

func TestConfig_SiteAliases(t *testing.T) {
	cfg := &pccdkutil.Config{
		BaseDomainName: "example.com",
		ExtraAliases:   []string{"cdn.example.org"},
	}

	prod := cfg.SiteAliases("Prod")
	want := []string{"example.com", "www.example.com", "cdn.example.org"}
	if len(prod) != len(want) {
		t.Fatalf("SiteAliases(Prod) = %v, want %v", prod, want)
	}
	for i := range want {
		if prod[i] != want[i] {
			t.Errorf("SiteAliases(Prod)[%d] = %q, want %q", i, prod[i], want[i])
		}
	}

	dev := cfg.SiteAliases("Dev")
	if len(dev) != 1 || dev[0] != "dev.example.com" {
		t.Errorf("SiteAliases(Dev) = %v, want [dev.example.com]", dev)
	}
}

func TestConfig_HasIssuedCertificate(t *testing.T) {
	tests := []struct {
		name string
		cfg  pccdkutil.Config
		want bool
	}{
		{"nothing configured", pccdkutil.Config{}, false},
		{"provided arn", pccdkutil.Config{CertificateArn: "arn:aws:acm:::cert"}, true},
		{"discovered arn", pccdkutil.Config{IssuedCertificateArn: "arn:aws:acm:::cert"}, true},
		{"create without delegation", pccdkutil.Config{CreateCertificate: true}, false},
		{"create with delegation", pccdkutil.Config{CreateCertificate: true, DNSDelegated: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasIssuedCertificate(); got != tt.want {
				t.Errorf("HasIssuedCertificate() = %v, want %v", got, tt.want)
			}
		})
	}
}
