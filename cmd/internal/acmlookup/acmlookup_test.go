package acmlookup_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/acm/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/pagecrafthq/pagecraft/cmd/internal/acmlookup"
)

func TestCovers(t *testing.T) {
	tests := []struct {
		certDomain string
		siteDomain string
		want       bool
	}{
		{"example.com", "example.com", true},
		{"Example.COM", "example.com", true},
		{"example.com.", "example.com", true},
		{"example.com", "www.example.com", false},
		{"*.example.com", "www.example.com", true},
		{"*.example.com", "example.com", false},
		{"*.example.com", "a.b.example.com", false},
		{"*.example.com", ".example.com", false},
		{"*.other.com", "www.example.com", false},
		{"", "example.com", false},
	}

	for _, tt := range tests {
		if got := acmlookup.Covers(tt.certDomain, tt.siteDomain); got != tt.want {
			t.Errorf("Covers(%q, %q) = %v, want %v", tt.certDomain, tt.siteDomain, got, tt.want)
		}
	}
}

type fakeACM struct {
	pages [][]types.CertificateSummary
	err   error
	calls int
}

func (f *fakeACM) ListCertificates(_ context.Context, params *acm.ListCertificatesInput,
	_ ...func(*acm.Options)) (*acm.ListCertificatesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	page := f.calls
	f.calls++
	out := &acm.ListCertificatesOutput{
		CertificateSummaryList: f.pages[page],
	}
	if page < len(f.pages)-1 {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func summary(arn, domain string, issued time.Time) types.CertificateSummary {
	return types.CertificateSummary{
		CertificateArn: aws.String(arn),
		DomainName:     aws.String(domain),
		IssuedAt:       aws.Time(issued),
	}
}

func TestFind_PicksLatestMatch(t *testing.T) {
	older := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	api := &fakeACM{pages: [][]types.CertificateSummary{
		{
			summary("arn:aws:acm:us-east-1:1:certificate/old", "example.com", older),
			summary("arn:aws:acm:us-east-1:1:certificate/other", "other.com", newer),
		},
		{
			summary("arn:aws:acm:us-east-1:1:certificate/new", "example.com", newer),
		},
	}}

	arn, err := acmlookup.Find(context.Background(), api, "example.com", zap.NewNop())
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if arn != "arn:aws:acm:us-east-1:1:certificate/new" {
		t.Errorf("Find() = %q, want the newest matching certificate", arn)
	}
	if api.calls != 2 {
		t.Errorf("Find() made %d ListCertificates calls, want 2 (all pages)", api.calls)
	}
}

func TestFind_WildcardMatch(t *testing.T) {
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	api := &fakeACM{pages: [][]types.CertificateSummary{
		{summary("arn:aws:acm:us-east-1:1:certificate/wild", "*.example.com", issued)},
	}}

	arn, err := acmlookup.Find(context.Background(), api, "www.example.com", zap.NewNop())
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if arn != "arn:aws:acm:us-east-1:1:certificate/wild" {
		t.Errorf("Find() = %q, want the wildcard certificate", arn)
	}
}

func TestFind_NotFound(t *testing.T) {
	api := &fakeACM{pages: [][]types.CertificateSummary{
		{summary("arn:aws:acm:us-east-1:1:certificate/other", "other.com", time.Now())},
	}}

	_, err := acmlookup.Find(context.Background(), api, "example.com", zap.NewNop())
	if !errors.Is(err, acmlookup.ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}

func TestFind_APIError(t *testing.T) {
	api := &fakeACM{err: errors.New("throttled")}

	_, err := acmlookup.Find(context.Background(), api, "example.com", zap.NewNop())
	if err == nil {
		t.Error("Find() should propagate API errors")
	}
}
