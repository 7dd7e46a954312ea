// Package acmlookup finds previously issued ACM certificates for a domain.
//
// This is the lookup leg of the certificate precedence rule: when no explicit
// certificate ARN is configured, `pagecraft certs find` searches us-east-1
// for an issued certificate covering the site domain and records its ARN in
// CDK context.
package acmlookup

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/acm"
	"github.com/aws/aws-sdk-go-v2/service/acm/types"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// CertRegion is where CloudFront viewer certificates live.
const CertRegion = "us-east-1"

// ListCertificatesAPI is the slice of the ACM client used here.
type ListCertificatesAPI interface {
	ListCertificates(ctx context.Context, params *acm.ListCertificatesInput,
		optFns ...func(*acm.Options)) (*acm.ListCertificatesOutput, error)
}

// NewClient builds an ACM client pinned to us-east-1 using the default
// credential chain.
func NewClient(ctx context.Context) (*acm.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(CertRegion))
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}
	return acm.NewFromConfig(cfg), nil
}

// ErrNotFound is returned when no issued certificate covers the domain.
var ErrNotFound = errors.New("no issued certificate found for domain")

// Find returns the ARN of the most recently issued ACM certificate whose
// domain covers the given site domain (exactly or via a wildcard).
// Returns ErrNotFound when nothing matches.
func Find(ctx context.Context, api ListCertificatesAPI, domain string, log *zap.Logger) (string, error) {
	var (
		bestArn    string
		bestIssued time.Time
	)

	pager := acm.NewListCertificatesPaginator(api, &acm.ListCertificatesInput{
		CertificateStatuses: []types.CertificateStatus{types.CertificateStatusIssued},
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return "", errors.Wrap(err, "listing ACM certificates")
		}

		for _, summary := range page.CertificateSummaryList {
			if !Covers(aws.ToString(summary.DomainName), domain) {
				continue
			}

			issued := aws.ToTime(summary.IssuedAt)
			log.Debug("certificate candidate",
				zap.String("arn", aws.ToString(summary.CertificateArn)),
				zap.String("domain", aws.ToString(summary.DomainName)),
				zap.Time("issued_at", issued))

			if bestArn == "" || issued.After(bestIssued) {
				bestArn = aws.ToString(summary.CertificateArn)
				bestIssued = issued
			}
		}
	}

	if bestArn == "" {
		return "", errors.Wrapf(ErrNotFound, "domain %s", domain)
	}
	return bestArn, nil
}

// Covers reports whether a certificate domain covers a site domain. A
// wildcard certificate covers exactly one additional label:
// "*.example.com" covers "www.example.com" but not "example.com" or
// "a.b.example.com".
func Covers(certDomain, siteDomain string) bool {
	certDomain = strings.ToLower(strings.TrimSuffix(certDomain, "."))
	siteDomain = strings.ToLower(strings.TrimSuffix(siteDomain, "."))

	if certDomain == siteDomain {
		return true
	}

	base, ok := strings.CutPrefix(certDomain, "*.")
	if !ok {
		return false
	}

	label, rest, found := strings.Cut(siteDomain, ".")
	return found && label != "" && rest == base
}
