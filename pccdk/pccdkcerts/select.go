package pccdkcerts

// Source identifies where the site's TLS certificate comes from.
type Source int

const (
	// SourceNone means no certificate is configured at all.
	SourceNone Source = iota
	// SourceProvided means the operator supplied a certificate ARN explicitly.
	SourceProvided
	// SourceDiscovered means a previously issued certificate was found via
	// `pagecraft certs find` and recorded in CDK context.
	SourceDiscovered
	// SourceCreated means a new certificate is requested from ACM.
	SourceCreated
)

// SelectSource applies the certificate precedence rule:
//
//	provided ARN > discovered issued ARN > newly created certificate
//
// A provided or discovered certificate is always treated as issued. A newly
// created certificate may still be pending validation, which is why callers
// combine SourceCreated with the DNS delegation state to decide whether the
// CDN can present it.
func SelectSource(providedArn, discoveredArn string, create bool) Source {
	switch {
	case providedArn != "":
		return SourceProvided
	case discoveredArn != "":
		return SourceDiscovered
	case create:
		return SourceCreated
	default:
		return SourceNone
	}
}
