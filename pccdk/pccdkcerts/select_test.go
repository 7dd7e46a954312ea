package pccdkcerts

import "testing"

func TestSelectSource(t *testing.T) {
	const arn = "arn:aws:acm:us-east-1:123456789012:certificate/abc"

	tests := []struct {
		name          string
		providedArn   string
		discoveredArn string
		create        bool
		want          Source
	}{
		{"provided wins over everything", arn, arn, true, SourceProvided},
		{"provided wins over discovered", arn, arn, false, SourceProvided},
		{"discovered wins over create", "", arn, true, SourceDiscovered},
		{"discovered alone", "", arn, false, SourceDiscovered},
		{"create as last resort", "", "", true, SourceCreated},
		{"nothing configured", "", "", false, SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectSource(tt.providedArn, tt.discoveredArn, tt.create)
			if got != tt.want {
				t.Errorf("SelectSource(%q, %q, %v) = %v, want %v",
					tt.providedArn, tt.discoveredArn, tt.create, got, tt.want)
			}
		})
	}
}
