package pccdkutil

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/iancoleman/strcase"
)

// Casing specifies how to format the identifier string.
type Casing int

const (
	// CasingCamel formats as CamelCase (e.g., "PagecraftStagSiteBucket").
	CasingCamel Casing = iota
	// CasingLowerCamel formats as lowerCamelCase (e.g., "pagecraftStagSiteBucket").
	CasingLowerCamel
	// CasingSnake formats as snake_case (e.g., "pagecraft_stag_site_bucket").
	CasingSnake
	// CasingKebab formats as kebab-case (e.g., "pagecraft-stag-site-bucket").
	CasingKebab
)

// ResourceName generates a resource identifier prefixed with the stack's qualifier
// and deployment identifier. The label is a free-form string that the caller provides.
//
// The format is: "{qualifier}-{deploymentIdent}-{label}" converted to the specified casing.
//
// For shared stacks (no deployment identifier), the format is: "{qualifier}-{label}".
func ResourceName(scope constructs.Construct, label string, casing Casing) string {
	return ResourceNameFor(Qualifier(scope), DeploymentIdent(scope), label, casing)
}

// ResourceNameFor is the pure form of ResourceName. The CLI uses it to derive
// the same resource names outside of a construct tree (e.g., the site bucket
// name for `pagecraft content sync`).
func ResourceNameFor(qualifier, deploymentIdent, label string, casing Casing) string {
	var base string
	if deploymentIdent != "" {
		base = fmt.Sprintf("%s-%s-%s", qualifier, deploymentIdent, label)
	} else {
		base = fmt.Sprintf("%s-%s", qualifier, label)
	}

	return applyCasing(base, casing)
}

func applyCasing(s string, casing Casing) string {
	switch casing {
	case CasingCamel:
		return strcase.ToCamel(s)
	case CasingLowerCamel:
		return strcase.ToLowerCamel(s)
	case CasingSnake:
		return strcase.ToSnake(s)
	case CasingKebab:
		return strcase.ToKebab(s)
	default:
		return strcase.ToCamel(s)
	}
}
