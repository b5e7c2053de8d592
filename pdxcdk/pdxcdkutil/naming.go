package pdxcdkutil

import (
	"fmt"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/iancoleman/strcase"
)

// Casing specifies how to format the identifier string.
type Casing int

const (
	// CasingCamel formats as CamelCase (e.g., "OrcaPdxToolsLayer").
	CasingCamel Casing = iota
	// CasingLowerCamel formats as lowerCamelCase (e.g., "orcaPdxToolsLayer").
	CasingLowerCamel
	// CasingSnake formats as snake_case (e.g., "orca_pdx_tools_layer").
	CasingSnake
	// CasingKebab formats as kebab-case (e.g., "orca-pdx-tools-layer").
	CasingKebab
)

// ResourceName generates a resource identifier prefixed with the service's
// resource prefix. The label is a free-form string that the caller provides.
//
// The format is "{resourcePrefix}-{label}" converted to the specified casing.
// Names that must keep the label verbatim, such as state machine and rule
// names, are built without re-casing by the caller.
func ResourceName(scope constructs.Construct, label string, casing Casing) string {
	return applyCasing(fmt.Sprintf("%s-%s", ResourcePrefix(scope), label), casing)
}

// ConstructID turns a camelCase resource name into a CamelCase construct id.
func ConstructID(name string, suffix ...string) string {
	id := strcase.ToCamel(name)
	for _, s := range suffix {
		id += strcase.ToCamel(s)
	}
	return id
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
