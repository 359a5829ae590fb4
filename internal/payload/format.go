package payload

import (
	"fmt"

	"git.home.luguber.info/inful/mdcollect/internal/foundation/normalization"
)

// Format is the structured grammar a payload literal is parsed with. One
// format is selected per run and applied to every document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// String returns the canonical configuration spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// ParseFormat maps a configuration value onto a Format. Matching is
// case-insensitive and accepts "yml" as an alias. Unrecognized values return
// FormatJSON and false so the caller can warn and fall back.
func ParseFormat(s string) (Format, bool) {
	return formatNormalizer.Lookup(s)
}

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"json": FormatJSON,
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"toml": FormatTOML,
}, FormatJSON)
