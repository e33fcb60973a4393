package stage

import (
	"slices"
	"strings"
)

// Placeholders recognized in control selector templates.
const (
	PlaceholderID      = "{{ID}}"
	PlaceholderWrapper = "{{WRAPPER}}"
)

// Bindings maps placeholder to its replacement.
type Bindings map[string]string

// Rewrite expands template substituting every occurrence of every
// placeholder literally. Replacement values are not escaped and are never
// rescanned for placeholders.
func Rewrite(template string, b Bindings) string {
	if len(b) == 0 {
		return template
	}
	keys := make([]string, 0, len(b))
	for k := range b {
		if len(k) > 0 {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, b[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
