package css

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
)

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func cssEscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Value represents a CSS property value.
type Value struct {
	Raw       string // Value text without "!important"
	Important bool
}

func (v Value) String() string {
	if v.Important {
		return v.Raw + " !important"
	}
	return v.Raw
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   string           // Selector text as written
	Properties map[string]Value // Property name -> value
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// FontFace represents an @font-face declaration.
type FontFace struct {
	Family  string // font-family value
	Src     string // src value (URL or local reference)
	Style   string // font-style: normal, italic
	Weight  string // font-weight: normal, bold, 400, 700
	Display string // font-display: swap, fallback, optional...
}

// urlPattern matches url() references in CSS values.
// Handles: url("path"), url('path'), url(path)
var urlPattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"]*))\s*\)`)

// URLs returns all url() references of the src descriptor in source order.
func (ff FontFace) URLs() []string {
	var urls []string
	for _, sub := range urlPattern.FindAllStringSubmatch(ff.Src, -1) {
		// Group 1 is quoted URL, group 2 is unquoted URL
		u := sub[1]
		if u == "" {
			u = sub[2]
		}
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, FontFace or Import is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
	FontFace   *FontFace   // A @font-face declaration
	Import     *string     // An @import URL
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query string
	Rules []Rule
}

// Stylesheet represents a CSS stylesheet: either parsed from text or being
// generated. Top-level rules are indexed by selector so that AddRule can
// merge declarations into an existing rule.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for skipped constructs

	index map[string]int
}

// NewStylesheet returns empty stylesheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{}
}

// AddRule appends declarations for selector. When a top-level rule with the
// same selector already exists, declarations are merged into it, later calls
// overwriting same properties. Calling it repeatedly with the same arguments
// is harmless.
func (s *Stylesheet) AddRule(selector string, declarations map[string]string) {
	selector = strings.TrimSpace(selector)
	if selector == "" || len(declarations) == 0 {
		return
	}
	if s.index == nil {
		s.reindex()
	}
	if i, ok := s.index[selector]; ok {
		if s.Items[i].Rule.Properties == nil {
			s.Items[i].Rule.Properties = make(map[string]Value, len(declarations))
		}
		for name, val := range declarations {
			s.Items[i].Rule.Properties[name] = Value{Raw: val}
		}
		return
	}
	props := make(map[string]Value, len(declarations))
	for name, val := range declarations {
		props[name] = Value{Raw: val}
	}
	s.Items = append(s.Items, StylesheetItem{Rule: &Rule{Selector: selector, Properties: props}})
	s.index[selector] = len(s.Items) - 1
}

func (s *Stylesheet) reindex() {
	s.index = make(map[string]int, len(s.Items))
	for i, item := range s.Items {
		if item.Rule != nil {
			// first occurrence wins, later duplicates are left as parsed
			if _, ok := s.index[item.Rule.Selector]; !ok {
				s.index[item.Rule.Selector] = i
			}
		}
	}
}

// Rules returns all top-level rules in source order.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// FontFaces returns all @font-face declarations from the stylesheet in source order.
// Only font-faces with a non-empty Family are included.
func (s *Stylesheet) FontFaces() []FontFace {
	var faces []FontFace
	for _, item := range s.Items {
		if item.FontFace != nil && item.FontFace.Family != "" {
			faces = append(faces, *item.FontFace)
		}
	}
	return faces
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(\"%s\");\n", cssEscapeDoubleQuoted(*item.Import))
		case item.FontFace != nil:
			n, err = writeFontFace(w, item.FontFace)
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, item.Rule, "")
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		// Add blank line between items (except after last)
		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w using indent as prefix.
func writeRule(w io.Writer, rule *Rule, indent string) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector)
	total += n
	if err != nil {
		return total, err
	}
	n, err = writeProperties(w, rule.Properties, indent+"  ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeProperties writes property declarations sorted alphabetically.
func writeProperties(w io.Writer, props map[string]Value, indent string) (int, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	var total int
	for _, name := range names {
		n, err := fmt.Fprintf(w, "%s%s: %s;\n", indent, name, props[name])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// writeFontFace writes an @font-face block to w.
func writeFontFace(w io.Writer, ff *FontFace) (int, error) {
	var total int
	n, err := fmt.Fprint(w, "@font-face {\n")
	total += n
	if err != nil {
		return total, err
	}

	// Write descriptors in a stable order
	descriptors := []struct{ name, value string }{
		{"font-family", ""},
		{"src", ff.Src},
		{"font-style", ff.Style},
		{"font-weight", ff.Weight},
		{"font-display", ff.Display},
	}
	if ff.Family != "" {
		descriptors[0].value = "\"" + cssEscapeDoubleQuoted(ff.Family) + "\""
	}
	for _, d := range descriptors {
		if d.value == "" {
			continue
		}
		n, err = fmt.Fprintf(w, "  %s: %s;\n", d.name, d.value)
		total += n
		if err != nil {
			return total, err
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query)
	total += n
	if err != nil {
		return total, err
	}

	for i := range mb.Rules {
		n, err = writeRule(w, &mb.Rules[i], "  ")
		total += n
		if err != nil {
			return total, err
		}

		// Blank line between rules in a media block (except after last)
		if i < len(mb.Rules)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += n
			if err != nil {
				return total, err
			}
		}
	}

	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
