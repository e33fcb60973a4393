package page

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

type treeWriter struct {
	w strings.Builder
}

func (tw *treeWriter) line(depth int, format string, args ...any) {
	for range depth {
		tw.w.WriteString("  ")
	}
	fmt.Fprintf(&tw.w, format, args...)
	tw.w.WriteByte('\n')
}

func (tw *treeWriter) settings(depth int, settings map[string]string) {
	for _, name := range slices.Sorted(maps.Keys(settings)) {
		tw.line(depth, "%s: %s", name, quote(settings[name]))
	}
}

func quote(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}

// Dump returns human readable tree of the snapshot as the program sees it,
// generated element ids included. Used in debug reports.
func (s *Site) Dump() string {
	tw := &treeWriter{}

	tw.line(0, "widget types: %d", len(s.Widgets))
	for _, w := range s.Widgets {
		tw.line(1, "%s", w.Type)
		for _, c := range w.Controls {
			if c.Scheme != nil {
				tw.line(2, "%s -> scheme %s/%s/%s", c.Name, c.Scheme.Type, c.Scheme.Value, c.Scheme.Key)
			} else {
				tw.line(2, "%s", c.Name)
			}
		}
	}

	for _, doc := range s.AllDocuments() {
		tw.line(0, "document %s (%s) %s wrapper=%s", doc.ID(), doc.Type(), quote(doc.Title()), doc.Wrapper())
		tw.settings(1, doc.Settings())
		dumpElements(tw, 1, doc.data.Elements)
	}
	return tw.w.String()
}

func dumpElements(tw *treeWriter, depth int, elements []*ElementData) {
	for _, el := range elements {
		if el == nil {
			continue
		}
		if len(el.Widget) > 0 {
			tw.line(depth, "%s %s [%s]", el.ElType, el.ID, el.Widget)
		} else {
			tw.line(depth, "%s %s", el.ElType, el.ID)
		}
		tw.settings(depth+1, el.Settings)
		dumpElements(tw, depth+1, el.Elements)
	}
}
