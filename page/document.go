package page

import (
	"fontstage/stage"
)

// Document presents a snapshot document as stage.Document.
type Document struct {
	site *Site
	data *DocumentData
}

func (d *Document) ID() string { return d.data.ID }

func (d *Document) Type() string {
	if len(d.data.Kind) == 0 {
		return "page"
	}
	return d.data.Kind
}

func (d *Document) Title() string { return d.data.Title }

// CSS returns stylesheet already stored with document.
func (d *Document) CSS() string { return d.data.CSS }

func (d *Document) Settings() map[string]string { return d.data.Settings }

func (d *Document) Control(name string) (stage.Control, bool) {
	return findControl(d.data.Controls, name)
}

func (d *Document) IsKit() bool { return d.data.Kind == KindKit }

// Wrapper returns explicitly configured wrapper or the one page builder puts
// on document root.
func (d *Document) Wrapper() string {
	switch {
	case len(d.data.Wrapper) > 0:
		return d.data.Wrapper
	case d.IsKit():
		return ".elementor-kit-" + d.data.ID
	default:
		return ".elementor-" + d.data.ID
	}
}

func (d *Document) Elements() []stage.Element {
	return d.wrap(d.data.Elements)
}

func (d *Document) wrap(elements []*ElementData) []stage.Element {
	if len(elements) == 0 {
		return nil
	}
	out := make([]stage.Element, 0, len(elements))
	for _, el := range elements {
		if el == nil {
			continue
		}
		out = append(out, &Element{doc: d, data: el})
	}
	return out
}

// Element presents a snapshot element as stage.Element.
type Element struct {
	doc  *Document
	data *ElementData
}

func (e *Element) ID() string { return e.data.ID }

// Type returns widget name for widgets and element type (section, column,
// container) otherwise.
func (e *Element) Type() string {
	if len(e.data.Widget) > 0 {
		return e.data.Widget
	}
	return e.data.ElType
}

func (e *Element) Settings() map[string]string { return e.data.Settings }

// Control looks control up in registered type of the element.
func (e *Element) Control(name string) (stage.Control, bool) {
	w, ok := e.doc.site.Widget(e.Type())
	if !ok {
		return stage.Control{}, false
	}
	return w.Control(name)
}

func (e *Element) Selector() string {
	return e.doc.Wrapper() + " .elementor-element.elementor-element-" + e.data.ID
}

func (e *Element) Children() []stage.Element {
	return e.doc.wrap(e.data.Elements)
}
