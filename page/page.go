// Package page is a host adapter: it decodes a YAML snapshot of a
// page-builder site (registered widget types, default typography scheme and
// documents with their element trees) and presents it through the
// capability interfaces of the stage package.
package page

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"fontstage/stage"
)

type (
	// SchemeRef points control at the default scheme value.
	SchemeRef struct {
		Type  string `yaml:"type"`
		Value string `yaml:"value"`
		Key   string `yaml:"key"`
	}

	// Control is a control definition of a widget type.
	Control struct {
		Name      string            `yaml:"name"`
		Selectors map[string]string `yaml:"selectors,omitempty"`
		Scheme    *SchemeRef        `yaml:"scheme,omitempty"`
	}

	// Widget is a registered element or widget type.
	Widget struct {
		Type     string    `yaml:"name"`
		Controls []Control `yaml:"controls,omitempty"`
	}

	// ElementData is a node of document element tree.
	ElementData struct {
		ID       string            `yaml:"id"`
		ElType   string            `yaml:"type"`
		Widget   string            `yaml:"widget,omitempty"`
		Settings map[string]string `yaml:"settings,omitempty"`
		Elements []*ElementData    `yaml:"elements,omitempty"`
	}

	// DocumentData is a single document of the site.
	DocumentData struct {
		ID       string            `yaml:"id"`
		Kind     string            `yaml:"kind"`
		Title    string            `yaml:"title,omitempty"`
		Wrapper  string            `yaml:"wrapper,omitempty"`
		Settings map[string]string `yaml:"settings,omitempty"`
		Controls []Control         `yaml:"controls,omitempty"`
		CSS      string            `yaml:"css,omitempty"`
		Elements []*ElementData    `yaml:"elements,omitempty"`
	}

	// Site is a decoded snapshot.
	Site struct {
		// Scheme maps scheme type -> entry -> key -> value.
		Scheme    map[string]map[string]map[string]string `yaml:"scheme"`
		Widgets   []*Widget                               `yaml:"widgets"`
		Documents []*DocumentData                         `yaml:"documents"`

		widgets map[string]*Widget
	}
)

// KindKit is a document kind holding site-wide styles.
const KindKit = "kit"

// Load reads site snapshot from file.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read site snapshot: %w", err)
	}
	site, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode site snapshot %q: %w", path, err)
	}
	return site, nil
}

// Decode decodes site snapshot, unknown fields are rejected. Elements
// without id are given a generated one.
func Decode(r io.Reader) (*Site, error) {
	site := &Site{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(site); err != nil && err != io.EOF {
		return nil, err
	}

	site.widgets = make(map[string]*Widget, len(site.Widgets))
	for i, w := range site.Widgets {
		if w == nil || len(w.Type) == 0 {
			return nil, fmt.Errorf("widget type %d has no name", i)
		}
		if _, exists := site.widgets[w.Type]; exists {
			return nil, fmt.Errorf("widget type %q registered twice", w.Type)
		}
		site.widgets[w.Type] = w
	}
	for i, d := range site.Documents {
		if d == nil || len(d.ID) == 0 {
			return nil, fmt.Errorf("document %d has no id", i)
		}
		assignIDs(d.Elements)
	}
	return site, nil
}

func assignIDs(elements []*ElementData) {
	for _, el := range elements {
		if el == nil {
			continue
		}
		if len(el.ID) == 0 {
			// page builders use short hex ids
			el.ID = strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
		}
		assignIDs(el.Elements)
	}
}

// WidgetTypes implements stage.Registry.
func (s *Site) WidgetTypes() []stage.WidgetType {
	types := make([]stage.WidgetType, 0, len(s.Widgets))
	for _, w := range s.Widgets {
		types = append(types, w)
	}
	return types
}

// SchemeValue implements stage.Scheme.
func (s *Site) SchemeValue(ref stage.SchemeRef) (string, bool) {
	entry, ok := s.Scheme[ref.Type][ref.Value]
	if !ok {
		return "", false
	}
	v, ok := entry[ref.Key]
	return v, ok
}

// Widget returns registered widget type by name.
func (s *Site) Widget(name string) (*Widget, bool) {
	w, ok := s.widgets[name]
	return w, ok
}

// Document wraps document data for the given id.
func (s *Site) Document(id string) (*Document, bool) {
	for _, d := range s.Documents {
		if d.ID == id {
			return &Document{site: s, data: d}, true
		}
	}
	return nil, false
}

// AllDocuments wraps every document of the site in snapshot order.
func (s *Site) AllDocuments() []*Document {
	docs := make([]*Document, 0, len(s.Documents))
	for _, d := range s.Documents {
		docs = append(docs, &Document{site: s, data: d})
	}
	return docs
}

func (w *Widget) Name() string { return w.Type }

func (w *Widget) SchemeControls() []stage.Control {
	var out []stage.Control
	for _, c := range w.Controls {
		if c.Scheme != nil {
			out = append(out, c.toStage())
		}
	}
	return out
}

func (w *Widget) Control(name string) (stage.Control, bool) {
	return findControl(w.Controls, name)
}

func findControl(controls []Control, name string) (stage.Control, bool) {
	for _, c := range controls {
		if c.Name == name {
			return c.toStage(), true
		}
	}
	return stage.Control{}, false
}

func (c Control) toStage() stage.Control {
	sc := stage.Control{Name: c.Name, Selectors: c.Selectors}
	if c.Scheme != nil {
		sc.Scheme = &stage.SchemeRef{Type: c.Scheme.Type, Value: c.Scheme.Value, Key: c.Scheme.Key}
	}
	return sc
}

var (
	_ stage.Registry = (*Site)(nil)
	_ stage.Scheme   = (*Site)(nil)
	_ stage.Document = (*Document)(nil)
	_ stage.Element  = (*Element)(nil)
)
