package stage

// Capabilities consumed from the host. The core only reads them.

// SchemeRef points control at a value of the host default scheme.
type SchemeRef struct {
	Type  string // scheme type, e.g. "typography"
	Value string // scheme entry
	Key   string // key inside the entry, "font_family" for font controls
}

// Control is a control definition. Selectors map CSS selector templates to
// declaration templates, only templates are used here.
type Control struct {
	Name      string
	Selectors map[string]string
	Scheme    *SchemeRef
}

// SettingsSource exposes entity settings: setting name -> value.
type SettingsSource interface {
	Settings() map[string]string
}

// ControlSource exposes control definitions by name.
type ControlSource interface {
	Control(name string) (Control, bool)
}

// Entity is any styleable node: widget type or rendered element.
type Entity interface {
	SettingsSource
	ControlSource
	ID() string
	Type() string
}

// Element is a concrete rendered element of a document.
type Element interface {
	Entity
	// Selector returns CSS selector uniquely identifying element root.
	Selector() string
	Children() []Element
}

// Document is one page-builder document.
type Document interface {
	Entity
	// IsKit reports site-wide style document which is styled as a whole.
	IsKit() bool
	// Wrapper returns CSS selector of document root.
	Wrapper() string
	Elements() []Element
}

// WidgetType is a registered type of widget.
type WidgetType interface {
	ControlSource
	Name() string
	SchemeControls() []Control
}

// Registry enumerates registered widget types.
type Registry interface {
	WidgetTypes() []WidgetType
}

// Scheme resolves default scheme values.
type Scheme interface {
	SchemeValue(ref SchemeRef) (string, bool)
}

// Sink receives emitted rules. It must accept repeated calls with the same
// selector, adding properties.
type Sink interface {
	AddRule(selector string, declarations map[string]string)
}
