package stage

import (
	"slices"

	"go.uber.org/zap"

	"fontstage/fonts"
)

// DefaultWidgetClassPrefix prefixes widget type name to get class present on
// every rendered widget of that type.
const DefaultWidgetClassPrefix = "elementor-widget-"

// Walker enumerates host entities and feeds them to Emitter.
type Walker struct {
	emitter *Emitter
	prefix  string
	log     *zap.Logger
}

// NewWalker creates walker. Empty prefix falls back to DefaultWidgetClassPrefix.
func NewWalker(emitter *Emitter, widgetClassPrefix string, log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	if len(widgetClassPrefix) == 0 {
		widgetClassPrefix = DefaultWidgetClassPrefix
	}
	return &Walker{emitter: emitter, prefix: widgetClassPrefix, log: log.Named("walker")}
}

// GlobalPass emits site-wide defaults: for every registered widget type
// font family scheme controls are resolved through the scheme and rules are
// scoped by the widget type class. Returns number of rules written.
func (w *Walker) GlobalPass(reg Registry, scheme Scheme, sink Sink) int {
	types := slices.Clone(reg.WidgetTypes())
	slices.SortFunc(types, func(a, b WidgetType) int {
		return fonts.CompareNatural(a.Name(), b.Name())
	})

	var total int
	for _, wt := range types {
		entity := &schemeEntity{wt: wt, settings: schemeSettings(wt, scheme)}
		if len(entity.settings) == 0 {
			continue
		}
		total += write(sink, w.emitter.emit(entity, entity.settings, "."+w.prefix+wt.Name()))
	}
	w.log.Debug("Global pass completed", zap.Int("widget types", len(types)), zap.Int("rules", total))
	return total
}

// DocumentPass emits per-element overrides for a single document. Kit
// documents are styled as a single entity scoped by document wrapper,
// otherwise elements are visited depth first, parent before children.
// Returns number of rules written.
func (w *Walker) DocumentPass(doc Document, sink Sink) int {
	if doc.IsKit() {
		total := w.emitter.Emit(doc, doc.Wrapper(), sink)
		w.log.Debug("Kit document processed", zap.String("id", doc.ID()), zap.Int("rules", total))
		return total
	}

	var (
		total, visited int
		stack          = reversed(doc.Elements())
	)
	for len(stack) > 0 {
		el := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if el == nil {
			continue
		}
		visited++
		total += w.emitter.Emit(el, el.Selector(), sink)
		stack = append(stack, reversed(el.Children())...)
	}
	w.log.Debug("Document processed", zap.String("id", doc.ID()), zap.Int("elements", visited), zap.Int("rules", total))
	return total
}

// schemeSettings collects font family values of widget type scheme controls.
func schemeSettings(wt WidgetType, scheme Scheme) map[string]string {
	var settings map[string]string
	for _, c := range wt.SchemeControls() {
		if c.Scheme == nil || c.Scheme.Key != FontFamilyMarker {
			continue
		}
		value, ok := scheme.SchemeValue(*c.Scheme)
		if !ok || len(value) == 0 {
			continue
		}
		if settings == nil {
			settings = make(map[string]string)
		}
		settings[c.Name] = value
	}
	return settings
}

// schemeEntity presents widget type with scheme values as an entity.
type schemeEntity struct {
	wt       WidgetType
	settings map[string]string
}

func (s *schemeEntity) ID() string { return s.wt.Name() }
func (s *schemeEntity) Type() string { return s.wt.Name() }
func (s *schemeEntity) Settings() map[string]string { return s.settings }
func (s *schemeEntity) Control(name string) (Control, bool) { return s.wt.Control(name) }

func reversed(elements []Element) []Element {
	out := slices.Clone(elements)
	slices.Reverse(out)
	return out
}
