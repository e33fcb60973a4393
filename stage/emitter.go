package stage

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"fontstage/fonts"
)

// FontFamilyMarker is a naming convention between entity authors and this
// package: every setting whose name contains it holds a font family.
const FontFamilyMarker = "font_family"

// Rule is a single emitted CSS rule.
type Rule struct {
	Selector     string
	Declarations map[string]string
}

// Emitter produces staged rules for a single entity.
type Emitter struct {
	resolver *fonts.Resolver
	guards   Guards
	catalog  fonts.Catalog
	notifier fonts.Notifier
	log      *zap.Logger
}

// EmitterOption configures Emitter.
type EmitterOption func(*Emitter)

// WithCatalog sets host font catalog used to decide if unconfigured font
// family deserves a notice.
func WithCatalog(c fonts.Catalog) EmitterOption {
	return func(e *Emitter) {
		e.catalog = c
	}
}

// WithNotifier sets diagnostics sink.
func WithNotifier(n fonts.Notifier) EmitterOption {
	return func(e *Emitter) {
		e.notifier = n
	}
}

// NewEmitter creates emitter. Without WithNotifier diagnostics go to log.
func NewEmitter(resolver *fonts.Resolver, guards Guards, log *zap.Logger, options ...EmitterOption) *Emitter {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Emitter{
		resolver: resolver,
		guards:   guards,
		log:      log.Named("emitter"),
	}
	for _, setOpt := range options {
		setOpt(e)
	}
	if e.notifier == nil {
		e.notifier = fonts.LogNotifier(e.log)
	}
	return e
}

// FontFamilySettings selects non-empty settings whose names carry
// FontFamilyMarker.
func FontFamilySettings(src SettingsSource) map[string]string {
	var selected map[string]string
	for name, value := range src.Settings() {
		if len(value) == 0 || !strings.Contains(name, FontFamilyMarker) {
			continue
		}
		if selected == nil {
			selected = make(map[string]string)
		}
		selected[name] = value
	}
	return selected
}

// EmitForEntity returns staged rules for entity font family settings.
// Wrapper is the scope selector bound to {{WRAPPER}}. Result is the same for
// unchanged entity and configuration.
func (e *Emitter) EmitForEntity(entity Entity, wrapper string) []Rule {
	settings := FontFamilySettings(entity)
	if len(settings) == 0 {
		return nil
	}
	return e.emit(entity, settings, wrapper)
}

// Emit writes rules for entity into sink and returns number of rules written.
func (e *Emitter) Emit(entity Entity, wrapper string, sink Sink) int {
	return write(sink, e.EmitForEntity(entity, wrapper))
}

func (e *Emitter) emit(entity Entity, settings map[string]string, wrapper string) []Rule {
	e.checkUnregistered(entity, settings)

	b := Bindings{PlaceholderID: entity.ID(), PlaceholderWrapper: wrapper}

	var rules []Rule
	for _, name := range sortedKeys(settings) {
		family := settings[name]
		control, ok := entity.Control(name)
		if !ok || len(control.Selectors) == 0 {
			// settings without CSS mapping are common
			continue
		}
		for _, tmpl := range sortedKeys(control.Selectors) {
			selector := Rewrite(tmpl, b)
			for _, st := range emitting {
				value := e.resolve(st, family)
				if len(value) == 0 {
					continue
				}
				rules = append(rules, Rule{
					Selector:     e.guards.Guard(st) + " " + selector,
					Declarations: map[string]string{"font-family": value},
				})
			}
		}
	}
	e.log.Debug("Entity processed",
		zap.String("type", entity.Type()), zap.String("id", entity.ID()),
		zap.Int("settings", len(settings)), zap.Int("rules", len(rules)))
	return rules
}

func (e *Emitter) resolve(st Stage, family string) string {
	switch st {
	case StageFallback:
		return e.resolver.Fallback(family)
	case StageIntermediate:
		return e.resolver.Intermediate(family)
	default:
		v, _ := e.resolver.Terminal(family)
		return v
	}
}

// checkUnregistered notices font families the staged loader does not know,
// unless host serves them locally.
func (e *Emitter) checkUnregistered(entity Entity, settings map[string]string) {
	seen := make(map[string]struct{}, len(settings))
	for _, name := range sortedKeys(settings) {
		family := settings[name]
		if _, ok := seen[family]; ok {
			continue
		}
		seen[family] = struct{}{}

		if e.resolver.Configured(family) {
			continue
		}
		kind := e.catalog.Kind(family)
		if kind != fonts.KindUnknown && !kind.Hosted() {
			continue
		}
		e.notifier.Notice(fmt.Sprintf("%s font %q used on Widget (type: %s, id: %s)", kind, family, entity.Type(), entity.ID()))
	}
}

func write(sink Sink, rules []Rule) int {
	for _, r := range rules {
		sink.AddRule(r.Selector, r.Declarations)
	}
	return len(rules)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, fonts.CompareNatural)
	return keys
}
