package fonts

// DefaultGeneric is generic font family used at fallback stage when nothing
// else is configured.
const DefaultGeneric = "sans-serif"

// InitialSuffix is appended to unconfigured font family name at intermediate
// stage, an externally hosted "initial" variant is assumed to exist.
const InitialSuffix = " Initial"

// Resolver maps logical font family to values emitted at every stage.
type Resolver struct {
	families Families
	generic  string
}

// NewResolver creates resolver for configured families. Empty generic falls
// back to DefaultGeneric.
func NewResolver(families Families, generic string) *Resolver {
	if len(generic) == 0 {
		generic = DefaultGeneric
	}
	return &Resolver{families: families, generic: generic}
}

// Generic returns configured generic font family.
func (r *Resolver) Generic() string {
	return r.generic
}

// Configured reports if the font family is known to the staged loader.
func (r *Resolver) Configured(family string) bool {
	_, ok := r.families.Lookup(family)
	return ok
}

// Fallback resolves value for the earliest stage, before any custom font has
// been loaded. Unconfigured and scalar families degrade to generic font.
func (r *Resolver) Fallback(family string) string {
	if e, ok := r.families.Lookup(family); ok && e.Pair && len(e.Fallback) > 0 {
		return e.Fallback
	}
	return r.generic
}

// Intermediate resolves value for the stage where only "initial" variant of
// the font is loaded.
func (r *Resolver) Intermediate(family string) string {
	if e, ok := r.families.Lookup(family); ok && len(e.Stage) > 0 {
		return e.Stage
	}
	return family + InitialSuffix
}

// Terminal never produces a value: when all fonts are loaded originally
// requested family renders natively.
func (r *Resolver) Terminal(string) (string, bool) {
	return "", false
}
