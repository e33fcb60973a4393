// Package fonts holds staged font family configuration, its validation and
// the rules resolving a logical font family into per-stage values.
package fonts

import (
	"fmt"
	"slices"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
)

// Entry is configuration of a single logical font family. Scalar entries
// carry only Stage value, pairs carry both.
type Entry struct {
	Stage    string // font-family used while lightweight "initial" variant is active
	Fallback string // font-family used before any custom font is loaded
	Pair     bool   // true when entry was configured as (stage, fallback) pair
}

// Families maps logical font family name to its staged configuration.
// It is immutable once built.
type Families map[string]Entry

// Lookup returns configuration for the font family if any.
func (f Families) Lookup(family string) (Entry, bool) {
	e, ok := f[family]
	return e, ok
}

// Names returns configured font family names in natural order.
func (f Families) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.SortFunc(names, CompareNatural)
	return names
}

// Catalog presents configured families as a font group of their own, the way
// host font manager lists them next to its fonts.
func (f Families) Catalog() Catalog {
	cat := make(Catalog, len(f))
	for name := range f {
		cat[name] = KindStaged
	}
	return cat
}

// NewFamilies builds Families from an untrusted candidate structure (usually
// decoded from YAML). It returns all violations combined when candidate does
// not conform, see Validate.
func NewFamilies(candidate any) (Families, error) {
	families, err := inspect(candidate)
	if err != nil {
		return nil, err
	}
	return families, nil
}

// inspect walks candidate, collecting every violation instead of stopping at
// the first one. Families returned alongside a non-nil error are partial.
func inspect(candidate any) (Families, error) {
	entries, keyErrs, err := normalize(candidate)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, CompareNatural)

	var (
		errs     = keyErrs
		families = make(Families, len(entries))
	)
	for _, key := range keys {
		if len(key) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("font family name must be a non-empty string"))
			continue
		}
		entry, err := inspectValue(key, entries[key])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		families[key] = entry
	}
	return families, errs
}

// normalize brings supported mapping shapes to a single form. Entries with
// keys which are not strings are dropped and reported in keyErrs, the rest is
// still returned so their values could be inspected too.
func normalize(candidate any) (entries map[string]any, keyErrs, err error) {
	out := make(map[string]any)
	switch m := candidate.(type) {
	case Families:
		for k, e := range m {
			if e.Pair {
				out[k] = []string{e.Stage, e.Fallback}
			} else {
				out[k] = e.Stage
			}
		}
	case map[string]any:
		for k, v := range m {
			out[k] = v
		}
	case map[string]string:
		for k, v := range m {
			out[k] = v
		}
	case map[string][]string:
		for k, v := range m {
			out[k] = v
		}
	case map[any]any:
		keys := make([]any, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.SortFunc(keys, func(a, b any) int {
			return CompareNatural(fmt.Sprint(a), fmt.Sprint(b))
		})
		for _, k := range keys {
			key, ok := k.(string)
			if !ok {
				keyErrs = multierr.Append(keyErrs, fmt.Errorf("font family name %v must be a string", k))
				continue
			}
			out[key] = m[k]
		}
		if len(out) == 0 && keyErrs != nil {
			return nil, nil, keyErrs
		}
	default:
		return nil, nil, fmt.Errorf("the font family config needs to be a mapping with at least one entry")
	}
	if len(out) == 0 {
		return nil, nil, fmt.Errorf("the font family config needs to be a mapping with at least one entry")
	}
	return out, keyErrs, nil
}

func inspectValue(key string, value any) (Entry, error) {
	switch v := value.(type) {
	case string:
		if len(v) == 0 {
			return Entry{}, fmt.Errorf("the (string)config for the font family %q is empty", key)
		}
		return Entry{Stage: v}, nil
	case []string:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return inspectPair(key, items)
	case []any:
		return inspectPair(key, v)
	default:
		return Entry{}, fmt.Errorf("the config for the font family %q must be a string or an array", key)
	}
}

func inspectPair(key string, items []any) (Entry, error) {
	var errs error
	if len(items) != 2 {
		errs = multierr.Append(errs, fmt.Errorf("the (array)config for the font family %q contains %d values instead of 2", key, len(items)))
	}
	values := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok || len(s) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("the (array)config for the font family %q has entry %d which is not a non-empty string", key, i))
			continue
		}
		values = append(values, s)
	}
	if errs != nil {
		return Entry{}, errs
	}
	return Entry{Stage: values[0], Fallback: values[1], Pair: true}, nil
}

// CompareNatural orders strings naturally ("h2" before "h10"), it is suitable
// for slices.SortFunc.
func CompareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	default:
		return 1
	}
}
