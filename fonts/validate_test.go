package fonts

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		candidate any
		mention   string
	}{
		{"nil", nil, "at least one entry"},
		{"not a mapping", []string{"a"}, "at least one entry"},
		{"empty mapping", map[string]any{}, "at least one entry"},
		{"empty string value", map[string]any{"a": ""}, `"a" is empty`},
		{"wrong arity", map[string]any{"a": []any{"x"}}, "instead of 2"},
		{"too many", map[string]any{"a": []any{"x", "y", "z"}}, "instead of 2"},
		{"non-string entry", map[string]any{"a": []any{1, "y"}}, "not a non-empty string"},
		{"empty entry", map[string]any{"a": []string{"x", ""}}, "not a non-empty string"},
		{"wrong type", map[string]any{"a": 42}, "must be a string or an array"},
		{"empty key", map[string]any{"": "x"}, "non-empty string"},
		{"non-string key", map[any]any{1: "x"}, "must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notices []string
			ok := Validate(tt.candidate, NoticeFunc(func(m string) { notices = append(notices, m) }))
			if ok {
				t.Fatal("Validate() = true, want false")
			}
			if len(notices) == 0 {
				t.Fatal("expected at least one diagnostic")
			}
			if !strings.Contains(strings.Join(notices, "\n"), tt.mention) {
				t.Errorf("diagnostics %q do not mention %q", notices, tt.mention)
			}
		})
	}
}

func TestValidate_AggregatesViolations(t *testing.T) {
	candidate := map[string]any{
		"Good":  "Good Initial",
		"Bad1":  "",
		"Bad2":  []any{"x"},
		"Bad3":  []any{1, 2},
		"Pair":  []any{"Pair Initial", "serif"},
		"Other": true,
	}
	var notices []string
	if Validate(candidate, NoticeFunc(func(m string) { notices = append(notices, m) })) {
		t.Fatal("Validate() = true, want false")
	}
	// Bad1, Bad2 arity, Bad3 two entries, Other
	if len(notices) != 5 {
		t.Errorf("got %d diagnostics, want 5: %q", len(notices), notices)
	}

	// numeric keys make yaml produce map[any]any
	mixed := map[any]any{
		1:      "x",
		"b":    "",
		"c":    []any{"only"},
		"Good": "Good Initial",
	}
	notices = nil
	if Validate(mixed, NoticeFunc(func(m string) { notices = append(notices, m) })) {
		t.Fatal("Validate() of mixed keys = true, want false")
	}
	joined := strings.Join(notices, "\n")
	for _, want := range []string{"name 1 must be a string", `"b" is empty`, `"c" contains 1 values`} {
		if !strings.Contains(joined, want) {
			t.Errorf("diagnostics %q do not mention %q", notices, want)
		}
	}
	if len(notices) != 3 {
		t.Errorf("got %d diagnostics for mixed keys, want 3: %q", len(notices), notices)
	}
}

func TestValidate_Accepts(t *testing.T) {
	candidates := []any{
		map[string]any{"Brand": []any{"Brand Initial", "Georgia, serif"}, "Mono": "Mono Initial"},
		map[any]any{"Brand": "Brand Initial"},
		map[string]string{"Brand": "Brand Initial"},
		map[string][]string{"Brand": {"Brand Initial", "serif"}},
	}
	for _, c := range candidates {
		if !Validate(c, LogNotifier(zaptest.NewLogger(t))) {
			t.Errorf("Validate(%v) = false, want true", c)
		}
	}
	// nil sink is tolerated
	if Validate(map[string]any{}, nil) {
		t.Error("Validate() of empty mapping with nil sink = true")
	}
}

func TestNewFamilies(t *testing.T) {
	families, err := NewFamilies(map[string]any{
		"Brand": []any{"Brand Initial", "Georgia, serif"},
		"Mono":  "Mono Initial",
	})
	if err != nil {
		t.Fatalf("NewFamilies() error = %v", err)
	}
	if e, _ := families.Lookup("Brand"); !e.Pair || e.Stage != "Brand Initial" || e.Fallback != "Georgia, serif" {
		t.Errorf("Brand entry = %+v", e)
	}
	if e, _ := families.Lookup("Mono"); e.Pair || e.Stage != "Mono Initial" {
		t.Errorf("Mono entry = %+v", e)
	}
	if names := families.Names(); len(names) != 2 || names[0] != "Brand" {
		t.Errorf("Names() = %v", names)
	}

	if _, err := NewFamilies(map[string]any{"a": ""}); err == nil {
		t.Error("NewFamilies() of invalid candidate should fail")
	}

	again, err := NewFamilies(families)
	if err != nil || len(again) != 2 {
		t.Errorf("NewFamilies(Families) = %v, %v", again, err)
	}
}
