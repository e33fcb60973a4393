package stage

import (
	"testing"
)

func TestNewGuards(t *testing.T) {
	tests := []struct {
		name           string
		class1, class2 string
		want           Guards
	}{
		{"defaults", "", "", Guards{DefaultClassStage1, DefaultClassStage2}},
		{"leading dot", ".fonts-1-loaded", ".fonts-2-loaded", Guards{"fonts-1-loaded", "fonts-2-loaded"}},
		{"as is", "a", "b", Guards{"a", "b"}},
		{"spaces", "  .a ", " ", Guards{"a", DefaultClassStage2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewGuards(tt.class1, tt.class2); got != tt.want {
				t.Errorf("NewGuards() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGuards_Guard(t *testing.T) {
	g := NewGuards("", "")
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageFallback, "html:not(.fonts-loaded-stage1)"},
		{StageIntermediate, "html.fonts-loaded-stage1:not(.fonts-loaded-stage2)"},
		{StageTerminal, "html.fonts-loaded-stage2"},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			if got := g.Guard(tt.stage); got != tt.want {
				t.Errorf("Guard(%v) = %q, want %q", tt.stage, got, tt.want)
			}
		})
	}
}

func TestRewrite(t *testing.T) {
	b := Bindings{PlaceholderID: "42", PlaceholderWrapper: ".sel"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"round trip", ".elementor-element-{{ID}} {{WRAPPER}} img", ".elementor-element-42 .sel img"},
		{"repeated", "{{WRAPPER}} h1, {{WRAPPER}} h2", ".sel h1, .sel h2"},
		{"no placeholders", "body p", "body p"},
		{"unknown placeholder kept", "{{WRAPPER}} {{VALUE}}", ".sel {{VALUE}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rewrite(tt.template, b); got != tt.want {
				t.Errorf("Rewrite(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

func TestRewrite_NoRescan(t *testing.T) {
	// replacement value containing other placeholder is not expanded again
	got := Rewrite("{{WRAPPER}} x", Bindings{PlaceholderWrapper: "{{ID}}", PlaceholderID: "42"})
	if got != "{{ID}} x" {
		t.Errorf("Rewrite() = %q, want %q", got, "{{ID}} x")
	}
	if got := Rewrite("{{ID}}", nil); got != "{{ID}}" {
		t.Errorf("Rewrite() with no bindings = %q", got)
	}
}
