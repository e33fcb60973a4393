// Package stage turns font-family settings of styleable entities into staged
// CSS rules. Every stage is guarded by a selector prefix matching classes
// client side script puts on the document root while fonts are loading.
package stage

import (
	"fmt"
	"strings"
)

// Stage of progressive font loading.
type Stage int

const (
	// StageFallback is active before any custom font has loaded.
	StageFallback Stage = iota
	// StageIntermediate is active after lightweight "initial" variant loaded.
	StageIntermediate
	// StageTerminal is active when all fonts are loaded, nothing is emitted.
	StageTerminal
)

func (s Stage) String() string {
	switch s {
	case StageFallback:
		return "fallback"
	case StageIntermediate:
		return "intermediate"
	case StageTerminal:
		return "terminal"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Default names of classes toggled on the document root.
const (
	DefaultClassStage1 = "fonts-loaded-stage1"
	DefaultClassStage2 = "fonts-loaded-stage2"
)

// Guards holds root classes stage guard selectors are built from.
type Guards struct {
	Class1 string
	Class2 string
}

// NewGuards normalizes class names: leading dot is dropped and empty names
// are replaced with defaults.
func NewGuards(class1, class2 string) Guards {
	clean := func(class, def string) string {
		class = strings.TrimPrefix(strings.TrimSpace(class), ".")
		if len(class) == 0 {
			return def
		}
		return class
	}
	return Guards{
		Class1: clean(class1, DefaultClassStage1),
		Class2: clean(class2, DefaultClassStage2),
	}
}

// Guard returns selector prefix matching document root while stage is
// active. Guards of different stages are mutually exclusive.
func (g Guards) Guard(s Stage) string {
	switch s {
	case StageFallback:
		return "html:not(." + g.Class1 + ")"
	case StageIntermediate:
		return "html." + g.Class1 + ":not(." + g.Class2 + ")"
	default:
		return "html." + g.Class2
	}
}

// emitting lists stages rules are produced for, in order.
var emitting = []Stage{StageFallback, StageIntermediate}
