package lang

import (
	"fmt"
	"strings"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
)

// ValidationError is one semantic violation found in a parsed model.
type ValidationError interface {
	error
	validation()
}

// ValidationErrors collects every violation from one Validate pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "\n")
}

// UnknownStateReference flags a rule naming a state the alphabet does not
// declare.
type UnknownStateReference struct {
	Site string // which slot of which rule holds the reference
	Name string
}

func (e UnknownStateReference) Error() string {
	return fmt.Sprintf("%s references unknown state '%s'", e.Site, e.Name)
}
func (UnknownStateReference) validation() {}

// DuplicateStateName flags a state name declared more than once.
type DuplicateStateName struct {
	Name string
}

func (e DuplicateStateName) Error() string {
	return fmt.Sprintf("state '%s' is declared more than once", e.Name)
}
func (DuplicateStateName) validation() {}

// ProbabilityOutOfRange flags a rule probability outside [0, 1]. Rule is a
// zero-based index into the model's rule list.
type ProbabilityOutOfRange struct {
	Rule  int
	Value float64
}

func (e ProbabilityOutOfRange) Error() string {
	return fmt.Sprintf("rule %d has probability %v, want 0 to 1", e.Rule+1, e.Value)
}
func (ProbabilityOutOfRange) validation() {}

// ColorComponentOutOfRange flags a color channel outside [0, 255].
type ColorComponentOutOfRange struct {
	State     string
	Component string // "red", "green" or "blue"
	Value     int
}

func (e ColorComponentOutOfRange) Error() string {
	return fmt.Sprintf("state '%s' has %s component %d, want 0 to 255", e.State, e.Component, e.Value)
}
func (ColorComponentOutOfRange) validation() {}

// NonPositiveGridDimension flags a zero or negative grid dimension.
type NonPositiveGridDimension struct {
	Which string // "width" or "height"
	Value int
}

func (e NonPositiveGridDimension) Error() string {
	return fmt.Sprintf("grid %s is %d, want at least 1", e.Which, e.Value)
}
func (NonPositiveGridDimension) validation() {}

// Validate cross-checks a parsed model and reports every violation it can
// find in one pass instead of stopping at the first. A nil return is the
// only license to simulate the model; in particular an unknown state inside
// a count( ) is rejected here, never tolerated as a zero count at runtime.
func Validate(m *core.Model) error {
	var errs ValidationErrors

	if m.Grid.Width <= 0 {
		errs = append(errs, NonPositiveGridDimension{Which: "width", Value: m.Grid.Width})
	}
	if m.Grid.Height <= 0 {
		errs = append(errs, NonPositiveGridDimension{Which: "height", Value: m.Grid.Height})
	}

	declared := make(map[string]bool, len(m.States))
	for _, s := range m.States {
		if declared[s.Name] {
			errs = append(errs, DuplicateStateName{Name: s.Name})
		}
		declared[s.Name] = true
		for _, c := range []struct {
			component string
			value     int
		}{{"red", s.R}, {"green", s.G}, {"blue", s.B}} {
			if c.value < 0 || c.value > 255 {
				errs = append(errs, ColorComponentOutOfRange{State: s.Name, Component: c.component, Value: c.value})
			}
		}
	}

	for i, r := range m.Rules {
		if !declared[r.Current] {
			errs = append(errs, UnknownStateReference{
				Site: fmt.Sprintf("rule %d current state", i+1),
				Name: r.Current,
			})
		}
		walkLeaves(r.Cond, func(l core.Leaf) {
			if !declared[l.State] {
				errs = append(errs, UnknownStateReference{
					Site: fmt.Sprintf("rule %d condition", i+1),
					Name: l.State,
				})
			}
		})
		if !declared[r.Next] {
			errs = append(errs, UnknownStateReference{
				Site: fmt.Sprintf("rule %d next state", i+1),
				Name: r.Next,
			})
		}
		if r.Prob < 0 || r.Prob > 1 {
			errs = append(errs, ProbabilityOutOfRange{Rule: i, Value: r.Prob})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// walkLeaves visits every comparison leaf of a condition tree left to right.
func walkLeaves(c core.Condition, fn func(core.Leaf)) {
	switch v := c.(type) {
	case core.Leaf:
		fn(v)
	case core.Combine:
		walkLeaves(v.Left, fn)
		walkLeaves(v.Right, fn)
	}
}
