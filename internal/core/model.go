// Package core holds the data model produced by parsing a cellscript
// definition: the grid dimensions, the state alphabet, and the ordered
// transition rules. Everything here is immutable after validation.
package core

import (
	"fmt"
	"image/color"
)

// GridSpec describes the fixed dimensions of every generation.
type GridSpec struct {
	Width  int
	Height int
}

// State is one symbol of the automaton alphabet. Color components stay
// plain ints so the validator can report out-of-range literals instead of
// silently truncating them; use RGBA once the model has been validated.
// Weight biases random grid seeding and has no effect on transitions.
type State struct {
	Name    string
	R, G, B int
	Weight  int
}

// RGBA returns the display color of the state, fully opaque.
func (s State) RGBA() color.RGBA {
	return color.RGBA{R: uint8(s.R), G: uint8(s.G), B: uint8(s.B), A: 255}
}

// CmpOp enumerates the relational operators allowed in a condition leaf.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// Compare applies the operator to a neighbor count and a threshold.
func (op CmpOp) Compare(count, value int) bool {
	switch op {
	case CmpEq:
		return count == value
	case CmpNe:
		return count != value
	case CmpLt:
		return count < value
	case CmpLe:
		return count <= value
	case CmpGt:
		return count > value
	default:
		return count >= value
	}
}

func (op CmpOp) String() string {
	switch op {
	case CmpEq:
		return "=="
	case CmpNe:
		return "!="
	case CmpLt:
		return "<"
	case CmpLe:
		return "<="
	case CmpGt:
		return ">"
	default:
		return ">="
	}
}

// Connective joins two condition subtrees.
type Connective int

const (
	And Connective = iota
	Or
	Xor
)

// Apply combines two already-evaluated operands. Xor is true iff the
// operands differ. Both operands are always evaluated before combining;
// the language defines strict left-to-right evaluation, not short-circuit.
func (c Connective) Apply(a, b bool) bool {
	switch c {
	case And:
		return a && b
	case Or:
		return a || b
	default:
		return a != b
	}
}

func (c Connective) String() string {
	switch c {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		return "XOR"
	}
}

// Counts is a neighborhood summary: how many neighbors of a cell currently
// hold each state, keyed by state name. Absent names count as zero.
type Counts map[string]int

// Condition is the guard of a transition rule, a tagged-variant tree:
// Unconditional, a single Leaf comparison, or a Combine node joining two
// subtrees. The parser builds Combine chains strictly left-associative
// because the language assigns no precedence among AND, OR and XOR.
type Condition interface {
	// Eval reports whether the guard holds for the given neighborhood.
	Eval(n Counts) bool
	// String renders the condition in source form.
	String() string
}

// Unconditional is the "(no conditions)" marker: always true, and never
// combined with other conditions.
type Unconditional struct{}

func (Unconditional) Eval(Counts) bool { return true }

func (Unconditional) String() string { return "(no conditions)" }

// Leaf compares the neighbor count of one state against a threshold.
type Leaf struct {
	State string
	Op    CmpOp
	Value int
}

func (l Leaf) Eval(n Counts) bool { return l.Op.Compare(n[l.State], l.Value) }

func (l Leaf) String() string {
	return fmt.Sprintf("count(%s) %s %d", l.State, l.Op, l.Value)
}

// Combine joins two subtrees with a connective.
type Combine struct {
	Op          Connective
	Left, Right Condition
}

func (c Combine) Eval(n Counts) bool {
	return c.Op.Apply(c.Left.Eval(n), c.Right.Eval(n))
}

func (c Combine) String() string {
	return c.Left.String() + " " + c.Op.String() + " " + c.Right.String()
}

// Rule is one guarded, probabilistic transition. Rules live in a single
// ordered list and declaration order decides dispatch: the first rule whose
// Current matches and whose Cond holds is the one that fires.
type Rule struct {
	Current string
	Cond    Condition
	Next    string
	Prob    float64
}

// Model is a parsed cellscript definition. State ids are positions in
// States, assigned in declaration order; Grid cells store those ids.
type Model struct {
	Grid   GridSpec
	States []State
	Rules  []Rule
}

// StateID resolves a state name to its id. On a validated model every name
// referenced by a rule resolves.
func (m *Model) StateID(name string) (uint8, bool) {
	for i, s := range m.States {
		if s.Name == name {
			return uint8(i), true
		}
	}
	return 0, false
}

// StateName returns the name for a cell value, or "" for an id outside the
// alphabet.
func (m *Model) StateName(id uint8) string {
	if int(id) >= len(m.States) {
		return ""
	}
	return m.States[id].Name
}

// Palette returns the id-indexed display colors of the alphabet.
func (m *Model) Palette() []color.RGBA {
	p := make([]color.RGBA, len(m.States))
	for i, s := range m.States {
		p[i] = s.RGBA()
	}
	return p
}
