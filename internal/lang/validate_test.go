package lang

import (
	"errors"
	"testing"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
)

func TestValidateForestFireClean(t *testing.T) {
	if err := Validate(mustParse(t, forestFire)); err != nil {
		t.Fatal(err)
	}
}

func TestValidateCollectsEveryError(t *testing.T) {
	src := `WIDTH 10 HEIGHT 10
STATE {
  A(0, 0, 0, 1)
}
RULES {
  IF current is 'B' AND (no conditions) THEN next is 'A'
  IF current is 'A' AND count(C) >= 1 THEN next is 'A' WITH PROB 1.5
}
`
	err := Validate(mustParse(t, src))
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3:\n%v", len(errs), err)
	}
	u1, ok := errs[0].(UnknownStateReference)
	if !ok || u1.Name != "B" {
		t.Errorf("errs[0] = %#v, want unknown reference to B", errs[0])
	}
	u2, ok := errs[1].(UnknownStateReference)
	if !ok || u2.Name != "C" {
		t.Errorf("errs[1] = %#v, want unknown reference to C", errs[1])
	}
	p, ok := errs[2].(ProbabilityOutOfRange)
	if !ok || p.Rule != 1 || p.Value != 1.5 {
		t.Errorf("errs[2] = %#v, want probability 1.5 on rule index 1", errs[2])
	}
}

func TestValidateDuplicateStateName(t *testing.T) {
	src := "WIDTH 3 HEIGHT 3\nSTATE {\n  Tree(0, 0, 0, 1)\n  Tree(1, 1, 1, 1)\n}\nRULES {\n}\n"
	err := Validate(mustParse(t, src))
	var errs ValidationErrors
	if !errors.As(err, &errs) || len(errs) != 1 {
		t.Fatalf("got %v", err)
	}
	d, ok := errs[0].(DuplicateStateName)
	if !ok || d.Name != "Tree" {
		t.Fatalf("errs[0] = %#v", errs[0])
	}
}

func TestValidateColorComponents(t *testing.T) {
	src := "WIDTH 3 HEIGHT 3\nSTATE {\n  Hot(300, 0, 256, 1)\n}\nRULES {\n}\n"
	err := Validate(mustParse(t, src))
	var errs ValidationErrors
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("got %v", err)
	}
	r, ok := errs[0].(ColorComponentOutOfRange)
	if !ok || r.State != "Hot" || r.Component != "red" || r.Value != 300 {
		t.Errorf("errs[0] = %#v", errs[0])
	}
	b, ok := errs[1].(ColorComponentOutOfRange)
	if !ok || b.Component != "blue" || b.Value != 256 {
		t.Errorf("errs[1] = %#v", errs[1])
	}
}

func TestValidateGridDimensions(t *testing.T) {
	err := Validate(mustParse(t, "WIDTH 0 HEIGHT 0\nSTATE {\n}\nRULES {\n}\n"))
	var errs ValidationErrors
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("got %v", err)
	}
	w, ok := errs[0].(NonPositiveGridDimension)
	if !ok || w.Which != "width" {
		t.Errorf("errs[0] = %#v", errs[0])
	}
	h, ok := errs[1].(NonPositiveGridDimension)
	if !ok || h.Which != "height" {
		t.Errorf("errs[1] = %#v", errs[1])
	}
}

func TestValidateNegativeProbability(t *testing.T) {
	// The grammar cannot spell a negative literal, but models can also be
	// built in memory, so the range check covers both ends.
	m := &core.Model{
		Grid:   core.GridSpec{Width: 3, Height: 3},
		States: []core.State{{Name: "A"}},
		Rules:  []core.Rule{{Current: "A", Cond: core.Unconditional{}, Next: "A", Prob: -0.25}},
	}
	err := Validate(m)
	var errs ValidationErrors
	if !errors.As(err, &errs) || len(errs) != 1 {
		t.Fatalf("got %v", err)
	}
	if _, ok := errs[0].(ProbabilityOutOfRange); !ok {
		t.Fatalf("errs[0] = %#v", errs[0])
	}
}

func TestLoadRunsBothPasses(t *testing.T) {
	if _, err := Load(forestFire); err != nil {
		t.Fatal(err)
	}
	_, err := Load(miniHeader + "  IF current is 'Ghost' AND (no conditions) THEN next is 'A'\n}\n")
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
	_, err = Load("WIDTH nope")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
}
