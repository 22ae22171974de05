package lang

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
)

// forestFire is the forest fire model in source form, kept byte-for-byte
// stable because several tests assert its exact structure.
const forestFire = `WIDTH 50 HEIGHT 40
STATE {
  Empty(0, 0, 0, 10)
  Tree(0, 200, 0, 7)
  Burning(255, 0, 0, 3)
}
RULES {
  IF current is 'Burning' AND (no conditions) THEN next is 'Empty' WITH PROB 0.5
  IF current is 'Tree' AND count(Burning) >= 1 THEN next is 'Burning' WITH PROB 1.0
  IF current is 'Empty' AND (no conditions) THEN next is 'Tree' WITH PROB 0.1
}
`

// miniHeader opens a two-state model; append rule lines and a closing
// brace to finish it.
const miniHeader = `WIDTH 3 HEIGHT 3
STATE {
  A(0, 0, 0, 1)
  B(10, 10, 10, 1)
}
RULES {
`

func mustParse(t *testing.T, src string) *core.Model {
	t.Helper()
	m, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestParseForestFire(t *testing.T) {
	m := mustParse(t, forestFire)
	want := &core.Model{
		Grid: core.GridSpec{Width: 50, Height: 40},
		States: []core.State{
			{Name: "Empty", R: 0, G: 0, B: 0, Weight: 10},
			{Name: "Tree", R: 0, G: 200, B: 0, Weight: 7},
			{Name: "Burning", R: 255, G: 0, B: 0, Weight: 3},
		},
		Rules: []core.Rule{
			{Current: "Burning", Cond: core.Unconditional{}, Next: "Empty", Prob: 0.5},
			{Current: "Tree", Cond: core.Leaf{State: "Burning", Op: core.CmpGe, Value: 1}, Next: "Burning", Prob: 1.0},
			{Current: "Empty", Cond: core.Unconditional{}, Next: "Tree", Prob: 0.1},
		},
	}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("parsed model mismatch\ngot  %#v\nwant %#v", m, want)
	}
}

func TestParseProbabilityForms(t *testing.T) {
	src := miniHeader +
		"  IF current is 'A' AND (no conditions) THEN next is 'B'\n" +
		"  IF current is 'A' AND (no conditions) THEN next is 'B' WITH PROB 1\n" +
		"  IF current is 'B' AND (no conditions) THEN next is 'A' WITH PROB 0.25\n}\n"
	m := mustParse(t, src)
	want := []float64{1, 1, 0.25}
	for i, r := range m.Rules {
		if r.Prob != want[i] {
			t.Errorf("rule %d probability = %v, want %v", i, r.Prob, want[i])
		}
	}
}

func TestParseConnectiveChainAssociatesLeft(t *testing.T) {
	src := miniHeader + "  IF current is 'A' AND count(A) == 1 AND count(A) == 2 OR count(A) == 3 THEN next is 'B'\n}\n"
	m := mustParse(t, src)
	want := core.Combine{
		Op: core.Or,
		Left: core.Combine{
			Op:    core.And,
			Left:  core.Leaf{State: "A", Op: core.CmpEq, Value: 1},
			Right: core.Leaf{State: "A", Op: core.CmpEq, Value: 2},
		},
		Right: core.Leaf{State: "A", Op: core.CmpEq, Value: 3},
	}
	if !reflect.DeepEqual(m.Rules[0].Cond, want) {
		t.Fatalf("condition tree mismatch\ngot  %#v\nwant %#v", m.Rules[0].Cond, want)
	}
}

func TestParseAllComparisonOperators(t *testing.T) {
	src := miniHeader + "  IF current is 'A' AND count(B) == 0 OR count(B) != 1 OR count(B) < 2 OR count(B) <= 3 OR count(B) > 4 OR count(B) >= 5 THEN next is 'B'\n}\n"
	m := mustParse(t, src)
	wantOps := []core.CmpOp{core.CmpEq, core.CmpNe, core.CmpLt, core.CmpLe, core.CmpGt, core.CmpGe}
	var got []core.CmpOp
	var walk func(c core.Condition)
	walk = func(c core.Condition) {
		switch v := c.(type) {
		case core.Leaf:
			got = append(got, v.Op)
		case core.Combine:
			walk(v.Left)
			walk(v.Right)
		}
	}
	walk(m.Rules[0].Cond)
	if !reflect.DeepEqual(got, wantOps) {
		t.Fatalf("operators = %v, want %v", got, wantOps)
	}
}

func TestParseEmptyBlocks(t *testing.T) {
	m := mustParse(t, "WIDTH 3 HEIGHT 3\nSTATE {\n}\nRULES {\n}\n")
	if len(m.States) != 0 || len(m.Rules) != 0 {
		t.Fatalf("got %d states and %d rules, want none", len(m.States), len(m.Rules))
	}
}

func TestParseErrorReportsExpectedAndFound(t *testing.T) {
	_, err := Parse("WIDTH 50 STATE {\n}\nRULES {\n}\n")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	if perr.Expected != `"HEIGHT"` {
		t.Errorf("expected = %s", perr.Expected)
	}
	if perr.Pos != (Pos{1, 10}) {
		t.Errorf("pos = %s, want 1:10", perr.Pos)
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []struct{ name, src string }{
		{"missing width", "STATE {\n}\nRULES {\n}\n"},
		{"missing state block", "WIDTH 3 HEIGHT 3\nRULES {\n}\n"},
		{"unclosed state block", "WIDTH 3 HEIGHT 3\nSTATE {\n  A(0, 0, 0, 1)\nRULES {\n}\n"},
		{"short color tuple", "WIDTH 3 HEIGHT 3\nSTATE {\n  A(0, 0, 1)\n}\nRULES {\n}\n"},
		{"marker combined with a term", miniHeader + "  IF current is 'A' AND (no conditions) AND count(B) == 1 THEN next is 'B'\n}\n"},
		{"term combined with marker", miniHeader + "  IF current is 'A' AND count(B) == 1 AND (no conditions) THEN next is 'B'\n}\n"},
		{"unquoted rule state", miniHeader + "  IF current is A AND (no conditions) THEN next is 'B'\n}\n"},
		{"missing condition clause", miniHeader + "  IF current is 'A' THEN next is 'B'\n}\n"},
		{"trailing tokens", "WIDTH 3 HEIGHT 3\nSTATE {\n}\nRULES {\n}\nWIDTH"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(c.src)
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("want *ParseError, got %v", err)
			}
		})
	}
}
