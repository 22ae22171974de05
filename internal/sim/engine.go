package sim

import (
	"math/rand/v2"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
	"github.com/Lucas-Bergami/Cellular-Automata/pkg/rng"
)

// rule is a transition compiled to state ids so the per-cell path never
// touches names or maps.
type rule struct {
	current uint8
	cond    func(counts []int) bool
	next    uint8
	prob    float64
}

// Engine evaluates transitions for one model, with every state name
// resolved to its id up front.
type Engine struct {
	nstates int
	rules   []rule
}

// NewEngine compiles a model's rules. The model must already have passed
// validation; every referenced name is assumed to resolve. After that the
// engine is infallible: there is no error path in the step loop.
func NewEngine(m *core.Model) *Engine {
	ids := make(map[string]uint8, len(m.States))
	for i, s := range m.States {
		ids[s.Name] = uint8(i)
	}
	e := &Engine{nstates: len(m.States)}
	for _, r := range m.Rules {
		e.rules = append(e.rules, rule{
			current: ids[r.Current],
			cond:    compileCond(r.Cond, ids),
			next:    ids[r.Next],
			prob:    r.Prob,
		})
	}
	return e
}

// compileCond lowers a condition tree to a closure over id-indexed
// neighbor counts. The closure evaluates exactly like
// core.Condition.Eval on the equivalent name-keyed counts.
func compileCond(c core.Condition, ids map[string]uint8) func([]int) bool {
	switch v := c.(type) {
	case core.Leaf:
		id, op, val := ids[v.State], v.Op, v.Value
		return func(counts []int) bool { return op.Compare(counts[id], val) }
	case core.Combine:
		left := compileCond(v.Left, ids)
		right := compileCond(v.Right, ids)
		op := v.Op
		return func(counts []int) bool { return op.Apply(left(counts), right(counts)) }
	default:
		// Unconditional, or a nil condition on a hand-built rule.
		return func([]int) bool { return true }
	}
}

// NextCell decides one cell from its current state and neighbor counts.
// Rules are scanned in declaration order; the first whose current state and
// condition both match is the matched rule and scanning stops there. Only
// then is the probability rolled: on success the cell takes the rule's next
// state, on failure it keeps its current state. A failed roll never falls
// through to a later rule, so a matching PROB 0 rule pins its cells where
// they are. With no matched rule the cell keeps its state.
func (e *Engine) NextCell(cur uint8, counts []int, rnd *rand.Rand) uint8 {
	for i := range e.rules {
		r := &e.rules[i]
		if r.current != cur || !r.cond(counts) {
			continue
		}
		if rng.Roll(rnd, r.prob) {
			return r.next
		}
		return cur
	}
	return cur
}
