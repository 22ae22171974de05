package lang

import (
	"fmt"
	"strconv"

	"github.com/Lucas-Bergami/Cellular-Automata/internal/core"
)

// ParseError reports the first structural violation in the token stream.
// There is no recovery; the position points at the offending token.
type ParseError struct {
	Pos      Pos
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Parse turns configuration text into an unvalidated model. Lex and
// structure errors abort at the first failure; run Validate on the result
// before simulating it.
func Parse(src string) (*core.Model, error) {
	toks, err := Tokens(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.file()
}

type parser struct {
	toks []Token
	i    int
}

// peek returns the current token without consuming it. Past the end it
// yields an end-of-input token positioned just after the last real one.
func (p *parser) peek() Token {
	if p.i < len(p.toks) {
		return p.toks[p.i]
	}
	pos := Pos{Line: 1, Col: 1}
	if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		pos = Pos{Line: last.Pos.Line, Col: last.Pos.Col + len(last.Text)}
	}
	return Token{Kind: TokEOF, Pos: pos}
}

func (p *parser) next() Token {
	t := p.peek()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *parser) fail(expected string) error {
	t := p.peek()
	return &ParseError{Pos: t.Pos, Expected: expected, Found: t.describe()}
}

func (p *parser) expect(k Kind) (Token, error) {
	if p.peek().Kind == k {
		return p.next(), nil
	}
	return Token{}, p.fail(k.String())
}

func (p *parser) keyword(kw string) error {
	if p.atKeyword(kw) {
		p.next()
		return nil
	}
	return p.fail(fmt.Sprintf("%q", kw))
}

func (p *parser) atKeyword(kw string) bool {
	t := p.peek()
	return t.Kind == TokKeyword && t.Text == kw
}

func (p *parser) intLit() (int, error) {
	t, err := p.expect(TokInt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(t.Text)
	if err != nil {
		return 0, &ParseError{Pos: t.Pos, Expected: "an integer", Found: t.describe()}
	}
	return v, nil
}

// file := WIDTH INT HEIGHT INT stateBlock rulesBlock
func (p *parser) file() (*core.Model, error) {
	m := &core.Model{}
	if err := p.keyword("WIDTH"); err != nil {
		return nil, err
	}
	w, err := p.intLit()
	if err != nil {
		return nil, err
	}
	if err := p.keyword("HEIGHT"); err != nil {
		return nil, err
	}
	h, err := p.intLit()
	if err != nil {
		return nil, err
	}
	m.Grid = core.GridSpec{Width: w, Height: h}
	if m.States, err = p.stateBlock(); err != nil {
		return nil, err
	}
	if m.Rules, err = p.rulesBlock(); err != nil {
		return nil, err
	}
	if p.peek().Kind != TokEOF {
		return nil, p.fail("end of input")
	}
	return m, nil
}

// stateBlock := STATE { stateDef* }
func (p *parser) stateBlock() ([]core.State, error) {
	if err := p.keyword("STATE"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	var states []core.State
	for p.peek().Kind == TokIdent {
		s, err := p.stateDef()
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return states, nil
}

// stateDef := IDENT ( INT , INT , INT , INT )
func (p *parser) stateDef() (core.State, error) {
	var s core.State
	name, err := p.expect(TokIdent)
	if err != nil {
		return s, err
	}
	s.Name = name.Text
	if _, err := p.expect(TokLParen); err != nil {
		return s, err
	}
	for i, dst := range [4]*int{&s.R, &s.G, &s.B, &s.Weight} {
		if i > 0 {
			if _, err := p.expect(TokComma); err != nil {
				return s, err
			}
		}
		v, err := p.intLit()
		if err != nil {
			return s, err
		}
		*dst = v
	}
	if _, err := p.expect(TokRParen); err != nil {
		return s, err
	}
	return s, nil
}

// rulesBlock := RULES { rule* }
func (p *parser) rulesBlock() ([]core.Rule, error) {
	if err := p.keyword("RULES"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLBrace); err != nil {
		return nil, err
	}
	var rules []core.Rule
	for p.atKeyword("IF") {
		r, err := p.rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if _, err := p.expect(TokRBrace); err != nil {
		return nil, err
	}
	return rules, nil
}

// rule := IF current is STRING AND condClause THEN next is STRING
//         [WITH PROB number]
func (p *parser) rule() (core.Rule, error) {
	var r core.Rule
	if err := p.keyword("IF"); err != nil {
		return r, err
	}
	if err := p.keyword("current"); err != nil {
		return r, err
	}
	if err := p.keyword("is"); err != nil {
		return r, err
	}
	cur, err := p.expect(TokString)
	if err != nil {
		return r, err
	}
	r.Current = cur.Text
	if err := p.keyword("AND"); err != nil {
		return r, err
	}
	if r.Cond, err = p.condClause(); err != nil {
		return r, err
	}
	if err := p.keyword("THEN"); err != nil {
		return r, err
	}
	if err := p.keyword("next"); err != nil {
		return r, err
	}
	if err := p.keyword("is"); err != nil {
		return r, err
	}
	nxt, err := p.expect(TokString)
	if err != nil {
		return r, err
	}
	r.Next = nxt.Text
	r.Prob = 1.0
	if p.atKeyword("WITH") {
		p.next()
		if err := p.keyword("PROB"); err != nil {
			return r, err
		}
		if r.Prob, err = p.probLit(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// condClause parses what follows the AND of a rule head: either the literal
// (no conditions) marker or a chain of count comparisons. The marker stands
// alone and cannot be combined with further terms.
func (p *parser) condClause() (core.Condition, error) {
	if p.peek().Kind == TokLParen {
		p.next()
		if err := p.keyword("no"); err != nil {
			return nil, err
		}
		if err := p.keyword("conditions"); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, err
		}
		return core.Unconditional{}, nil
	}
	return p.condExpr()
}

// condExpr parses a connective chain. AND, OR and XOR share one precedence
// level and associate left, so a OR b AND c means (a OR b) AND c; the
// language defines no binding order among the three.
func (p *parser) condExpr() (core.Condition, error) {
	cond, err := p.condTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op core.Connective
		switch {
		case p.atKeyword("AND"):
			op = core.And
		case p.atKeyword("OR"):
			op = core.Or
		case p.atKeyword("XOR"):
			op = core.Xor
		default:
			return cond, nil
		}
		p.next()
		right, err := p.condTerm()
		if err != nil {
			return nil, err
		}
		cond = core.Combine{Op: op, Left: cond, Right: right}
	}
}

// condTerm := count ( IDENT ) CMPOP INT
func (p *parser) condTerm() (core.Condition, error) {
	if err := p.keyword("count"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLParen); err != nil {
		return nil, err
	}
	name, err := p.expect(TokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRParen); err != nil {
		return nil, err
	}
	opTok, err := p.expect(TokCmp)
	if err != nil {
		return nil, err
	}
	value, err := p.intLit()
	if err != nil {
		return nil, err
	}
	return core.Leaf{State: name.Text, Op: cmpOps[opTok.Text], Value: value}, nil
}

var cmpOps = map[string]core.CmpOp{
	"==": core.CmpEq,
	"!=": core.CmpNe,
	"<":  core.CmpLt,
	"<=": core.CmpLe,
	">":  core.CmpGt,
	">=": core.CmpGe,
}

// probLit accepts an integer or float literal. The canonical formatter
// writes whole probabilities without a decimal point, so both spellings
// must load.
func (p *parser) probLit() (float64, error) {
	t := p.peek()
	if t.Kind != TokInt && t.Kind != TokFloat {
		return 0, p.fail("a number")
	}
	p.next()
	v, err := strconv.ParseFloat(t.Text, 64)
	if err != nil {
		return 0, &ParseError{Pos: t.Pos, Expected: "a number", Found: t.describe()}
	}
	return v, nil
}
