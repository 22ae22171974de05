package lang

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// LexError reports a character that starts no token class.
type LexError struct {
	Pos  Pos
	Char rune
}

func (e *LexError) Error() string {
	if e.Char == 0 {
		return fmt.Sprintf("%s: unexpected end of input", e.Pos)
	}
	return fmt.Sprintf("%s: unexpected character %q", e.Pos, e.Char)
}

// Lexer produces tokens from configuration text on demand. A Lexer walks
// its input exactly once; make a new one over the same text to restart.
type Lexer struct {
	src  string
	i    int
	line int
	col  int
}

// NewLexer returns a lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Tokens lexes all of src, excluding the trailing end-of-input marker.
func Tokens(src string) ([]Token, error) {
	lx := NewLexer(src)
	var toks []Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if t.Kind == TokEOF {
			return toks, nil
		}
		toks = append(toks, t)
	}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning TokEOF tokens.
func (l *Lexer) Next() (Token, error) {
	l.skipBlank()
	start := Pos{Line: l.line, Col: l.col}
	c := l.peek()
	switch {
	case c == 0:
		return Token{Kind: TokEOF, Pos: start}, nil
	case isIdentStart(c):
		text := l.takeWhile(isIdentPart)
		kind := TokIdent
		if keywords[text] {
			kind = TokKeyword
		}
		return Token{Kind: kind, Text: text, Pos: start}, nil
	case isDigit(c):
		return l.lexNumber(start)
	case c == '\'':
		return l.lexString(start)
	}

	l.advance()
	switch c {
	case '{':
		return Token{Kind: TokLBrace, Text: "{", Pos: start}, nil
	case '}':
		return Token{Kind: TokRBrace, Text: "}", Pos: start}, nil
	case '(':
		return Token{Kind: TokLParen, Text: "(", Pos: start}, nil
	case ')':
		return Token{Kind: TokRParen, Text: ")", Pos: start}, nil
	case ',':
		return Token{Kind: TokComma, Text: ",", Pos: start}, nil
	case '<':
		return l.cmpToken("<", start), nil
	case '>':
		return l.cmpToken(">", start), nil
	case '=':
		if l.peek() == '=' {
			l.advance()
			return Token{Kind: TokCmp, Text: "==", Pos: start}, nil
		}
	case '!':
		if l.peek() == '=' {
			l.advance()
			return Token{Kind: TokCmp, Text: "!=", Pos: start}, nil
		}
	}
	return Token{}, &LexError{Pos: start, Char: c}
}

// cmpToken finishes a < or > that may be followed by =.
func (l *Lexer) cmpToken(lead string, start Pos) Token {
	if l.peek() == '=' {
		l.advance()
		return Token{Kind: TokCmp, Text: lead + "=", Pos: start}
	}
	return Token{Kind: TokCmp, Text: lead, Pos: start}
}

// lexNumber scans an integer, continuing into a float when a dot with
// digits on both sides follows.
func (l *Lexer) lexNumber(start Pos) (Token, error) {
	text := l.takeWhile(isDigit)
	if l.peek() != '.' {
		return Token{Kind: TokInt, Text: text, Pos: start}, nil
	}
	dot := Pos{Line: l.line, Col: l.col}
	l.advance()
	if !isDigit(l.peek()) {
		return Token{}, &LexError{Pos: dot, Char: '.'}
	}
	text += "." + l.takeWhile(isDigit)
	return Token{Kind: TokFloat, Text: text, Pos: start}, nil
}

// lexString scans a single-quoted literal. There are no escapes; the quote
// character simply cannot appear inside a name. Strings do not span lines.
func (l *Lexer) lexString(start Pos) (Token, error) {
	l.advance()
	from := l.i
	for {
		c := l.peek()
		if c == 0 || c == '\n' {
			return Token{}, &LexError{Pos: Pos{Line: l.line, Col: l.col}, Char: c}
		}
		if c == '\'' {
			text := l.src[from:l.i]
			l.advance()
			return Token{Kind: TokString, Text: text, Pos: start}, nil
		}
		l.advance()
	}
}

// skipBlank consumes whitespace and # line comments.
func (l *Lexer) skipBlank() {
	for {
		switch c := l.peek(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '#':
			for l.peek() != 0 && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) peek() rune {
	if l.i >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.i:])
	return r
}

func (l *Lexer) advance() rune {
	r, w := utf8.DecodeRuneInString(l.src[l.i:])
	l.i += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) takeWhile(ok func(rune) bool) string {
	from := l.i
	for l.i < len(l.src) && ok(l.peek()) {
		l.advance()
	}
	return l.src[from:l.i]
}

func isDigit(c rune) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c rune) bool { return c == '_' || unicode.IsLetter(c) }
func isIdentPart(c rune) bool  { return isIdentStart(c) || isDigit(c) }
