package lang

import "fmt"

// Kind classifies a lexed token.
type Kind int

const (
	TokEOF Kind = iota
	TokKeyword
	TokIdent
	TokInt
	TokFloat
	TokString
	TokLBrace
	TokRBrace
	TokLParen
	TokRParen
	TokComma
	TokCmp
)

func (k Kind) String() string {
	switch k {
	case TokEOF:
		return "end of input"
	case TokKeyword:
		return "a keyword"
	case TokIdent:
		return "an identifier"
	case TokInt:
		return "an integer"
	case TokFloat:
		return "a float"
	case TokString:
		return "a string"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokComma:
		return "','"
	default:
		return "a comparison operator"
	}
}

// Pos is a 1-based line and column in the source text.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Token is one lexeme with its source position. Text holds the raw spelling
// except for strings, where the quotes are stripped.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

// describe renders a token for error messages.
func (t Token) describe() string {
	switch t.Kind {
	case TokEOF:
		return "end of input"
	case TokKeyword:
		return fmt.Sprintf("%q", t.Text)
	case TokIdent:
		return fmt.Sprintf("identifier %q", t.Text)
	case TokInt, TokFloat:
		return fmt.Sprintf("number %q", t.Text)
	case TokString:
		return fmt.Sprintf("string '%s'", t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}

// keywords holds every reserved word, case-sensitively. Block and clause
// keywords are upper case, the glue words inside a rule are lower case,
// exactly as they appear in the language.
var keywords = map[string]bool{
	"WIDTH": true, "HEIGHT": true,
	"STATE": true, "RULES": true,
	"IF": true, "THEN": true, "WITH": true, "PROB": true,
	"AND": true, "OR": true, "XOR": true,
	"current": true, "is": true, "next": true,
	"count": true, "no": true, "conditions": true,
}
