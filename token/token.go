// Package token defines the lexical tokens produced by the lexer and the
// left-binding-power table the parser uses to drive Pratt parsing.
package token

import "github.com/aretext/jmespath/value"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	KindEOF Kind = iota
	KindIdentifier
	KindQuotedIdentifier
	KindNumber
	KindLiteral // embedded `...` JSON literal or '...' raw string

	KindDot
	KindStar
	KindFlatten // []
	KindAnd     // &&
	KindOr      // ||
	KindPipe    // |
	KindFilter  // [?
	KindLBracket
	KindRBracket
	KindComma
	KindColon
	KindNot // !
	KindNotEqual
	KindEqual
	KindGreaterThan
	KindGreaterThanEqual
	KindLessThan
	KindLessThanEqual
	KindAt
	KindAmpersand
	KindLParen
	KindRParen
	KindLBrace
	KindRBrace
)

// lbp is the left-binding-power table driving the Pratt parser's operator
// precedence, derived from the grammar in the JMESPath specification
// (https://jmespath.org/specification.html). Higher binds tighter. Kinds
// not listed here bind at 0.
var lbp = map[Kind]int{
	KindPipe:             1,
	KindOr:                2,
	KindAnd:               3,
	KindEqual:             5,
	KindNotEqual:          5,
	KindLessThan:          5,
	KindLessThanEqual:     5,
	KindGreaterThan:       5,
	KindGreaterThanEqual:  5,
	KindFlatten:           9,
	KindStar:              20,
	KindFilter:            21,
	KindDot:               40,
	KindNot:               45,
	KindLBrace:            50,
	KindLBracket:          55,
	KindLParen:            60,
}

// LBP returns the left-binding power for kind, per the lbp table above.
// Kinds absent from the table (including KindEOF) bind at 0.
func LBP(kind Kind) int {
	return lbp[kind]
}

// Token is a single lexical unit together with its source position and, for
// the punctuator kinds, its left-binding-power (stamped at scan time rather
// than at parse time, following the teacher tokenizer's convention of
// stamping token metadata as soon as a token is recognized).
type Token struct {
	Kind Kind

	// Ident holds the text for KindIdentifier/KindQuotedIdentifier.
	Ident string

	// Num holds the parsed integer for KindNumber.
	Num int64

	// Literal holds the decoded value for KindLiteral.
	Literal value.Value

	// StartPos/EndPos are byte offsets into the source text.
	StartPos int
	EndPos   int

	// LBP is the left-binding power of this token, stamped from the lbp
	// table at scan time.
	LBP int
}

// New returns a Token of the given kind at [start,end), with LBP filled in
// from the table.
func New(kind Kind, start, end int) Token {
	return Token{Kind: kind, StartPos: start, EndPos: end, LBP: LBP(kind)}
}

// String renders a human-readable name for kind, used in compile error
// messages.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindIdentifier:
		return "identifier"
	case KindQuotedIdentifier:
		return "quoted identifier"
	case KindNumber:
		return "number"
	case KindLiteral:
		return "literal"
	case KindDot:
		return "'.'"
	case KindStar:
		return "'*'"
	case KindFlatten:
		return "'[]'"
	case KindAnd:
		return "'&&'"
	case KindOr:
		return "'||'"
	case KindPipe:
		return "'|'"
	case KindFilter:
		return "'[?'"
	case KindLBracket:
		return "'['"
	case KindRBracket:
		return "']'"
	case KindComma:
		return "','"
	case KindColon:
		return "':'"
	case KindNot:
		return "'!'"
	case KindNotEqual:
		return "'!='"
	case KindEqual:
		return "'=='"
	case KindGreaterThan:
		return "'>'"
	case KindGreaterThanEqual:
		return "'>='"
	case KindLessThan:
		return "'<'"
	case KindLessThanEqual:
		return "'<='"
	case KindAt:
		return "'@'"
	case KindAmpersand:
		return "'&'"
	case KindLParen:
		return "'('"
	case KindRParen:
		return "')'"
	case KindLBrace:
		return "'{'"
	case KindRBrace:
		return "'}'"
	default:
		return "unknown token"
	}
}
