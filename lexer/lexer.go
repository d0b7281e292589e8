// Package lexer converts JMESPath source text into a token stream, per the
// lexical grammar in the JMESPath specification (https://jmespath.org/specification.html).
package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	validator "github.com/aretext/jmespath/internal/utf8"
	"github.com/aretext/jmespath/token"
	"github.com/aretext/jmespath/value"
)

// Lex tokenizes src, returning a token stream terminated by a single
// KindEOF token, or a compile-time error naming the offending construct.
func Lex(src string) ([]token.Token, error) {
	v := validator.NewValidator()
	bytesOK := v.ValidateBytes([]byte(src))
	endOK := v.ValidateEnd()
	if !bytesOK || !endOK {
		if offset, ok := v.InvalidOffset(); ok {
			return nil, errors.Errorf("invalid UTF-8 input at byte offset %d", offset)
		}
		return nil, errors.New("invalid UTF-8 input")
	}

	l := &lexer{src: src}
	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, errors.Wrapf(err, "lexing input")
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.KindEOF {
			return tokens, nil
		}
	}
}

type lexer struct {
	src string
	pos int // byte offset into src
}

func (l *lexer) peekByte() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *lexer) peekByteAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *lexer) next() (token.Token, error) {
	l.skipWhitespace()

	start := l.pos
	b, ok := l.peekByte()
	if !ok {
		return token.New(token.KindEOF, start, start), nil
	}

	switch {
	case isIdentStart(b):
		return l.lexIdentifier(), nil
	case b == '"':
		return l.lexQuotedIdentifier()
	case b == '\'':
		return l.lexRawString()
	case b == '`':
		return l.lexLiteral()
	case isDigit(b):
		return l.lexNumber()
	case b == '-':
		if next, ok := l.peekByteAt(1); ok && isDigit(next) {
			return l.lexNumber()
		}
		return token.Token{}, errors.Errorf("unexpected character '-' at position %d", start)
	default:
		return l.lexPunctuator()
	}
}

func (l *lexer) skipWhitespace() {
	for {
		b, ok := l.peekByte()
		if !ok {
			return
		}
		switch b {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func (l *lexer) lexIdentifier() token.Token {
	start := l.pos
	l.pos++
	for {
		b, ok := l.peekByte()
		if !ok || !isIdentCont(b) {
			break
		}
		l.pos++
	}
	tok := token.New(token.KindIdentifier, start, l.pos)
	tok.Ident = l.src[start:l.pos]
	return tok
}

// lexQuotedIdentifier reads a "..." quoted identifier, honoring \ escapes,
// and decodes the content as a JSON string literal per the JMESPath
// specification's quoted-identifier grammar.
func (l *lexer) lexQuotedIdentifier() (token.Token, error) {
	start := l.pos
	raw, err := l.readDelimited('"', '\\')
	if err != nil {
		return token.Token{}, errors.Wrapf(err, "quoted identifier")
	}

	var decoded string
	if err := jsonUnquote(raw, &decoded); err != nil {
		return token.Token{}, errors.Wrapf(err, "quoted identifier %q is not a valid JSON string", raw)
	}

	tok := token.New(token.KindQuotedIdentifier, start, l.pos)
	tok.Ident = decoded
	return tok, nil
}

// lexRawString reads a '...' raw string literal, honoring only \' as an
// escape, per the JMESPath specification's raw-string-literal grammar.
func (l *lexer) lexRawString() (token.Token, error) {
	start := l.pos
	l.pos++ // consume opening '

	var sb strings.Builder
	for {
		b, ok := l.peekByte()
		if !ok {
			return token.Token{}, errors.Errorf("unterminated ' delimiter starting at position %d", start)
		}
		if b == '\'' {
			l.pos++
			break
		}
		if b == '\\' {
			if nb, ok := l.peekByteAt(1); ok && nb == '\'' {
				sb.WriteByte('\'')
				l.pos += 2
				continue
			}
			sb.WriteByte(b)
			l.pos++
			continue
		}
		sb.WriteByte(b)
		l.pos++
	}

	tok := token.New(token.KindLiteral, start, l.pos)
	tok.Literal = value.String(sb.String())
	return tok, nil
}

// lexLiteral reads a `...` embedded JSON literal, honoring \` as an escape,
// per the JMESPath specification's literal-expression grammar.
func (l *lexer) lexLiteral() (token.Token, error) {
	start := l.pos
	raw, err := l.readDelimited('`', '\\')
	if err != nil {
		return token.Token{}, errors.Wrapf(err, "literal")
	}

	unescaped := strings.ReplaceAll(raw, "\\`", "`")

	v, err := value.FromJSON([]byte(unescaped))
	if err != nil {
		return token.Token{}, errors.Wrapf(err, "malformed literal JSON %q", unescaped)
	}

	tok := token.New(token.KindLiteral, start, l.pos)
	tok.Literal = v
	return tok, nil
}

// readDelimited reads bytes up to (but not including) the matching
// closing byte, honoring escChar so that escChar+closing is not treated as
// the closing delimiter. It consumes both the opening and closing
// delimiter and returns the raw content between them (escapes not yet
// interpreted).
func (l *lexer) readDelimited(closing, escChar byte) (string, error) {
	start := l.pos
	l.pos++ // consume opening delimiter
	contentStart := l.pos

	for {
		b, ok := l.peekByte()
		if !ok {
			return "", errors.Errorf("unterminated %c delimiter starting at position %d", closing, start)
		}
		if b == escChar {
			if _, ok := l.peekByteAt(1); ok {
				l.pos += 2
				continue
			}
			return "", errors.Errorf("unterminated %c delimiter starting at position %d", closing, start)
		}
		if b == closing {
			content := l.src[contentStart:l.pos]
			l.pos++
			return content, nil
		}
		l.pos++
	}
}

func (l *lexer) lexNumber() (token.Token, error) {
	start := l.pos
	if b, ok := l.peekByte(); ok && b == '-' {
		l.pos++
	}
	for {
		b, ok := l.peekByte()
		if !ok || !isDigit(b) {
			break
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{}, errors.Errorf("integer literal %q overflows 64 bits", text)
	}
	tok := token.New(token.KindNumber, start, l.pos)
	tok.Num = i
	return tok, nil
}

func (l *lexer) lexPunctuator() (token.Token, error) {
	start := l.pos
	b, _ := l.peekByte()

	single := func(kind token.Kind) (token.Token, error) {
		l.pos++
		return token.New(kind, start, l.pos), nil
	}

	switch b {
	case '.':
		return single(token.KindDot)
	case '*':
		return single(token.KindStar)
	case ',':
		return single(token.KindComma)
	case ':':
		return single(token.KindColon)
	case '@':
		return single(token.KindAt)
	case '(':
		return single(token.KindLParen)
	case ')':
		return single(token.KindRParen)
	case '{':
		return single(token.KindLBrace)
	case '}':
		return single(token.KindRBrace)
	case ']':
		return single(token.KindRBracket)
	case '[':
		l.pos++
		if nb, ok := l.peekByte(); ok {
			if nb == ']' {
				l.pos++
				return token.New(token.KindFlatten, start, l.pos), nil
			}
			if nb == '?' {
				l.pos++
				return token.New(token.KindFilter, start, l.pos), nil
			}
		}
		return token.New(token.KindLBracket, start, l.pos), nil
	case '|':
		l.pos++
		if nb, ok := l.peekByte(); ok && nb == '|' {
			l.pos++
			return token.New(token.KindOr, start, l.pos), nil
		}
		return token.New(token.KindPipe, start, l.pos), nil
	case '&':
		l.pos++
		if nb, ok := l.peekByte(); ok && nb == '&' {
			l.pos++
			return token.New(token.KindAnd, start, l.pos), nil
		}
		return token.New(token.KindAmpersand, start, l.pos), nil
	case '<':
		l.pos++
		if nb, ok := l.peekByte(); ok && nb == '=' {
			l.pos++
			return token.New(token.KindLessThanEqual, start, l.pos), nil
		}
		return token.New(token.KindLessThan, start, l.pos), nil
	case '>':
		l.pos++
		if nb, ok := l.peekByte(); ok && nb == '=' {
			l.pos++
			return token.New(token.KindGreaterThanEqual, start, l.pos), nil
		}
		return token.New(token.KindGreaterThan, start, l.pos), nil
	case '!':
		l.pos++
		if nb, ok := l.peekByte(); ok && nb == '=' {
			l.pos++
			return token.New(token.KindNotEqual, start, l.pos), nil
		}
		return token.New(token.KindNot, start, l.pos), nil
	case '=':
		l.pos++
		if nb, ok := l.peekByte(); ok && nb == '=' {
			l.pos++
			return token.New(token.KindEqual, start, l.pos), nil
		}
		return token.Token{}, errors.Errorf("bare '=' at position %d (did you mean '=='?)", start)
	default:
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		_ = size
		return token.Token{}, errors.Errorf("unexpected character %q at position %d", r, start)
	}
}
