// Package parser implements a Pratt (top-down operator precedence) parser
// that turns a JMESPath token stream into an ast.Node, following the
// grammar in the JMESPath specification (https://jmespath.org/specification.html).
package parser

import (
	"github.com/pkg/errors"

	"github.com/aretext/jmespath/ast"
	"github.com/aretext/jmespath/token"
	"github.com/aretext/jmespath/value"
)

// Parse compiles tokens (as produced by lexer.Lex) into an AST.
func Parse(tokens []token.Token) (ast.Node, error) {
	p := &parser{tokens: tokens}
	node, err := p.expression(0)
	if err != nil {
		return ast.Node{}, err
	}
	if p.current().Kind != token.KindEOF {
		return ast.Node{}, errors.Errorf("unexpected trailing token %s at position %d", p.current().Kind, p.current().StartPos)
	}
	return node, nil
}

type parser struct {
	tokens []token.Token
	pos    int
}

func (p *parser) current() token.Token {
	return p.peek(0)
}

func (p *parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF sentinel
	}
	return p.tokens[idx]
}

func (p *parser) advance() token.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind token.Kind) (token.Token, error) {
	if p.current().Kind != kind {
		return token.Token{}, errors.Errorf("expected %s, got %s at position %d", kind, p.current().Kind, p.current().StartPos)
	}
	return p.advance(), nil
}

// expression is the core Pratt loop: expression(rbp) calls nud() to
// produce a left node, then while the next token's LBP is greater than
// rbp, calls led(left).
func (p *parser) expression(rbp int) (ast.Node, error) {
	leftTok := p.advance()
	left, err := p.nud(leftTok)
	if err != nil {
		return ast.Node{}, err
	}
	for rbp < p.current().LBP {
		tok := p.advance()
		left, err = p.led(tok, left)
		if err != nil {
			return ast.Node{}, err
		}
	}
	return left, nil
}

func (p *parser) nud(tok token.Token) (ast.Node, error) {
	switch tok.Kind {
	case token.KindAt:
		return ast.Identity(), nil

	case token.KindIdentifier:
		return ast.Field(tok.Ident), nil

	case token.KindQuotedIdentifier:
		if p.current().Kind == token.KindLParen {
			return ast.Node{}, errors.Errorf("quoted identifier %q cannot be used as a function name", tok.Ident)
		}
		return ast.Field(tok.Ident), nil

	case token.KindLiteral:
		return ast.Literal(tok.Literal), nil

	case token.KindStar:
		rhs, err := p.projectionRHS(token.LBP(token.KindStar))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Projection(ast.ObjectValues(ast.Identity()), rhs), nil

	case token.KindFlatten:
		rhs, err := p.projectionRHS(token.LBP(token.KindFlatten))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Projection(ast.Flatten(ast.Identity()), rhs), nil

	case token.KindFilter:
		return p.parseFilter(ast.Identity())

	case token.KindLBrace:
		return p.parseMultiHash()

	case token.KindAmpersand:
		inner, err := p.expression(token.LBP(token.KindNot))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.ExpRef(inner), nil

	case token.KindNot:
		inner, err := p.expression(token.LBP(token.KindNot))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Not(inner), nil

	case token.KindLParen:
		inner, err := p.expression(0)
		if err != nil {
			return ast.Node{}, err
		}
		if _, err := p.expect(token.KindRParen); err != nil {
			return ast.Node{}, err
		}
		return inner, nil

	case token.KindLBracket:
		return p.parseBracketNud()

	case token.KindEOF:
		return ast.Node{}, errors.New("unexpected end of expression")

	default:
		return ast.Node{}, errors.Errorf("unexpected token %s at position %d", tok.Kind, tok.StartPos)
	}
}

func (p *parser) led(tok token.Token, left ast.Node) (ast.Node, error) {
	switch tok.Kind {
	case token.KindDot:
		if p.current().Kind == token.KindStar {
			p.advance()
			rhs, err := p.projectionRHS(token.LBP(token.KindDot))
			if err != nil {
				return ast.Node{}, err
			}
			return ast.Projection(ast.ObjectValues(left), rhs), nil
		}
		rhs, err := p.parseDotRHS(token.LBP(token.KindDot))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.SubExpr(left, rhs), nil

	case token.KindOr:
		rhs, err := p.expression(token.LBP(token.KindOr))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Or(left, rhs), nil

	case token.KindAnd:
		rhs, err := p.expression(token.LBP(token.KindAnd))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.And(left, rhs), nil

	case token.KindPipe:
		rhs, err := p.expression(token.LBP(token.KindPipe))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.SubExpr(left, rhs), nil

	case token.KindLParen:
		if left.Kind != ast.KindField {
			return ast.Node{}, errors.Errorf("'(' can only follow an identifier naming a function, at position %d", tok.StartPos)
		}
		args, err := p.parseArgList()
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Function(left.Name, args), nil

	case token.KindFlatten:
		rhs, err := p.projectionRHS(token.LBP(token.KindFlatten))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Projection(ast.Flatten(left), rhs), nil

	case token.KindFilter:
		return p.parseFilter(left)

	case token.KindEqual:
		return p.parseComparison(ast.CmpEq, left)
	case token.KindNotEqual:
		return p.parseComparison(ast.CmpNe, left)
	case token.KindLessThan:
		return p.parseComparison(ast.CmpLt, left)
	case token.KindLessThanEqual:
		return p.parseComparison(ast.CmpLe, left)
	case token.KindGreaterThan:
		return p.parseComparison(ast.CmpGt, left)
	case token.KindGreaterThanEqual:
		return p.parseComparison(ast.CmpGe, left)

	case token.KindLBracket:
		return p.parseBracketLed(left)

	default:
		return ast.Node{}, errors.Errorf("unexpected token %s at position %d", tok.Kind, tok.StartPos)
	}
}

func (p *parser) parseComparison(op ast.Comparator, left ast.Node) (ast.Node, error) {
	rhs, err := p.expression(token.LBP(token.KindEqual))
	if err != nil {
		return ast.Node{}, err
	}
	return ast.Comparison(op, left, rhs), nil
}

// parseDotRHS parses the right-hand side of a '.' operator: an identifier
// chain, a multi-list ('[' ... ']'), or a multi-hash ('{' ... '}').
func (p *parser) parseDotRHS(rbp int) (ast.Node, error) {
	switch p.current().Kind {
	case token.KindIdentifier, token.KindQuotedIdentifier, token.KindStar:
		return p.expression(rbp)
	case token.KindLBracket:
		p.advance()
		return p.parseMultiList()
	case token.KindLBrace:
		p.advance()
		return p.parseMultiHash()
	default:
		return ast.Node{}, errors.Errorf("expected identifier, '[' or '{' after '.', got %s at position %d", p.current().Kind, p.current().StartPos)
	}
}

// projectionRHS implements the specification's projection-RHS rule: after a
// projecting operator, the tail of the projection is determined by
// inspecting the next token.
func (p *parser) projectionRHS(rbp int) (ast.Node, error) {
	cur := p.current()
	switch {
	case cur.LBP < 10:
		return ast.Identity(), nil
	case cur.Kind == token.KindLBracket, cur.Kind == token.KindFilter:
		return p.expression(rbp)
	case cur.Kind == token.KindDot:
		p.advance()
		return p.parseDotRHS(rbp)
	default:
		return ast.Node{}, errors.Errorf("unexpected token %s at position %d in projection", cur.Kind, cur.StartPos)
	}
}

func (p *parser) parseFilter(left ast.Node) (ast.Node, error) {
	predicate, err := p.expression(0)
	if err != nil {
		return ast.Node{}, err
	}
	if _, err := p.expect(token.KindRBracket); err != nil {
		return ast.Node{}, err
	}
	rhs, err := p.projectionRHS(token.LBP(token.KindFilter))
	if err != nil {
		return ast.Node{}, err
	}
	return ast.Projection(left, ast.Condition(predicate, rhs)), nil
}

func (p *parser) parseMultiHash() (ast.Node, error) {
	var pairs []ast.HashPair
	for {
		keyTok := p.current()
		var key string
		switch keyTok.Kind {
		case token.KindIdentifier, token.KindQuotedIdentifier:
			p.advance()
			key = keyTok.Ident
		default:
			return ast.Node{}, errors.Errorf("expected identifier or quoted identifier as multi-hash key, got %s at position %d", keyTok.Kind, keyTok.StartPos)
		}
		if _, err := p.expect(token.KindColon); err != nil {
			return ast.Node{}, err
		}
		val, err := p.expression(0)
		if err != nil {
			return ast.Node{}, err
		}
		pairs = append(pairs, ast.HashPair{Key: key, Value: val})

		if p.current().Kind == token.KindComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.KindRBrace); err != nil {
		return ast.Node{}, err
	}
	return ast.MultiHash(pairs), nil
}

func (p *parser) parseMultiList() (ast.Node, error) {
	var items []ast.Node
	for {
		item, err := p.expression(0)
		if err != nil {
			return ast.Node{}, err
		}
		items = append(items, item)
		if p.current().Kind == token.KindComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.KindRBracket); err != nil {
		return ast.Node{}, err
	}
	return ast.MultiList(items), nil
}

func (p *parser) parseArgList() ([]ast.Node, error) {
	var args []ast.Node
	if p.current().Kind == token.KindRParen {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current().Kind == token.KindComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.KindRParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseBracketNud handles '[' appearing in prefix (nud) position: an
// index/slice, an array-wildcard projection ([*]), or a multi-list.
func (p *parser) parseBracketNud() (ast.Node, error) {
	switch p.current().Kind {
	case token.KindNumber, token.KindColon:
		node, err := p.parseIndexOrSlice()
		if err != nil {
			return ast.Node{}, err
		}
		return p.finishIndexOrSlice(ast.Identity(), node, true)
	case token.KindStar:
		if p.peek(1).Kind == token.KindRBracket {
			p.advance()
			p.advance()
			rhs, err := p.projectionRHS(token.LBP(token.KindStar))
			if err != nil {
				return ast.Node{}, err
			}
			return ast.Projection(ast.Identity(), rhs), nil
		}
		return p.parseMultiList()
	default:
		return p.parseMultiList()
	}
}

// parseBracketLed handles '[' appearing in infix (led) position, anchored
// at left: an index/slice, or an array-wildcard projection.
func (p *parser) parseBracketLed(left ast.Node) (ast.Node, error) {
	switch p.current().Kind {
	case token.KindNumber, token.KindColon:
		node, err := p.parseIndexOrSlice()
		if err != nil {
			return ast.Node{}, err
		}
		return p.finishIndexOrSlice(left, node, false)
	case token.KindStar:
		p.advance()
		if _, err := p.expect(token.KindRBracket); err != nil {
			return ast.Node{}, err
		}
		rhs, err := p.projectionRHS(token.LBP(token.KindStar))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Projection(left, rhs), nil
	default:
		return ast.Node{}, errors.Errorf("expected number, ':' or '*' after '[', got %s at position %d", p.current().Kind, p.current().StartPos)
	}
}

// finishIndexOrSlice composes the result of parseIndexOrSlice with left.
// A plain index composes as SubExpr(left, Index(i)) (or just Index(i) when
// left is a bare Identity produced from nud position, since composing with
// Identity is a no-op). A slice always yields a Projection whose lhs is the
// sliced sub-expression.
func (p *parser) finishIndexOrSlice(left ast.Node, node ast.Node, leftIsIdentity bool) (ast.Node, error) {
	if node.Kind == ast.KindSlice {
		lhs := node
		if !leftIsIdentity {
			lhs = ast.SubExpr(left, node)
		}
		rhs, err := p.projectionRHS(token.LBP(token.KindStar))
		if err != nil {
			return ast.Node{}, err
		}
		return ast.Projection(lhs, rhs), nil
	}
	if leftIsIdentity {
		return node, nil
	}
	return ast.SubExpr(left, node), nil
}

// parseIndexOrSlice reads the contents of a '[' already known to start with
// a Number or ':' up to the matching ']', covering the index-expression and
// slice-expression productions of the index/slice sub-grammar.
func (p *parser) parseIndexOrSlice() (ast.Node, error) {
	if p.current().Kind != token.KindColon && p.peek(1).Kind != token.KindColon {
		return p.parsePlainIndex()
	}
	return p.parseSlice()
}

func (p *parser) parsePlainIndex() (ast.Node, error) {
	numTok, err := p.expect(token.KindNumber)
	if err != nil {
		return ast.Node{}, err
	}
	if _, err := p.expect(token.KindRBracket); err != nil {
		return ast.Node{}, err
	}
	return ast.Index(int(numTok.Num)), nil
}

func (p *parser) parseSlice() (ast.Node, error) {
	var parts [3]*int
	partIdx := 0

	for p.current().Kind != token.KindRBracket && partIdx < 3 {
		switch p.current().Kind {
		case token.KindColon:
			p.advance()
			partIdx++
		case token.KindNumber:
			n := int(p.current().Num)
			parts[partIdx] = &n
			p.advance()
		default:
			return ast.Node{}, errors.Errorf("expected ':' or number in slice, got %s at position %d", p.current().Kind, p.current().StartPos)
		}
	}

	if _, err := p.expect(token.KindRBracket); err != nil {
		return ast.Node{}, errors.Wrapf(err, "too many ':' in slice expression")
	}

	step := 1
	if parts[2] != nil {
		step = *parts[2]
	}
	if step == 0 {
		return ast.Node{}, errors.New("slice step cannot be 0")
	}

	return ast.SliceNode(value.SliceParams{Start: parts[0], Stop: parts[1], Step: step}), nil
}
