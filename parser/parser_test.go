package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/jmespath/ast"
	"github.com/aretext/jmespath/lexer"
	"github.com/aretext/jmespath/value"
)

func mustParse(t *testing.T, src string) ast.Node {
	t.Helper()
	tokens, err := lexer.Lex(src)
	require.NoError(t, err)
	node, err := Parse(tokens)
	require.NoError(t, err)
	return node
}

func TestParseIdentity(t *testing.T) {
	n := mustParse(t, "@")
	assert.True(t, n.ExprEqual(ast.Identity()))
}

func TestParseFieldChain(t *testing.T) {
	n := mustParse(t, "a.b.c")
	expected := ast.SubExpr(ast.SubExpr(ast.Field("a"), ast.Field("b")), ast.Field("c"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseIndex(t *testing.T) {
	n := mustParse(t, "foo[1]")
	expected := ast.SubExpr(ast.Field("foo"), ast.Index(1))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseTopLevelIndex(t *testing.T) {
	n := mustParse(t, "[1]")
	expected := ast.Index(1)
	assert.True(t, n.ExprEqual(expected))
}

func TestParseSliceProjection(t *testing.T) {
	n := mustParse(t, "foo[0:2]")
	start, stop := 0, 2
	sliceNode := ast.SliceNode(value.SliceParams{Start: &start, Stop: &stop, Step: 1})
	expected := ast.Projection(ast.SubExpr(ast.Field("foo"), sliceNode), ast.Identity())
	assert.True(t, n.ExprEqual(expected))
}

func TestParseSliceStepZeroIsCompileError(t *testing.T) {
	tokens, err := lexer.Lex("foo[0:2:0]")
	require.NoError(t, err)
	_, err = Parse(tokens)
	assert.Error(t, err)
}

func TestParseWildcardObjectValues(t *testing.T) {
	n := mustParse(t, "*.bar")
	expected := ast.Projection(ast.ObjectValues(ast.Identity()), ast.Field("bar"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseDotStarOnLeft(t *testing.T) {
	n := mustParse(t, "foo.*.bar")
	expected := ast.Projection(ast.ObjectValues(ast.Field("foo")), ast.Field("bar"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseBracketStarArrayProjection(t *testing.T) {
	n := mustParse(t, "foo[*].bar")
	expected := ast.Projection(ast.Field("foo"), ast.Field("bar"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseTopLevelBracketStar(t *testing.T) {
	n := mustParse(t, "[*].bar")
	expected := ast.Projection(ast.Identity(), ast.Field("bar"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseFlattenProjection(t *testing.T) {
	n := mustParse(t, "foo[].bar")
	expected := ast.Projection(ast.Flatten(ast.Field("foo")), ast.Field("bar"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseProjectionStopsOnNonProjectingRHS(t *testing.T) {
	// A trailing operator with LBP < 10 (like ||) ends the projection with
	// an implicit Identity tail rather than being absorbed into it.
	n := mustParse(t, "foo[*] || bar")
	expected := ast.Or(ast.Projection(ast.Field("foo"), ast.Identity()), ast.Field("bar"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseFilter(t *testing.T) {
	n := mustParse(t, "foo[?bar == `1`]")
	expected := ast.Projection(
		ast.Field("foo"),
		ast.Condition(
			ast.Comparison(ast.CmpEq, ast.Field("bar"), ast.Literal(value.Int(1))),
			ast.Identity(),
		),
	)
	assert.True(t, n.ExprEqual(expected))
}

func TestParseMultiList(t *testing.T) {
	n := mustParse(t, "[a, b]")
	expected := ast.MultiList([]ast.Node{ast.Field("a"), ast.Field("b")})
	assert.True(t, n.ExprEqual(expected))
}

func TestParseMultiHash(t *testing.T) {
	n := mustParse(t, "{x: a, y: b}")
	expected := ast.MultiHash([]ast.HashPair{
		{Key: "x", Value: ast.Field("a")},
		{Key: "y", Value: ast.Field("b")},
	})
	assert.True(t, n.ExprEqual(expected))
}

func TestParseFunctionCall(t *testing.T) {
	n := mustParse(t, "length(@)")
	expected := ast.Function("length", []ast.Node{ast.Identity()})
	assert.True(t, n.ExprEqual(expected))
}

func TestParseFunctionCallNoArgs(t *testing.T) {
	n := mustParse(t, "current()")
	expected := ast.Function("current", nil)
	assert.True(t, n.ExprEqual(expected))
}

func TestParseExpressionRef(t *testing.T) {
	n := mustParse(t, "&foo")
	expected := ast.ExpRef(ast.Field("foo"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseNot(t *testing.T) {
	n := mustParse(t, "!foo")
	expected := ast.Not(ast.Field("foo"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseParenGrouping(t *testing.T) {
	n := mustParse(t, "(a || b).c")
	expected := ast.SubExpr(ast.Or(ast.Field("a"), ast.Field("b")), ast.Field("c"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseAndOrPrecedence(t *testing.T) {
	n := mustParse(t, "a || b && c")
	expected := ast.Or(ast.Field("a"), ast.And(ast.Field("b"), ast.Field("c")))
	assert.True(t, n.ExprEqual(expected))
}

func TestParsePipeSeparatesProjectionScope(t *testing.T) {
	n := mustParse(t, "foo[*].bar | baz")
	expected := ast.SubExpr(ast.Projection(ast.Field("foo"), ast.Field("bar")), ast.Field("baz"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseComparison(t *testing.T) {
	n := mustParse(t, "a < b")
	expected := ast.Comparison(ast.CmpLt, ast.Field("a"), ast.Field("b"))
	assert.True(t, n.ExprEqual(expected))
}

func TestParseQuotedIdentifierField(t *testing.T) {
	n := mustParse(t, `"foo bar"`)
	expected := ast.Field("foo bar")
	assert.True(t, n.ExprEqual(expected))
}

func TestParseQuotedIdentifierAsFunctionNameIsCompileError(t *testing.T) {
	tokens, err := lexer.Lex(`"length"(@)`)
	require.NoError(t, err)
	_, err = Parse(tokens)
	assert.Error(t, err)
}

func TestParseTrailingTokenIsCompileError(t *testing.T) {
	tokens, err := lexer.Lex("a b")
	require.NoError(t, err)
	_, err = Parse(tokens)
	assert.Error(t, err)
}

func TestParseUnclosedBracketIsCompileError(t *testing.T) {
	tokens, err := lexer.Lex("foo[0")
	require.NoError(t, err)
	_, err = Parse(tokens)
	assert.Error(t, err)
}

func TestParseEmptyExpressionIsCompileError(t *testing.T) {
	tokens, err := lexer.Lex("")
	require.NoError(t, err)
	_, err = Parse(tokens)
	assert.Error(t, err)
}

func TestParseMultiSelectHashNested(t *testing.T) {
	n := mustParse(t, "{a: foo.bar}")
	expected := ast.MultiHash([]ast.HashPair{
		{Key: "a", Value: ast.SubExpr(ast.Field("foo"), ast.Field("bar"))},
	})
	assert.True(t, n.ExprEqual(expected))
}
