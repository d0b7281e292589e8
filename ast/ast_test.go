package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretext/jmespath/value"
)

func TestExprEqualStructural(t *testing.T) {
	a := SubExpr(Field("a"), Field("b"))
	b := SubExpr(Field("a"), Field("b"))
	c := SubExpr(Field("a"), Field("c"))

	assert.True(t, a.ExprEqual(b))
	assert.False(t, a.ExprEqual(c))
}

func TestExprEqualViaValueExpressionRef(t *testing.T) {
	a := value.ExpressionRef(Field("age"))
	b := value.ExpressionRef(Field("age"))
	c := value.ExpressionRef(Field("name"))

	assert.True(t, value.Equal(a, b))
	assert.False(t, value.Equal(a, c))
}

func TestMultiHashDedupesKeepingLastOccurrence(t *testing.T) {
	n := MultiHash([]HashPair{
		{Key: "a", Value: Literal(value.Int(1))},
		{Key: "b", Value: Literal(value.Int(2))},
		{Key: "a", Value: Literal(value.Int(3))},
	})

	assert.Len(t, n.Pairs, 2)
	assert.Equal(t, "a", n.Pairs[0].Key)
	assert.True(t, value.Equal(value.Int(3), n.Pairs[0].Value.Value))
}

func TestFunctionNodeEqualityComparesArgs(t *testing.T) {
	a := Function("length", []Node{Identity()})
	b := Function("length", []Node{Identity()})
	c := Function("length", []Node{Field("x")})

	assert.True(t, a.ExprEqual(b))
	assert.False(t, a.ExprEqual(c))
}
