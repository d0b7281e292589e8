package jmespath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/jmespath/function"
	"github.com/aretext/jmespath/value"
)

func TestCompileAndSearch(t *testing.T) {
	expr, err := Compile("a.b")
	require.NoError(t, err)

	input, err := value.FromJSON([]byte(`{"a":{"b":"hello"}}`))
	require.NoError(t, err)

	got, err := expr.Search(input)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.String("hello"), got))
}

func TestSearchConvenienceWrapper(t *testing.T) {
	input, err := value.FromJSON([]byte(`{"a":1}`))
	require.NoError(t, err)

	got, err := Search("a", input)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Int(1), got))
}

func TestCompileErrorOnBareEquals(t *testing.T) {
	_, err := Compile("=")
	require.Error(t, err)
	var compileErr *CompileError
	assert.ErrorAs(t, err, &compileErr)
}

func TestCompileErrorOnTrailingTokens(t *testing.T) {
	_, err := Compile("a b")
	require.Error(t, err)
	var compileErr *CompileError
	assert.ErrorAs(t, err, &compileErr)
}

func TestRuntimeErrorOnUnknownFunction(t *testing.T) {
	expr, err := Compile("unknown(@)")
	require.NoError(t, err)

	_, err = expr.Search(value.Null)
	require.Error(t, err)
	var runtimeErr *RuntimeError
	assert.ErrorAs(t, err, &runtimeErr)
}

func TestExpressionIsDeterministic(t *testing.T) {
	a, err := Compile("foo[*].bar")
	require.NoError(t, err)
	b, err := Compile("foo[*].bar")
	require.NoError(t, err)
	assert.True(t, a.node.ExprEqual(b.node))
}

func TestSearchUsesCustomRuntime(t *testing.T) {
	rt := NewRuntime()
	rt.Register(function.Descriptor{
		Name: "double",
		Sig:  function.Signature{Inputs: []function.Type{function.Number()}},
		Call: func(args []value.Value, _ function.Evaluator) (value.Value, error) {
			n, _ := args[0].AsNumber()
			return value.FromNumber(n.Add(n)), nil
		},
	})

	expr, err := Compile("double(@)")
	require.NoError(t, err)

	got, err := expr.Search(value.Int(21), rt)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.Int(42), got))

	_, err = expr.Search(value.Int(21))
	require.Error(t, err)
}

func TestRegisterOverwritingBuiltinStillWorks(t *testing.T) {
	rt := NewRuntime()
	rt.Register(function.Descriptor{
		Name: "type",
		Sig:  function.Signature{Inputs: []function.Type{function.Any()}},
		Call: func(args []value.Value, _ function.Evaluator) (value.Value, error) {
			return value.String("overridden"), nil
		},
	})

	expr, err := Compile("type(@)")
	require.NoError(t, err)

	got, err := expr.Search(value.Int(1), rt)
	require.NoError(t, err)
	assert.True(t, value.Equal(value.String("overridden"), got))
}
