package function

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretext/jmespath/value"
)

// fakeEvaluator lets tests exercise ExpRef-consuming builtins (map,
// sort_by, max_by, min_by) without depending on the interp package, which
// itself depends on function — a real Evaluator is supplied by interp at
// runtime.
type fakeEvaluator struct {
	fn func(input value.Value) (value.Value, error)
}

func (f fakeEvaluator) EvalExprRef(_ value.Value, input value.Value) (value.Value, error) {
	return f.fn(input)
}

func invoke(t *testing.T, name string, ev Evaluator, args ...value.Value) value.Value {
	t.Helper()
	r := NewRegistry()
	result, err := r.Invoke(name, args, ev)
	require.NoError(t, err)
	return result
}

func TestAbs(t *testing.T) {
	assert.True(t, value.Equal(value.Int(5), invoke(t, "abs", nil, value.Int(-5))))
}

func TestAvgEmpty(t *testing.T) {
	assert.True(t, invoke(t, "avg", nil, value.Array(nil)).IsNull())
}

func TestAvg(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	got := invoke(t, "avg", nil, arr)
	n, _ := got.AsNumber()
	assert.Equal(t, 2.0, n.Float64())
}

func TestCeilFloorPreserveInt(t *testing.T) {
	assert.True(t, value.Equal(value.Int(3), invoke(t, "ceil", nil, value.Int(3))))
	assert.True(t, value.Equal(value.Int(3), invoke(t, "floor", nil, value.Int(3))))
}

func TestCeilFloorFloat(t *testing.T) {
	assert.True(t, value.Equal(value.Float(3), invoke(t, "ceil", nil, value.Float(2.1))))
	assert.True(t, value.Equal(value.Float(2), invoke(t, "floor", nil, value.Float(2.9))))
}

func TestContainsArray(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(1), value.Int(2)})
	assert.True(t, invoke(t, "contains", nil, arr, value.Int(2)).Truthy())
	assert.False(t, invoke(t, "contains", nil, arr, value.Int(3)).Truthy())
}

func TestContainsString(t *testing.T) {
	assert.True(t, invoke(t, "contains", nil, value.String("foobar"), value.String("oob")).Truthy())
}

func TestEndsWithStartsWith(t *testing.T) {
	assert.True(t, invoke(t, "ends_with", nil, value.String("foobar"), value.String("bar")).Truthy())
	assert.True(t, invoke(t, "starts_with", nil, value.String("foobar"), value.String("foo")).Truthy())
}

func TestJoin(t *testing.T) {
	arr := value.Array([]value.Value{value.String("a"), value.String("b")})
	assert.True(t, value.Equal(value.String("a-b"), invoke(t, "join", nil, value.String("-"), arr)))
}

func TestKeysValues(t *testing.T) {
	obj := value.NewObject()
	obj.Set("a", value.Int(1))
	obj.Set("b", value.Int(2))
	v := value.FromObject(obj)

	keys := invoke(t, "keys", nil, v)
	items, _ := keys.AsArray()
	assert.Len(t, items, 2)

	values := invoke(t, "values", nil, v)
	vitems, _ := values.AsArray()
	assert.Len(t, vitems, 2)
}

func TestLength(t *testing.T) {
	assert.True(t, value.Equal(value.Int(3), invoke(t, "length", nil, value.String("foo"))))
	assert.True(t, value.Equal(value.Int(2), invoke(t, "length", nil, value.Array([]value.Value{value.Int(1), value.Int(2)}))))
}

func TestLengthCountsCodepointsNotBytes(t *testing.T) {
	assert.True(t, value.Equal(value.Int(1), invoke(t, "length", nil, value.String("é"))))
}

func TestMap(t *testing.T) {
	ev := fakeEvaluator{fn: func(in value.Value) (value.Value, error) {
		n, _ := in.AsNumber()
		return value.FromNumber(n.Add(value.IntNumber(1))), nil
	}}
	arr := value.Array([]value.Value{value.Int(1), value.Int(2)})
	got := invoke(t, "map", ev, value.ExpressionRef(nil), arr)
	items, _ := got.AsArray()
	assert.True(t, value.Equal(value.Int(2), items[0]))
	assert.True(t, value.Equal(value.Int(3), items[1]))
}

func TestMaxMin(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(3), value.Int(1), value.Int(2)})
	assert.True(t, value.Equal(value.Int(3), invoke(t, "max", nil, arr)))
	assert.True(t, value.Equal(value.Int(1), invoke(t, "min", nil, arr)))
}

func TestMaxByMinBy(t *testing.T) {
	obj := func(n int64) value.Value {
		o := value.NewObject()
		o.Set("age", value.Int(n))
		return value.FromObject(o)
	}
	arr := value.Array([]value.Value{obj(30), obj(50), obj(10)})
	ev := fakeEvaluator{fn: func(in value.Value) (value.Value, error) {
		return in.Field("age"), nil
	}}
	maxResult := invoke(t, "max_by", ev, arr, value.ExpressionRef(nil))
	age := maxResult.Field("age")
	n, _ := age.AsNumber()
	assert.Equal(t, int64(50), n.Int64())

	minResult := invoke(t, "min_by", ev, arr, value.ExpressionRef(nil))
	age = minResult.Field("age")
	n, _ = age.AsNumber()
	assert.Equal(t, int64(10), n.Int64())
}

func TestMerge(t *testing.T) {
	a := value.NewObject()
	a.Set("x", value.Int(1))
	b := value.NewObject()
	b.Set("x", value.Int(2))
	b.Set("y", value.Int(3))

	got := invoke(t, "merge", nil, value.FromObject(a), value.FromObject(b))
	obj, _ := got.AsObject()
	x, _ := obj.Get("x")
	y, _ := obj.Get("y")
	assert.True(t, value.Equal(value.Int(2), x))
	assert.True(t, value.Equal(value.Int(3), y))
}

func TestNotNull(t *testing.T) {
	got := invoke(t, "not_null", nil, value.Null, value.Null, value.Int(5))
	assert.True(t, value.Equal(value.Int(5), got))
}

func TestNotNullAllNull(t *testing.T) {
	assert.True(t, invoke(t, "not_null", nil, value.Null, value.Null).IsNull())
}

func TestReverseArrayAndString(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	got := invoke(t, "reverse", nil, arr)
	items, _ := got.AsArray()
	assert.True(t, value.Equal(value.Int(3), items[0]))

	assert.True(t, value.Equal(value.String("cba"), invoke(t, "reverse", nil, value.String("abc"))))
}

func TestSort(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(3), value.Int(1), value.Int(2)})
	got := invoke(t, "sort", nil, arr)
	items, _ := got.AsArray()
	assert.Equal(t, []value.Value{value.Int(1), value.Int(2), value.Int(3)}, items)
}

func TestSortBy(t *testing.T) {
	obj := func(n int64) value.Value {
		o := value.NewObject()
		o.Set("age", value.Int(n))
		return value.FromObject(o)
	}
	arr := value.Array([]value.Value{obj(30), obj(10), obj(20)})
	ev := fakeEvaluator{fn: func(in value.Value) (value.Value, error) {
		return in.Field("age"), nil
	}}
	got := invoke(t, "sort_by", ev, arr, value.ExpressionRef(nil))
	items, _ := got.AsArray()
	ages := make([]int64, len(items))
	for i, item := range items {
		n, _ := item.Field("age").AsNumber()
		ages[i] = n.Int64()
	}
	assert.Equal(t, []int64{10, 20, 30}, ages)
}

func TestSortByMixedKeyTypesIsRuntimeError(t *testing.T) {
	arr := value.Array([]value.Value{value.String("a"), value.String("b")})
	ev := fakeEvaluator{fn: func(in value.Value) (value.Value, error) {
		s, _ := in.AsString()
		if s == "a" {
			return value.Int(1), nil
		}
		return value.String("x"), nil
	}}
	r := NewRegistry()
	_, err := r.Invoke("sort_by", []value.Value{arr, value.ExpressionRef(nil)}, ev)
	assert.Error(t, err)
}

func TestSum(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(1), value.Int(2), value.Int(3)})
	assert.True(t, value.Equal(value.Int(6), invoke(t, "sum", nil, arr)))
}

func TestSumEmptyIsZero(t *testing.T) {
	assert.True(t, value.Equal(value.Int(0), invoke(t, "sum", nil, value.Array(nil))))
}

func TestToArray(t *testing.T) {
	arr := value.Array([]value.Value{value.Int(1)})
	assert.True(t, value.Equal(arr, invoke(t, "to_array", nil, arr)))

	got := invoke(t, "to_array", nil, value.Int(1))
	items, _ := got.AsArray()
	assert.Len(t, items, 1)
}

func TestToNumber(t *testing.T) {
	assert.True(t, value.Equal(value.Int(5), invoke(t, "to_number", nil, value.String("5"))))
	assert.True(t, value.Equal(value.Float(5.5), invoke(t, "to_number", nil, value.String("5.5"))))
	assert.True(t, invoke(t, "to_number", nil, value.String("nope")).IsNull())
}

func TestToString(t *testing.T) {
	assert.True(t, value.Equal(value.String("foo"), invoke(t, "to_string", nil, value.String("foo"))))
	got := invoke(t, "to_string", nil, value.Int(5))
	s, _ := got.AsString()
	assert.Equal(t, "5", s)
}

func TestType(t *testing.T) {
	assert.True(t, value.Equal(value.String("number"), invoke(t, "type", nil, value.Int(1))))
	assert.True(t, value.Equal(value.String("array"), invoke(t, "type", nil, value.Array(nil))))
}

func TestUnknownFunctionIsRuntimeError(t *testing.T) {
	r := NewRegistry()
	_, err := r.Invoke("nope", nil, nil)
	assert.Error(t, err)
}

func TestSignatureMismatchIsRuntimeError(t *testing.T) {
	r := NewRegistry()
	_, err := r.Invoke("abs", []value.Value{value.String("x")}, nil)
	assert.Error(t, err)
}
