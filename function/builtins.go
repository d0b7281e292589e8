package function

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/aretext/jmespath/value"
)

// builtins is the fixed table of built-in functions defined by the
// JMESPath specification (https://jmespath.org/specification.html).
var builtins = []Descriptor{
	{Name: "abs", Sig: Signature{Inputs: []Type{Number()}}, Call: callAbs},
	{Name: "avg", Sig: Signature{Inputs: []Type{TypedArray(Number())}}, Call: callAvg},
	{Name: "ceil", Sig: Signature{Inputs: []Type{Number()}}, Call: callCeil},
	{Name: "floor", Sig: Signature{Inputs: []Type{Number()}}, Call: callFloor},
	{Name: "contains", Sig: Signature{Inputs: []Type{Union(Array(), String()), Any()}}, Call: callContains},
	{Name: "ends_with", Sig: Signature{Inputs: []Type{String(), String()}}, Call: callEndsWith},
	{Name: "starts_with", Sig: Signature{Inputs: []Type{String(), String()}}, Call: callStartsWith},
	{Name: "join", Sig: Signature{Inputs: []Type{String(), TypedArray(String())}}, Call: callJoin},
	{Name: "keys", Sig: Signature{Inputs: []Type{Object()}}, Call: callKeys},
	{Name: "values", Sig: Signature{Inputs: []Type{Object()}}, Call: callValues},
	{Name: "length", Sig: Signature{Inputs: []Type{Union(Array(), Object(), String())}}, Call: callLength},
	{Name: "map", Sig: Signature{Inputs: []Type{ExpRef(), Array()}}, Call: callMap},
	{Name: "max", Sig: Signature{Inputs: []Type{Union(TypedArray(String()), TypedArray(Number()))}}, Call: callMax},
	{Name: "min", Sig: Signature{Inputs: []Type{Union(TypedArray(String()), TypedArray(Number()))}}, Call: callMin},
	{Name: "max_by", Sig: Signature{Inputs: []Type{Array(), ExpRef()}}, Call: callMaxBy},
	{Name: "min_by", Sig: Signature{Inputs: []Type{Array(), ExpRef()}}, Call: callMinBy},
	{Name: "merge", Sig: Signature{Inputs: []Type{Object()}, VarArg: varArgPtr(Object())}, Call: callMerge},
	{Name: "not_null", Sig: Signature{Inputs: []Type{Any()}, VarArg: varArgPtr(Any())}, Call: callNotNull},
	{Name: "reverse", Sig: Signature{Inputs: []Type{Union(Array(), String())}}, Call: callReverse},
	{Name: "sort", Sig: Signature{Inputs: []Type{Union(TypedArray(Number()), TypedArray(String()))}}, Call: callSort},
	{Name: "sort_by", Sig: Signature{Inputs: []Type{Array(), ExpRef()}}, Call: callSortBy},
	{Name: "sum", Sig: Signature{Inputs: []Type{TypedArray(Number())}}, Call: callSum},
	{Name: "to_array", Sig: Signature{Inputs: []Type{Any()}}, Call: callToArray},
	{Name: "to_number", Sig: Signature{Inputs: []Type{Any()}}, Call: callToNumber},
	{Name: "to_string", Sig: Signature{Inputs: []Type{Any()}}, Call: callToString},
	{Name: "type", Sig: Signature{Inputs: []Type{Any()}}, Call: callType},
}

func varArgPtr(t Type) *Type { return &t }

func callAbs(args []value.Value, _ Evaluator) (value.Value, error) {
	n, _ := args[0].AsNumber()
	return value.FromNumber(n.Abs()), nil
}

func callAvg(args []value.Value, _ Evaluator) (value.Value, error) {
	items, _ := args[0].AsArray()
	if len(items) == 0 {
		return value.Null, nil
	}
	sum := 0.0
	for _, item := range items {
		n, _ := item.AsNumber()
		sum += n.Float64()
	}
	return value.Float(sum / float64(len(items))), nil
}

func callCeil(args []value.Value, _ Evaluator) (value.Value, error) {
	n, _ := args[0].AsNumber()
	if n.IsInt() {
		return args[0], nil
	}
	return value.Float(math.Ceil(n.Float64())), nil
}

func callFloor(args []value.Value, _ Evaluator) (value.Value, error) {
	n, _ := args[0].AsNumber()
	if n.IsInt() {
		return args[0], nil
	}
	return value.Float(math.Floor(n.Float64())), nil
}

func callContains(args []value.Value, _ Evaluator) (value.Value, error) {
	haystack, needle := args[0], args[1]
	if items, ok := haystack.AsArray(); ok {
		for _, item := range items {
			if value.Equal(item, needle) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	}
	if s, ok := haystack.AsString(); ok {
		sub, ok := needle.AsString()
		if !ok {
			return value.Bool(false), nil
		}
		return value.Bool(strings.Contains(s, sub)), nil
	}
	return value.Null, nil
}

func callEndsWith(args []value.Value, _ Evaluator) (value.Value, error) {
	s, _ := args[0].AsString()
	suffix, _ := args[1].AsString()
	return value.Bool(strings.HasSuffix(s, suffix)), nil
}

func callStartsWith(args []value.Value, _ Evaluator) (value.Value, error) {
	s, _ := args[0].AsString()
	prefix, _ := args[1].AsString()
	return value.Bool(strings.HasPrefix(s, prefix)), nil
}

func callJoin(args []value.Value, _ Evaluator) (value.Value, error) {
	glue, _ := args[0].AsString()
	items, _ := args[1].AsArray()
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i], _ = item.AsString()
	}
	return value.String(strings.Join(parts, glue)), nil
}

func callKeys(args []value.Value, _ Evaluator) (value.Value, error) {
	obj, _ := args[0].AsObject()
	keys := obj.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.String(k)
	}
	return value.Array(out), nil
}

func callValues(args []value.Value, _ Evaluator) (value.Value, error) {
	obj, _ := args[0].AsObject()
	out := make([]value.Value, 0, obj.Len())
	obj.Range(func(_ string, v value.Value) bool {
		out = append(out, v)
		return true
	})
	return value.Array(out), nil
}

func callLength(args []value.Value, _ Evaluator) (value.Value, error) {
	v := args[0]
	if s, ok := v.AsString(); ok {
		return value.Int(int64(len([]rune(s)))), nil
	}
	if items, ok := v.AsArray(); ok {
		return value.Int(int64(len(items))), nil
	}
	obj, _ := v.AsObject()
	return value.Int(int64(obj.Len())), nil
}

func callMap(args []value.Value, ev Evaluator) (value.Value, error) {
	ref, items := args[0], args[1]
	arr, _ := items.AsArray()
	out := make([]value.Value, len(arr))
	for i, item := range arr {
		result, err := ev.EvalExprRef(ref, item)
		if err != nil {
			return value.Value{}, err
		}
		out[i] = result
	}
	return value.Array(out), nil
}

func callMax(args []value.Value, _ Evaluator) (value.Value, error) {
	items, _ := args[0].AsArray()
	return extremum(items, value.CompareGreater)
}

func callMin(args []value.Value, _ Evaluator) (value.Value, error) {
	items, _ := args[0].AsArray()
	return extremum(items, value.CompareLess)
}

// extremum implements max/min: both require a homogeneous all-Number or
// all-String array (enforced by the signature gate), so Compare is always
// defined between any two elements.
func extremum(items []value.Value, better value.CompareResult) (value.Value, error) {
	if len(items) == 0 {
		return value.Null, nil
	}
	best := items[0]
	for _, item := range items[1:] {
		if value.Compare(item, best) == better {
			best = item
		}
	}
	return best, nil
}

func callMaxBy(args []value.Value, ev Evaluator) (value.Value, error) {
	return extremumBy(args[0], args[1], ev, value.CompareGreater)
}

func callMinBy(args []value.Value, ev Evaluator) (value.Value, error) {
	return extremumBy(args[0], args[1], ev, value.CompareLess)
}

func extremumBy(arrVal, ref value.Value, ev Evaluator, better value.CompareResult) (value.Value, error) {
	items, _ := arrVal.AsArray()
	if len(items) == 0 {
		return value.Null, nil
	}
	keys := make([]value.Value, len(items))
	for i, item := range items {
		k, err := ev.EvalExprRef(ref, item)
		if err != nil {
			return value.Value{}, err
		}
		if k.Kind() != value.KindString && k.Kind() != value.KindNumber {
			return value.Value{}, errors.Errorf("max_by/min_by key must be string or number, got %s", k.TypeName())
		}
		keys[i] = k
	}
	bestIdx := 0
	for i := 1; i < len(items); i++ {
		if keys[i].Kind() != keys[bestIdx].Kind() {
			return value.Value{}, errors.Errorf("max_by/min_by keys must all be the same type, got %s and %s", keys[bestIdx].TypeName(), keys[i].TypeName())
		}
		if value.Compare(keys[i], keys[bestIdx]) == better {
			bestIdx = i
		}
	}
	return items[bestIdx], nil
}

func callMerge(args []value.Value, _ Evaluator) (value.Value, error) {
	out := value.NewObject()
	for _, arg := range args {
		obj, _ := arg.AsObject()
		obj.Range(func(k string, v value.Value) bool {
			out.Set(k, v)
			return true
		})
	}
	return value.FromObject(out), nil
}

func callNotNull(args []value.Value, _ Evaluator) (value.Value, error) {
	for _, arg := range args {
		if !arg.IsNull() {
			return arg, nil
		}
	}
	return value.Null, nil
}

func callReverse(args []value.Value, _ Evaluator) (value.Value, error) {
	v := args[0]
	if s, ok := v.AsString(); ok {
		runes := []rune(s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.String(string(runes)), nil
	}
	items, _ := v.AsArray()
	out := make([]value.Value, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return value.Array(out), nil
}

func callSort(args []value.Value, _ Evaluator) (value.Value, error) {
	items, _ := args[0].AsArray()
	out := make([]value.Value, len(items))
	copy(out, items)
	value.SortValues(out)
	return value.Array(out), nil
}

func callSortBy(args []value.Value, ev Evaluator) (value.Value, error) {
	items, _ := args[0].AsArray()
	ref := args[1]
	if len(items) == 0 {
		return value.Array(nil), nil
	}
	keys := make([]value.Value, len(items))
	for i, item := range items {
		k, err := ev.EvalExprRef(ref, item)
		if err != nil {
			return value.Value{}, err
		}
		if k.Kind() != value.KindString && k.Kind() != value.KindNumber {
			return value.Value{}, errors.Errorf("sort_by key must be string or number, got %s", k.TypeName())
		}
		if i > 0 && k.Kind() != keys[0].Kind() {
			return value.Value{}, errors.Errorf("sort_by keys must all be the same type, got %s and %s", keys[0].TypeName(), k.TypeName())
		}
		keys[i] = k
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return value.Compare(keys[idx[i]], keys[idx[j]]) == value.CompareLess
	})
	out := make([]value.Value, len(items))
	for i, j := range idx {
		out[i] = items[j]
	}
	return value.Array(out), nil
}

func callSum(args []value.Value, _ Evaluator) (value.Value, error) {
	items, _ := args[0].AsArray()
	total := value.IntNumber(0)
	for _, item := range items {
		n, _ := item.AsNumber()
		total = total.Add(n)
	}
	return value.FromNumber(total), nil
}

func callToArray(args []value.Value, _ Evaluator) (value.Value, error) {
	v := args[0]
	if v.Kind() == value.KindArray {
		return v, nil
	}
	return value.Array([]value.Value{v}), nil
}

func callToNumber(args []value.Value, _ Evaluator) (value.Value, error) {
	v := args[0]
	switch v.Kind() {
	case value.KindNumber:
		return v, nil
	case value.KindString:
		s, _ := v.AsString()
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return value.Int(i), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return value.Float(f), nil
		}
		return value.Null, nil
	default:
		return value.Null, nil
	}
}

func callToString(args []value.Value, _ Evaluator) (value.Value, error) {
	v := args[0]
	if s, ok := v.AsString(); ok {
		return value.String(s), nil
	}
	data, err := v.JSON()
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "to_string()")
	}
	return value.String(string(data)), nil
}

func callType(args []value.Value, _ Evaluator) (value.Value, error) {
	return value.String(args[0].TypeName()), nil
}
