// Package interp implements the JMESPath tree-walking evaluator: a pure
// function from (value, AST, registry) to value, following the evaluation
// rules in the JMESPath specification (https://jmespath.org/specification.html).
package interp

import (
	"github.com/pkg/errors"

	"github.com/aretext/jmespath/ast"
	"github.com/aretext/jmespath/function"
	"github.com/aretext/jmespath/value"
)

// Eval evaluates n against v using rt to resolve function calls.
func Eval(v value.Value, n ast.Node, rt *function.Registry) (value.Value, error) {
	switch n.Kind {
	case ast.KindIdentity:
		return v, nil

	case ast.KindLiteral:
		return n.Value, nil

	case ast.KindField:
		return v.Field(n.Name), nil

	case ast.KindIndex:
		return v.Index(n.Int), nil

	case ast.KindSlice:
		return v.Slice(n.Slice), nil

	case ast.KindSubExpr:
		lhs, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		return Eval(lhs, *n.RHS, rt)

	case ast.KindOr:
		lhs, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		if lhs.Truthy() {
			return lhs, nil
		}
		return Eval(v, *n.RHS, rt)

	case ast.KindAnd:
		lhs, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		if !lhs.Truthy() {
			return lhs, nil
		}
		return Eval(v, *n.RHS, rt)

	case ast.KindNot:
		inner, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(!inner.Truthy()), nil

	case ast.KindCondition:
		pred, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		if !pred.Truthy() {
			return value.Null, nil
		}
		return Eval(v, *n.RHS, rt)

	case ast.KindComparison:
		lhs, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		rhs, err := Eval(v, *n.RHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		return evalComparison(n.Comparator, lhs, rhs), nil

	case ast.KindObjectValues:
		inner, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		obj, ok := inner.AsObject()
		if !ok {
			return value.Null, nil
		}
		out := make([]value.Value, 0, obj.Len())
		obj.Range(func(_ string, item value.Value) bool {
			out = append(out, item)
			return true
		})
		return value.Array(out), nil

	case ast.KindProjection:
		return evalProjection(v, n, rt)

	case ast.KindFlatten:
		inner, err := Eval(v, *n.LHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		items, ok := inner.AsArray()
		if !ok {
			return value.Null, nil
		}
		out := make([]value.Value, 0, len(items))
		for _, item := range items {
			if sub, ok := item.AsArray(); ok {
				out = append(out, sub...)
				continue
			}
			out = append(out, item)
		}
		return value.Array(out), nil

	case ast.KindMultiList:
		if v.IsNull() {
			return value.Null, nil
		}
		out := make([]value.Value, len(n.Children))
		for i, item := range n.Children {
			result, err := Eval(v, item, rt)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = result
		}
		return value.Array(out), nil

	case ast.KindMultiHash:
		if v.IsNull() {
			return value.Null, nil
		}
		obj := value.NewObject()
		for _, pair := range n.Pairs {
			result, err := Eval(v, pair.Value, rt)
			if err != nil {
				return value.Value{}, err
			}
			obj.Set(pair.Key, result)
		}
		return value.FromObject(obj), nil

	case ast.KindExpRef:
		return value.ExpressionRef(*n.LHS), nil

	case ast.KindFunction:
		return evalFunction(v, n, rt)

	default:
		return value.Value{}, errors.Errorf("interp: unhandled AST node kind %d", n.Kind)
	}
}

// evalProjection implements the specification's Projection evaluation rule.
// No explicit loop over nested projections is needed: the parser has
// already encoded projection chaining in rhs, so recursing into Eval(rhs)
// per element naturally threads through further Projection/Condition
// nodes.
func evalProjection(v value.Value, n ast.Node, rt *function.Registry) (value.Value, error) {
	lhs, err := Eval(v, *n.LHS, rt)
	if err != nil {
		return value.Value{}, err
	}
	items, ok := lhs.AsArray()
	if !ok {
		return value.Null, nil
	}
	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		result, err := Eval(item, *n.RHS, rt)
		if err != nil {
			return value.Value{}, err
		}
		if result.IsNull() {
			continue
		}
		out = append(out, result)
	}
	return value.Array(out), nil
}

func evalComparison(op ast.Comparator, lhs, rhs value.Value) value.Value {
	if op == ast.CmpEq {
		return value.Bool(value.Equal(lhs, rhs))
	}
	if op == ast.CmpNe {
		return value.Bool(!value.Equal(lhs, rhs))
	}
	cmp := value.Compare(lhs, rhs)
	if cmp == value.CompareUndefined {
		return value.Null
	}
	switch op {
	case ast.CmpLt:
		return value.Bool(cmp == value.CompareLess)
	case ast.CmpLe:
		return value.Bool(cmp == value.CompareLess || cmp == value.CompareEqual)
	case ast.CmpGt:
		return value.Bool(cmp == value.CompareGreater)
	case ast.CmpGe:
		return value.Bool(cmp == value.CompareGreater || cmp == value.CompareEqual)
	default:
		return value.Null
	}
}

func evalFunction(v value.Value, n ast.Node, rt *function.Registry) (value.Value, error) {
	args := make([]value.Value, len(n.Children))
	for i, argNode := range n.Children {
		result, err := Eval(v, argNode, rt)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = result
	}
	return rt.Invoke(n.Name, args, evaluator{rt: rt})
}

// evaluator adapts Eval to function.Evaluator so that ExpRef-consuming
// built-ins (map, sort_by, max_by, min_by) can apply a user expression to
// an element without the function package importing interp or ast.
type evaluator struct {
	rt *function.Registry
}

func (e evaluator) EvalExprRef(ref value.Value, input value.Value) (value.Value, error) {
	payload, ok := ref.AsExpressionRef()
	if !ok {
		return value.Value{}, errors.New("interp: EvalExprRef called with a non-expression value")
	}
	node, ok := payload.(ast.Node)
	if !ok {
		return value.Value{}, errors.New("interp: expression reference does not wrap an ast.Node")
	}
	return Eval(input, node, e.rt)
}
