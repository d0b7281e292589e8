package ast

import "github.com/aretext/jmespath/value"

// ExprEqual implements structural equality between ASTs, used by
// value.Value's ExpressionRef equality: two expression references are
// equal exactly when their inner ASTs are structurally equal. value.Value
// discovers this method through an interface assertion so that the value
// package never needs to import ast (which itself imports value).
func (n Node) ExprEqual(other interface{}) bool {
	o, ok := other.(Node)
	if !ok {
		return false
	}
	return nodeEqual(&n, &o)
}

func nodeEqual(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindField:
		return a.Name == b.Name
	case KindIndex:
		return a.Int == b.Int
	case KindLiteral:
		return value.Equal(a.Value, b.Value)
	case KindSlice:
		return sliceParamsEqual(a.Slice, b.Slice)
	case KindComparison:
		return a.Comparator == b.Comparator && nodeEqual(a.LHS, b.LHS) && nodeEqual(a.RHS, b.RHS)
	case KindFunction:
		if a.Name != b.Name {
			return false
		}
		return childrenEqual(a.Children, b.Children)
	case KindMultiList:
		return childrenEqual(a.Children, b.Children)
	case KindMultiHash:
		return pairsEqual(a.Pairs, b.Pairs)
	default:
		return nodeEqual(a.LHS, b.LHS) && nodeEqual(a.RHS, b.RHS)
	}
}

func sliceParamsEqual(a, b value.SliceParams) bool {
	if a.Step != b.Step {
		return false
	}
	if !intPtrEqual(a.Start, b.Start) {
		return false
	}
	return intPtrEqual(a.Stop, b.Stop)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func childrenEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(&a[i], &b[i]) {
			return false
		}
	}
	return true
}

func pairsEqual(a, b []HashPair) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
		if !nodeEqual(&a[i].Value, &b[i].Value) {
			return false
		}
	}
	return true
}
