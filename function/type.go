// Package function implements the JMESPath argument-type lattice, function
// signatures, and the built-in function registry, following the function
// signature notation in the JMESPath specification (https://jmespath.org/specification.html).
package function

import "github.com/aretext/jmespath/value"

// Kind identifies a member of the argument-type lattice.
type Kind int

const (
	KindAny Kind = iota
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindObject
	KindArray
	KindExpRef
	KindTypedArray
	KindUnion
)

// Type is one node of the argument-type lattice used to check built-in
// function arguments: `Any | Null | String | Number | Boolean | Object |
// Array | ExpRef | TypedArray(t) | Union(t1, …, tn)`.
type Type struct {
	Kind    Kind
	Elem    *Type  // meaningful for KindTypedArray
	Members []Type // meaningful for KindUnion
}

func Any() Type     { return Type{Kind: KindAny} }
func Null() Type    { return Type{Kind: KindNull} }
func String() Type  { return Type{Kind: KindString} }
func Number() Type  { return Type{Kind: KindNumber} }
func Boolean() Type { return Type{Kind: KindBoolean} }
func Object() Type  { return Type{Kind: KindObject} }
func Array() Type   { return Type{Kind: KindArray} }
func ExpRef() Type  { return Type{Kind: KindExpRef} }

// TypedArray returns the type matching an array all of whose elements match
// elem.
func TypedArray(elem Type) Type {
	return Type{Kind: KindTypedArray, Elem: &elem}
}

// Union returns the type matching any value matching one of members.
func Union(members ...Type) Type {
	return Type{Kind: KindUnion, Members: members}
}

// Name renders a human-readable name for t, used in runtime error messages.
func (t Type) Name() string {
	switch t.Kind {
	case KindAny:
		return "any"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindExpRef:
		return "expression"
	case KindTypedArray:
		return "array of " + t.Elem.Name()
	case KindUnion:
		names := make([]string, len(t.Members))
		for i, m := range t.Members {
			names[i] = m.Name()
		}
		out := names[0]
		for _, n := range names[1:] {
			out += " or " + n
		}
		return out
	default:
		return "unknown"
	}
}

// Matches reports whether v is a member of t: a value matches TypedArray(t)
// iff it is an array and every element matches t; a value matches Union(…)
// iff it matches any member.
func (t Type) Matches(v value.Value) bool {
	switch t.Kind {
	case KindAny:
		return true
	case KindNull:
		return v.Kind() == value.KindNull
	case KindString:
		return v.Kind() == value.KindString
	case KindNumber:
		return v.Kind() == value.KindNumber
	case KindBoolean:
		return v.Kind() == value.KindBoolean
	case KindObject:
		return v.Kind() == value.KindObject
	case KindArray:
		return v.Kind() == value.KindArray
	case KindExpRef:
		return v.Kind() == value.KindExpressionRef
	case KindTypedArray:
		items, ok := v.AsArray()
		if !ok {
			return false
		}
		for _, item := range items {
			if !t.Elem.Matches(item) {
				return false
			}
		}
		return true
	case KindUnion:
		for _, m := range t.Members {
			if m.Matches(v) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
