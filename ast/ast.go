// Package ast defines the JMESPath abstract syntax tree, shaped after the
// grammar in the JMESPath specification (https://jmespath.org/specification.html).
package ast

import "github.com/aretext/jmespath/value"

// Kind identifies which variant of Node is populated. A Node is a closed
// tagged sum: Kind determines which fields are meaningful, following the
// same single-struct-with-discriminant shape as value.Value.
type Kind int

const (
	KindIdentity Kind = iota
	KindField
	KindIndex
	KindLiteral
	KindExpRef
	KindNot
	KindFlatten
	KindObjectValues
	KindSlice

	KindSubExpr
	KindOr
	KindAnd
	KindComparison
	KindCondition
	KindProjection

	KindMultiList
	KindMultiHash
	KindFunction
)

// Comparator identifies a comparison operator.
type Comparator int

const (
	CmpEq Comparator = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// HashPair is one `key: value-expression` entry of a MultiHash node.
type HashPair struct {
	Key   string
	Value Node
}

// Node is a single AST node. Exactly the fields relevant to Kind are
// populated; this mirrors the grounding reference implementation's
// ASTNode{NodeType, Value, Children} shape but uses typed named fields
// instead of interface{} wherever the node's shape is statically known.
//
// Field usage by Kind:
//
//	KindIdentity       (no fields)
//	KindField          Name
//	KindIndex          Int
//	KindLiteral        Value
//	KindExpRef         LHS = inner expression
//	KindNot            LHS = inner expression
//	KindFlatten        LHS = inner expression
//	KindObjectValues   LHS = inner expression
//	KindSlice          Slice
//	KindSubExpr        LHS, RHS
//	KindOr             LHS, RHS
//	KindAnd            LHS, RHS
//	KindComparison     Comparator, LHS, RHS
//	KindCondition      LHS = predicate, RHS = then-branch
//	KindProjection     LHS, RHS
//	KindMultiList      Children
//	KindMultiHash      Pairs
//	KindFunction       Name, Children = args
type Node struct {
	Kind Kind

	Name       string
	Int        int
	Value      value.Value
	Comparator Comparator
	Slice      value.SliceParams

	LHS *Node
	RHS *Node

	Children []Node
	Pairs    []HashPair
}

// Identity returns an Identity node.
func Identity() Node { return Node{Kind: KindIdentity} }

// Field returns a Field node.
func Field(name string) Node { return Node{Kind: KindField, Name: name} }

// Index returns an Index node.
func Index(i int) Node { return Node{Kind: KindIndex, Int: i} }

// Literal returns a Literal node.
func Literal(v value.Value) Node { return Node{Kind: KindLiteral, Value: v} }

// ExpRef returns an ExpRef node wrapping inner.
func ExpRef(inner Node) Node { return Node{Kind: KindExpRef, LHS: &inner} }

// Not returns a Not node wrapping inner.
func Not(inner Node) Node { return Node{Kind: KindNot, LHS: &inner} }

// Flatten returns a Flatten node wrapping inner.
func Flatten(inner Node) Node { return Node{Kind: KindFlatten, LHS: &inner} }

// ObjectValues returns an ObjectValues node wrapping inner.
func ObjectValues(inner Node) Node { return Node{Kind: KindObjectValues, LHS: &inner} }

// SliceNode returns a Slice node.
func SliceNode(p value.SliceParams) Node { return Node{Kind: KindSlice, Slice: p} }

// SubExpr returns a SubExpr node.
func SubExpr(lhs, rhs Node) Node { return Node{Kind: KindSubExpr, LHS: &lhs, RHS: &rhs} }

// Or returns an Or node.
func Or(lhs, rhs Node) Node { return Node{Kind: KindOr, LHS: &lhs, RHS: &rhs} }

// And returns an And node.
func And(lhs, rhs Node) Node { return Node{Kind: KindAnd, LHS: &lhs, RHS: &rhs} }

// Comparison returns a Comparison node.
func Comparison(op Comparator, lhs, rhs Node) Node {
	return Node{Kind: KindComparison, Comparator: op, LHS: &lhs, RHS: &rhs}
}

// Condition returns a Condition node.
func Condition(predicate, then Node) Node {
	return Node{Kind: KindCondition, LHS: &predicate, RHS: &then}
}

// Projection returns a Projection node.
func Projection(lhs, rhs Node) Node {
	return Node{Kind: KindProjection, LHS: &lhs, RHS: &rhs}
}

// MultiList returns a MultiList node.
func MultiList(items []Node) Node {
	return Node{Kind: KindMultiList, Children: items}
}

// MultiHash returns a MultiHash node. Duplicate keys retain the last
// occurrence, matching a multi-select-hash literal's write order.
func MultiHash(pairs []HashPair) Node {
	deduped := make([]HashPair, 0, len(pairs))
	seen := make(map[string]int, len(pairs))
	for _, p := range pairs {
		if idx, ok := seen[p.Key]; ok {
			deduped[idx] = p
			continue
		}
		seen[p.Key] = len(deduped)
		deduped = append(deduped, p)
	}
	return Node{Kind: KindMultiHash, Pairs: deduped}
}

// Function returns a Function node.
func Function(name string, args []Node) Node {
	return Node{Kind: KindFunction, Name: name, Children: args}
}
