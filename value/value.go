// Package value implements the JMESPath runtime value model: a closed sum
// type over JSON-shaped data plus the typing, equality, ordering, and
// truthiness rules the interpreter needs to evaluate against it.
package value

import (
	"sort"

	"github.com/pkg/errors"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindExpressionRef
)

// Value is a tagged union over the JMESPath data model.  Exactly one of the
// payload fields is meaningful for a given Kind; which one is determined by
// Kind itself, never by which fields happen to be non-zero.
type Value struct {
	kind Kind

	str     string
	num     Number
	boolean bool
	arr     []Value
	obj     *Object

	// exprRef holds an opaque interface{} rather than a concrete AST type so
	// that the value package has no import dependency on ast; the interp
	// package is responsible for type-asserting this back to ast.Node.
	exprRef interface{}
}

// Object is an ordered mapping from string keys to Value.  Iteration order
// follows insertion order so that multi-select-hash construction is
// deterministic, but callers should not rely on it except where explicitly
// called out (keys/values order is unspecified by the JMESPath
// specification even though this implementation iterates in insertion
// order internally).
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set inserts or overwrites the value for key, preserving first-insertion
// position on overwrite: duplicate keys in a multi-select-hash literal
// retain the last occurrence's value while construction order is what the
// literal wrote.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.values)
}

// Keys returns the entry keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Range calls f for every entry in insertion order, stopping early if f
// returns false.
func (o *Object) Range(f func(key string, v Value) bool) {
	for _, k := range o.keys {
		if !f(k, o.values[k]) {
			return
		}
	}
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

// String constructs a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Bool constructs a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// Int constructs an integer-valued number.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: Number{isInt: true, i: i}}
}

// Float constructs a double-valued number.
func Float(f float64) Value {
	return Value{kind: KindNumber, num: Number{isInt: false, f: f}}
}

// FromNumber constructs a number value directly from Number.
func FromNumber(n Number) Value {
	return Value{kind: KindNumber, num: n}
}

// Array constructs an array value from items. The slice is not copied; the
// caller must not mutate it after passing ownership here.
func Array(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// FromObject constructs an object value.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// ExpressionRef constructs an expression-reference value wrapping an
// arbitrary AST payload. The payload is opaque to this package.
func ExpressionRef(ast interface{}) Value {
	return Value{kind: KindExpressionRef, exprRef: ast}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is Null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsString returns the string payload and whether v is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the Number payload and whether v is a Number.
func (v Value) AsNumber() (Number, bool) {
	if v.kind != KindNumber {
		return Number{}, false
	}
	return v.num, true
}

// AsBool returns the boolean payload and whether v is a Boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBoolean {
		return false, false
	}
	return v.boolean, true
}

// AsArray returns the array payload and whether v is an Array.  The
// returned slice is shared with v and must not be mutated.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsObject returns the object payload and whether v is an Object.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsExpressionRef returns the opaque AST payload and whether v is an
// ExpressionRef.
func (v Value) AsExpressionRef() (interface{}, bool) {
	if v.kind != KindExpressionRef {
		return nil, false
	}
	return v.exprRef, true
}

// TypeName returns the JMESPath type name for v, as defined by the
// JMESPath specification (https://jmespath.org/specification.html) and
// surfaced to queries through the type() built-in.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindExpressionRef:
		return "expression"
	default:
		return "null"
	}
}

// Truthy implements the JMESPath specification's truthiness predicate,
// used to decide filter expressions, && / ||, and not.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull, KindExpressionRef:
		return false
	case KindBoolean:
		return v.boolean
	case KindString:
		return v.str != ""
	case KindArray:
		return len(v.arr) > 0
	case KindObject:
		return v.obj.Len() > 0
	case KindNumber:
		return true
	default:
		return false
	}
}

// Equal implements the JMESPath specification's equality rules.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return NumberEqual(a.num, b.num)
	case KindBoolean:
		return a.boolean == b.boolean
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		equal := true
		a.obj.Range(func(k string, av Value) bool {
			bv, ok := b.obj.Get(k)
			if !ok || !Equal(av, bv) {
				equal = false
				return false
			}
			return true
		})
		return equal
	case KindExpressionRef:
		// Structural equality of the inner AST; value has no knowledge of
		// the AST's shape, so equality uses the payload's own equality if
		// it supports one, otherwise plain interface equality (see
		// exprRefEqual).
		return exprRefEqual(a.exprRef, b.exprRef)
	default:
		return false
	}
}

// exprEqualer is implemented by ast.Node so that value can dispatch
// structural AST equality without importing the ast package (which itself
// imports value, so a direct import would cycle).
type exprEqualer interface {
	ExprEqual(other interface{}) bool
}

// exprRefEqual compares two opaque expression-ref payloads via the
// exprEqualer interface. Payloads that don't implement it (only possible
// outside this module's own ast.Node) fall back to identity comparison,
// guarded against panicking on uncomparable underlying types.
func exprRefEqual(a, b interface{}) bool {
	if ae, ok := a.(exprEqualer); ok {
		return ae.ExprEqual(b)
	}
	return safeInterfaceEqual(a, b)
}

func safeInterfaceEqual(a, b interface{}) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

// CompareResult is the outcome of comparing two values for ordering.
type CompareResult int

const (
	// CompareUndefined means the pair has no defined ordering: the
	// JMESPath specification says all other orderings yield "no result".
	CompareUndefined CompareResult = iota
	CompareLess
	CompareEqual
	CompareGreater
)

// Compare implements the JMESPath specification's ordering rules: defined
// only for (Number, Number) and (String, String) using codepoint order.
func Compare(a, b Value) CompareResult {
	if a.kind != b.kind {
		return CompareUndefined
	}
	switch a.kind {
	case KindNumber:
		return compareNumber(a.num, b.num)
	case KindString:
		return compareString(a.str, b.str)
	default:
		return CompareUndefined
	}
}

func compareString(a, b string) CompareResult {
	ar, br := []rune(a), []rune(b)
	n := len(ar)
	if len(br) < n {
		n = len(br)
	}
	for i := 0; i < n; i++ {
		if ar[i] < br[i] {
			return CompareLess
		}
		if ar[i] > br[i] {
			return CompareGreater
		}
	}
	switch {
	case len(ar) < len(br):
		return CompareLess
	case len(ar) > len(br):
		return CompareGreater
	default:
		return CompareEqual
	}
}

// Field implements the JMESPath specification's field access: Object
// lookup, Null on any other variant (including absent key).
func (v Value) Field(name string) Value {
	if v.kind != KindObject {
		return Null
	}
	if val, ok := v.obj.Get(name); ok {
		return val
	}
	return Null
}

// Index implements the JMESPath specification's index access, including
// negative-index wrap.
func (v Value) Index(i int) Value {
	if v.kind != KindArray {
		return Null
	}
	n := len(v.arr)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Null
	}
	return v.arr[i]
}

// SortValues sorts a slice of Values known to be all-Number or all-String in
// ascending order, stably. Callers (the function package) are responsible
// for verifying homogeneity via the signature gate before calling this.
func SortValues(vs []Value) {
	sort.SliceStable(vs, func(i, j int) bool {
		return Compare(vs[i], vs[j]) == CompareLess
	})
}

// ErrNoJSONForm is returned by JSON when called on an ExpressionRef value,
// which the JMESPath specification's data model defines as having no JSON
// form.
var ErrNoJSONForm = errors.New("expression reference has no JSON form")
