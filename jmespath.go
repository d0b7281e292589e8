// Package jmespath implements the JMESPath query language: compile a text
// expression once, then search it against any number of JSON-shaped
// values.
package jmespath

import (
	"github.com/aretext/jmespath/ast"
	"github.com/aretext/jmespath/interp"
	"github.com/aretext/jmespath/lexer"
	"github.com/aretext/jmespath/parser"
	"github.com/aretext/jmespath/value"
)

// Expression is a compiled JMESPath query. It is immutable and safe to
// share across goroutines; evaluating the same Expression concurrently
// against distinct inputs is safe as long as no goroutine is concurrently
// registering new functions on a shared Runtime.
type Expression struct {
	src  string
	node ast.Node
}

// Compile parses text into an Expression, or returns a *CompileError
// naming the offending token or construct.
func Compile(text string) (*Expression, error) {
	tokens, err := lexer.Lex(text)
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}
	node, err := parser.Parse(tokens)
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}
	return &Expression{src: text, node: node}, nil
}

// String returns the original source text e was compiled from.
func (e *Expression) String() string {
	return e.src
}

// Search evaluates e against input, using rt's function registry if
// provided, or the default registry of built-ins otherwise.
func (e *Expression) Search(input value.Value, rt ...*Runtime) (value.Value, error) {
	active := defaultRuntime
	if len(rt) > 0 && rt[0] != nil {
		active = rt[0]
	}
	result, err := interp.Eval(input, e.node, active.registry)
	if err != nil {
		return value.Value{}, &RuntimeError{Message: err.Error()}
	}
	return result, nil
}

// Search compiles text and evaluates it against input in one step, a
// convenience wrapper around Compile + Expression.Search for callers that
// don't need to reuse a compiled Expression.
func Search(text string, input value.Value, rt ...*Runtime) (value.Value, error) {
	expr, err := Compile(text)
	if err != nil {
		return value.Value{}, err
	}
	return expr.Search(input, rt...)
}
