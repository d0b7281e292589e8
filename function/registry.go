package function

import (
	"github.com/pkg/errors"

	"github.com/aretext/jmespath/value"
)

// Evaluator lets a built-in (map, sort_by, max_by, min_by) apply an
// ExpRef argument to an element without the function package importing
// interp, which would cycle (interp imports function for the registry).
type Evaluator interface {
	EvalExprRef(ref value.Value, input value.Value) (value.Value, error)
}

// Descriptor is one function registry entry: a name, its signature, and
// the Go implementation.
type Descriptor struct {
	Name string
	Sig  Signature
	Call func(args []value.Value, ev Evaluator) (value.Value, error)
}

// Registry is the name → descriptor mapping used to resolve function
// calls during evaluation. Lookup is by exact byte-equal name.
type Registry struct {
	funcs map[string]Descriptor
}

// NewRegistry returns a Registry pre-populated with the built-ins defined
// by the JMESPath specification (https://jmespath.org/specification.html).
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Descriptor, len(builtins))}
	for _, d := range builtins {
		r.funcs[d.Name] = d
	}
	return r
}

// Register adds or overwrites a descriptor. Callers should register all
// functions before the registry is shared across goroutines; this is not
// itself mutex-enforced.
func (r *Registry) Register(d Descriptor) {
	r.funcs[d.Name] = d
}

// Lookup returns the descriptor for name and whether it is registered.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.funcs[name]
	return d, ok
}

// Invoke validates args against name's signature and calls it, implementing
// the function-call evaluation rules of the JMESPath specification: resolve
// the name, check arity and argument types, then invoke.
func (r *Registry) Invoke(name string, args []value.Value, ev Evaluator) (value.Value, error) {
	d, ok := r.Lookup(name)
	if !ok {
		return value.Value{}, errors.Errorf("unknown function %q", name)
	}
	if err := d.Sig.Check(name, args); err != nil {
		return value.Value{}, err
	}
	result, err := d.Call(args, ev)
	if err != nil {
		return value.Value{}, errors.Wrapf(err, "%s()", name)
	}
	return result, nil
}
