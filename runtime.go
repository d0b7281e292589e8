package jmespath

import (
	"log"

	"github.com/aretext/jmespath/function"
)

// RuntimeOptions configures a Runtime. It currently carries no fields
// beyond the default built-ins; the type is kept as an extension point,
// following the teacher's Config/Apply overlay idiom for construction-time
// options (config.Config in the teacher lineage), so that a future option
// doesn't require changing NewRuntime's signature.
type RuntimeOptions struct{}

// RuntimeOption mutates a RuntimeOptions during NewRuntime construction.
type RuntimeOption func(*RuntimeOptions)

// Runtime holds a function registry shared across evaluations of one or
// more compiled Expressions. A Runtime should be treated as read-only once
// shared across goroutines: register all functions before sharing it.
type Runtime struct {
	registry *function.Registry
}

// NewRuntime returns a Runtime pre-populated with the built-in functions
// of the JMESPath specification (https://jmespath.org/specification.html).
func NewRuntime(opts ...RuntimeOption) *Runtime {
	var o RuntimeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Runtime{registry: function.NewRegistry()}
}

// Register adds a user-defined function, overwriting any existing
// registration (built-in or otherwise) under the same name. Overwriting
// any existing registration is logged since it is the one surprising,
// operator-relevant event in an otherwise pure pipeline.
func (rt *Runtime) Register(d function.Descriptor) {
	if _, exists := rt.registry.Lookup(d.Name); exists {
		log.Printf("registering function %q (overwrites an existing registration)\n", d.Name)
	}
	rt.registry.Register(d)
}

var defaultRuntime = NewRuntime()
