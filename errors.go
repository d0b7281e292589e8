package jmespath

// CompileError is returned by Compile for any lexer or parser failure. The
// message names the offending token or construct.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}

// RuntimeError is returned by Expression.Search for a function-name lookup
// failure, an arity/type-signature failure, a function semantic failure
// (e.g. mixed-key sort_by), or any other failure surfaced during
// evaluation.
//
// Wrong-typed field access, out-of-range indexing, a non-array projection
// subject, and mis-typed comparisons are NOT RuntimeErrors: the JMESPath
// specification has those produce Null silently, exactly as interp.Eval
// already implements.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}
