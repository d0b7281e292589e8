package function

import (
	"github.com/pkg/errors"

	"github.com/aretext/jmespath/value"
)

// Signature is a function's arity and positional argument types, following
// the JMESPath specification's function signature notation: fixed arity
// `inputs[]` plus an optional variadic tail `varArg`.
type Signature struct {
	Inputs []Type
	VarArg *Type
}

// Check validates args against s, returning a runtime error naming the
// expected and actual types on mismatch.
func (s Signature) Check(name string, args []value.Value) error {
	n := len(args)
	min := len(s.Inputs)
	if n < min || (n > min && s.VarArg == nil) {
		return errors.Errorf("%s() expects %d argument(s)%s, got %d", name, min, varArgSuffix(s.VarArg), n)
	}
	for i, t := range s.Inputs {
		if !t.Matches(args[i]) {
			return errors.Errorf("%s() expected argument %d to be %s, got %s", name, i+1, t.Name(), args[i].TypeName())
		}
	}
	if s.VarArg != nil {
		for i := min; i < n; i++ {
			if !s.VarArg.Matches(args[i]) {
				return errors.Errorf("%s() expected argument %d to be %s, got %s", name, i+1, s.VarArg.Name(), args[i].TypeName())
			}
		}
	}
	return nil
}

func varArgSuffix(v *Type) string {
	if v == nil {
		return ""
	}
	return " or more"
}
