package processors

import (
	"github.com/05st/juno/internal/pkg/ast/parsed"
	"github.com/05st/juno/internal/pkg/ast/typed"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/common"
)

// Analyze runs the full semantic pipeline: name resolution, the
// top-level pre-pass, constraint-generating inference in source order,
// the global solve, and the final substitution over the typed tree.
// The boolean result reports whether `main.main` is defined.
func Analyze(modules []*parsed.Module) (typedModules []*typed.Module, mainExists bool, err error) {
	resolved, err := Resolve(modules)
	if err != nil {
		return nil, false, err
	}
	return Infer(resolved)
}

// Infer type-checks an already resolved program.
func Infer(resolved []*parsed.Module) (typedModules []*typed.Module, mainExists bool, err error) {
	defer recoverError(&err)

	inf := newInferrer()
	inf.collect(resolved)
	typedModules = common.Map(inf.inferModule, resolved)

	su := solve(inf.constraints)
	typedModules = common.Map(func(m *typed.Module) *typed.Module {
		return applyModule(m, su)
	}, typedModules)

	return typedModules, inf.mainExists, nil
}

// Solve exposes the constraint solver for property checks and tooling.
func Solve(constraints []Constraint) (su types.Subst, err error) {
	defer recoverError(&err)
	return solve(constraints), nil
}

// recoverError converts a raised diagnostic into an error return.
// Anything else keeps unwinding: it is a compiler bug.
func recoverError(err *error) {
	switch x := recover().(type) {
	case nil:
	case common.Error:
		*err = x
	case common.SystemError:
		*err = x
	default:
		panic(x)
	}
}
