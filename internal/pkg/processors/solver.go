package processors

import (
	"fmt"

	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/common"
	"golang.org/x/exp/slices"
)

// Constraint is an equality obligation between two types, tagged with
// the node that produced it.
type Constraint struct {
	Left     types.Type
	Right    types.Type
	Location ast.Location
}

func (c Constraint) String() string {
	return fmt.Sprintf("%v ~ %v", c.Left, c.Right)
}

// solve folds the constraint list through the unifier, composing
// substitutions and rewriting the residual constraints with each
// intermediate result. The first failing constraint aborts the run.
func solve(constraints []Constraint) types.Subst {
	su := types.Subst{}
	cs := slices.Clone(constraints)
	for len(cs) > 0 {
		c := cs[0]
		cs = cs[1:]
		u := unify(c.Left, c.Right, c.Location)
		su = u.Compose(su)
		for i, rem := range cs {
			cs[i] = Constraint{
				Left:     u.Apply(rem.Left),
				Right:    u.Apply(rem.Right),
				Location: rem.Location,
			}
		}
	}
	return su
}

// unify returns a substitution that makes x and y syntactically equal.
func unify(x, y types.Type, loc ast.Location) types.Subst {
	if x.EqualsTo(y) {
		return types.Subst{}
	}
	if v, ok := x.(*types.TVar); ok {
		return bind(v, y, loc)
	}
	if v, ok := y.(*types.TVar); ok {
		return bind(v, x, loc)
	}

	switch ex := x.(type) {
	case *types.TCon:
		if ey, ok := y.(*types.TCon); ok {
			if ex.Name != ey.Name || len(ex.Args) != len(ey.Args) {
				break
			}
			return unifyMany(ex.Args, ey.Args, loc)
		}
	case *types.TFunc:
		if ey, ok := y.(*types.TFunc); ok {
			if len(ex.Params) != len(ey.Params) {
				break
			}
			return unifyMany(
				append([]types.Type{ex.Return}, ex.Params...),
				append([]types.Type{ey.Return}, ey.Params...),
				loc)
		}
	case *types.TPtr:
		if ey, ok := y.(*types.TPtr); ok {
			return unify(ex.To, ey.To, loc)
		}
	}

	panic(common.Error{
		Kind:     common.Mismatch,
		Location: loc,
		Extra:    []ast.Location{x.GetLocation(), y.GetLocation()},
		Message:  fmt.Sprintf("%v cannot be matched with %v", x, y),
	})
}

func bind(v *types.TVar, t types.Type, loc ast.Location) types.Subst {
	if t.EqualsTo(v) {
		return types.Subst{}
	}
	if types.FreeVars(t).Contains(v.V) {
		panic(common.Error{
			Kind:     common.InfiniteType,
			Location: loc,
			Extra:    []ast.Location{v.GetLocation(), t.GetLocation()},
			Message:  fmt.Sprintf("cannot construct the infinite type %v = %v", v, t),
		})
	}
	return types.Subst{v.V: t}
}

// unifyMany is a left fold: unify the heads, rewrite both tails with
// the substitution so far, continue, compose. Callers guarantee the
// lists have equal length.
func unifyMany(xs, ys []types.Type, loc ast.Location) types.Subst {
	su := types.Subst{}
	for i := range xs {
		u := unify(su.Apply(xs[i]), su.Apply(ys[i]), loc)
		su = u.Compose(su)
	}
	return su
}
