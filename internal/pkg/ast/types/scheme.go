package types

import (
	"fmt"
	"strings"

	set "github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/slices"
)

// Scheme is a (possibly) quantified type. Monomorphic schemes carry an
// empty quantifier set.
type Scheme struct {
	Forall *set.Set[TV]
	Type   Type
}

func NewScheme(forall *set.Set[TV], t Type) Scheme {
	return Scheme{Forall: forall, Type: t}
}

func MonoScheme(t Type) Scheme {
	return Scheme{Forall: set.New[TV](0), Type: t}
}

// FreeVars yields the free variables of the body, skipping the
// quantified ones.
func (s Scheme) FreeVars() *set.Set[TV] {
	free := FreeVars(s.Type)
	if s.Forall == nil {
		return free
	}
	return free.Difference(s.Forall).(*set.Set[TV])
}

func (s Scheme) String() string {
	if s.Forall == nil || s.Forall.Empty() {
		return s.Type.String()
	}
	vars := s.Forall.Slice()
	slices.Sort(vars)
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = string(v)
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), s.Type)
}

// Generalize closes t over the variables not free in the surrounding
// environment. Binding sites currently stay monomorphic; top-level
// insertion keeps the quantifier set it is given.
func Generalize(envFree *set.Set[TV], t Type) Scheme {
	return Scheme{Forall: FreeVars(t).Difference(envFree).(*set.Set[TV]), Type: t}
}
