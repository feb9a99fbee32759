package types

import (
	set "github.com/hashicorp/go-set/v3"
)

// Subst maps type variables to types. Substitutions allocate fresh
// trees; types are never mutated in place.
type Subst map[TV]Type

func (s Subst) Apply(t Type) Type {
	switch e := t.(type) {
	case *TVar:
		if r, ok := s[e.V]; ok {
			return r
		}
		return t
	case *TCon:
		if len(e.Args) == 0 {
			return t
		}
		return &TCon{Location: e.Location, Name: e.Name, Args: s.ApplyMany(e.Args)}
	case *TFunc:
		return &TFunc{Location: e.Location, Params: s.ApplyMany(e.Params), Return: s.Apply(e.Return)}
	case *TPtr:
		return &TPtr{Location: e.Location, To: s.Apply(e.To)}
	}
	return t
}

func (s Subst) ApplyMany(ts []Type) []Type {
	result := make([]Type, len(ts))
	for i, t := range ts {
		result[i] = s.Apply(t)
	}
	return result
}

// ApplyScheme drops the quantified variables from the substitution
// before rewriting the body.
func (s Subst) ApplyScheme(scheme Scheme) Scheme {
	if scheme.Forall == nil || scheme.Forall.Empty() {
		return Scheme{Forall: scheme.Forall, Type: s.Apply(scheme.Type)}
	}
	trimmed := Subst{}
	for v, t := range s {
		if !scheme.Forall.Contains(v) {
			trimmed[v] = t
		}
	}
	return Scheme{Forall: scheme.Forall, Type: trimmed.Apply(scheme.Type)}
}

// Compose returns s ∘ other: applying the result is equivalent to
// applying other first and s second. Keys in s shadow keys in other.
func (s Subst) Compose(other Subst) Subst {
	result := Subst{}
	for v, t := range other {
		result[v] = s.Apply(t)
	}
	for v, t := range s {
		result[v] = t
	}
	return result
}

// FreeVars yields the free type variables of a type.
func FreeVars(t Type) *set.Set[TV] {
	vars := set.New[TV](0)
	collectFreeVars(t, vars)
	return vars
}

func FreeVarsMany(ts []Type) *set.Set[TV] {
	vars := set.New[TV](0)
	for _, t := range ts {
		collectFreeVars(t, vars)
	}
	return vars
}

func collectFreeVars(t Type, vars *set.Set[TV]) {
	switch e := t.(type) {
	case *TVar:
		vars.Insert(e.V)
	case *TCon:
		for _, a := range e.Args {
			collectFreeVars(a, vars)
		}
	case *TFunc:
		for _, p := range e.Params {
			collectFreeVars(p, vars)
		}
		collectFreeVars(e.Return, vars)
	case *TPtr:
		collectFreeVars(e.To, vars)
	}
}
