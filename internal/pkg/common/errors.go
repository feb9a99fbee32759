package common

import (
	"fmt"
	"strings"

	"github.com/05st/juno/internal/pkg/ast"
	"golang.org/x/exp/slices"
)

type ErrorKind int

const (
	Redefinition ErrorKind = iota
	Undefined
	Ambiguous
	UndefinedTypeVariable
	ImmutableAssign
	NonLValue
	NonReferencable
	EmptyMatch
	Mismatch
	InfiniteType
	NotImplemented
)

func (k ErrorKind) String() string {
	switch k {
	case Redefinition:
		return "redefinition"
	case Undefined:
		return "undefined"
	case Ambiguous:
		return "ambiguous"
	case UndefinedTypeVariable:
		return "undefined type variable"
	case ImmutableAssign:
		return "immutable assign"
	case NonLValue:
		return "non-lvalue"
	case NonReferencable:
		return "non-referencable"
	case EmptyMatch:
		return "empty match"
	case Mismatch:
		return "mismatch"
	case InfiniteType:
		return "infinite type"
	case NotImplemented:
		return "not implemented"
	}
	return "?"
}

// Error is a user-facing diagnostic. The analysis passes raise it with
// panic and the exported entry points recover it into an error return.
type Error struct {
	Kind     ErrorKind
	Location ast.Location
	Extra    []ast.Location
	Message  string
}

func (e Error) Error() string {
	sb := strings.Builder{}
	cursorString := e.Location.CursorString()
	if cursorString != "" {
		sb.WriteString(fmt.Sprintf("%s %s: %s", cursorString, e.Kind, e.Message))
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Message))
	}

	var uniqueExtra []ast.Location
	for _, x := range e.Extra {
		if x.IsEmpty() || x.EqualsTo(e.Location) {
			continue
		}
		if !slices.ContainsFunc(uniqueExtra, func(u ast.Location) bool {
			return u.EqualsTo(x)
		}) {
			uniqueExtra = append(uniqueExtra, x)
		}
	}
	for _, extra := range uniqueExtra {
		sb.WriteString(fmt.Sprintf("\n+ %s", extra.CursorString()))
	}
	return sb.String()
}

// SystemError marks states the pipeline invariants rule out. Hitting
// one is a bug in the compiler, not in user code.
type SystemError struct {
	Message string
}

func (e SystemError) Error() string {
	return fmt.Sprintf("system error: %s", e.Message)
}
