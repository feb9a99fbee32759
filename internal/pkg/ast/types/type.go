package types

import (
	"fmt"
	"strings"

	"github.com/05st/juno/internal/pkg/ast"
	set "github.com/hashicorp/go-set/v3"
)

// TV tags a type variable. Fresh variables generated during inference
// are named `_a, _b, … _aa, _ab, …`; variables written in source (type
// parameters) keep their written name.
type TV string

type Type interface {
	fmt.Stringer
	GetLocation() ast.Location
	EqualsTo(Type) bool
	_type()
}

type TVar struct {
	ast.Location
	V TV
}

func (*TVar) _type() {}

func (t *TVar) GetLocation() ast.Location {
	return t.Location
}

func (t *TVar) EqualsTo(other Type) bool {
	o, ok := other.(*TVar)
	return ok && t.V == o.V
}

func (t *TVar) String() string {
	return string(t.V)
}

// TCon is a named type constructor applied to zero or more arguments.
type TCon struct {
	ast.Location
	Name ast.Name
	Args []Type
}

func (*TCon) _type() {}

func (t *TCon) GetLocation() ast.Location {
	return t.Location
}

func (t *TCon) EqualsTo(other Type) bool {
	o, ok := other.(*TCon)
	if !ok || t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	for i, a := range t.Args {
		if !a.EqualsTo(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t *TCon) String() string {
	if len(t.Args) == 0 {
		return t.Name.String()
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

type TFunc struct {
	ast.Location
	Params []Type
	Return Type
}

func (*TFunc) _type() {}

func (t *TFunc) GetLocation() ast.Location {
	return t.Location
}

func (t *TFunc) EqualsTo(other Type) bool {
	o, ok := other.(*TFunc)
	if !ok || len(t.Params) != len(o.Params) {
		return false
	}
	for i, p := range t.Params {
		if !p.EqualsTo(o.Params[i]) {
			return false
		}
	}
	return t.Return.EqualsTo(o.Return)
}

func (t *TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return)
}

// TPtr is a reference type. A reference always targets a previously
// existing variable location.
type TPtr struct {
	ast.Location
	To Type
}

func (*TPtr) _type() {}

func (t *TPtr) GetLocation() ast.Location {
	return t.Location
}

func (t *TPtr) EqualsTo(other Type) bool {
	o, ok := other.(*TPtr)
	return ok && t.To.EqualsTo(o.To)
}

func (t *TPtr) String() string {
	return "*" + t.To.String()
}

const (
	Int8Name    ast.Identifier = "i8"
	Int16Name   ast.Identifier = "i16"
	Int32Name   ast.Identifier = "i32"
	Int64Name   ast.Identifier = "i64"
	UInt8Name   ast.Identifier = "u8"
	UInt16Name  ast.Identifier = "u16"
	UInt32Name  ast.Identifier = "u32"
	UInt64Name  ast.Identifier = "u64"
	Float16Name ast.Identifier = "f16"
	Float32Name ast.Identifier = "f32"
	Float64Name ast.Identifier = "f64"
	CharName    ast.Identifier = "char"
	BoolName    ast.Identifier = "bool"
	UnitName    ast.Identifier = "unit"
	StrName     ast.Identifier = "str"
)

var baseTypeNames = set.From([]ast.Identifier{
	Int8Name, Int16Name, Int32Name, Int64Name,
	UInt8Name, UInt16Name, UInt32Name, UInt64Name,
	Float16Name, Float32Name, Float64Name,
	CharName, BoolName, UnitName, StrName,
})

// IsBaseTypeName reports whether name is a primitive type name. Base
// type names short-circuit name resolution.
func IsBaseTypeName(name ast.Identifier) bool {
	return baseTypeNames.Contains(name)
}

func NewBase(loc ast.Location, name ast.Identifier) *TCon {
	return &TCon{Location: loc, Name: ast.NewName(name)}
}

func NewInt32(loc ast.Location) *TCon {
	return NewBase(loc, Int32Name)
}

func NewFloat64(loc ast.Location) *TCon {
	return NewBase(loc, Float64Name)
}

func NewStr(loc ast.Location) *TCon {
	return NewBase(loc, StrName)
}

func NewChar(loc ast.Location) *TCon {
	return NewBase(loc, CharName)
}

func NewBool(loc ast.Location) *TCon {
	return NewBase(loc, BoolName)
}

func NewUnit(loc ast.Location) *TCon {
	return NewBase(loc, UnitName)
}
