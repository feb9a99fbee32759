// Package typed holds the AST the inferrer produces: the same shape as
// the resolved tree with every expression node carrying its type.
package typed

import (
	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/types"
)

type Module struct {
	Location  ast.Location
	Name      ast.QualifiedIdentifier
	TopLevels []TopLevel
}

type TopLevel interface {
	GetLocation() ast.Location
	_topLevel()
}

type Param struct {
	Location ast.Location
	Name     ast.Name
	Type     types.Type
}

// Func covers both functions and user-defined operators; operators
// carry their definition in Op.
type Func struct {
	Location ast.Location
	Public   bool
	Op       *ast.OperatorDef
	Name     ast.Name
	Params   []Param
	Type     types.Type
	Body     Expression
}

func (*Func) _topLevel() {}

func (t *Func) GetLocation() ast.Location {
	return t.Location
}

type Constructor struct {
	Location ast.Location
	Name     ast.Name
	Args     []types.Type
	Type     types.Type
}

type TypeDecl struct {
	Location     ast.Location
	Public       bool
	Name         ast.Name
	Params       []ast.Identifier
	Constructors []Constructor
}

func (*TypeDecl) _topLevel() {}

func (t *TypeDecl) GetLocation() ast.Location {
	return t.Location
}

type Extern struct {
	Location ast.Location
	Name     ast.Name
	Type     types.Type
}

func (*Extern) _topLevel() {}

func (t *Extern) GetLocation() ast.Location {
	return t.Location
}
