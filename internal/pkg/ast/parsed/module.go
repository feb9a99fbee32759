// Package parsed holds the untyped AST the parser produces. The
// resolver rewrites it in place of shape: same tree, every name
// qualified to its defining scope.
package parsed

import (
	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/types"
)

type Module struct {
	Location  ast.Location
	Path      []ast.Identifier
	Name      ast.Identifier
	Imports   []Import
	TopLevels []TopLevel
}

// FullPath is the module's path joined with its name, e.g. `std.list`.
func (m *Module) FullPath() ast.QualifiedIdentifier {
	return ast.MakeQualifiedIdentifier(m.Path).Append(m.Name)
}

type Import struct {
	Location ast.Location
	Public   bool
	Path     []ast.Identifier
}

func (i Import) ModuleIdentifier() ast.QualifiedIdentifier {
	return ast.MakeQualifiedIdentifier(i.Path)
}

type TopLevel interface {
	GetLocation() ast.Location
	_topLevel()
}

type Param struct {
	Location ast.Location
	Name     ast.Name
	Annot    types.Type
}

type Func struct {
	Location ast.Location
	Public   bool
	Name     ast.Name
	Params   []Param
	Return   types.Type
	Body     Expression
}

func (*Func) _topLevel() {}

func (t *Func) GetLocation() ast.Location {
	return t.Location
}

type Oper struct {
	Location ast.Location
	Public   bool
	Def      ast.OperatorDef
	Name     ast.Name
	Params   []Param
	Return   types.Type
	Body     Expression
}

func (*Oper) _topLevel() {}

func (t *Oper) GetLocation() ast.Location {
	return t.Location
}

type Constructor struct {
	Location ast.Location
	Name     ast.Name
	Args     []types.Type
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
	Params   []types.Type
	Return   types.Type
}

func (*Extern) _topLevel() {}

func (t *Extern) GetLocation() ast.Location {
	return t.Location
}
