package typed

import (
	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/types"
)

type Expression interface {
	GetLocation() ast.Location
	GetType() types.Type
	_expression()
}

type Lit struct {
	Location ast.Location
	Type     types.Type
	Value    ast.ConstValue
}

func (*Lit) _expression() {}

func (e *Lit) GetLocation() ast.Location {
	return e.Location
}

func (e *Lit) GetType() types.Type {
	return e.Type
}

type Var struct {
	Location ast.Location
	Type     types.Type
	Name     ast.Name
}

func (*Var) _expression() {}

func (e *Var) GetLocation() ast.Location {
	return e.Location
}

func (e *Var) GetType() types.Type {
	return e.Type
}

type Assign struct {
	Location ast.Location
	Type     types.Type
	Target   Expression
	Value    Expression
}

func (*Assign) _expression() {}

func (e *Assign) GetLocation() ast.Location {
	return e.Location
}

func (e *Assign) GetType() types.Type {
	return e.Type
}

type Block struct {
	Location ast.Location
	Type     types.Type
	Decls    []Declaration
	Result   Expression
}

func (*Block) _expression() {}

func (e *Block) GetLocation() ast.Location {
	return e.Location
}

func (e *Block) GetType() types.Type {
	return e.Type
}

type If struct {
	Location  ast.Location
	Type      types.Type
	Condition Expression
	Then      Expression
	Else      Expression
}

func (*If) _expression() {}

func (e *If) GetLocation() ast.Location {
	return e.Location
}

func (e *If) GetType() types.Type {
	return e.Type
}

type MatchArm struct {
	Location ast.Location
	Pattern  Pattern
	Body     Expression
}

type Match struct {
	Location ast.Location
	Type     types.Type
	Subject  Expression
	Arms     []MatchArm
}

func (*Match) _expression() {}

func (e *Match) GetLocation() ast.Location {
	return e.Location
}

func (e *Match) GetType() types.Type {
	return e.Type
}

type BinOp struct {
	Location ast.Location
	Type     types.Type
	Op       ast.Name
	Left     Expression
	Right    Expression
}

func (*BinOp) _expression() {}

func (e *BinOp) GetLocation() ast.Location {
	return e.Location
}

func (e *BinOp) GetType() types.Type {
	return e.Type
}

type UnOp struct {
	Location ast.Location
	Type     types.Type
	Op       ast.Name
	Operand  Expression
}

func (*UnOp) _expression() {}

func (e *UnOp) GetLocation() ast.Location {
	return e.Location
}

func (e *UnOp) GetType() types.Type {
	return e.Type
}

type Call struct {
	Location ast.Location
	Type     types.Type
	Callee   Expression
	Args     []Expression
}

func (*Call) _expression() {}

func (e *Call) GetLocation() ast.Location {
	return e.Location
}

func (e *Call) GetType() types.Type {
	return e.Type
}

type Deref struct {
	Location ast.Location
	Type     types.Type
	Operand  Expression
}

func (*Deref) _expression() {}

func (e *Deref) GetLocation() ast.Location {
	return e.Location
}

func (e *Deref) GetType() types.Type {
	return e.Type
}

type Ref struct {
	Location ast.Location
	Type     types.Type
	Operand  Expression
}

func (*Ref) _expression() {}

func (e *Ref) GetLocation() ast.Location {
	return e.Location
}

func (e *Ref) GetType() types.Type {
	return e.Type
}

type Cast struct {
	Location ast.Location
	Type     types.Type
	Operand  Expression
}

func (*Cast) _expression() {}

func (e *Cast) GetLocation() ast.Location {
	return e.Location
}

func (e *Cast) GetType() types.Type {
	return e.Type
}

type Sizeof struct {
	Location ast.Location
	Type     types.Type
	Target   types.Type
}

func (*Sizeof) _expression() {}

func (e *Sizeof) GetLocation() ast.Location {
	return e.Location
}

func (e *Sizeof) GetType() types.Type {
	return e.Type
}

type Declaration interface {
	GetLocation() ast.Location
	_declaration()
}

type DVar struct {
	Location ast.Location
	Mutable  bool
	Name     ast.Name
	Type     types.Type
	Value    Expression
}

func (*DVar) _declaration() {}

func (d *DVar) GetLocation() ast.Location {
	return d.Location
}

type DStmt struct {
	Location ast.Location
	Stmt     Statement
}

func (*DStmt) _declaration() {}

func (d *DStmt) GetLocation() ast.Location {
	return d.Location
}

type Statement interface {
	GetLocation() ast.Location
	_statement()
}

type SExpr struct {
	Location ast.Location
	Expr     Expression
}

func (*SExpr) _statement() {}

func (s *SExpr) GetLocation() ast.Location {
	return s.Location
}

type SReturn struct {
	Location ast.Location
	Type     types.Type
	Value    Expression
}

func (*SReturn) _statement() {}

func (s *SReturn) GetLocation() ast.Location {
	return s.Location
}

type SWhile struct {
	Location  ast.Location
	Condition Expression
	Body      Expression
}

func (*SWhile) _statement() {}

func (s *SWhile) GetLocation() ast.Location {
	return s.Location
}
