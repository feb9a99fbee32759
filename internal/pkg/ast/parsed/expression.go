package parsed

import (
	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/types"
)

type Expression interface {
	GetLocation() ast.Location
	_expression()
}

type Lit struct {
	Location ast.Location
	Value    ast.ConstValue
}

func (*Lit) _expression() {}

func (e *Lit) GetLocation() ast.Location {
	return e.Location
}

type Var struct {
	Location ast.Location
	Name     ast.Name
}

func (*Var) _expression() {}

func (e *Var) GetLocation() ast.Location {
	return e.Location
}

type Assign struct {
	Location ast.Location
	Target   Expression
	Value    Expression
}

func (*Assign) _expression() {}

func (e *Assign) GetLocation() ast.Location {
	return e.Location
}

// Block is a sequence of declarations followed by a result expression.
// A nil Result makes the block unit-valued.
type Block struct {
	Location ast.Location
	Decls    []Declaration
	Result   Expression
}

func (*Block) _expression() {}

func (e *Block) GetLocation() ast.Location {
	return e.Location
}

type If struct {
	Location  ast.Location
	Condition Expression
	Then      Expression
	Else      Expression
}

func (*If) _expression() {}

func (e *If) GetLocation() ast.Location {
	return e.Location
}

type MatchArm struct {
	Location ast.Location
	Pattern  Pattern
	Body     Expression
}

type Match struct {
	Location ast.Location
	Subject  Expression
	Arms     []MatchArm
}

func (*Match) _expression() {}

func (e *Match) GetLocation() ast.Location {
	return e.Location
}

type BinOp struct {
	Location ast.Location
	Op       ast.Name
	Left     Expression
	Right    Expression
}

func (*BinOp) _expression() {}

func (e *BinOp) GetLocation() ast.Location {
	return e.Location
}

type UnOp struct {
	Location ast.Location
	Op       ast.Name
	Operand  Expression
}

func (*UnOp) _expression() {}

func (e *UnOp) GetLocation() ast.Location {
	return e.Location
}

type Call struct {
	Location ast.Location
	Callee   Expression
	Args     []Expression
}

func (*Call) _expression() {}

func (e *Call) GetLocation() ast.Location {
	return e.Location
}

type Deref struct {
	Location ast.Location
	Operand  Expression
}

func (*Deref) _expression() {}

func (e *Deref) GetLocation() ast.Location {
	return e.Location
}

type Ref struct {
	Location ast.Location
	Operand  Expression
}

func (*Ref) _expression() {}

func (e *Ref) GetLocation() ast.Location {
	return e.Location
}

type Cast struct {
	Location ast.Location
	Target   types.Type
	Operand  Expression
}

func (*Cast) _expression() {}

func (e *Cast) GetLocation() ast.Location {
	return e.Location
}

type Sizeof struct {
	Location ast.Location
	Target   types.Type
}

func (*Sizeof) _expression() {}

func (e *Sizeof) GetLocation() ast.Location {
	return e.Location
}

type Closure struct {
	Location ast.Location
	Params   []Param
	Body     Expression
}

func (*Closure) _expression() {}

func (e *Closure) GetLocation() ast.Location {
	return e.Location
}

type Declaration interface {
	GetLocation() ast.Location
	_declaration()
}

type DVar struct {
	Location ast.Location
	Mutable  bool
	Name     ast.Name
	Annot    types.Type
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

// SReturn with a nil Value returns unit.
type SReturn struct {
	Location ast.Location
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
