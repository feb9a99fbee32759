package processors

import (
	"github.com/05st/juno/internal/pkg/ast/typed"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/common"
)

// applyModule rewrites every type annotation in the typed tree with the
// final substitution. Fresh nodes are allocated throughout; the input
// tree is not mutated.
func applyModule(m *typed.Module, su types.Subst) *typed.Module {
	return &typed.Module{
		Location: m.Location,
		Name:     m.Name,
		TopLevels: common.Map(func(tl typed.TopLevel) typed.TopLevel {
			return applyTopLevel(tl, su)
		}, m.TopLevels),
	}
}

func applyTopLevel(tl typed.TopLevel, su types.Subst) typed.TopLevel {
	switch t := tl.(type) {
	case *typed.Func:
		return &typed.Func{
			Location: t.Location,
			Public:   t.Public,
			Op:       t.Op,
			Name:     t.Name,
			Params: common.Map(func(p typed.Param) typed.Param {
				return typed.Param{Location: p.Location, Name: p.Name, Type: su.Apply(p.Type)}
			}, t.Params),
			Type: su.Apply(t.Type),
			Body: applyExpression(t.Body, su),
		}
	case *typed.TypeDecl:
		return &typed.TypeDecl{
			Location: t.Location,
			Public:   t.Public,
			Name:     t.Name,
			Params:   t.Params,
			Constructors: common.Map(func(c typed.Constructor) typed.Constructor {
				return typed.Constructor{
					Location: c.Location,
					Name:     c.Name,
					Args:     su.ApplyMany(c.Args),
					Type:     su.Apply(c.Type),
				}
			}, t.Constructors),
		}
	case *typed.Extern:
		return &typed.Extern{Location: t.Location, Name: t.Name, Type: su.Apply(t.Type)}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func applyExpression(expr typed.Expression, su types.Subst) typed.Expression {
	if expr == nil {
		return nil
	}
	apply := func(x typed.Expression) typed.Expression {
		return applyExpression(x, su)
	}
	switch e := expr.(type) {
	case *typed.Lit:
		return &typed.Lit{Location: e.Location, Type: su.Apply(e.Type), Value: e.Value}
	case *typed.Var:
		return &typed.Var{Location: e.Location, Type: su.Apply(e.Type), Name: e.Name}
	case *typed.Assign:
		return &typed.Assign{
			Location: e.Location,
			Type:     su.Apply(e.Type),
			Target:   apply(e.Target),
			Value:    apply(e.Value),
		}
	case *typed.Block:
		return &typed.Block{
			Location: e.Location,
			Type:     su.Apply(e.Type),
			Decls: common.Map(func(d typed.Declaration) typed.Declaration {
				return applyDeclaration(d, su)
			}, e.Decls),
			Result: apply(e.Result),
		}
	case *typed.If:
		return &typed.If{
			Location:  e.Location,
			Type:      su.Apply(e.Type),
			Condition: apply(e.Condition),
			Then:      apply(e.Then),
			Else:      apply(e.Else),
		}
	case *typed.Match:
		return &typed.Match{
			Location: e.Location,
			Type:     su.Apply(e.Type),
			Subject:  apply(e.Subject),
			Arms: common.Map(func(arm typed.MatchArm) typed.MatchArm {
				return typed.MatchArm{
					Location: arm.Location,
					Pattern:  applyPattern(arm.Pattern, su),
					Body:     apply(arm.Body),
				}
			}, e.Arms),
		}
	case *typed.BinOp:
		return &typed.BinOp{
			Location: e.Location,
			Type:     su.Apply(e.Type),
			Op:       e.Op,
			Left:     apply(e.Left),
			Right:    apply(e.Right),
		}
	case *typed.UnOp:
		return &typed.UnOp{
			Location: e.Location,
			Type:     su.Apply(e.Type),
			Op:       e.Op,
			Operand:  apply(e.Operand),
		}
	case *typed.Call:
		return &typed.Call{
			Location: e.Location,
			Type:     su.Apply(e.Type),
			Callee:   apply(e.Callee),
			Args:     common.Map(apply, e.Args),
		}
	case *typed.Deref:
		return &typed.Deref{Location: e.Location, Type: su.Apply(e.Type), Operand: apply(e.Operand)}
	case *typed.Ref:
		return &typed.Ref{Location: e.Location, Type: su.Apply(e.Type), Operand: apply(e.Operand)}
	case *typed.Cast:
		return &typed.Cast{Location: e.Location, Type: su.Apply(e.Type), Operand: apply(e.Operand)}
	case *typed.Sizeof:
		return &typed.Sizeof{
			Location: e.Location,
			Type:     su.Apply(e.Type),
			Target:   su.Apply(e.Target),
		}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func applyDeclaration(decl typed.Declaration, su types.Subst) typed.Declaration {
	switch d := decl.(type) {
	case *typed.DVar:
		return &typed.DVar{
			Location: d.Location,
			Mutable:  d.Mutable,
			Name:     d.Name,
			Type:     su.Apply(d.Type),
			Value:    applyExpression(d.Value, su),
		}
	case *typed.DStmt:
		return &typed.DStmt{Location: d.Location, Stmt: applyStatement(d.Stmt, su)}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func applyStatement(stmt typed.Statement, su types.Subst) typed.Statement {
	switch s := stmt.(type) {
	case *typed.SExpr:
		return &typed.SExpr{Location: s.Location, Expr: applyExpression(s.Expr, su)}
	case *typed.SReturn:
		return &typed.SReturn{
			Location: s.Location,
			Type:     su.Apply(s.Type),
			Value:    applyExpression(s.Value, su),
		}
	case *typed.SWhile:
		return &typed.SWhile{
			Location:  s.Location,
			Condition: applyExpression(s.Condition, su),
			Body:      applyExpression(s.Body, su),
		}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func applyPattern(pattern typed.Pattern, su types.Subst) typed.Pattern {
	switch p := pattern.(type) {
	case *typed.PVar:
		return &typed.PVar{Location: p.Location, Type: su.Apply(p.Type), Name: p.Name}
	case *typed.PLit:
		return &typed.PLit{Location: p.Location, Type: su.Apply(p.Type), Value: p.Value}
	case *typed.PWild:
		return &typed.PWild{Location: p.Location, Type: su.Apply(p.Type)}
	case *typed.PCon:
		return &typed.PCon{
			Location: p.Location,
			Type:     su.Apply(p.Type),
			Name:     p.Name,
			Binds: common.Map(func(b typed.PConBind) typed.PConBind {
				return typed.PConBind{Location: b.Location, Name: b.Name, Type: su.Apply(b.Type)}
			}, p.Binds),
		}
	}
	panic(common.SystemError{Message: "invalid case"})
}
