package processors

import (
	"testing"

	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/parsed"
	"github.com/05st/juno/internal/pkg/ast/typed"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/common"
)

func module(name ast.Identifier, topLevels ...parsed.TopLevel) *parsed.Module {
	return &parsed.Module{Location: testLoc, Name: name, TopLevels: topLevels}
}

func moduleWithImports(name ast.Identifier, imports []parsed.Import, topLevels ...parsed.TopLevel) *parsed.Module {
	m := module(name, topLevels...)
	m.Imports = imports
	return m
}

func importOf(public bool, path ...ast.Identifier) parsed.Import {
	return parsed.Import{Location: testLoc, Public: public, Path: path}
}

func function(name ast.Identifier, params []parsed.Param, ret types.Type, body parsed.Expression) *parsed.Func {
	return &parsed.Func{Location: testLoc, Public: true, Name: ast.NewName(name), Params: params, Return: ret, Body: body}
}

func operator(symbol ast.Identifier, params []parsed.Param, body parsed.Expression) *parsed.Oper {
	return &parsed.Oper{
		Location: testLoc,
		Public:   true,
		Def:      ast.OperatorDef{Assoc: ast.AssocLeft, Precedence: 5, Symbol: symbol},
		Name:     ast.NewName(symbol),
		Params:   params,
		Body:     body,
	}
}

func param(name ast.Identifier, annot types.Type) parsed.Param {
	return parsed.Param{Location: testLoc, Name: ast.NewName(name), Annot: annot}
}

func typeDecl(name ast.Identifier, params []ast.Identifier, ctors ...parsed.Constructor) *parsed.TypeDecl {
	return &parsed.TypeDecl{Location: testLoc, Public: true, Name: ast.NewName(name), Params: params, Constructors: ctors}
}

func ctor(name ast.Identifier, args ...types.Type) parsed.Constructor {
	return parsed.Constructor{Location: testLoc, Name: ast.NewName(name), Args: args}
}

func intLit(v int64) parsed.Expression {
	return &parsed.Lit{Location: testLoc, Value: ast.CInt{Value: v}}
}

func boolLit(v bool) parsed.Expression {
	return &parsed.Lit{Location: testLoc, Value: ast.CBool{Value: v}}
}

func strLit(v string) parsed.Expression {
	return &parsed.Lit{Location: testLoc, Value: ast.CString{Value: v}}
}

func varOf(name ast.Identifier) parsed.Expression {
	return &parsed.Var{Location: testLoc, Name: ast.NewName(name)}
}

func block(decls []parsed.Declaration, result parsed.Expression) parsed.Expression {
	return &parsed.Block{Location: testLoc, Decls: decls, Result: result}
}

func dvar(mutable bool, name ast.Identifier, value parsed.Expression) parsed.Declaration {
	return &parsed.DVar{Location: testLoc, Mutable: mutable, Name: ast.NewName(name), Value: value}
}

func dstmt(stmt parsed.Statement) parsed.Declaration {
	return &parsed.DStmt{Location: testLoc, Stmt: stmt}
}

func sexpr(e parsed.Expression) parsed.Statement {
	return &parsed.SExpr{Location: testLoc, Expr: e}
}

func sret(e parsed.Expression) parsed.Statement {
	return &parsed.SReturn{Location: testLoc, Value: e}
}

func swhile(cond, body parsed.Expression) parsed.Statement {
	return &parsed.SWhile{Location: testLoc, Condition: cond, Body: body}
}

func assign(target, value parsed.Expression) parsed.Expression {
	return &parsed.Assign{Location: testLoc, Target: target, Value: value}
}

func binop(op ast.Identifier, left, right parsed.Expression) parsed.Expression {
	return &parsed.BinOp{Location: testLoc, Op: ast.NewName(op), Left: left, Right: right}
}

func call(callee parsed.Expression, args ...parsed.Expression) parsed.Expression {
	return &parsed.Call{Location: testLoc, Callee: callee, Args: args}
}

func ifExpr(cond, then, els parsed.Expression) parsed.Expression {
	return &parsed.If{Location: testLoc, Condition: cond, Then: then, Else: els}
}

func match(subject parsed.Expression, arms ...parsed.MatchArm) parsed.Expression {
	return &parsed.Match{Location: testLoc, Subject: subject, Arms: arms}
}

func arm(pattern parsed.Pattern, body parsed.Expression) parsed.MatchArm {
	return parsed.MatchArm{Location: testLoc, Pattern: pattern, Body: body}
}

func pcon(name ast.Identifier, binds ...ast.Identifier) parsed.Pattern {
	return &parsed.PCon{
		Location: testLoc,
		Name:     ast.NewName(name),
		Binds:    common.Map(ast.NewName, binds),
	}
}

func analyze(t *testing.T, modules ...*parsed.Module) []*typed.Module {
	t.Helper()
	typedModules, _, err := Analyze(modules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return typedModules
}

func analyzeErrKind(t *testing.T, modules ...*parsed.Module) common.ErrorKind {
	t.Helper()
	_, _, err := Analyze(modules)
	if err == nil {
		t.Fatal("expected an error")
	}
	return errKind(t, err)
}

func findFunc(t *testing.T, modules []*typed.Module, full ast.FullIdentifier) *typed.Func {
	t.Helper()
	for _, m := range modules {
		if tl, ok := common.Find(func(tl typed.TopLevel) bool {
			def, isFunc := tl.(*typed.Func)
			return isFunc && def.Name.Full() == full
		}, m.TopLevels); ok {
			return tl.(*typed.Func)
		}
	}
	t.Fatalf("definition `%s` not found", full)
	return nil
}
