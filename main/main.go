package main

import (
	"flag"
	"os"

	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/parsed"
	"github.com/05st/juno/internal/pkg/ast/typed"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/logger"
	"github.com/05st/juno/internal/pkg/processors"
)

// The parser front end lives upstream; this driver feeds the analysis
// pipeline a built-in sample program and reports the inferred types,
// which is enough to exercise and inspect the semantic core.
func main() {
	dump := flag.String("dump", "", "directory for per-module analysis dumps")
	trace := flag.Bool("trace", false, "print inferred definition types")
	flag.Parse()

	log := logger.New(os.Stdout, *trace)

	typedModules, mainExists, err := processors.Analyze(sampleProgram())
	if err != nil {
		log.Err(err)
		os.Exit(1)
	}
	if !mainExists {
		log.Warn("no `main` function defined in module `main`")
	}

	for _, m := range typedModules {
		for _, tl := range m.TopLevels {
			if def, ok := tl.(*typed.Func); ok {
				log.Trace("%s : %v", def.Name, def.Type)
			}
		}
	}

	if *dump != "" {
		if err := processors.DumpModules(*dump, typedModules); err != nil {
			log.Err(err)
			os.Exit(1)
		}
	}
}

// sampleProgram builds the AST of:
//
//	module main;
//	op infixr 10 ** (base: i32, exp: i32) {
//	    mut res := 1;
//	    mut e2 := exp;
//	    while e2 > 0 { res = res * base; e2 = e2 - 1; };
//	    res
//	};
//	fn main() { 2 ** 12; };
func sampleProgram() []*parsed.Module {
	loc := ast.NewLocation("sample.jn", 1, 1)

	intLit := func(v int64) parsed.Expression {
		return &parsed.Lit{Location: loc, Value: ast.CInt{Value: v}}
	}
	useVar := func(name ast.Identifier) parsed.Expression {
		return &parsed.Var{Location: loc, Name: ast.NewName(name)}
	}
	binOp := func(op ast.Identifier, l, r parsed.Expression) parsed.Expression {
		return &parsed.BinOp{Location: loc, Op: ast.NewName(op), Left: l, Right: r}
	}

	whileBody := &parsed.Block{
		Location: loc,
		Decls: []parsed.Declaration{
			&parsed.DStmt{Location: loc, Stmt: &parsed.SExpr{Location: loc, Expr: &parsed.Assign{
				Location: loc,
				Target:   useVar("res"),
				Value:    binOp("*", useVar("res"), useVar("base")),
			}}},
			&parsed.DStmt{Location: loc, Stmt: &parsed.SExpr{Location: loc, Expr: &parsed.Assign{
				Location: loc,
				Target:   useVar("e2"),
				Value:    binOp("-", useVar("e2"), intLit(1)),
			}}},
		},
	}

	powBody := &parsed.Block{
		Location: loc,
		Decls: []parsed.Declaration{
			&parsed.DVar{Location: loc, Mutable: true, Name: ast.NewName("res"), Value: intLit(1)},
			&parsed.DVar{Location: loc, Mutable: true, Name: ast.NewName("e2"), Value: useVar("exp")},
			&parsed.DStmt{Location: loc, Stmt: &parsed.SWhile{
				Location:  loc,
				Condition: binOp(">", useVar("e2"), intLit(0)),
				Body:      whileBody,
			}},
		},
		Result: useVar("res"),
	}

	return []*parsed.Module{{
		Location: loc,
		Name:     "main",
		TopLevels: []parsed.TopLevel{
			&parsed.Oper{
				Location: loc,
				Public:   true,
				Def:      ast.OperatorDef{Assoc: ast.AssocRight, Precedence: 10, Symbol: "**"},
				Name:     ast.NewName("**"),
				Params: []parsed.Param{
					{Location: loc, Name: ast.NewName("base"), Annot: types.NewInt32(loc)},
					{Location: loc, Name: ast.NewName("exp"), Annot: types.NewInt32(loc)},
				},
				Body: powBody,
			},
			&parsed.Func{
				Location: loc,
				Name:     ast.NewName("main"),
				Body: &parsed.Block{
					Location: loc,
					Decls: []parsed.Declaration{
						&parsed.DStmt{Location: loc, Stmt: &parsed.SExpr{
							Location: loc,
							Expr:     binOp("**", intLit(2), intLit(12)),
						}},
					},
				},
			},
		},
	}}
}
