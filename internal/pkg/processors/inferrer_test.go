package processors

import (
	"testing"

	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/parsed"
	"github.com/05st/juno/internal/pkg/ast/typed"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/common"
)

func deref(e parsed.Expression) parsed.Expression {
	return &parsed.Deref{Location: testLoc, Operand: e}
}

func refOf(e parsed.Expression) parsed.Expression {
	return &parsed.Ref{Location: testLoc, Operand: e}
}

func ptrTo(t types.Type) types.Type {
	return &types.TPtr{Location: testLoc, To: t}
}

// module main;
// op infixr 10 ** (base: i32, exp: i32) { mut res := 1; mut e2 := exp;
//     while e2 > 0 { res = res * base; e2 = e2 - 1; }; res };
// fn main() { 2 ** 12; };
func TestPowerOperator(t *testing.T) {
	whileBody := block([]parsed.Declaration{
		dstmt(sexpr(assign(varOf("res"), binop("*", varOf("res"), varOf("base"))))),
		dstmt(sexpr(assign(varOf("e2"), binop("-", varOf("e2"), intLit(1))))),
	}, nil)

	pow := &parsed.Oper{
		Location: testLoc,
		Public:   true,
		Def:      ast.OperatorDef{Assoc: ast.AssocRight, Precedence: 10, Symbol: "**"},
		Name:     ast.NewName("**"),
		Params: []parsed.Param{
			param("base", types.NewInt32(testLoc)),
			param("exp", types.NewInt32(testLoc)),
		},
		Body: block([]parsed.Declaration{
			dvar(true, "res", intLit(1)),
			dvar(true, "e2", varOf("exp")),
			dstmt(swhile(binop(">", varOf("e2"), intLit(0)), whileBody)),
		}, varOf("res")),
	}

	typedModules := analyze(t, module("main",
		pow,
		function("main", nil, nil, block([]parsed.Declaration{
			dstmt(sexpr(binop("**", intLit(2), intLit(12)))),
		}, nil)),
	))

	def := findFunc(t, typedModules, "main.**")
	want := fn([]types.Type{types.NewInt32(testLoc), types.NewInt32(testLoc)}, types.NewInt32(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}

	body := def.Body.(*typed.Block)
	for i, name := range []ast.Identifier{"res", "e2"} {
		decl := body.Decls[i].(*typed.DVar)
		if !decl.Mutable {
			t.Errorf("expected `%s` to be mutable", name)
		}
		if !decl.Type.EqualsTo(types.NewInt32(testLoc)) {
			t.Errorf("expected `%s` to be i32, got %v", name, decl.Type)
		}
	}
}

// fn f() { x := 1; x = 2; };
func TestImmutableAssign(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", nil, nil, block([]parsed.Declaration{
			dvar(false, "x", intLit(1)),
			dstmt(sexpr(assign(varOf("x"), intLit(2)))),
		}, nil)),
	))
	if kind != common.ImmutableAssign {
		t.Fatalf("expected ImmutableAssign, got %v", kind)
	}
}

// fn f() { if true 1 else false; };
func TestIfBranchMismatch(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", nil, nil, ifExpr(boolLit(true), intLit(1), boolLit(false))),
	))
	if kind != common.Mismatch {
		t.Fatalf("expected Mismatch, got %v", kind)
	}
}

// type Box<T> = Mk(U);
func TestConstructorUnboundTypeVariable(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		typeDecl("box", []ast.Identifier{"t"}, ctor("mk", &types.TVar{Location: testLoc, V: "u"})),
	))
	if kind != common.UndefinedTypeVariable {
		t.Fatalf("expected UndefinedTypeVariable, got %v", kind)
	}
}

// fn even(n) { if n == 0 true else odd(n - 1) };
// fn odd(n) { if n == 0 false else even(n - 1) };
func TestMutualRecursion(t *testing.T) {
	even := function("even", []parsed.Param{param("n", nil)}, nil,
		ifExpr(binop("==", varOf("n"), intLit(0)),
			boolLit(true),
			call(varOf("odd"), binop("-", varOf("n"), intLit(1)))))
	odd := function("odd", []parsed.Param{param("n", nil)}, nil,
		ifExpr(binop("==", varOf("n"), intLit(0)),
			boolLit(false),
			call(varOf("even"), binop("-", varOf("n"), intLit(1)))))

	want := fn([]types.Type{types.NewInt32(testLoc)}, types.NewBool(testLoc))

	// the pair must type-check identically in either source order
	orders := [][]parsed.TopLevel{{even, odd}, {odd, even}}
	for _, order := range orders {
		typedModules := analyze(t, module("main", order...))
		for _, name := range []ast.FullIdentifier{"main.even", "main.odd"} {
			def := findFunc(t, typedModules, name)
			if !def.Type.EqualsTo(want) {
				t.Errorf("expected %s : %v, got %v", name, want, def.Type)
			}
		}
	}
}

// fn f(x) { *x = x; };
func TestOccursCheck(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", []parsed.Param{param("x", nil)}, nil, block([]parsed.Declaration{
			dstmt(sexpr(assign(deref(varOf("x")), varOf("x")))),
		}, nil)),
	))
	if kind != common.InfiniteType {
		t.Fatalf("expected InfiniteType, got %v", kind)
	}
}

func TestReturnAgreement(t *testing.T) {
	body := func(result parsed.Expression) parsed.Expression {
		return block([]parsed.Declaration{
			dstmt(sexpr(ifExpr(varOf("c"),
				block([]parsed.Declaration{dstmt(sret(intLit(1)))}, nil),
				block(nil, nil)))),
		}, result)
	}

	typedModules := analyze(t, module("main",
		function("f", []parsed.Param{param("c", types.NewBool(testLoc))}, nil, body(intLit(2))),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn([]types.Type{types.NewBool(testLoc)}, types.NewInt32(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}

	kind := analyzeErrKind(t, module("main",
		function("f", []parsed.Param{param("c", types.NewBool(testLoc))}, nil, body(strLit("two"))),
	))
	if kind != common.Mismatch {
		t.Fatalf("expected Mismatch, got %v", kind)
	}
}

func TestMatchConstructorPatterns(t *testing.T) {
	typedModules := analyze(t, module("main",
		typeDecl("option", nil, ctor("some", types.NewInt32(testLoc)), ctor("none")),
		function("f", []parsed.Param{param("o", nil)}, nil, match(varOf("o"),
			arm(pcon("some", "x"), binop("+", varOf("x"), intLit(1))),
			arm(pcon("none"), intLit(0)),
		)),
	))

	def := findFunc(t, typedModules, "main.f")
	option := &types.TCon{Location: testLoc, Name: ast.NewQualifiedName("main", "option")}
	want := fn([]types.Type{option}, types.NewInt32(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}

	arm0 := def.Body.(*typed.Match).Arms[0]
	bind := arm0.Pattern.(*typed.PCon).Binds[0]
	if !bind.Type.EqualsTo(types.NewInt32(testLoc)) {
		t.Errorf("expected bound `x` to be i32, got %v", bind.Type)
	}
}

func TestMatchLiteralAndWildcardPatterns(t *testing.T) {
	typedModules := analyze(t, module("main",
		function("f", []parsed.Param{param("n", nil)}, nil, match(varOf("n"),
			arm(&parsed.PLit{Location: testLoc, Value: ast.CInt{Value: 0}}, boolLit(true)),
			arm(&parsed.PVar{Location: testLoc, Name: ast.NewName("m")}, binop("==", varOf("m"), intLit(1))),
			arm(&parsed.PWild{Location: testLoc}, boolLit(false)),
		)),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn([]types.Type{types.NewInt32(testLoc)}, types.NewBool(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestEmptyMatch(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", []parsed.Param{param("n", nil)}, nil, match(varOf("n"))),
	))
	if kind != common.EmptyMatch {
		t.Fatalf("expected EmptyMatch, got %v", kind)
	}
}

func TestAssignNonLValue(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", nil, nil, block([]parsed.Declaration{
			dstmt(sexpr(assign(intLit(1), intLit(2)))),
		}, nil)),
	))
	if kind != common.NonLValue {
		t.Fatalf("expected NonLValue, got %v", kind)
	}
}

// assignment through a dereference is allowed regardless of pointee
// mutability
func TestAssignThroughDeref(t *testing.T) {
	typedModules := analyze(t, module("main",
		function("f", []parsed.Param{param("p", ptrTo(types.NewInt32(testLoc)))}, nil, block([]parsed.Declaration{
			dstmt(sexpr(assign(deref(varOf("p")), intLit(5)))),
		}, nil)),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn([]types.Type{ptrTo(types.NewInt32(testLoc))}, types.NewUnit(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestReferenceVariable(t *testing.T) {
	typedModules := analyze(t, module("main",
		function("f", []parsed.Param{param("x", types.NewInt32(testLoc))}, nil, refOf(varOf("x"))),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn([]types.Type{types.NewInt32(testLoc)}, ptrTo(types.NewInt32(testLoc)))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestReferenceNonVariable(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", nil, nil, refOf(intLit(1))),
	))
	if kind != common.NonReferencable {
		t.Fatalf("expected NonReferencable, got %v", kind)
	}
}

func TestDereference(t *testing.T) {
	typedModules := analyze(t, module("main",
		function("f", []parsed.Param{param("p", ptrTo(types.NewInt32(testLoc)))}, nil, deref(varOf("p"))),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn([]types.Type{ptrTo(types.NewInt32(testLoc))}, types.NewInt32(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestCast(t *testing.T) {
	typedModules := analyze(t, module("main",
		function("f", []parsed.Param{param("x", types.NewInt32(testLoc))}, nil, &parsed.Cast{
			Location: testLoc,
			Target:   types.NewFloat64(testLoc),
			Operand:  varOf("x"),
		}),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn([]types.Type{types.NewInt32(testLoc)}, types.NewFloat64(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestSizeof(t *testing.T) {
	typedModules := analyze(t, module("main",
		function("f", nil, nil, &parsed.Sizeof{Location: testLoc, Target: types.NewFloat64(testLoc)}),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn(nil, types.NewInt32(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestClosureNotImplemented(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", nil, nil, &parsed.Closure{
			Location: testLoc,
			Params:   []parsed.Param{param("x", nil)},
			Body:     varOf("x"),
		}),
	))
	if kind != common.NotImplemented {
		t.Fatalf("expected NotImplemented, got %v", kind)
	}
}

func TestExternCall(t *testing.T) {
	typedModules := analyze(t, module("main",
		&parsed.Extern{
			Location: testLoc,
			Name:     ast.NewName("puts"),
			Params:   []types.Type{types.NewStr(testLoc)},
			Return:   types.NewInt32(testLoc),
		},
		function("f", nil, nil, call(varOf("puts"), strLit("hi"))),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn(nil, types.NewInt32(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestAnnotatedReturnMismatch(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", nil, types.NewBool(testLoc), intLit(1)),
	))
	if kind != common.Mismatch {
		t.Fatalf("expected Mismatch, got %v", kind)
	}
}

func TestWhileConditionMustBeBool(t *testing.T) {
	kind := analyzeErrKind(t, module("main",
		function("f", nil, nil, block([]parsed.Declaration{
			dstmt(swhile(intLit(1), block(nil, nil))),
		}, nil)),
	))
	if kind != common.Mismatch {
		t.Fatalf("expected Mismatch, got %v", kind)
	}
}

func TestBooleanOperators(t *testing.T) {
	typedModules := analyze(t, module("main",
		function("f", []parsed.Param{param("a", nil), param("b", nil)}, nil,
			binop("&&", varOf("a"), binop("||", varOf("b"), boolLit(false)))),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn([]types.Type{types.NewBool(testLoc), types.NewBool(testLoc)}, types.NewBool(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestUnaryOperator(t *testing.T) {
	neg := &parsed.Oper{
		Location: testLoc,
		Public:   true,
		Def:      ast.OperatorDef{Assoc: ast.AssocPrefix, Precedence: 20, Symbol: "!"},
		Name:     ast.NewName("!"),
		Params:   []parsed.Param{param("b", types.NewBool(testLoc))},
		Body:     ifExpr(varOf("b"), boolLit(false), boolLit(true)),
	}
	typedModules := analyze(t, module("main",
		neg,
		function("f", nil, nil, &parsed.UnOp{
			Location: testLoc,
			Op:       ast.NewName("!"),
			Operand:  boolLit(true),
		}),
	))
	def := findFunc(t, typedModules, "main.f")
	want := fn(nil, types.NewBool(testLoc))
	if !def.Type.EqualsTo(want) {
		t.Fatalf("expected %v, got %v", want, def.Type)
	}
}

func TestMainDetection(t *testing.T) {
	_, mainExists, err := Analyze([]*parsed.Module{module("main",
		function("main", nil, nil, intLit(0)),
	)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mainExists {
		t.Error("expected main to be detected")
	}

	_, mainExists, err = Analyze([]*parsed.Module{module("lib",
		function("main", nil, nil, intLit(0)),
	)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mainExists {
		t.Error("`lib.main` must not count as the entry point")
	}
}

// the environment must be restored verbatim after a definition's body;
// only the definition's own scheme may remain
func TestEnvironmentRestoredAfterDefinition(t *testing.T) {
	resolved, err := Resolve([]*parsed.Module{module("main",
		function("f", []parsed.Param{param("x", nil)}, nil, block([]parsed.Declaration{
			dvar(true, "y", varOf("x")),
		}, varOf("y"))),
	)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inf := newInferrer()
	inf.collect(resolved)
	before := inf.env.Len()

	inf.inferModule(resolved[0])

	if inf.env.Len() != before+1 {
		t.Fatalf("expected exactly the definition's scheme to be added, env grew by %d", inf.env.Len()-before)
	}
	if _, ok := inf.env.Get("main.f.x"); ok {
		t.Error("parameter binding leaked out of the body scope")
	}
	if _, ok := inf.env.Get("main.f._a.y"); ok {
		t.Error("local binding leaked out of the body scope")
	}
	if _, ok := inf.env.Get("main.f"); !ok {
		t.Error("definition scheme missing after inference")
	}
}

func TestPlaceholderReplacedByScheme(t *testing.T) {
	resolved, err := Resolve([]*parsed.Module{module("main",
		function("f", nil, nil, intLit(1)),
	)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inf := newInferrer()
	inf.collect(resolved)
	if _, ok := inf.topLvlTmps["main.f"]; !ok {
		t.Fatal("expected a placeholder for main.f after the pre-pass")
	}

	inf.inferModule(resolved[0])
	if _, ok := inf.topLvlTmps["main.f"]; ok {
		t.Error("placeholder must be removed once the definition is finalized")
	}
}
