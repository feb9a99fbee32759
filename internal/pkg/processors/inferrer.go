package processors

import (
	"fmt"
	"hash/fnv"

	"github.com/benbjohnson/immutable"

	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/parsed"
	"github.com/05st/juno/internal/pkg/ast/typed"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/common"
	set "github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/slices"
)

// Binding associates an in-scope name with its scheme and mutability.
type Binding struct {
	Scheme  types.Scheme
	Mutable bool
}

type identifierHasher struct{}

func (identifierHasher) Hash(key ast.FullIdentifier) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

func (identifierHasher) Equal(a, b ast.FullIdentifier) bool {
	return a == b
}

type inferrer struct {
	// env is persistent: scoped saves the current map value and
	// restores it verbatim on every exit path.
	env        *immutable.Map[ast.FullIdentifier, Binding]
	freshCount uint64
	// topLvlTmps carries placeholder monotypes for top-levels that are
	// not inferred yet, so mutually recursive references resolve.
	topLvlTmps  map[ast.FullIdentifier]types.Type
	mainExists  bool
	constraints []Constraint
}

func newInferrer() *inferrer {
	return &inferrer{
		env:        immutable.NewMap[ast.FullIdentifier, Binding](identifierHasher{}),
		topLvlTmps: map[ast.FullIdentifier]types.Type{},
	}
}

// fresh generates a type variable unique within this run:
// `_a, _b, … _z, _aa, …`.
func (inf *inferrer) fresh(loc ast.Location) *types.TVar {
	v := types.TV("_" + common.LetterName(inf.freshCount))
	inf.freshCount++
	return &types.TVar{Location: loc, V: v}
}

func (inf *inferrer) constrain(left, right types.Type, loc ast.Location) {
	inf.constraints = append(inf.constraints, Constraint{Left: left, Right: right, Location: loc})
}

func (inf *inferrer) scoped(action func()) {
	saved := inf.env
	defer func() {
		inf.env = saved
	}()
	action()
}

func (inf *inferrer) define(name ast.FullIdentifier, b Binding) {
	inf.env = inf.env.Set(name, b)
}

func (inf *inferrer) instantiate(s types.Scheme, loc ast.Location) types.Type {
	if s.Forall == nil || s.Forall.Empty() {
		return s.Type
	}
	su := types.Subst{}
	for _, v := range s.Forall.Slice() {
		su[v] = inf.fresh(loc)
	}
	return su.Apply(s.Type)
}

func (inf *inferrer) lookup(n ast.Name, loc ast.Location) types.Type {
	full := n.Full()
	if t, ok := inf.topLvlTmps[full]; ok {
		return t
	}
	if b, ok := inf.env.Get(full); ok {
		return inf.instantiate(b.Scheme, loc)
	}
	panic(common.SystemError{Message: fmt.Sprintf("name `%s` escaped resolution", full)})
}

// collect is the pre-pass over all top-levels: functions and operators
// get placeholder type variables, constructors and externs get their
// schemes registered up front.
func (inf *inferrer) collect(modules []*parsed.Module) {
	for _, m := range modules {
		mod := m.FullPath()
		for _, tl := range m.TopLevels {
			switch t := tl.(type) {
			case *parsed.Func:
				inf.topLvlTmps[t.Name.Full()] = inf.fresh(t.Location)
				if t.Name.Full() == "main.main" {
					inf.mainExists = true
				}
			case *parsed.Oper:
				inf.topLvlTmps[t.Name.Full()] = inf.fresh(t.Location)
			case *parsed.TypeDecl:
				inf.registerTypeDecl(t)
			case *parsed.Extern:
				ft := &types.TFunc{Location: t.Location, Params: t.Params, Return: t.Return}
				inf.define(common.MakeFullIdentifier(mod, t.Name.Name), Binding{Scheme: types.MonoScheme(ft)})
			}
		}
	}
}

func (inf *inferrer) registerTypeDecl(t *parsed.TypeDecl) {
	params := set.From(common.Map(func(p ast.Identifier) types.TV {
		return types.TV(p)
	}, t.Params))
	args := common.Map(func(p ast.Identifier) types.Type {
		return &types.TVar{Location: t.Location, V: types.TV(p)}
	}, t.Params)
	result := &types.TCon{Location: t.Location, Name: t.Name, Args: args}

	for _, c := range t.Constructors {
		unbound := types.FreeVarsMany(c.Args).Difference(params)
		if !unbound.Empty() {
			vars := unbound.Slice()
			slices.Sort(vars)
			panic(common.Error{
				Kind:     common.UndefinedTypeVariable,
				Location: c.Location,
				Message: fmt.Sprintf(
					"constructor `%s` references type variables %v not bound by `%s`", c.Name, vars, t.Name),
			})
		}
		var ctorType types.Type = result
		if len(c.Args) > 0 {
			ctorType = &types.TFunc{Location: c.Location, Params: c.Args, Return: result}
		}
		inf.define(c.Name.Full(), Binding{Scheme: types.MonoScheme(ctorType)})
	}
}

func (inf *inferrer) inferModule(m *parsed.Module) *typed.Module {
	return &typed.Module{
		Location:  m.Location,
		Name:      m.FullPath(),
		TopLevels: common.Map(inf.inferTopLevel, m.TopLevels),
	}
}

func (inf *inferrer) inferTopLevel(tl parsed.TopLevel) typed.TopLevel {
	switch t := tl.(type) {
	case *parsed.Func:
		return inf.inferFn(t.Location, t.Public, nil, t.Name, t.Params, t.Return, t.Body)
	case *parsed.Oper:
		def := t.Def
		return inf.inferFn(t.Location, t.Public, &def, t.Name, t.Params, t.Return, t.Body)
	case *parsed.TypeDecl:
		return &typed.TypeDecl{
			Location: t.Location,
			Public:   t.Public,
			Name:     t.Name,
			Params:   t.Params,
			Constructors: common.Map(func(c parsed.Constructor) typed.Constructor {
				b, _ := inf.env.Get(c.Name.Full())
				return typed.Constructor{
					Location: c.Location,
					Name:     c.Name,
					Args:     c.Args,
					Type:     b.Scheme.Type,
				}
			}, t.Constructors),
		}
	case *parsed.Extern:
		return &typed.Extern{
			Location: t.Location,
			Name:     t.Name,
			Type:     &types.TFunc{Location: t.Location, Params: t.Params, Return: t.Return},
		}
	}
	panic(common.SystemError{Message: "invalid case"})
}

// inferFn infers one function or operator definition. Constraints
// emitted while walking the body are solved locally first, so the
// definition's monotype is as concrete as its body alone makes it;
// annotation and return-agreement constraints join the global log and
// are settled by the final solve.
func (inf *inferrer) inferFn(
	loc ast.Location,
	public bool,
	op *ast.OperatorDef,
	name ast.Name,
	params []parsed.Param,
	retAnnot types.Type,
	body parsed.Expression,
) *typed.Func {
	mark := len(inf.constraints)

	paramVars := make([]types.Type, len(params))
	var typedBody typed.Expression
	inf.scoped(func() {
		for i, p := range params {
			a := inf.fresh(p.Location)
			paramVars[i] = a
			inf.define(p.Name.Full(), Binding{Scheme: types.MonoScheme(a)})
		}
		typedBody = inf.inferExpression(body)
	})

	su := solve(slices.Clone(inf.constraints[mark:]))

	fnType := su.Apply(&types.TFunc{
		Location: loc,
		Params:   paramVars,
		Return:   typedBody.GetType(),
	}).(*types.TFunc)

	if retAnnot != nil {
		inf.constrain(fnType.Return, retAnnot, loc)
	}
	for i, p := range params {
		if p.Annot != nil {
			inf.constrain(su.Apply(paramVars[i]), p.Annot, p.Location)
		}
	}

	// every return statement must agree with the body's type
	for _, ret := range collectReturns(typedBody) {
		inf.constrain(fnType.Return, su.Apply(ret.Type), ret.Location)
	}

	full := name.Full()
	if tmp, ok := inf.topLvlTmps[full]; ok {
		inf.constrain(tmp, fnType, loc)
		delete(inf.topLvlTmps, full)
	}
	inf.define(full, Binding{Scheme: types.MonoScheme(fnType)})

	typedParams := make([]typed.Param, len(params))
	for i, p := range params {
		typedParams[i] = typed.Param{Location: p.Location, Name: p.Name, Type: fnType.Params[i]}
	}

	return &typed.Func{
		Location: loc,
		Public:   public,
		Op:       op,
		Name:     name,
		Params:   typedParams,
		Type:     fnType,
		Body:     typedBody,
	}
}

func litType(v ast.ConstValue, loc ast.Location) types.Type {
	switch v.(type) {
	case ast.CInt:
		return types.NewInt32(loc)
	case ast.CFloat:
		return types.NewFloat64(loc)
	case ast.CString:
		return types.NewStr(loc)
	case ast.CChar:
		return types.NewChar(loc)
	case ast.CBool:
		return types.NewBool(loc)
	case ast.CUnit:
		return types.NewUnit(loc)
	}
	panic(common.SystemError{Message: "invalid case"})
}

var arithmeticOperators = set.From([]ast.Identifier{"+", "-", "*", "/"})
var comparisonOperators = set.From([]ast.Identifier{"==", "!=", ">", "<", ">=", "<="})
var booleanOperators = set.From([]ast.Identifier{"||", "&&"})

func (inf *inferrer) inferExpression(expr parsed.Expression) typed.Expression {
	switch e := expr.(type) {
	case *parsed.Lit:
		return &typed.Lit{Location: e.Location, Type: litType(e.Value, e.Location), Value: e.Value}

	case *parsed.Var:
		return &typed.Var{Location: e.Location, Type: inf.lookup(e.Name, e.Location), Name: e.Name}

	case *parsed.Assign:
		target := inf.inferExpression(e.Target)
		value := inf.inferExpression(e.Value)
		inf.checkAssignable(target)
		inf.constrain(target.GetType(), value.GetType(), e.Location)
		return &typed.Assign{Location: e.Location, Type: target.GetType(), Target: target, Value: value}

	case *parsed.Block:
		var decls []typed.Declaration
		var result typed.Expression
		inf.scoped(func() {
			decls = common.Map(inf.inferDeclaration, e.Decls)
			if e.Result != nil {
				result = inf.inferExpression(e.Result)
			}
		})
		var blockType types.Type
		if result != nil {
			blockType = result.GetType()
		} else {
			blockType = types.NewUnit(e.Location)
		}
		return &typed.Block{Location: e.Location, Type: blockType, Decls: decls, Result: result}

	case *parsed.If:
		cond := inf.inferExpression(e.Condition)
		then := inf.inferExpression(e.Then)
		els := inf.inferExpression(e.Else)
		inf.constrain(cond.GetType(), types.NewBool(e.Condition.GetLocation()), e.Location)
		inf.constrain(then.GetType(), els.GetType(), e.Location)
		return &typed.If{Location: e.Location, Type: then.GetType(), Condition: cond, Then: then, Else: els}

	case *parsed.Match:
		subject := inf.inferExpression(e.Subject)
		if len(e.Arms) == 0 {
			panic(common.Error{
				Kind:     common.EmptyMatch,
				Location: e.Location,
				Message:  "match expression has no arms",
			})
		}
		var matchType types.Type
		arms := common.Map(func(arm parsed.MatchArm) typed.MatchArm {
			out := typed.MatchArm{Location: arm.Location}
			inf.scoped(func() {
				out.Pattern = inf.inferPattern(arm.Pattern)
				inf.constrain(subject.GetType(), out.Pattern.GetType(), arm.Location)
				out.Body = inf.inferExpression(arm.Body)
			})
			if matchType == nil {
				matchType = out.Body.GetType()
			} else {
				inf.constrain(matchType, out.Body.GetType(), arm.Location)
			}
			return out
		}, e.Arms)
		return &typed.Match{Location: e.Location, Type: matchType, Subject: subject, Arms: arms}

	case *parsed.BinOp:
		left := inf.inferExpression(e.Left)
		right := inf.inferExpression(e.Right)
		if !e.Op.IsQualified() {
			switch {
			case arithmeticOperators.Contains(e.Op.Name):
				// operands are merely kept equal; the result follows the
				// left operand
				inf.constrain(left.GetType(), right.GetType(), e.Location)
				return &typed.BinOp{Location: e.Location, Type: left.GetType(), Op: e.Op, Left: left, Right: right}
			case comparisonOperators.Contains(e.Op.Name):
				inf.constrain(left.GetType(), right.GetType(), e.Location)
				return &typed.BinOp{Location: e.Location, Type: types.NewBool(e.Location), Op: e.Op, Left: left, Right: right}
			case booleanOperators.Contains(e.Op.Name):
				inf.constrain(left.GetType(), types.NewBool(e.Left.GetLocation()), e.Location)
				inf.constrain(right.GetType(), types.NewBool(e.Right.GetLocation()), e.Location)
				return &typed.BinOp{Location: e.Location, Type: types.NewBool(e.Location), Op: e.Op, Left: left, Right: right}
			}
		}
		a := inf.fresh(e.Location)
		opType := inf.lookup(e.Op, e.Location)
		inf.constrain(opType, &types.TFunc{
			Location: e.Location,
			Params:   []types.Type{left.GetType(), right.GetType()},
			Return:   a,
		}, e.Location)
		return &typed.BinOp{Location: e.Location, Type: a, Op: e.Op, Left: left, Right: right}

	case *parsed.UnOp:
		operand := inf.inferExpression(e.Operand)
		a := inf.fresh(e.Location)
		opType := inf.lookup(e.Op, e.Location)
		inf.constrain(opType, &types.TFunc{
			Location: e.Location,
			Params:   []types.Type{operand.GetType()},
			Return:   a,
		}, e.Location)
		return &typed.UnOp{Location: e.Location, Type: a, Op: e.Op, Operand: operand}

	case *parsed.Call:
		callee := inf.inferExpression(e.Callee)
		args := common.Map(inf.inferExpression, e.Args)
		a := inf.fresh(e.Location)
		inf.constrain(callee.GetType(), &types.TFunc{
			Location: e.Location,
			Params:   common.Map(typed.Expression.GetType, args),
			Return:   a,
		}, e.Location)
		return &typed.Call{Location: e.Location, Type: a, Callee: callee, Args: args}

	case *parsed.Deref:
		operand := inf.inferExpression(e.Operand)
		a := inf.fresh(e.Location)
		inf.constrain(operand.GetType(), &types.TPtr{Location: e.Location, To: a}, e.Location)
		return &typed.Deref{Location: e.Location, Type: a, Operand: operand}

	case *parsed.Ref:
		if _, ok := e.Operand.(*parsed.Var); !ok {
			panic(common.Error{
				Kind:     common.NonReferencable,
				Location: e.Location,
				Message:  "only variables can be referenced",
			})
		}
		operand := inf.inferExpression(e.Operand)
		return &typed.Ref{
			Location: e.Location,
			Type:     &types.TPtr{Location: e.Location, To: operand.GetType()},
			Operand:  operand,
		}

	case *parsed.Cast:
		operand := inf.inferExpression(e.Operand)
		return &typed.Cast{Location: e.Location, Type: e.Target, Operand: operand}

	case *parsed.Sizeof:
		return &typed.Sizeof{Location: e.Location, Type: types.NewInt32(e.Location), Target: e.Target}

	case *parsed.Closure:
		panic(common.Error{
			Kind:     common.NotImplemented,
			Location: e.Location,
			Message:  "closures are not implemented",
		})
	}
	panic(common.SystemError{Message: "invalid case"})
}

// checkAssignable enforces that an assignment target is a mutable
// variable or a dereference. Mutability of a pointee is not tracked.
func (inf *inferrer) checkAssignable(target typed.Expression) {
	switch t := target.(type) {
	case *typed.Var:
		if b, ok := inf.env.Get(t.Name.Full()); ok {
			if b.Mutable {
				return
			}
		}
		panic(common.Error{
			Kind:     common.ImmutableAssign,
			Location: t.Location,
			Message:  fmt.Sprintf("`%s` is not mutable", t.Name.Name),
		})
	case *typed.Deref:
		return
	}
	panic(common.Error{
		Kind:     common.NonLValue,
		Location: target.GetLocation(),
		Message:  "left side of assignment is not an lvalue",
	})
}

func (inf *inferrer) inferDeclaration(decl parsed.Declaration) typed.Declaration {
	switch d := decl.(type) {
	case *parsed.DVar:
		value := inf.inferExpression(d.Value)
		if d.Annot != nil {
			inf.constrain(value.GetType(), d.Annot, d.Location)
		}
		inf.define(d.Name.Full(), Binding{
			Scheme:  types.MonoScheme(value.GetType()),
			Mutable: d.Mutable,
		})
		return &typed.DVar{
			Location: d.Location,
			Mutable:  d.Mutable,
			Name:     d.Name,
			Type:     value.GetType(),
			Value:    value,
		}
	case *parsed.DStmt:
		return &typed.DStmt{Location: d.Location, Stmt: inf.inferStatement(d.Stmt)}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func (inf *inferrer) inferStatement(stmt parsed.Statement) typed.Statement {
	switch s := stmt.(type) {
	case *parsed.SExpr:
		return &typed.SExpr{Location: s.Location, Expr: inf.inferExpression(s.Expr)}
	case *parsed.SReturn:
		out := &typed.SReturn{Location: s.Location, Type: types.NewUnit(s.Location)}
		if s.Value != nil {
			out.Value = inf.inferExpression(s.Value)
			out.Type = out.Value.GetType()
		}
		return out
	case *parsed.SWhile:
		cond := inf.inferExpression(s.Condition)
		inf.constrain(cond.GetType(), types.NewBool(s.Condition.GetLocation()), s.Location)
		body := inf.inferExpression(s.Body)
		return &typed.SWhile{Location: s.Location, Condition: cond, Body: body}
	}
	panic(common.SystemError{Message: "invalid case"})
}

// inferPattern types a pattern and inserts its bindings into the
// current (scoped) environment as immutable monotypes.
func (inf *inferrer) inferPattern(pattern parsed.Pattern) typed.Pattern {
	switch p := pattern.(type) {
	case *parsed.PVar:
		a := inf.fresh(p.Location)
		inf.define(p.Name.Full(), Binding{Scheme: types.MonoScheme(a)})
		return &typed.PVar{Location: p.Location, Type: a, Name: p.Name}
	case *parsed.PLit:
		return &typed.PLit{Location: p.Location, Type: litType(p.Value, p.Location), Value: p.Value}
	case *parsed.PWild:
		return &typed.PWild{Location: p.Location, Type: inf.fresh(p.Location)}
	case *parsed.PCon:
		ctorType := inf.lookup(p.Name, p.Location)
		binds := make([]typed.PConBind, len(p.Binds))
		argVars := make([]types.Type, len(p.Binds))
		for i, b := range p.Binds {
			a := inf.fresh(p.Location)
			inf.define(b.Full(), Binding{Scheme: types.MonoScheme(a)})
			binds[i] = typed.PConBind{Location: p.Location, Name: b, Type: a}
			argVars[i] = a
		}
		result := inf.fresh(p.Location)
		if len(argVars) == 0 {
			inf.constrain(result, ctorType, p.Location)
		} else {
			inf.constrain(&types.TFunc{
				Location: p.Location,
				Params:   argVars,
				Return:   result,
			}, ctorType, p.Location)
		}
		return &typed.PCon{Location: p.Location, Type: result, Name: p.Name, Binds: binds}
	}
	panic(common.SystemError{Message: "invalid case"})
}

// collectReturns gathers every return statement in a typed body.
func collectReturns(expr typed.Expression) []*typed.SReturn {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *typed.Assign:
		return append(collectReturns(e.Target), collectReturns(e.Value)...)
	case *typed.Block:
		out := common.ConcatMap(collectDeclarationReturns, e.Decls)
		return append(out, collectReturns(e.Result)...)
	case *typed.If:
		out := collectReturns(e.Condition)
		out = append(out, collectReturns(e.Then)...)
		return append(out, collectReturns(e.Else)...)
	case *typed.Match:
		out := collectReturns(e.Subject)
		return append(out, common.ConcatMap(func(arm typed.MatchArm) []*typed.SReturn {
			return collectReturns(arm.Body)
		}, e.Arms)...)
	case *typed.BinOp:
		return append(collectReturns(e.Left), collectReturns(e.Right)...)
	case *typed.UnOp:
		return collectReturns(e.Operand)
	case *typed.Call:
		return append(collectReturns(e.Callee), common.ConcatMap(collectReturns, e.Args)...)
	case *typed.Deref:
		return collectReturns(e.Operand)
	case *typed.Ref:
		return collectReturns(e.Operand)
	case *typed.Cast:
		return collectReturns(e.Operand)
	}
	return nil
}

func collectDeclarationReturns(decl typed.Declaration) []*typed.SReturn {
	switch d := decl.(type) {
	case *typed.DVar:
		return collectReturns(d.Value)
	case *typed.DStmt:
		return collectStatementReturns(d.Stmt)
	}
	return nil
}

func collectStatementReturns(stmt typed.Statement) []*typed.SReturn {
	switch s := stmt.(type) {
	case *typed.SExpr:
		return collectReturns(s.Expr)
	case *typed.SReturn:
		return append([]*typed.SReturn{s}, collectReturns(s.Value)...)
	case *typed.SWhile:
		return append(collectReturns(s.Condition), collectReturns(s.Body)...)
	}
	return nil
}
