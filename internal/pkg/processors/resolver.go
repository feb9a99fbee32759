package processors

import (
	"fmt"

	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/parsed"
	"github.com/05st/juno/internal/pkg/ast/types"
	"github.com/05st/juno/internal/pkg/common"
	set "github.com/hashicorp/go-set/v3"
	"golang.org/x/exp/slices"
)

// builtinOperators have fixed meaning and never resolve to a
// definition.
var builtinOperators = set.From([]ast.Identifier{
	"+", "-", "*", "/",
	"==", "!=", ">", "<", ">=", "<=",
	"||", "&&",
})

type resolver struct {
	// nameSet holds the qualified name of every top-level across all
	// modules (seeded up front, enabling forward references) plus every
	// local introduced so far under its scope qualification.
	nameSet *set.Set[ast.FullIdentifier]
	// pubMap records the export flag per top-level name.
	pubMap map[ast.FullIdentifier]bool
	// extraSet tracks top-levels seen during traversal; nameSet cannot
	// serve duplicate detection since it is pre-seeded.
	extraSet   *set.Set[ast.FullIdentifier]
	importsMap map[ast.QualifiedIdentifier][]parsed.Import

	curMod        ast.QualifiedIdentifier
	tmpScopeCount uint64
	localScope    []ast.Identifier

	visibleMemo map[ast.QualifiedIdentifier][]ast.QualifiedIdentifier
}

// Resolve rewrites every name in the program to its fully qualified
// definition. The input trees are left untouched.
func Resolve(modules []*parsed.Module) (resolved []*parsed.Module, err error) {
	defer recoverError(&err)

	r := &resolver{
		nameSet:     set.New[ast.FullIdentifier](0),
		pubMap:      map[ast.FullIdentifier]bool{},
		extraSet:    set.New[ast.FullIdentifier](0),
		importsMap:  map[ast.QualifiedIdentifier][]parsed.Import{},
		visibleMemo: map[ast.QualifiedIdentifier][]ast.QualifiedIdentifier{},
	}
	r.seed(modules)
	resolved = common.Map(r.resolveModule, modules)
	return resolved, nil
}

// seed pre-populates the global name set with every top-level of every
// module, so that mutual recursion and forward references resolve
// regardless of source order.
func (r *resolver) seed(modules []*parsed.Module) {
	for _, m := range modules {
		mod := m.FullPath()
		r.importsMap[mod] = m.Imports
		for _, tl := range m.TopLevels {
			switch t := tl.(type) {
			case *parsed.Func:
				r.seedName(mod, t.Name.Name, t.Public)
			case *parsed.Oper:
				r.seedName(mod, t.Name.Name, t.Public)
			case *parsed.TypeDecl:
				r.seedName(mod, t.Name.Name, t.Public)
				for _, c := range t.Constructors {
					// constructors inherit the type's export flag
					r.seedName(mod, c.Name.Name, t.Public)
				}
			case *parsed.Extern:
				r.seedName(mod, t.Name.Name, true)
			}
		}
	}
}

func (r *resolver) seedName(mod ast.QualifiedIdentifier, name ast.Identifier, public bool) {
	full := common.MakeFullIdentifier(mod, name)
	r.nameSet.Insert(full)
	r.pubMap[full] = public
}

func (r *resolver) resolveModule(m *parsed.Module) *parsed.Module {
	r.curMod = m.FullPath()
	r.tmpScopeCount = 0
	r.localScope = nil
	return &parsed.Module{
		Location:  m.Location,
		Path:      m.Path,
		Name:      m.Name,
		Imports:   m.Imports,
		TopLevels: common.Map(r.resolveTopLevel, m.TopLevels),
	}
}

func (r *resolver) resolveTopLevel(tl parsed.TopLevel) parsed.TopLevel {
	switch t := tl.(type) {
	case *parsed.Func:
		name, params, ret, body := r.resolveFn(t.Location, t.Name, t.Params, t.Return, t.Body)
		return &parsed.Func{
			Location: t.Location,
			Public:   t.Public,
			Name:     name,
			Params:   params,
			Return:   ret,
			Body:     body,
		}
	case *parsed.Oper:
		name, params, ret, body := r.resolveFn(t.Location, t.Name, t.Params, t.Return, t.Body)
		return &parsed.Oper{
			Location: t.Location,
			Public:   t.Public,
			Def:      t.Def,
			Name:     name,
			Params:   params,
			Return:   ret,
			Body:     body,
		}
	case *parsed.TypeDecl:
		return &parsed.TypeDecl{
			Location: t.Location,
			Public:   t.Public,
			Name:     ast.NewQualifiedName(r.curMod, t.Name.Name),
			Params:   t.Params,
			Constructors: common.Map(func(c parsed.Constructor) parsed.Constructor {
				return parsed.Constructor{
					Location: c.Location,
					Name:     ast.NewQualifiedName(r.curMod, c.Name.Name),
					Args:     common.Map(r.resolveType, c.Args),
				}
			}, t.Constructors),
		}
	case *parsed.Extern:
		return t
	}
	panic(common.SystemError{Message: "invalid case"})
}

func (r *resolver) resolveFn(
	loc ast.Location, name ast.Name, params []parsed.Param, ret types.Type, body parsed.Expression,
) (ast.Name, []parsed.Param, types.Type, parsed.Expression) {
	full := common.MakeFullIdentifier(r.curMod, name.Name)
	if r.extraSet.Contains(full) {
		panic(common.Error{
			Kind:     common.Redefinition,
			Location: loc,
			Message:  fmt.Sprintf("`%s` is defined more than once", full),
		})
	}
	r.extraSet.Insert(full)

	retResolved := r.resolveTypeOpt(ret)

	var paramsResolved []parsed.Param
	var bodyResolved parsed.Expression
	r.scoped(name.Name, func() {
		paramsResolved = common.Map(func(p parsed.Param) parsed.Param {
			return parsed.Param{
				Location: p.Location,
				Name:     r.declareLocal(p.Name.Name, p.Location),
				Annot:    r.resolveTypeOpt(p.Annot),
			}
		}, params)
		bodyResolved = r.resolveExpression(body)
	})

	return ast.NewQualifiedName(r.curMod, name.Name), paramsResolved, retResolved, bodyResolved
}

// scoped runs action with segment appended to the local scope path and
// restores the path on every exit, including raised errors.
func (r *resolver) scoped(segment ast.Identifier, action func()) {
	r.localScope = append(r.localScope, segment)
	defer func() {
		r.localScope = r.localScope[:len(r.localScope)-1]
	}()
	action()
}

// tmpScope synthesizes a fresh scope segment for an anonymous block:
// `_a`, `_b`, … per module.
func (r *resolver) tmpScope() ast.Identifier {
	segment := ast.Identifier("_" + common.LetterName(r.tmpScopeCount))
	r.tmpScopeCount++
	return segment
}

func (r *resolver) curScope() ast.QualifiedIdentifier {
	q := r.curMod
	for _, segment := range r.localScope {
		q = q.Append(segment)
	}
	return q
}

// declareLocal introduces a binding under the current scope path.
func (r *resolver) declareLocal(name ast.Identifier, loc ast.Location) ast.Name {
	scope := r.curScope()
	full := common.MakeFullIdentifier(scope, name)
	if r.nameSet.Contains(full) {
		panic(common.Error{
			Kind:     common.Redefinition,
			Location: loc,
			Message:  fmt.Sprintf("`%s` is defined more than once", full),
		})
	}
	r.nameSet.Insert(full)
	return ast.NewQualifiedName(scope, name)
}

// resolveName rewrites a use site to the qualified name it refers to.
// Local scopes win innermost-first, then the import graph is consulted.
func (r *resolver) resolveName(n ast.Name, loc ast.Location) ast.Name {
	if n.IsQualified() {
		if !r.nameSet.Contains(n.Full()) {
			panic(common.Error{
				Kind:     common.Undefined,
				Location: loc,
				Message:  fmt.Sprintf("`%s` is not defined", n),
			})
		}
		return n
	}

	for i := len(r.localScope); i >= 0; i-- {
		q := r.curMod
		for _, segment := range r.localScope[:i] {
			q = q.Append(segment)
		}
		if r.nameSet.Contains(common.MakeFullIdentifier(q, n.Name)) {
			return ast.NewQualifiedName(q, n.Name)
		}
	}

	var candidates []ast.QualifiedIdentifier
	for _, p := range r.visibleImports(r.curMod) {
		full := common.MakeFullIdentifier(p, n.Name)
		if r.nameSet.Contains(full) && r.pubMap[full] {
			candidates = append(candidates, p)
		}
	}

	switch len(candidates) {
	case 0:
		panic(common.Error{
			Kind:     common.Undefined,
			Location: loc,
			Message:  fmt.Sprintf("`%s` is not defined", n.Name),
		})
	case 1:
		return ast.NewQualifiedName(candidates[0], n.Name)
	default:
		slices.Sort(candidates)
		panic(common.Error{
			Kind:     common.Ambiguous,
			Location: loc,
			Message:  fmt.Sprintf("`%s` may refer to any of %v", n.Name, candidates),
		})
	}
}

// visibleImports expands the module's imports transitively through
// public re-exports only. Memoized per module; the visited set guards
// against cycles in the public-import subgraph.
func (r *resolver) visibleImports(mod ast.QualifiedIdentifier) []ast.QualifiedIdentifier {
	if cached, ok := r.visibleMemo[mod]; ok {
		return cached
	}

	visited := set.New[ast.QualifiedIdentifier](0)
	visited.Insert(mod)
	var out []ast.QualifiedIdentifier
	var walk func(m ast.QualifiedIdentifier, direct bool)
	walk = func(m ast.QualifiedIdentifier, direct bool) {
		for _, imp := range r.importsMap[m] {
			if !direct && !imp.Public {
				continue
			}
			p := imp.ModuleIdentifier()
			if visited.Contains(p) {
				continue
			}
			visited.Insert(p)
			out = append(out, p)
			walk(p, false)
		}
	}
	walk(mod, true)

	r.visibleMemo[mod] = out
	return out
}

func (r *resolver) resolveTypeOpt(t types.Type) types.Type {
	if t == nil {
		return nil
	}
	return r.resolveType(t)
}

func (r *resolver) resolveType(t types.Type) types.Type {
	switch e := t.(type) {
	case *types.TVar:
		return t
	case *types.TCon:
		name := e.Name
		if name.IsQualified() || !types.IsBaseTypeName(name.Name) {
			name = r.resolveName(name, e.Location)
		}
		return &types.TCon{
			Location: e.Location,
			Name:     name,
			Args:     common.Map(r.resolveType, e.Args),
		}
	case *types.TFunc:
		return &types.TFunc{
			Location: e.Location,
			Params:   common.Map(r.resolveType, e.Params),
			Return:   r.resolveType(e.Return),
		}
	case *types.TPtr:
		return &types.TPtr{Location: e.Location, To: r.resolveType(e.To)}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func (r *resolver) resolveExpression(expr parsed.Expression) parsed.Expression {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *parsed.Lit:
		return e
	case *parsed.Var:
		return &parsed.Var{Location: e.Location, Name: r.resolveName(e.Name, e.Location)}
	case *parsed.Assign:
		return &parsed.Assign{
			Location: e.Location,
			Target:   r.resolveExpression(e.Target),
			Value:    r.resolveExpression(e.Value),
		}
	case *parsed.Block:
		var decls []parsed.Declaration
		var result parsed.Expression
		r.scoped(r.tmpScope(), func() {
			decls = common.Map(r.resolveDeclaration, e.Decls)
			result = r.resolveExpression(e.Result)
		})
		return &parsed.Block{Location: e.Location, Decls: decls, Result: result}
	case *parsed.If:
		return &parsed.If{
			Location:  e.Location,
			Condition: r.resolveExpression(e.Condition),
			Then:      r.resolveExpression(e.Then),
			Else:      r.resolveExpression(e.Else),
		}
	case *parsed.Match:
		return &parsed.Match{
			Location: e.Location,
			Subject:  r.resolveExpression(e.Subject),
			Arms: common.Map(func(arm parsed.MatchArm) parsed.MatchArm {
				// each arm scopes its own pattern bindings, so sibling
				// arms may bind the same name
				resolved := parsed.MatchArm{Location: arm.Location}
				r.scoped(r.tmpScope(), func() {
					resolved.Pattern = r.resolvePattern(arm.Pattern)
					resolved.Body = r.resolveExpression(arm.Body)
				})
				return resolved
			}, e.Arms),
		}
	case *parsed.BinOp:
		op := e.Op
		if op.IsQualified() || !builtinOperators.Contains(op.Name) {
			op = r.resolveName(op, e.Location)
		}
		return &parsed.BinOp{
			Location: e.Location,
			Op:       op,
			Left:     r.resolveExpression(e.Left),
			Right:    r.resolveExpression(e.Right),
		}
	case *parsed.UnOp:
		return &parsed.UnOp{
			Location: e.Location,
			Op:       r.resolveName(e.Op, e.Location),
			Operand:  r.resolveExpression(e.Operand),
		}
	case *parsed.Call:
		return &parsed.Call{
			Location: e.Location,
			Callee:   r.resolveExpression(e.Callee),
			Args:     common.Map(r.resolveExpression, e.Args),
		}
	case *parsed.Deref:
		return &parsed.Deref{Location: e.Location, Operand: r.resolveExpression(e.Operand)}
	case *parsed.Ref:
		return &parsed.Ref{Location: e.Location, Operand: r.resolveExpression(e.Operand)}
	case *parsed.Cast:
		return &parsed.Cast{
			Location: e.Location,
			Target:   r.resolveType(e.Target),
			Operand:  r.resolveExpression(e.Operand),
		}
	case *parsed.Sizeof:
		return &parsed.Sizeof{Location: e.Location, Target: r.resolveType(e.Target)}
	case *parsed.Closure:
		// rejected during inference; the body is never entered
		return e
	}
	panic(common.SystemError{Message: "invalid case"})
}

func (r *resolver) resolveDeclaration(decl parsed.Declaration) parsed.Declaration {
	switch d := decl.(type) {
	case *parsed.DVar:
		annot := r.resolveTypeOpt(d.Annot)
		value := r.resolveExpression(d.Value)
		return &parsed.DVar{
			Location: d.Location,
			Mutable:  d.Mutable,
			Name:     r.declareLocal(d.Name.Name, d.Location),
			Annot:    annot,
			Value:    value,
		}
	case *parsed.DStmt:
		return &parsed.DStmt{Location: d.Location, Stmt: r.resolveStatement(d.Stmt)}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func (r *resolver) resolveStatement(stmt parsed.Statement) parsed.Statement {
	switch s := stmt.(type) {
	case *parsed.SExpr:
		return &parsed.SExpr{Location: s.Location, Expr: r.resolveExpression(s.Expr)}
	case *parsed.SReturn:
		return &parsed.SReturn{Location: s.Location, Value: r.resolveExpression(s.Value)}
	case *parsed.SWhile:
		return &parsed.SWhile{
			Location:  s.Location,
			Condition: r.resolveExpression(s.Condition),
			Body:      r.resolveExpression(s.Body),
		}
	}
	panic(common.SystemError{Message: "invalid case"})
}

func (r *resolver) resolvePattern(pattern parsed.Pattern) parsed.Pattern {
	switch p := pattern.(type) {
	case *parsed.PVar:
		return &parsed.PVar{Location: p.Location, Name: r.declareLocal(p.Name.Name, p.Location)}
	case *parsed.PLit:
		return p
	case *parsed.PWild:
		return p
	case *parsed.PCon:
		return &parsed.PCon{
			Location: p.Location,
			Name:     r.resolveName(p.Name, p.Location),
			Binds: common.Map(func(b ast.Name) ast.Name {
				return r.declareLocal(b.Name, p.Location)
			}, p.Binds),
		}
	}
	panic(common.SystemError{Message: "invalid case"})
}
