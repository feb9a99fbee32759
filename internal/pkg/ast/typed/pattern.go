package typed

import (
	"github.com/05st/juno/internal/pkg/ast"
	"github.com/05st/juno/internal/pkg/ast/types"
)

type Pattern interface {
	GetLocation() ast.Location
	GetType() types.Type
	_pattern()
}

type PVar struct {
	Location ast.Location
	Type     types.Type
	Name     ast.Name
}

func (*PVar) _pattern() {}

func (p *PVar) GetLocation() ast.Location {
	return p.Location
}

func (p *PVar) GetType() types.Type {
	return p.Type
}

type PLit struct {
	Location ast.Location
	Type     types.Type
	Value    ast.ConstValue
}

func (*PLit) _pattern() {}

func (p *PLit) GetLocation() ast.Location {
	return p.Location
}

func (p *PLit) GetType() types.Type {
	return p.Type
}

type PWild struct {
	Location ast.Location
	Type     types.Type
}

func (*PWild) _pattern() {}

func (p *PWild) GetLocation() ast.Location {
	return p.Location
}

func (p *PWild) GetType() types.Type {
	return p.Type
}

type PConBind struct {
	Location ast.Location
	Name     ast.Name
	Type     types.Type
}

type PCon struct {
	Location ast.Location
	Type     types.Type
	Name     ast.Name
	Binds    []PConBind
}

func (*PCon) _pattern() {}

func (p *PCon) GetLocation() ast.Location {
	return p.Location
}

func (p *PCon) GetType() types.Type {
	return p.Type
}
