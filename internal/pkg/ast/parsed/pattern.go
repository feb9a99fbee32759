package parsed

import (
	"github.com/05st/juno/internal/pkg/ast"
)

type Pattern interface {
	GetLocation() ast.Location
	_pattern()
}

type PVar struct {
	Location ast.Location
	Name     ast.Name
}

func (*PVar) _pattern() {}

func (p *PVar) GetLocation() ast.Location {
	return p.Location
}

type PLit struct {
	Location ast.Location
	Value    ast.ConstValue
}

func (*PLit) _pattern() {}

func (p *PLit) GetLocation() ast.Location {
	return p.Location
}

type PWild struct {
	Location ast.Location
}

func (*PWild) _pattern() {}

func (p *PWild) GetLocation() ast.Location {
	return p.Location
}

// PCon binds plain names to the constructor's fields; nested patterns
// are not supported.
type PCon struct {
	Location ast.Location
	Name     ast.Name
	Binds    []ast.Name
}

func (*PCon) _pattern() {}

func (p *PCon) GetLocation() ast.Location {
	return p.Location
}
