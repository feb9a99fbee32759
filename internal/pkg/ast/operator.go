package ast

type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
	AssocNone
	AssocPrefix
	AssocPostfix
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "infixl"
	case AssocRight:
		return "infixr"
	case AssocNone:
		return "infix"
	case AssocPrefix:
		return "prefix"
	case AssocPostfix:
		return "postfix"
	}
	return "?"
}

// OperatorDef describes a user-defined operator. Precedence is already
// applied by the parser; the analysis passes keep the definition around
// for diagnostics and for the code generator.
type OperatorDef struct {
	Assoc      Associativity
	Precedence uint32
	Symbol     Identifier
}
