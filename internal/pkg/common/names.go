package common

import (
	"github.com/05st/juno/internal/pkg/ast"
)

func MakeFullIdentifier(moduleName ast.QualifiedIdentifier, name ast.Identifier) ast.FullIdentifier {
	return ast.NewQualifiedName(moduleName, name).Full()
}

// LetterName converts a counter to a short stable name:
// 0 → "a", 25 → "z", 26 → "aa", 27 → "ab". Fresh type variables and
// synthesized scope segments both build on it, prefixed with "_".
func LetterName(n uint64) string {
	var buf []byte
	for {
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n /= 26
		if n == 0 {
			break
		}
		n--
	}
	return string(buf)
}
