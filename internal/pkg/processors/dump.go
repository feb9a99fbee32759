package processors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/05st/juno/internal/pkg/ast/typed"
)

var dumpConfig = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

// DumpModules writes one markdown file per module with the solved type
// of every function and operator and a dump of its typed tree. Meant for debugging
// the analysis output; the driver enables it with -dump.
func DumpModules(dir string, modules []*typed.Module) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	for _, m := range modules {
		sb := strings.Builder{}
		sb.WriteString(fmt.Sprintf("Module `%s`\n---\n", m.Name))
		sb.WriteString("\n| Definition | Type |\n|---|---|\n")
		for _, tl := range m.TopLevels {
			if def, ok := tl.(*typed.Func); ok {
				sb.WriteString(fmt.Sprintf("| `%s` | `%v` |\n", def.Name, def.Type))
			}
		}
		sb.WriteString("\nTyped tree\n---\n\n```\n")
		for _, tl := range m.TopLevels {
			sb.WriteString(dumpConfig.Sdump(tl))
		}
		sb.WriteString("```\n")

		fp := filepath.Join(dir, fmt.Sprintf("%s.md", m.Name))
		if err := os.WriteFile(fp, []byte(sb.String()), 0666); err != nil {
			return err
		}
	}
	return nil
}
