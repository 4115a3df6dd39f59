package scan

import (
	"go/ast"
	"go/parser"
	"go/token"
)

// GoFrontend extracts call expressions from Go source files.
type GoFrontend struct{}

// Extension implements Frontend.
func (f *GoFrontend) Extension() string {
	return ".go"
}

// Calls parses the file and returns every call expression whose callee is a
// plain identifier or a selector. The reported name is the bare function or
// method name; the line is that of the callee, not the argument list.
func (f *GoFrontend) Calls(filename string, src []byte) ([]CallSite, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, 0)
	if err != nil {
		return nil, err
	}

	var sites []CallSite
	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		var name string
		var pos token.Pos
		switch fn := call.Fun.(type) {
		case *ast.Ident:
			name, pos = fn.Name, fn.Pos()
		case *ast.SelectorExpr:
			name, pos = fn.Sel.Name, fn.Sel.Pos()
		default:
			return true
		}

		sites = append(sites, CallSite{
			File: filename,
			Line: fset.Position(pos).Line,
			Name: name,
		})
		return true
	})

	return sites, nil
}
