package scan

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// HCLFrontend extracts function calls from HCL files, which covers rester
// scripts as well as any other HCL-based configuration in the tree.
type HCLFrontend struct{}

// Extension implements Frontend.
func (f *HCLFrontend) Extension() string {
	return ".hcl"
}

// Calls parses the file and walks every expression in every attribute and
// nested block, collecting function call expressions.
func (f *HCLFrontend) Calls(filename string, src []byte) ([]CallSite, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse %s: unexpected body type %T", filename, file.Body)
	}

	collector := &callCollector{file: filename}
	collectBody(body, collector)

	// Attribute iteration order is undefined, so restore source order.
	sort.Slice(collector.sites, func(i, j int) bool {
		if collector.sites[i].Line != collector.sites[j].Line {
			return collector.sites[i].Line < collector.sites[j].Line
		}
		return collector.sites[i].column < collector.sites[j].column
	})

	sites := make([]CallSite, len(collector.sites))
	for i, s := range collector.sites {
		sites[i] = s.CallSite
	}
	return sites, nil
}

type locatedSite struct {
	CallSite
	column int
}

// callCollector is an hclsyntax.Walker that records function call
// expressions as it enters them.
type callCollector struct {
	file  string
	sites []locatedSite
}

func (c *callCollector) Enter(node hclsyntax.Node) hcl.Diagnostics {
	if call, ok := node.(*hclsyntax.FunctionCallExpr); ok {
		c.sites = append(c.sites, locatedSite{
			CallSite: CallSite{
				File: c.file,
				Line: call.NameRange.Start.Line,
				Name: call.Name,
			},
			column: call.NameRange.Start.Column,
		})
	}
	return nil
}

func (c *callCollector) Exit(node hclsyntax.Node) hcl.Diagnostics {
	return nil
}

// collectBody walks all expressions in a body, recursing into nested blocks.
func collectBody(body *hclsyntax.Body, collector *callCollector) {
	for _, attr := range body.Attributes {
		hclsyntax.Walk(attr.Expr, collector)
	}
	for _, block := range body.Blocks {
		collectBody(block.Body, collector)
	}
}
