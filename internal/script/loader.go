package script

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Script is a parsed rester script: a set of named definitions awaiting
// evaluation.
type Script struct {
	Path  string
	attrs hclsyntax.Attributes
}

// Load reads and parses the script file at path.
func Load(path string) (*Script, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read script %s: %w", path, err)
	}
	return Parse(path, src)
}

// Parse parses script source. The body must consist solely of top-level
// attributes; blocks have no meaning in the script language.
func Parse(filename string, src []byte) (*Script, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse script %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("script %s: unexpected body type %T", filename, file.Body)
	}
	if len(body.Blocks) > 0 {
		b := body.Blocks[0]
		return nil, fmt.Errorf("script %s: unexpected %q block at %s: scripts contain only definitions", filename, b.Type, b.DefRange().String())
	}

	return &Script{Path: filename, attrs: body.Attributes}, nil
}

// Names returns the defined names in sorted order.
func (s *Script) Names() []string {
	return sortedNames(s.attrs)
}
