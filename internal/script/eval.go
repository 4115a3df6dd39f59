package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/rester/internal/conf"
	"github.com/zclconf/go-cty/cty"
)

// Evaluate resolves every definition in the script to a value. Definitions
// are evaluated in dependency order regardless of their textual order;
// references to undefined names and reference cycles are errors.
func Evaluate(s *Script, resolver *conf.Resolver) (map[string]cty.Value, error) {
	order, err := evaluationOrder(s)
	if err != nil {
		return nil, err
	}

	values := make(map[string]cty.Value, len(s.attrs))
	evalCtx := &hcl.EvalContext{
		Variables: values,
		Functions: Functions(resolver),
	}

	for _, name := range order {
		val, diags := s.attrs[name].Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, fmt.Errorf("script %s: definition %q: %w", s.Path, name, diags)
		}
		values[name] = val
	}

	return values, nil
}

// evaluationOrder topologically sorts the definitions by their variable
// references. Ties break on name so the order is deterministic.
func evaluationOrder(s *Script) ([]string, error) {
	dependsOn := make(map[string][]string, len(s.attrs))
	for name, attr := range s.attrs {
		deps, err := references(s, attr)
		if err != nil {
			return nil, err
		}
		dependsOn[name] = deps
	}

	order := make([]string, 0, len(s.attrs))
	resolved := make(map[string]struct{}, len(s.attrs))
	remaining := sortedNames(s.attrs)

	for len(remaining) > 0 {
		var ready, blocked []string
		for _, name := range remaining {
			if unresolved(dependsOn[name], resolved) {
				blocked = append(blocked, name)
			} else {
				ready = append(ready, name)
			}
		}

		if len(ready) == 0 {
			return nil, fmt.Errorf("script %s: reference cycle involving %s", s.Path, strings.Join(blocked, ", "))
		}

		for _, name := range ready {
			order = append(order, name)
			resolved[name] = struct{}{}
		}
		remaining = blocked
	}

	return order, nil
}

// references returns the definition names an attribute's expression refers
// to. A reference to a name the script does not define is an error.
func references(s *Script, attr *hclsyntax.Attribute) ([]string, error) {
	seen := make(map[string]struct{})
	var deps []string
	for _, traversal := range attr.Expr.Variables() {
		root := traversal.RootName()
		if _, ok := s.attrs[root]; !ok {
			return nil, fmt.Errorf("script %s: definition %q refers to undefined identifier %q at %s",
				s.Path, attr.Name, root, traversal.SourceRange().String())
		}
		if _, ok := seen[root]; !ok {
			seen[root] = struct{}{}
			deps = append(deps, root)
		}
	}
	sort.Strings(deps)
	return deps, nil
}

func unresolved(deps []string, resolved map[string]struct{}) bool {
	for _, dep := range deps {
		if _, ok := resolved[dep]; !ok {
			return true
		}
	}
	return false
}

func sortedNames(attrs hclsyntax.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
