package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vk/rester/internal/ctxlog"
	"github.com/vk/rester/internal/fsutil"
)

// CallSite is a located occurrence of a function invocation in source text.
type CallSite struct {
	File string
	Line int
	Name string
}

// String renders the call site in the scanner's output format.
func (c CallSite) String() string {
	return fmt.Sprintf("%s:%d: %s", c.File, c.Line, c.Name)
}

// Frontend parses one source language and extracts every call expression
// from a file. Frontends report all calls; filtering happens in the scanner.
type Frontend interface {
	// Extension is the file name suffix this frontend handles, e.g. ".go".
	Extension() string

	// Calls returns every call site in the given source, in source order.
	Calls(filename string, src []byte) ([]CallSite, error)
}

// Scanner finds call sites across a directory tree using a set of language
// frontends.
type Scanner struct {
	frontends []Frontend
}

// New creates a Scanner. With no frontends given, the Go and HCL frontends
// are used.
func New(frontends ...Frontend) *Scanner {
	if len(frontends) == 0 {
		frontends = []Frontend{&GoFrontend{}, &HCLFrontend{}}
	}
	return &Scanner{frontends: frontends}
}

// Scan walks root and returns every call site whose callee name starts with
// prefix and is not in exclude. Files are visited in sorted order and call
// sites within a file keep source order, so results are deterministic. A
// file that fails to parse is logged as a warning and skipped; the scan
// continues and returns the remaining results.
func (s *Scanner) Scan(ctx context.Context, root, prefix string, exclude []string) ([]CallSite, error) {
	if prefix == "" {
		return nil, errors.New("prefix must not be empty")
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("cannot access root %s: %w", root, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	logger := ctxlog.FromContext(ctx)

	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	byExtension := make(map[string]Frontend, len(s.frontends))
	extensions := make([]string, 0, len(s.frontends))
	for _, fe := range s.frontends {
		byExtension[fe.Extension()] = fe
		extensions = append(extensions, fe.Extension())
	}

	files, err := fsutil.FindFilesByExtension(root, extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered source files.", "count", len(files))

	var sites []CallSite
	for _, file := range files {
		fe := frontendFor(byExtension, file)
		if fe == nil {
			continue
		}

		src, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("Skipping unreadable file.", "file", file, "error", err)
			continue
		}

		calls, err := fe.Calls(file, src)
		if err != nil {
			logger.Warn("Skipping file that failed to parse.", "file", file, "error", err)
			continue
		}

		for _, call := range calls {
			if !strings.HasPrefix(call.Name, prefix) {
				continue
			}
			if _, ok := excluded[call.Name]; ok {
				continue
			}
			sites = append(sites, call)
		}
	}

	return sites, nil
}

func frontendFor(byExtension map[string]Frontend, file string) Frontend {
	for ext, fe := range byExtension {
		if strings.HasSuffix(file, ext) {
			return fe
		}
	}
	return nil
}
