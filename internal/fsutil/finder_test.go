package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.go", "a.go", "sub/b.go", "sub/ignore.txt", "c.hcl"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	}

	files, err := FindFilesByExtension(dir, ".go", ".hcl")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "c.hcl"),
		filepath.Join(dir, "sub", "b.go"),
		filepath.Join(dir, "z.go"),
	}
	assert.Equal(t, want, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".go")
	require.Error(t, err)
}
