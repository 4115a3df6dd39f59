package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const goSource = `package demo

func setup() {
	url := get_config_url()
	timeout := get_config_timeout()
	_ = get_other()
	use(url, timeout)
}
`

func TestScan_FindsPrefixedCalls(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.go", goSource)
	b := writeFile(t, dir, "sub/b.go", goSource)

	got, err := New().Scan(context.Background(), dir, "get_config_", nil)
	require.NoError(t, err)

	want := []CallSite{
		{File: a, Line: 4, Name: "get_config_url"},
		{File: a, Line: 5, Name: "get_config_timeout"},
		{File: b, Line: 4, Name: "get_config_url"},
		{File: b, Line: 5, Name: "get_config_timeout"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("call sites mismatch (-want +got):\n%s", diff)
	}
}

func TestScan_ExcludeRemovesExactNamesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", goSource)

	got, err := New().Scan(context.Background(), dir, "get_config_", []string{"get_config_timeout"})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "get_config_url", got[0].Name)
}

func TestScan_SkipsUnparseableFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package demo\nfunc {{{")
	a := writeFile(t, dir, "ok.go", goSource)

	got, err := New().Scan(context.Background(), dir, "get_config_", nil)
	require.NoError(t, err, "a parse failure must not abort the scan")

	require.Len(t, got, 2)
	assert.Equal(t, a, got[0].File)
}

func TestScan_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.go", goSource)
	writeFile(t, dir, "a.go", goSource)

	first, err := New().Scan(context.Background(), dir, "get_config_", nil)
	require.NoError(t, err)
	second, err := New().Scan(context.Background(), dir, "get_config_", nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, filepath.Join(dir, "a.go"), first[0].File)
	assert.Equal(t, filepath.Join(dir, "z.go"), first[2].File)
}

func TestScan_ZeroMatchesIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", goSource)

	got, err := New().Scan(context.Background(), dir, "no_such_prefix_", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestScan_MissingRoot(t *testing.T) {
	_, err := New().Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), "get_", nil)
	require.Error(t, err)
}

func TestScan_EmptyPrefix(t *testing.T) {
	_, err := New().Scan(context.Background(), t.TempDir(), "", nil)
	require.Error(t, err)
}

func TestGoFrontend_SelectorCalls(t *testing.T) {
	src := `package demo

func f(c client) {
	c.get_config_url()
}
`
	calls, err := (&GoFrontend{}).Calls("demo.go", []byte(src))
	require.NoError(t, err)
	require.Len(t, calls, 1)
	assert.Equal(t, CallSite{File: "demo.go", Line: 4, Name: "get_config_url"}, calls[0])
}

func TestHCLFrontend_FindsCallsInAttributesAndBlocks(t *testing.T) {
	src := `base = config("base_url")

login = post("/login", { user = config("user") })

settings {
  token = config("token")
}
`
	calls, err := (&HCLFrontend{}).Calls("script.hcl", []byte(src))
	require.NoError(t, err)

	var names []string
	for _, c := range calls {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"config", "post", "config", "config"}, names)
	assert.Equal(t, 1, calls[0].Line)
	assert.Equal(t, 3, calls[1].Line)
	assert.Equal(t, 6, calls[3].Line)
}

func TestHCLFrontend_ParseError(t *testing.T) {
	_, err := (&HCLFrontend{}).Calls("bad.hcl", []byte(`a = {{`))
	require.Error(t, err)
}
