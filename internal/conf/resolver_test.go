package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvName(t *testing.T) {
	assert.Equal(t, "RESTER_URL", EnvName("url"))
	assert.Equal(t, "RESTER_BASE_URL", EnvName("base_url"))
}

func TestResolve_EnvironmentWins(t *testing.T) {
	path := writeConfig(t, `{"url": "http://y"}`)
	store, err := Load(path)
	require.NoError(t, err)
	r := NewResolver(store)

	t.Setenv("RESTER_URL", "http://x")

	got, err := r.Resolve("url")
	require.NoError(t, err)
	assert.Equal(t, "http://x", got)
}

func TestResolve_FallsBackToFile(t *testing.T) {
	path := writeConfig(t, `{"url": "http://y", "timeout": 30, "verbose": false}`)
	store, err := Load(path)
	require.NoError(t, err)
	r := NewResolver(store)

	got, err := r.Resolve("url")
	require.NoError(t, err)
	assert.Equal(t, "http://y", got)

	// Numbers and booleans render in their canonical string form.
	got, err = r.Resolve("timeout")
	require.NoError(t, err)
	assert.Equal(t, "30", got)

	got, err = r.Resolve("verbose")
	require.NoError(t, err)
	assert.Equal(t, "false", got)
}

func TestResolve_MissingKey(t *testing.T) {
	r := NewResolver(Empty())

	_, err := r.Resolve("timeout")
	require.Error(t, err)

	var missing *MissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "timeout", missing.Key)
	assert.Contains(t, err.Error(), `"timeout"`)
}

func TestResolve_EmptyEnvValueStillOverrides(t *testing.T) {
	path := writeConfig(t, `{"url": "http://y"}`)
	store, err := Load(path)
	require.NoError(t, err)
	r := NewResolver(store)

	t.Setenv("RESTER_URL", "")

	got, err := r.Resolve("url")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestHas(t *testing.T) {
	path := writeConfig(t, `{"url": "http://y"}`)
	store, err := Load(path)
	require.NoError(t, err)
	r := NewResolver(store)

	assert.True(t, r.Has("url"))
	assert.False(t, r.Has("token"))

	t.Setenv("RESTER_TOKEN", "secret")
	assert.True(t, r.Has("token"))
}

func TestResolve_DifferentFilesGiveDifferentFallbacks(t *testing.T) {
	first, err := Load(writeConfig(t, `{"url": "http://first"}`))
	require.NoError(t, err)
	second, err := Load(writeConfig(t, `{"url": "http://second"}`))
	require.NoError(t, err)

	got, err := NewResolver(first).Resolve("url")
	require.NoError(t, err)
	assert.Equal(t, "http://first", got)

	got, err = NewResolver(second).Resolve("url")
	require.NoError(t, err)
	assert.Equal(t, "http://second", got)
}
