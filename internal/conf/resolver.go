package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// MissingKeyError is returned when a key is defined neither as an
// environment variable nor in the configuration file.
type MissingKeyError struct {
	Key string
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing configuration key %q: %s is not set and the config file has no such entry", e.Key, EnvName(e.Key))
}

// EnvName returns the environment variable that overrides the given key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(key)
}

// Resolver answers per-key lookups with environment-over-file precedence.
// The environment is consulted at resolve time, the file only once at load
// time. A variable that is set to the empty string still counts as set and
// overrides the file value.
type Resolver struct {
	store *Store
}

// NewResolver creates a Resolver backed by the given store.
func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// Value resolves key to its raw configuration value. Environment overrides
// are always strings; file values keep their JSON type.
func (r *Resolver) Value(key string) (cty.Value, error) {
	if raw, ok := os.LookupEnv(EnvName(key)); ok {
		return cty.StringVal(raw), nil
	}
	if v, ok := r.store.Get(key); ok {
		return v, nil
	}
	return cty.NilVal, &MissingKeyError{Key: key}
}

// Resolve resolves key and renders the value as a string.
func (r *Resolver) Resolve(key string) (string, error) {
	v, err := r.Value(key)
	if err != nil {
		return "", err
	}
	return ValueString(v)
}

// Has reports whether key is defined in either layer.
func (r *Resolver) Has(key string) bool {
	if _, ok := os.LookupEnv(EnvName(key)); ok {
		return true
	}
	_, ok := r.store.Get(key)
	return ok
}

// ValueString renders a configuration value as a string. Numbers and
// booleans use their canonical HCL string form.
func ValueString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	converted, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot render %s as string: %w", v.Type().FriendlyName(), err)
	}
	return converted.AsString(), nil
}
