package conf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/zclconf/go-cty/cty"
)

const (
	// PathEnvVar names the environment variable that overrides the
	// location of the configuration file.
	PathEnvVar = "RESTER_CONFIG"

	// EnvPrefix is prepended to the uppercased key to form the name of
	// the overriding environment variable.
	EnvPrefix = "RESTER_"
)

// Locate returns the path of the configuration file and whether that path
// was explicitly overridden via RESTER_CONFIG. Without an override the file
// lives at ~/.config/rester.json.
func Locate() (path string, explicit bool, err error) {
	if p := os.Getenv(PathEnvVar); p != "" {
		return p, true, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rester.json"), false, nil
}

// Store is the immutable set of configuration values loaded from the JSON
// file. It is created once at startup and never mutated afterwards.
type Store struct {
	path   string
	values map[string]cty.Value
}

// Empty returns a Store with no file-backed values. Lookups then succeed
// only through environment variables.
func Empty() *Store {
	return &Store{values: map[string]cty.Value{}}
}

// Load reads and parses the JSON configuration file at path. The file must
// contain a single flat object mapping string keys to string, number or
// boolean values; anything else is an error. Load is called once at startup
// and a failure is fatal to the process.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w", path, err)
	}

	values := make(map[string]cty.Value, len(raw))
	for key, v := range raw {
		val, err := scalarValue(v)
		if err != nil {
			return nil, fmt.Errorf("config file %s, key %q: %w", path, key, err)
		}
		values[key] = val
	}

	return &Store{path: path, values: values}, nil
}

// scalarValue converts a decoded JSON value into a cty.Value, rejecting
// nested structures. The config format is a flat key/value mapping only.
func scalarValue(v any) (cty.Value, error) {
	switch tv := v.(type) {
	case string:
		return cty.StringVal(tv), nil
	case float64:
		return cty.NumberFloatVal(tv), nil
	case bool:
		return cty.BoolVal(tv), nil
	case nil:
		return cty.NullVal(cty.String), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T: only strings, numbers and booleans are allowed", v)
	}
}

// Path returns the file the store was loaded from, or "" for an empty store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the file-backed value for key.
func (s *Store) Get(key string) (cty.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns all file-backed keys in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
