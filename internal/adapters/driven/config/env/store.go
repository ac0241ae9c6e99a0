// Package env overlays environment variables on another ConfigStore.
//
// A key such as "analysis.default_threshold" is read from
// DUPECHECK_ANALYSIS_DEFAULT_THRESHOLD. Environment values win over the
// wrapped store on reads and are never written back.
package env

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/dupecheck/internal/core/ports/driven"
)

// Prefix is prepended to every environment variable name.
const Prefix = "DUPECHECK_"

// Ensure Store implements the interface.
var _ driven.ConfigStore = (*Store)(nil)

// Store decorates a driven.ConfigStore with environment overrides.
type Store struct {
	base   driven.ConfigStore
	lookup func(string) (string, bool)
}

// NewStore wraps base with overrides from the process environment.
func NewStore(base driven.ConfigStore) *Store {
	return &Store{base: base, lookup: os.LookupEnv}
}

// LoadDotEnv loads .env files into the process environment. Variables that
// are already set are left alone. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// VarName returns the environment variable consulted for key.
func VarName(key string) string {
	return Prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

func (s *Store) override(key string) (string, bool) {
	val, ok := s.lookup(VarName(key))
	if !ok {
		return "", false
	}
	return strings.TrimSpace(val), true
}

// Get retrieves a configuration value, preferring the environment.
func (s *Store) Get(key string) (any, bool) {
	if val, ok := s.override(key); ok {
		return val, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *Store) GetString(key string) string {
	if val, ok := s.override(key); ok {
		return val
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
// An unparsable override reads as 0, like a mistyped stored value.
func (s *Store) GetInt(key string) int {
	if val, ok := s.override(key); ok {
		n, _ := strconv.Atoi(val)
		return n
	}
	return s.base.GetInt(key)
}

// GetFloat retrieves a floating point configuration value.
func (s *Store) GetFloat(key string) float64 {
	if val, ok := s.override(key); ok {
		f, _ := strconv.ParseFloat(val, 64)
		return f
	}
	return s.base.GetFloat(key)
}

// GetBool retrieves a boolean configuration value.
func (s *Store) GetBool(key string) bool {
	if val, ok := s.override(key); ok {
		b, _ := strconv.ParseBool(val)
		return b
	}
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a comma separated override or the stored slice.
func (s *Store) GetStringSlice(key string) []string {
	val, ok := s.override(key)
	if !ok {
		return s.base.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Set writes to the wrapped store.
func (s *Store) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Delete removes the key from the wrapped store.
func (s *Store) Delete(key string) error {
	return s.base.Delete(key)
}

// Save persists the wrapped store.
func (s *Store) Save() error {
	return s.base.Save()
}

// Load reloads the wrapped store.
func (s *Store) Load() error {
	return s.base.Load()
}

// Path returns the wrapped store's path.
func (s *Store) Path() string {
	return s.base.Path()
}
