// Package env overlays environment variables on a driven.ConfigStore and
// loads .env files.
package env

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/disclosure-auditor/internal/adapters/driven/config"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// Ensure Overlay implements the interface.
var _ driven.ConfigStore = (*Overlay)(nil)

// LoadDotEnv loads .env from the working directory, then .env.<AUDITOR_ENV>
// over it when AUDITOR_ENV is set. Variables already in the process
// environment win over .env; the environment-specific file wins over both.
// Missing files are not an error.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		logger.Debug("No .env file loaded: %v", err)
	}

	appEnv := os.Getenv("AUDITOR_ENV")
	if appEnv == "" {
		return
	}
	envFile := fmt.Sprintf(".env.%s", appEnv)
	if err := godotenv.Overload(envFile); err != nil {
		logger.Warn("Could not load %s: %v", envFile, err)
	}
}

// Overlay reads bound keys from the environment before falling back to the
// base store. Writes always go to the base store.
type Overlay struct {
	base     driven.ConfigStore
	bindings map[string]string
	lookup   func(string) (string, bool)
}

// NewOverlay binds config keys to environment variable names.
func NewOverlay(base driven.ConfigStore, bindings map[string]string) *Overlay {
	return &Overlay{
		base:     base,
		bindings: bindings,
		lookup:   os.LookupEnv,
	}
}

// Get returns the environment value for a bound key when it is set and
// non-empty, otherwise the base store's value.
func (o *Overlay) Get(key string) (any, bool) {
	if name, ok := o.bindings[key]; ok {
		if val, set := o.lookup(name); set && val != "" {
			return val, true
		}
	}
	return o.base.Get(key)
}

// GetString retrieves a string configuration value.
func (o *Overlay) GetString(key string) string {
	val, _ := o.Get(key)
	return config.AsString(val)
}

// GetInt retrieves an integer configuration value.
func (o *Overlay) GetInt(key string) int {
	val, _ := o.Get(key)
	return config.AsInt(val)
}

// GetBool retrieves a boolean configuration value.
func (o *Overlay) GetBool(key string) bool {
	val, _ := o.Get(key)
	return config.AsBool(val)
}

// GetStringSlice retrieves a string slice configuration value.
func (o *Overlay) GetStringSlice(key string) []string {
	val, _ := o.Get(key)
	return config.AsStringSlice(val)
}

// Set writes to the base store.
func (o *Overlay) Set(key string, value any) error {
	return o.base.Set(key, value)
}

// Save persists the base store.
func (o *Overlay) Save() error {
	return o.base.Save()
}

// Load reloads the base store.
func (o *Overlay) Load() error {
	return o.base.Load()
}

// Path returns the base store's path.
func (o *Overlay) Path() string {
	return o.base.Path()
}

// Bindings returns the key to variable name mapping.
func (o *Overlay) Bindings() map[string]string {
	out := make(map[string]string, len(o.bindings))
	for k, v := range o.bindings {
		out[k] = v
	}
	return out
}
