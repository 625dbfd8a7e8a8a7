// Package config holds the configuration adapters and the value coercion
// they share.
//
// Subpackages:
//   - file: TOML configuration file and on-disk prompt templates
//   - memory: in-process store for tests and for runs without a home directory
//   - env: environment variable overlay on top of another store
package config

import (
	"strconv"
	"strings"
)

// AsString converts a stored value to a string.
// Only string values convert; anything else yields "".
func AsString(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// AsInt converts a stored value to an int.
// TOML integers arrive as int64 and environment values as strings.
func AsInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// AsBool converts a stored value to a bool.
func AsBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}

// AsStringSlice converts a stored value to a string slice.
// TOML arrays arrive as []any; environment values are comma separated.
func AsStringSlice(val any) []string {
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}
