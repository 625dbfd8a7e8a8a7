package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsString(t *testing.T) {
	assert.Equal(t, "x", AsString("x"))
	assert.Equal(t, "", AsString(42))
	assert.Equal(t, "", AsString(nil))
}

func TestAsInt(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want int
	}{
		{"int", 5, 5},
		{"int64", int64(7), 7},
		{"float64", 3.0, 3},
		{"string", " 12 ", 12},
		{"bad string", "twelve", 0},
		{"bool", true, 0},
		{"nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsInt(tt.val))
		})
	}
}

func TestAsBool(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"string true", "true", true},
		{"string 1", "1", true},
		{"string no", "no", false},
		{"int", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AsBool(tt.val))
		})
	}
}

func TestAsStringSlice(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, AsStringSlice([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "c"}, AsStringSlice([]any{"a", 1, "c"}))
	assert.Equal(t, []string{"a", "b"}, AsStringSlice("a, b"))
	assert.Nil(t, AsStringSlice(""))
	assert.Nil(t, AsStringSlice(3))
}
