package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		base     map[string]any
		override map[string]any
		expected map[string]any
	}{
		{
			name:     "nil override keeps base",
			base:     map[string]any{"A": 1},
			override: nil,
			expected: map[string]any{"A": 1},
		},
		{
			name:     "override-only keys are added",
			base:     map[string]any{"A": 1},
			override: map[string]any{"B": 2},
			expected: map[string]any{"A": 1, "B": 2},
		},
		{
			name: "nested objects are replaced, not merged",
			base: map[string]any{
				"Environment":  []any{map[string]any{"Name": "A", "Value": "1"}},
				"PortMappings": []any{},
				"LogConfiguration": map[string]any{
					"LogDriver": "awslogs",
					"Options":   map[string]any{"awslogs-stream-prefix": "fargate"},
				},
			},
			override: map[string]any{
				"PortMappings":     []any{map[string]any{"p": 80}},
				"LogConfiguration": map[string]any{"Options": map[string]any{}},
			},
			expected: map[string]any{
				"Environment":      []any{map[string]any{"Name": "A", "Value": "1"}},
				"PortMappings":     []any{map[string]any{"p": 80}},
				"LogConfiguration": map[string]any{"Options": map[string]any{}},
			},
		},
		{
			name:     "explicit null replaces",
			base:     map[string]any{"A": 1},
			override: map[string]any{"A": nil},
			expected: map[string]any{"A": nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Merge(tt.base, tt.override))
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"A": 1}
	override := map[string]any{"A": 2, "B": 3}

	out := Merge(base, override)
	out["C"] = 4

	assert.Equal(t, map[string]any{"A": 1}, base)
	assert.Equal(t, map[string]any{"A": 2, "B": 3}, override)
}

func TestValueOrDefault(t *testing.T) {
	assert.Equal(t, "0.5GB", ValueOrDefault(nil, "0.5GB"))
	assert.Equal(t, "1GB", ValueOrDefault("1GB", "0.5GB"))
	// Only absence triggers the default; zero values are kept.
	assert.Equal(t, 0, ValueOrDefault(0, 1))
	assert.Equal(t, "", ValueOrDefault("", "DISABLED"))
	assert.Equal(t, false, ValueOrDefault(false, true))
}
