package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		identifier string
		expected   string
	}{
		{"worker", "Worker"},
		{"my-worker", "Myworker"},
		{"my_worker.v2", "Myworkerv2"},
		{"Already", "Already"},
		{"9lives", "9lives"},
		{"émile-task", "Miletask"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.identifier))
		})
	}
}

func TestResourceNames(t *testing.T) {
	assert.Equal(t, "MyworkerTask", TaskResourceName("my-worker"))
	assert.Equal(t, "MyworkerService", ServiceResourceName("my-worker"))
}
