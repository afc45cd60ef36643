package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseServiceKey(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind ServiceKind
	}{
		{"fixed service", "deep-cleaning", ServiceFixed},
		{"assignment service", "staff:window-cleaning", ServiceAssignment},
		{"empty", "", ServiceInvalid},
		{"whitespace only", "   ", ServiceInvalid},
		{"prefix alone still decodes as assignment", "staff:", ServiceAssignment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ParseServiceKey(tt.raw)
			assert.Equal(t, tt.kind, key.Kind)
			if tt.kind == ServiceInvalid {
				assert.False(t, key.Valid())
				assert.Empty(t, key.Raw)
			} else {
				assert.True(t, key.Valid())
			}
		})
	}
}

func TestParseServiceKeyTrimsWhitespace(t *testing.T) {
	key := ParseServiceKey("  staff:garden-care  ")
	assert.Equal(t, ServiceAssignment, key.Kind)
	assert.Equal(t, "staff:garden-care", key.Raw)
}
