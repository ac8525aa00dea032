package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCountry(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
		ok       bool
	}{
		{"city and country", "Lagos, Nigeria", "Nigeria", true},
		{"no comma returns whole string", "Unknown", "Unknown", true},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
		{"trailing separator", "Accra, ", "Accra", true},
		{"extra segments keep last", "Ikeja, Lagos, Nigeria", "Nigeria", true},
		{"padded segments trimmed", "Paris,  France ", "France", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCountry(tt.location)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
