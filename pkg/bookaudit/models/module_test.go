package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentTypeString(t *testing.T) {
	tests := []struct {
		typeCode ComponentType
		expected string
	}{
		{TypeStdModule, "Standard Module"},
		{TypeClassModule, "Class Module"},
		{TypeMSForm, "UserForm"},
		{TypeDocument, "Document Module"},
		{ComponentType(42), "Unknown (42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.typeCode.String())
	}
}
