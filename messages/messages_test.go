package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	cases := []struct {
		code string
		data map[string]string
		want string
	}{
		{"parse_error", nil, "Invalid JSON"},
		{"parse_error", map[string]string{"format": "YAML"}, "Invalid YAML"},
		{"invalid_shape", map[string]string{"shape": "User"}, "Invalid User shape"},
		{"invalid_shape", map[string]string{"shape": "Users"}, "Invalid Users shape"},
		{"required", map[string]string{"field": "email"}, "Missing field: email"},
		{"invalid_type", map[string]string{"field": "id", "expected": "string"}, "Invalid type for id (expected string)"},
		{"invalid_enum", map[string]string{"field": "role", "expected": "intern|mentor|admin"}, "Invalid role (expected intern|mentor|admin)"},
		{"something_else", nil, "something_else"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Message(tc.code, tc.data), tc.code)
	}
}
