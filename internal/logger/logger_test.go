package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesRoleAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "check", "debug")
	require.NotNil(t, l)

	l.Warn().Str("path", "/role").Msg("Duplicate key: role")

	out := buf.String()
	assert.Contains(t, out, "Duplicate key: role")
	assert.Contains(t, out, "role=check")
	assert.Contains(t, out, "path=/role")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must not be colored")
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "check", "warn")

	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Error().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":       zerolog.InfoLevel,
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"bogus":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestChild_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "check", "info")
	child := parent.Child("input", "users.json")
	child.Info().Msg("child")
	assert.Contains(t, buf.String(), "role=check")
	assert.Contains(t, buf.String(), "input=users.json")

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, buf.String(), "input=")
}
