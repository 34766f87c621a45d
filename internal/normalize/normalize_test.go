package normalize

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var canonicalPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestChannel(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "general", "general"},
		{"uppercase", "General", "general"},
		{"spaces become dashes", "Welcome Area", "welcome-area"},
		{"punctuation stripped", "Welcome Area!", "welcome-area"},
		{"internal whitespace collapses", "rules   and   info", "rules-and-info"},
		{"mixed symbols", "⚡ Announcements ⚡", "announcements"},
		{"leading and trailing dashes stripped", "--general--", "general"},
		{"repeated dashes collapse", "a---b", "a-b"},
		{"digits kept", "team 42", "team-42"},
		{"empty input", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Channel(tc.in))
		})
	}
}

func TestChannelIdempotent(t *testing.T) {
	inputs := []string{
		"General", "Welcome Area!", "  padded  ", "⚡VERY--LOUD⚡",
		"a b c d", "", "---", "123", strings.Repeat("Long Name ", 30),
	}
	for _, in := range inputs {
		once := Channel(in)
		assert.Equal(t, once, Channel(once), "not idempotent for %q", in)
	}
}

func TestChannelShape(t *testing.T) {
	inputs := []string{
		"General", "Welcome Area!", "⚡", "über-cool", "mixed CASE and 123",
		strings.Repeat("x", 500), strings.Repeat("word ", 100),
	}
	for _, in := range inputs {
		got := Channel(in)
		assert.LessOrEqual(t, len(got), MaxChannelNameLength)
		if got != "" {
			assert.Regexp(t, canonicalPattern, got)
		}
	}
}

func TestChannelTruncation(t *testing.T) {
	long := strings.Repeat("abc-", 40)
	got := Channel(long)
	assert.LessOrEqual(t, len(got), MaxChannelNameLength)
	// Truncation must not leave a trailing dash.
	assert.False(t, strings.HasSuffix(got, "-"))
}
