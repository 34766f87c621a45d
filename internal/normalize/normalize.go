// Package normalize canonicalizes free-form names into the platform's
// channel-naming constraints: lowercase, dash-separated, length-capped.
package normalize

import "strings"

// MaxChannelNameLength is the platform's maximum channel name length.
const MaxChannelNameLength = 90

// Channel canonicalizes a raw display name into a valid channel name.
// The result matches ^[a-z0-9]+(-[a-z0-9]+)*$ or is empty, and the function
// is idempotent: Channel(Channel(s)) == Channel(s) for all inputs.
func Channel(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			// Whitespace and every other disallowed character become a
			// dash; runs collapse below.
			b.WriteByte('-')
		}
	}

	collapsed := collapseDashes(b.String())
	collapsed = strings.Trim(collapsed, "-")

	if len(collapsed) > MaxChannelNameLength {
		collapsed = strings.Trim(collapsed[:MaxChannelNameLength], "-")
	}
	return collapsed
}

func collapseDashes(s string) string {
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}
