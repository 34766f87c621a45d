package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		err := Error("Test Error", "This is a test error", []string{})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("returns error with title when including suggestions", func(t *testing.T) {
		err := Error("Test Error", "Explanation", []string{"Try this fix"})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})

	t.Run("returns error with title for multiple suggestions", func(t *testing.T) {
		err := Error("Test Error", "Explanation", []string{
			"First option",
			"Second option",
		})
		require.Error(t, err)
		require.Equal(t, "Test Error", err.Error())
	})
}

// Note: The Error function prints formatted output to stderr with colors.
// The error object returned only contains the title for Cobra's error handling.
// This is intentional to avoid duplicate output while providing rich formatted errors.

func TestSummaryGlyphs(t *testing.T) {
	var s Summary
	s.Ok("role Mods created")
	s.Fail("rename_channel: \"general\" not found")
	s.Skip("message skipped: channel key ch9 not found")
	s.Warn("role positioning failed")

	rendered := s.Render()
	lines := strings.Split(rendered, "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "✓ role Mods created", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "✗ "))
	require.True(t, strings.HasPrefix(lines[2], "• "))
	require.True(t, strings.HasPrefix(lines[3], "⚠ "))
}

func TestSummaryCap(t *testing.T) {
	var s Summary
	for i := 0; i < 200; i++ {
		s.Ok(strings.Repeat("x", 40))
	}

	rendered := s.Render()
	require.LessOrEqual(t, len(rendered), MaxSummaryLength)
	require.True(t, strings.HasSuffix(rendered, "…"))
}

func TestSummaryUnderCapNotTruncated(t *testing.T) {
	var s Summary
	s.Ok("one")
	s.Ok("two")

	rendered := s.Render()
	require.Equal(t, "✓ one\n✓ two", rendered)
	require.False(t, strings.Contains(rendered, "…"))
}
