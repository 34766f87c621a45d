package printer

import "strings"

// MaxSummaryLength caps the rendered summary. Trigger surfaces relay the
// summary into chat responses with a hard message-size limit, so the cap is
// enforced here rather than at every call site.
const MaxSummaryLength = 1900

const truncationMarker = "…"

// Summary accumulates one glyph-prefixed line per build step or edit
// action and renders them as a single bounded block.
type Summary struct {
	lines []string
}

// Ok appends a success line.
func (s *Summary) Ok(text string) {
	s.lines = append(s.lines, "✓ "+text)
}

// Fail appends a failure line.
func (s *Summary) Fail(text string) {
	s.lines = append(s.lines, "✗ "+text)
}

// Skip appends a skipped-step line.
func (s *Summary) Skip(text string) {
	s.lines = append(s.lines, "• "+text)
}

// Warn appends a non-fatal warning line.
func (s *Summary) Warn(text string) {
	s.lines = append(s.lines, "⚠ "+text)
}

// Line appends a pre-formatted line as-is.
func (s *Summary) Line(text string) {
	s.lines = append(s.lines, text)
}

// Len returns the number of accumulated lines.
func (s *Summary) Len() int {
	return len(s.lines)
}

// Render joins the lines, truncating at MaxSummaryLength. Truncation cuts
// on a line boundary where possible and always appends a marker so readers
// know output was dropped.
func (s *Summary) Render() string {
	joined := strings.Join(s.lines, "\n")
	if len(joined) <= MaxSummaryLength {
		return joined
	}

	limit := MaxSummaryLength - len(truncationMarker)
	cut := joined[:limit]
	if idx := strings.LastIndex(cut, "\n"); idx > 0 {
		cut = cut[:idx+1]
	}
	return cut + truncationMarker
}
