package editor

import (
	"regexp"
	"strconv"
	"strings"
)

// Constrained text-command grammar. Each line (or semicolon-separated
// clause) maps to exactly one action; anything unmatched becomes an
// unknown-kind action so the caller sees an explicit "unknown action"
// outcome instead of a silent drop.
//
// Recognized forms (case-insensitive):
//
//	recolor role <name> to <#rrggbb|color name>
//	rename role <old> to <new>
//	rename channel <old> to <new>
//	rename category <old> to <new>
//	create channel <name> in <category>
//	lock channel <name>
//	unlock channel <name>
//	set slowmode in <channel> to <seconds>
var (
	reRecolorRole    = regexp.MustCompile(`(?i)^recolor\s+role\s+(.+?)\s+to\s+(\S+)$`)
	reRenameRole     = regexp.MustCompile(`(?i)^rename\s+role\s+(.+?)\s+to\s+(.+)$`)
	reRenameChannel  = regexp.MustCompile(`(?i)^rename\s+channel\s+(.+?)\s+to\s+(.+)$`)
	reRenameCategory = regexp.MustCompile(`(?i)^rename\s+category\s+(.+?)\s+to\s+(.+)$`)
	reCreateChannel  = regexp.MustCompile(`(?i)^create\s+channel\s+(.+?)\s+in\s+(.+)$`)
	reLockChannel    = regexp.MustCompile(`(?i)^lock\s+channel\s+(.+)$`)
	reUnlockChannel  = regexp.MustCompile(`(?i)^unlock\s+channel\s+(.+)$`)
	reSetSlowmode    = regexp.MustCompile(`(?i)^set\s+slowmode\s+in\s+(.+?)\s+to\s+(-?\d+)(?:\s+seconds?)?$`)
)

// ParseCommands parses free text into edit actions, one per line or
// semicolon-separated clause. Blank clauses are ignored.
func ParseCommands(text string) []Action {
	var actions []Action
	for _, line := range splitClauses(text) {
		actions = append(actions, parseClause(line))
	}
	return actions
}

func splitClauses(text string) []string {
	var clauses []string
	for _, line := range strings.Split(text, "\n") {
		for _, clause := range strings.Split(line, ";") {
			clause = strings.TrimSpace(clause)
			if clause != "" {
				clauses = append(clauses, clause)
			}
		}
	}
	return clauses
}

func parseClause(clause string) Action {
	if m := reRecolorRole.FindStringSubmatch(clause); m != nil {
		return Action{Kind: KindRecolorRole, Target: m[1], Color: canonicalColor(m[2])}
	}
	if m := reRenameRole.FindStringSubmatch(clause); m != nil {
		return Action{Kind: KindRenameRole, Target: m[1], NewName: m[2]}
	}
	if m := reRenameChannel.FindStringSubmatch(clause); m != nil {
		return Action{Kind: KindRenameChannel, Target: m[1], NewName: m[2]}
	}
	if m := reRenameCategory.FindStringSubmatch(clause); m != nil {
		return Action{Kind: KindRenameCategory, Target: m[1], NewName: m[2]}
	}
	if m := reCreateChannel.FindStringSubmatch(clause); m != nil {
		return Action{Kind: KindCreateChannel, Target: m[1], Category: m[2]}
	}
	if m := reLockChannel.FindStringSubmatch(clause); m != nil {
		return Action{Kind: KindLockChannel, Target: m[1]}
	}
	if m := reUnlockChannel.FindStringSubmatch(clause); m != nil {
		return Action{Kind: KindUnlockChannel, Target: m[1]}
	}
	if m := reSetSlowmode.FindStringSubmatch(clause); m != nil {
		seconds, _ := strconv.Atoi(m[2])
		return Action{Kind: KindSetSlowmode, Target: m[1], Seconds: seconds}
	}
	return Action{Kind: Kind(clause)}
}

// namedColors maps a handful of common color words to hex, so "recolor role
// Mods to red" works without the hex value.
var namedColors = map[string]string{
	"red":    "#ed4245",
	"green":  "#57f287",
	"blue":   "#5865f2",
	"yellow": "#fee75c",
	"orange": "#e67e22",
	"purple": "#9b59b6",
	"pink":   "#eb459e",
	"white":  "#ffffff",
	"black":  "#000000",
	"gray":   "#95a5a6",
	"grey":   "#95a5a6",
}

// canonicalColor returns a "#rrggbb" string for either a hex literal or a
// known color name. Unknown words pass through unchanged and resolve to 0
// at mutation time.
func canonicalColor(word string) string {
	if hex, ok := namedColors[strings.ToLower(word)]; ok {
		return hex
	}
	return word
}

// parseColor converts "#rrggbb" (or a named color) to its integer value.
// Unparsable input maps to 0.
func parseColor(color string) int {
	trimmed := strings.TrimPrefix(canonicalColor(color), "#")
	if trimmed == "" {
		return 0
	}
	v, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
