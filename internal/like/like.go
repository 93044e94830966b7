// Package like translates an Access Like-pattern into a compiled Go regexp.
// Translation happens once per pattern (the caller, ast.LikeOp, memoizes the
// result), so Compile favors a straightforward one-pass scan over caching
// tricks of its own.
package like

import (
	"regexp"
	"strings"
)

// Compile translates pattern into a case-insensitive, Unicode-aware regexp.
// A malformed pattern (an unterminated character class) is not an error —
// it returns nil, meaning "unmatchable": the pattern never matches anything,
// matching Access's own behavior for a bad Like pattern.
func Compile(pattern string) *regexp.Regexp {
	body, ok := translate(pattern)
	if !ok {
		return nil
	}
	re, err := regexp.Compile("(?is)^" + body + "$")
	if err != nil {
		return nil
	}
	return re
}

// translate walks pattern left to right, emitting the equivalent regexp
// body. The (?s) flag applied by the caller makes '.' match newline too, so
// '*' naturally covers "any character including newline".
func translate(pattern string) (string, bool) {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '#':
			b.WriteString(`\d`)
		case '[':
			class, consumed, ok := translateClass(runes[i:])
			if !ok {
				return "", false
			}
			b.WriteString(class)
			i += consumed - 1
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return b.String(), true
}

// translateClass reads a leading "[...]" from runes and returns its regexp
// equivalent, the number of input runes consumed, and whether the class was
// well-formed (closed before the pattern ended).
func translateClass(runes []rune) (string, int, bool) {
	end := -1
	for i := 1; i < len(runes); i++ {
		if runes[i] == ']' {
			end = i
			break
		}
	}
	if end == -1 {
		return "", 0, false
	}
	inner := runes[1:end]
	var b strings.Builder
	b.WriteByte('[')
	if len(inner) > 0 && inner[0] == '!' {
		b.WriteByte('^')
		inner = inner[1:]
	}
	for _, r := range inner {
		switch r {
		case '\\', ']', '^':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(']')
	return b.String(), end + 1, true
}
