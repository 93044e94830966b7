// Package format implements the Format() runtime: predefined pattern names
// for date, number, and boolean values, plus a custom pattern language with
// date, number, and text dialects selected by a one-pass scan of the
// pattern string.
package format

import (
	"strings"
	"time"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/lexer"
	"github.com/accessexpr/accessexpr/internal/value"
)

// temporalOf coerces v to a time.Time, parsing a string the same way a
// #...# literal would be parsed so Format can apply a date pattern to a
// date-shaped string argument.
func temporalOf(ctx hostctx.EvalContext, v value.Value) (time.Time, error) {
	if v.Kind() == value.KindString {
		t, _, err := lexer.ParseTemporalString(v.String(), ctx)
		if err != nil {
			return time.Time{}, accerr.NewEvalError(accerr.CategoryType, "%q is not a recognizable date", v.String())
		}
		return t, nil
	}
	return value.AsDateTime(v)
}

// category is the dialect a custom pattern is parsed under.
type category int

const (
	categoryGeneral category = iota
	categoryNumber
	categoryDate
	categoryText
)

// predefined date/time pattern names, matched case-insensitively.
var predefinedDate = map[string]string{
	"general date": "",
	"long date":    "",
	"medium date":  "",
	"short date":   "",
	"long time":    "",
	"medium time":  "",
	"short time":   "",
}

var predefinedNumber = map[string]string{
	"general number": "",
	"currency":       "",
	"euro":           "",
	"fixed":          "",
	"standard":       "",
	"percent":        "",
	"scientific":     "",
}

var predefinedBoolean = map[string]struct{ t, f string }{
	"true/false": {"True", "False"},
	"yes/no":     {"Yes", "No"},
	"on/off":     {"On", "Off"},
}

// Format renders v under pattern for ctx's locale. firstDay and
// firstWeekType override the locale's week settings when non-zero,
// matching the optional third/fourth arguments of VBA's Format function.
//
// Per Access behaviour, a failure inside the custom format parser or
// renderer is not propagated: Format falls back to v's default string
// rendering rather than raising an EvalError.
func Format(ctx hostctx.EvalContext, v value.Value, pattern string, firstDay, firstWeekType int) string {
	s, err := format(ctx, v, pattern, firstDay, firstWeekType)
	if err != nil {
		return value.AsString(v)
	}
	return s
}

func format(ctx hostctx.EvalContext, v value.Value, pattern string, firstDay, firstWeekType int) (string, error) {
	if pattern == "" {
		return generalRender(ctx, v, firstDay, firstWeekType), nil
	}

	key := strings.ToLower(strings.TrimSpace(pattern))

	if bf, ok := predefinedBoolean[key]; ok {
		b, err := value.AsBool(v)
		if err != nil {
			return "", err
		}
		if b {
			return bf.t, nil
		}
		return bf.f, nil
	}

	if _, ok := predefinedDate[key]; ok {
		return renderPredefinedDate(ctx, v, key)
	}

	if _, ok := predefinedNumber[key]; ok {
		return renderPredefinedNumber(ctx, v, key)
	}

	switch classify(pattern) {
	case categoryDate:
		dp, err := parseDatePattern(pattern)
		if err != nil {
			return "", err
		}
		t, err := temporalOf(ctx, v)
		if err != nil {
			return "", err
		}
		return renderDate(ctx, t, dp, firstDay, firstWeekType), nil
	case categoryNumber:
		np, err := parseNumberPattern(pattern)
		if err != nil {
			return "", err
		}
		return renderNumber(ctx, v, np)
	case categoryText:
		tp, err := parseTextPattern(pattern)
		if err != nil {
			return "", err
		}
		return renderText(v, tp), nil
	default:
		return generalRender(ctx, v, firstDay, firstWeekType), nil
	}
}

// generalRender is used for an empty or purely-literal pattern: it
// branches on v's own kind rather than the pattern's.
func generalRender(ctx hostctx.EvalContext, v value.Value, firstDay, firstWeekType int) string {
	switch v.Kind() {
	case value.KindDate, value.KindTime, value.KindDateTime:
		t, err := value.AsDateTime(v)
		if err != nil {
			return value.AsString(v)
		}
		return renderGeneralDate(ctx, t, v.Kind())
	case value.KindBool:
		b, _ := value.AsBool(v)
		if b {
			return "True"
		}
		return "False"
	default:
		return value.AsString(v)
	}
}

// classify performs the one-pass scan spec's custom-pattern dispatch: it
// walks the pattern skipping literal escapes (\x, "...", [...] color tags)
// and reports the category of the first meaningful character class
// encountered. A pattern with no meaningful characters (pure literal) is
// categoryGeneral.
func classify(pattern string) category {
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			i++ // skip escaped literal
			continue
		case r == '"':
			i++
			for i < len(runes) && runes[i] != '"' {
				i++
			}
			continue
		case r == '[':
			for i < len(runes) && runes[i] != ']' {
				i++
			}
			continue
		case strings.ContainsRune("0#.,%", r):
			return categoryNumber
		case r == 'e' || r == 'E':
			if i+1 < len(runes) && (runes[i+1] == '+' || runes[i+1] == '-') {
				return categoryNumber
			}
		case strings.ContainsRune("dmyhnswqDMYHNSWQ", r):
			return categoryDate
		case r == 'A' || r == 'a':
			// AM/PM, am/pm, A/P, a/p, AMPM all start the date dialect.
			return categoryDate
		case r == '@' || r == '&':
			return categoryText
		case r == '<' || r == '>' || r == '!':
			return categoryText
		}
	}
	return categoryGeneral
}
