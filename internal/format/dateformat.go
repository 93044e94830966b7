package format

import (
	"fmt"
	"strings"
	"time"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
)

// dateToken identifies one recognized element of a custom date/time
// pattern. literalToken carries its text verbatim in datePattern.lit.
type dateToken int

const (
	tokLiteral dateToken = iota
	tokD
	tokDD
	tokDDD
	tokDDDD
	tokDDDDD
	tokDDDDDD
	tokW
	tokWW
	tokM
	tokMM
	tokMMM
	tokMMMM
	tokQ
	tokY
	tokYY
	tokYYYY
	tokH
	tokHH
	tokN
	tokNN
	tokS
	tokSS
	tokTTTTT
	tokAMPMUpperSlash // AM/PM
	tokAmpmLowerSlash // am/pm
	tokAPUpper        // A/P
	tokApLower        // a/p
	tokAMPM           // AMPM, locale string with no slash
	tokDateSep        // '/'
	tokTimeSep        // ':'
)

// the token dictionary, longest prefix first so a greedy left-to-right
// scan never accepts a strict prefix of a longer valid token.
var dateTokenTable = []struct {
	text string
	tok  dateToken
	cs   bool // case-sensitive match (controls AM/PM case in output)
}{
	{"dddddd", tokDDDDDD, false},
	{"ddddd", tokDDDDD, false},
	{"AM/PM", tokAMPMUpperSlash, true},
	{"am/pm", tokAmpmLowerSlash, true},
	{"AMPM", tokAMPM, true},
	{"dddd", tokDDDD, false},
	{"mmmm", tokMMMM, false},
	{"yyyy", tokYYYY, false},
	{"ttttt", tokTTTTT, false},
	{"ddd", tokDDD, false},
	{"mmm", tokMMM, false},
	{"A/P", tokAPUpper, true},
	{"a/p", tokApLower, true},
	{"dd", tokDD, false},
	{"ww", tokWW, false},
	{"mm", tokMM, false},
	{"yy", tokYY, false},
	{"hh", tokHH, false},
	{"nn", tokNN, false},
	{"ss", tokSS, false},
	{"d", tokD, false},
	{"w", tokW, false},
	{"m", tokM, false},
	{"q", tokQ, false},
	{"y", tokY, false},
	{"h", tokH, false},
	{"n", tokN, false},
	{"s", tokS, false},
}

type dateElement struct {
	tok dateToken
	lit string
}

type datePattern struct {
	elems     []dateElement
	has12Hour bool
}

// parseDatePattern tokenizes pattern via longest-prefix matching against
// dateTokenTable, treating ':' and '/' as locale-substituted literals and
// \x / "..." as escaped literal text.
func parseDatePattern(pattern string) (*datePattern, error) {
	runes := []rune(pattern)
	var elems []dateElement
	has12Hour := false

	for i := 0; i < len(runes); {
		switch runes[i] {
		case '\\':
			if i+1 >= len(runes) {
				return nil, accerr.NewEvalError(accerr.CategoryPattern, "dangling escape at end of date format")
			}
			elems = append(elems, dateElement{tokLiteral, string(runes[i+1])})
			i += 2
			continue
		case '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			elems = append(elems, dateElement{tokLiteral, string(runes[i+1 : j])})
			i = j + 1
			continue
		case ':':
			elems = append(elems, dateElement{tokTimeSep, ""})
			i++
			continue
		case '/':
			elems = append(elems, dateElement{tokDateSep, ""})
			i++
			continue
		}

		matched := false
		for _, cand := range dateTokenTable {
			n := len(cand.text)
			if i+n > len(runes) {
				continue
			}
			window := string(runes[i : i+n])
			var ok bool
			if cand.cs {
				ok = window == cand.text
			} else {
				ok = strings.EqualFold(window, cand.text)
			}
			if ok {
				elems = append(elems, dateElement{cand.tok, window})
				if cand.tok == tokAMPMUpperSlash || cand.tok == tokAmpmLowerSlash ||
					cand.tok == tokAPUpper || cand.tok == tokApLower || cand.tok == tokAMPM {
					has12Hour = true
				}
				i += n
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		elems = append(elems, dateElement{tokLiteral, string(runes[i])})
		i++
	}

	return &datePattern{elems: elems, has12Hour: has12Hour}, nil
}

func renderDate(ctx hostctx.EvalContext, t time.Time, p *datePattern, firstDay, firstWeekType int) string {
	temporal := ctx.Temporal()
	if firstDay == 0 {
		firstDay = temporal.FirstDayOfWeek
	}
	if firstDay < 1 || firstDay > 7 {
		firstDay = 1
	}
	if firstWeekType == 0 {
		firstWeekType = temporal.FirstWeekOfYear
	}
	if firstWeekType < 1 || firstWeekType > 3 {
		firstWeekType = 1
	}

	var b strings.Builder
	for _, e := range p.elems {
		switch e.tok {
		case tokLiteral:
			b.WriteString(e.lit)
		case tokDateSep:
			b.WriteByte(temporal.DateSeparator)
		case tokTimeSep:
			b.WriteByte(temporal.TimeSeparator)
		case tokD:
			fmt.Fprintf(&b, "%d", t.Day())
		case tokDD:
			fmt.Fprintf(&b, "%02d", t.Day())
		case tokDDD:
			b.WriteString(temporal.WeekdayNamesAbbr[int(t.Weekday())])
		case tokDDDD:
			b.WriteString(temporal.WeekdayNames[int(t.Weekday())])
		case tokDDDDD:
			b.WriteString(layoutOrFallback(t, temporal.ShortDateLayout, "1/2/2006"))
		case tokDDDDDD:
			b.WriteString(layoutOrFallback(t, temporal.LongDateLayout, "January 2, 2006"))
		case tokW:
			fmt.Fprintf(&b, "%d", weekdayNumber(t, firstDay))
		case tokWW:
			fmt.Fprintf(&b, "%d", weekOfYear(t, firstDay, firstWeekType))
		case tokM:
			fmt.Fprintf(&b, "%d", int(t.Month()))
		case tokMM:
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case tokMMM:
			b.WriteString(temporal.MonthNamesAbbr[int(t.Month())-1])
		case tokMMMM:
			b.WriteString(temporal.MonthNames[int(t.Month())-1])
		case tokQ:
			fmt.Fprintf(&b, "%d", (int(t.Month())-1)/3+1)
		case tokY:
			fmt.Fprintf(&b, "%d", t.YearDay())
		case tokYY:
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case tokYYYY:
			fmt.Fprintf(&b, "%d", t.Year())
		case tokH:
			fmt.Fprintf(&b, "%d", hourFor(t, p.has12Hour))
		case tokHH:
			fmt.Fprintf(&b, "%02d", hourFor(t, p.has12Hour))
		case tokN:
			fmt.Fprintf(&b, "%d", t.Minute())
		case tokNN:
			fmt.Fprintf(&b, "%02d", t.Minute())
		case tokS:
			fmt.Fprintf(&b, "%d", t.Second())
		case tokSS:
			fmt.Fprintf(&b, "%02d", t.Second())
		case tokTTTTT:
			b.WriteString(layoutOrFallback(t, temporal.LongTimeLayout, "15:04:05"))
		case tokAMPMUpperSlash:
			b.WriteString(ampmOf(t, temporal, "AM", "PM"))
		case tokAmpmLowerSlash:
			b.WriteString(ampmOf(t, temporal, "am", "pm"))
		case tokAPUpper:
			b.WriteString(apOf(t, "A", "P"))
		case tokApLower:
			b.WriteString(apOf(t, "a", "p"))
		case tokAMPM:
			b.WriteString(ampmOf(t, temporal, temporal.AMString, temporal.PMString))
		}
	}
	return b.String()
}

func layoutOrFallback(t time.Time, layout, fallback string) string {
	if layout == "" {
		layout = fallback
	}
	return t.Format(layout)
}

func hourFor(t time.Time, use12 bool) int {
	h := t.Hour()
	if !use12 {
		return h
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return h
}

func ampmOf(t time.Time, temporal hostctx.TemporalConfig, defAM, defPM string) string {
	if t.Hour() < 12 {
		return defAM
	}
	return defPM
}

func apOf(t time.Time, a, p string) string {
	if t.Hour() < 12 {
		return a
	}
	return p
}

// weekdayNumber returns the 1-based day-of-week counting from firstDay
// (1=Sunday..7=Saturday), matching the Weekday() built-in's convention.
func weekdayNumber(t time.Time, firstDay int) int {
	sunBased := int(t.Weekday()) + 1
	return (sunBased-firstDay+7)%7 + 1
}

// weekOfYear implements the three FirstWeekOfYear rules: 1 = the week
// containing Jan 1 is week 1 (vbFirstJan1); 2 = the first week with at
// least 4 days in the new year; 3 = the first full 7-day week.
func weekOfYear(t time.Time, firstDay, firstWeekType int) int {
	jan1 := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	jan1Offset := weekdayNumber(jan1, firstDay) - 1 // days into its week before Jan 1

	var firstWeekStart time.Time
	switch firstWeekType {
	case 2:
		if jan1Offset <= 3 {
			firstWeekStart = jan1.AddDate(0, 0, -jan1Offset)
		} else {
			firstWeekStart = jan1.AddDate(0, 0, 7-jan1Offset)
		}
	case 3:
		if jan1Offset == 0 {
			firstWeekStart = jan1
		} else {
			firstWeekStart = jan1.AddDate(0, 0, 7-jan1Offset)
		}
	default:
		firstWeekStart = jan1.AddDate(0, 0, -jan1Offset)
	}

	days := int(t.Sub(firstWeekStart).Hours() / 24)
	if days < 0 {
		return weekOfYear(t.AddDate(-1, 0, 0), firstDay, firstWeekType)
	}
	return days/7 + 1
}

func renderGeneralDate(ctx hostctx.EvalContext, t time.Time, kind value.Kind) string {
	temporal := ctx.Temporal()
	hasTime := t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0
	switch kind {
	case value.KindDate:
		return layoutOrFallback(t, temporal.ShortDateLayout, "1/2/2006")
	case value.KindTime:
		return renderShortTime(t, temporal)
	default:
		if !hasTime {
			return layoutOrFallback(t, temporal.ShortDateLayout, "1/2/2006")
		}
		return layoutOrFallback(t, temporal.ShortDateLayout, "1/2/2006") + " " + renderShortTime(t, temporal)
	}
}

func renderShortTime(t time.Time, temporal hostctx.TemporalConfig) string {
	if temporal.ShortTimeLayout != "" {
		return t.Format(temporal.ShortTimeLayout)
	}
	return t.Format("3:04:05 PM")
}

func renderPredefinedDate(ctx hostctx.EvalContext, v value.Value, key string) (string, error) {
	t, err := temporalOf(ctx, v)
	if err != nil {
		return "", err
	}
	temporal := ctx.Temporal()
	switch key {
	case "general date":
		return renderGeneralDate(ctx, t, v.Kind()), nil
	case "long date":
		return layoutOrFallback(t, temporal.LongDateLayout, "January 2, 2006"), nil
	case "medium date":
		return t.Format("02-Jan-06"), nil
	case "short date":
		return layoutOrFallback(t, temporal.ShortDateLayout, "1/2/2006"), nil
	case "long time":
		return layoutOrFallback(t, temporal.LongTimeLayout, "15:04:05"), nil
	case "medium time":
		return t.Format("3:04 PM"), nil
	case "short time":
		return t.Format("15:04"), nil
	}
	return "", accerr.NewEvalError(accerr.CategoryPattern, "unknown predefined date format %q", key)
}
