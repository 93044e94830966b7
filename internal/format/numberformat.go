package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
)

// numberSection is one semicolon-delimited section of a custom number
// format: a literal prefix, an integer/fraction digit-placeholder spec,
// and a literal suffix. '#' placeholders are optional (no padding, no
// forced trailing zero); '0' placeholders are required.
type numberSection struct {
	prefix     string
	intSpec    []rune // '0' or '#', left to right as written
	grouping   bool
	hasPoint   bool
	fracSpec   []rune // '0' or '#', left to right as written
	suffix     string
	percent    bool
	scientific bool
	expUpper   bool
	expSign    bool // true: "E+" (always shows sign); false: "E-" (sign only if negative)
	expDigits  int
}

type numberPattern struct {
	sections [4]*numberSection // positive, negative, zero, null; nil if absent
}

// parseNumberPattern splits pattern on top-level ';' and parses each of up
// to four sections.
func parseNumberPattern(pattern string) (*numberPattern, error) {
	parts := splitSections(pattern)
	if len(parts) > 4 {
		return nil, accerr.NewEvalError(accerr.CategoryPattern, "number format has more than four sections")
	}
	np := &numberPattern{}
	for i, part := range parts {
		sec, err := parseNumberSection(part)
		if err != nil {
			return nil, err
		}
		np.sections[i] = sec
	}
	return np, nil
}

// splitSections splits on ';' that is not inside a quoted literal or a
// \-escaped position.
func splitSections(pattern string) []string {
	runes := []rune(pattern)
	var parts []string
	var cur strings.Builder
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			cur.WriteRune(runes[i])
			if i+1 < len(runes) {
				i++
				cur.WriteRune(runes[i])
			}
		case '"':
			cur.WriteRune(runes[i])
			i++
			for i < len(runes) && runes[i] != '"' {
				cur.WriteRune(runes[i])
				i++
			}
			if i < len(runes) {
				cur.WriteRune(runes[i])
			}
		case ';':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(runes[i])
		}
	}
	parts = append(parts, cur.String())
	return parts
}

func parseNumberSection(pattern string) (*numberSection, error) {
	sec := &numberSection{}
	runes := []rune(pattern)

	var prefix, suffix strings.Builder
	seenDigit := false

	writeLiteral := func(s string) {
		if !seenDigit {
			prefix.WriteString(s)
		} else {
			suffix.WriteString(s)
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 < len(runes) {
				i++
				writeLiteral(string(runes[i]))
			}
		case '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				j++
			}
			writeLiteral(string(runes[i+1 : j]))
			i = j
		case '[':
			for i < len(runes) && runes[i] != ']' {
				i++
			}
		case '*':
			if i+1 < len(runes) {
				i++
			}
		case '!':
			// left-align, no width effect in this engine; ignored.
		case '0', '#':
			seenDigit = true
			if sec.hasPoint {
				sec.fracSpec = append(sec.fracSpec, r)
			} else {
				sec.intSpec = append(sec.intSpec, r)
			}
		case ',':
			if seenDigit && !sec.hasPoint {
				sec.grouping = true
			} else if !seenDigit {
				writeLiteral(",")
			}
		case '.':
			sec.hasPoint = true
			seenDigit = true
		case '%':
			sec.percent = true
			writeLiteral("%")
		case 'E', 'e':
			if i+1 < len(runes) && (runes[i+1] == '+' || runes[i+1] == '-') {
				sec.scientific = true
				sec.expUpper = r == 'E'
				sec.expSign = runes[i+1] == '+'
				i++
				j := i + 1
				for j < len(runes) && runes[j] == '0' {
					j++
				}
				sec.expDigits = j - i - 1
				if sec.expDigits < 1 {
					sec.expDigits = 1
				}
				i = j - 1
			} else {
				writeLiteral(string(r))
			}
		default:
			writeLiteral(string(r))
		}
	}

	sec.prefix = prefix.String()
	sec.suffix = suffix.String()
	return sec, nil
}

func renderPredefinedNumber(ctx hostctx.EvalContext, v value.Value, key string) (string, error) {
	named := ctx.Numeric().NamedFormats
	canonical := map[string]string{
		"general number": "",
		"currency":       "$#,##0.00;($#,##0.00)",
		"euro":           "€#,##0.00;(€#,##0.00)",
		"fixed":          "0.00",
		"standard":       "#,##0.00",
		"percent":        "0.00%",
		"scientific":     "0.00E+00",
	}
	display := map[string]string{
		"general number": "General Number", "currency": "Currency", "euro": "Euro",
		"fixed": "Fixed", "standard": "Standard", "percent": "Percent", "scientific": "Scientific",
	}
	pat := canonical[key]
	if named != nil {
		if override, ok := named[display[key]]; ok {
			pat = override
		}
	}
	if key == "general number" && pat == "" {
		return generalNumberRender(v), nil
	}
	np, err := parseNumberPattern(pat)
	if err != nil {
		return "", err
	}
	return renderNumber(ctx, v, np)
}

// generalNumberRender mimics VBA's "General Number": the shortest
// round-trip decimal representation, no grouping, no forced decimals.
func generalNumberRender(v value.Value) string {
	d, err := value.AsBigDecimal(v)
	if err != nil {
		return value.AsString(v)
	}
	return d.String()
}

func renderNumber(ctx hostctx.EvalContext, v value.Value, np *numberPattern) (string, error) {
	if v.IsNull() {
		if np.sections[3] != nil {
			return renderSection(np.sections[3], decimal.Zero, ctx), nil
		}
		return "", nil
	}

	d, err := value.AsBigDecimal(v)
	if err != nil {
		return "", err
	}

	pos := np.sections[0]
	if pos == nil {
		pos, err = parseNumberSection("0")
		if err != nil {
			return "", err
		}
	}

	switch {
	case d.IsNegative():
		if np.sections[1] != nil {
			return renderSection(np.sections[1], d.Abs(), ctx), nil
		}
		return "-" + renderSection(pos, d.Abs(), ctx), nil
	case d.IsZero():
		if np.sections[2] != nil {
			return renderSection(np.sections[2], d, ctx), nil
		}
		return renderSection(pos, d, ctx), nil
	default:
		return renderSection(pos, d, ctx), nil
	}
}

func renderSection(sec *numberSection, d decimal.Decimal, ctx hostctx.EvalContext) string {
	if len(sec.intSpec) == 0 && len(sec.fracSpec) == 0 && !sec.scientific {
		return sec.prefix
	}

	numeric := ctx.Numeric()
	decSep := string(numeric.DecimalSeparator)
	if decSep == "\x00" || decSep == "" {
		decSep = "."
	}
	groupSep := string(numeric.GroupSeparator)
	if groupSep == "\x00" || groupSep == "" {
		groupSep = ","
	}

	if sec.percent {
		d = d.Mul(decimal.NewFromInt(100))
	}

	if sec.scientific {
		return sec.prefix + renderScientific(sec, d) + sec.suffix
	}

	fracDigits := int32(len(sec.fracSpec))
	d = d.Round(fracDigits)

	intPart := d.Truncate(0).Abs().String()
	fracPart := ""
	if fracDigits > 0 {
		scaled := d.Abs().Sub(d.Abs().Truncate(0)).Shift(fracDigits).Round(0)
		fracPart = padLeft(scaled.String(), int(fracDigits), '0')
	}

	requiredInt := countRune(sec.intSpec, '0')
	for len(intPart) < requiredInt {
		intPart = "0" + intPart
	}
	if sec.grouping {
		intPart = groupDigits(intPart, groupSep)
	}

	trailingFracOptional := trailingOptionalCount(sec.fracSpec)
	trimmed := strings.TrimRight(fracPart, "0")
	minFracLen := len(fracPart) - trailingFracOptional
	if minFracLen < 0 {
		minFracLen = 0
	}
	if len(trimmed) < minFracLen {
		trimmed = fracPart[:minFracLen]
	}

	var b strings.Builder
	b.WriteString(sec.prefix)
	b.WriteString(intPart)
	if trimmed != "" {
		b.WriteString(decSep)
		b.WriteString(trimmed)
	}
	b.WriteString(sec.suffix)
	return b.String()
}

func renderScientific(sec *numberSection, d decimal.Decimal) string {
	f, _ := d.Float64()
	neg := f < 0
	if neg {
		f = -f
	}
	exp := 0
	if f != 0 {
		for f >= 10 {
			f /= 10
			exp++
		}
		for f < 1 {
			f *= 10
			exp--
		}
	}
	mantissa := decimal.NewFromFloat(f).Round(int32(len(sec.fracSpec)))
	eChar := "E"
	if !sec.expUpper {
		eChar = "e"
	}
	sign := "+"
	if exp < 0 {
		sign = "-"
	} else if !sec.expSign {
		sign = ""
	}
	expStr := padLeft(strconv.Itoa(abs(exp)), sec.expDigits, '0')
	out := mantissa.String() + eChar + sign + expStr
	if neg {
		out = "-" + out
	}
	return out
}

func countRune(rs []rune, target rune) int {
	n := 0
	for _, r := range rs {
		if r == target {
			n++
		}
	}
	return n
}

// trailingOptionalCount counts the run of '#' placeholders at the end of
// a fraction spec, the portion allowed to disappear entirely when the
// value has fewer significant fraction digits.
func trailingOptionalCount(spec []rune) int {
	n := 0
	for i := len(spec) - 1; i >= 0 && spec[i] == '#'; i-- {
		n++
	}
	return n
}

func groupDigits(s, sep string) string {
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, sep)
}

func padLeft(s string, n int, pad byte) string {
	for len(s) < n {
		s = string(pad) + s
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
