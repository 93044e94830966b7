package lexer

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/token"
)

// lexer holds the scanning state for one Tokenize call. Unexported:
// callers only ever see the package-level Tokenize function, the way the
// teacher exposes lexer.New() but keeps most Lexer fields private.
type lexer struct {
	input    []rune
	pos      int
	line     int
	col      int
	exprType hostctx.ExprType
	locale   hostctx.LocaleContext
}

// Tokenize lexes src under the given parse mode and locale. It returns
// (nil, nil) for empty or whitespace-only input.
func Tokenize(exprType hostctx.ExprType, src string, locale hostctx.LocaleContext) ([]token.Token, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, nil
	}

	l := &lexer{
		input:    []rune(src),
		line:     1,
		col:      1,
		exprType: exprType,
		locale:   locale,
	}

	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *lexer) peekRuneAt(offset int) (rune, bool) {
	i := l.pos + offset
	if i >= len(l.input) {
		return 0, false
	}
	return l.input[i], true
}

func (l *lexer) advance() rune {
	r := l.input[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) currentPos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func asciiByte(r rune) (byte, bool) {
	if r < 128 {
		return byte(r), true
	}
	return 0, false
}

func (l *lexer) next() (token.Token, error) {
	r, ok := l.peekRune()
	if !ok {
		return token.Token{Kind: token.EOF}, nil
	}

	startPos := l.currentPos()

	if b, isAscii := asciiByte(r); isAscii {
		flags := classify(b)
		switch {
		case flags.has(flagSpace):
			return l.scanSpace(startPos), nil
		case flags.has(flagOp):
			l.advance()
			return token.Token{Kind: token.Op, ValueStr: string(r), Pos: startPos}, nil
		case flags.has(flagComp):
			return l.scanComp(startPos), nil
		case flags.has(flagDelim):
			l.advance()
			return token.Token{Kind: token.Delim, ValueStr: string(r), Pos: startPos}, nil
		case b == '"' || b == '\'':
			return l.scanQuotedString(startPos, r)
		case b == '#':
			return l.scanHashLiteral(startPos)
		case b == '[':
			return l.scanBracketedIdent(startPos)
		}
	}

	if unicode.IsDigit(r) {
		if tok, ok, err := l.tryScanNumber(startPos); err != nil {
			return token.Token{}, err
		} else if ok {
			return tok, nil
		}
	}

	return l.scanBareWord(startPos), nil
}

func (l *lexer) scanSpace(start token.Position) token.Token {
	for {
		r, ok := l.peekRune()
		if !ok {
			break
		}
		b, isAscii := asciiByte(r)
		if !isAscii || !classify(b).has(flagSpace) {
			break
		}
		l.advance()
	}
	return token.Token{Kind: token.Space, ValueStr: " ", Pos: start}
}

// scanComp greedily matches <=, >=, <>, else a single comparison char. A
// leading '=' in a DefaultValue expression needs no special casing here: a
// standalone '=' already emits a single-char Op, and it's the parser's job
// to read that leading token and switch into full-expression mode.
func (l *lexer) scanComp(start token.Position) token.Token {
	r := l.advance()
	if next, ok := l.peekRune(); ok {
		pair := string(r) + string(next)
		switch pair {
		case "<=", ">=", "<>":
			l.advance()
			return token.Token{Kind: token.Op, ValueStr: pair, Pos: start}
		}
	}
	return token.Token{Kind: token.Op, ValueStr: string(r), Pos: start}
}

func (l *lexer) scanQuotedString(start token.Position, quote rune) (token.Token, error) {
	l.advance() // consume opening quote
	var b strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token.Token{}, accerr.NewParseError(start, "unterminated string literal")
		}
		if r == quote {
			l.advance()
			if next, ok := l.peekRune(); ok && next == quote {
				// Doubled quote: literal escape.
				l.advance()
				b.WriteRune(quote)
				continue
			}
			break
		}
		b.WriteRune(l.advance())
	}
	return token.Token{
		Kind:     token.Literal,
		ValueStr: b.String(),
		Value:    b.String(),
		ValType:  token.StringValue,
		Pos:      start,
		Quoted:   true,
	}, nil
}

func (l *lexer) scanBracketedIdent(start token.Position) (token.Token, error) {
	l.advance() // consume '['
	var b strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token.Token{}, accerr.NewParseError(start, "unbalanced bracket in identifier")
		}
		if r == ']' {
			l.advance()
			break
		}
		b.WriteRune(l.advance())
	}
	return token.Token{
		Kind:      token.ObjName,
		ValueStr:  b.String(),
		Pos:       start,
		Bracketed: true,
	}, nil
}

// scanHashLiteral reads a #...# date/time literal and classifies it:
// presence of the locale's date separator, time separator, and a trailing
// am/pm suffix determine whether it's a Date, Time, or DateTime, and
// whether the time part is 12- or 24-hour.
func (l *lexer) scanHashLiteral(start token.Position) (token.Token, error) {
	l.advance() // consume opening '#'
	var b strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			return token.Token{}, accerr.NewParseError(start, "unterminated date literal")
		}
		if r == '#' {
			l.advance()
			break
		}
		b.WriteRune(l.advance())
	}
	raw := strings.TrimSpace(b.String())
	val, valType, err := ParseTemporalString(raw, l.locale)
	if err != nil {
		return token.Token{}, accerr.NewParseError(start, "invalid date literal %q: %v", raw, err)
	}
	return token.Token{
		Kind:     token.Literal,
		ValueStr: raw,
		Value:    val,
		ValType:  valType,
		Pos:      start,
	}, nil
}

// ParseTemporalString parses raw the same way a #...# literal's contents
// are parsed, classifying the result as Date, Time, or DateTime by which
// of the locale's date/time separators appear in it. Exported so callers
// outside the tokenizer (CDate, IsDate, DateValue, TimeValue) can parse a
// plain string the same way without requiring the surrounding '#'s.
func ParseTemporalString(raw string, locale hostctx.LocaleContext) (time.Time, token.ValueType, error) {
	temporal := locale.Temporal()
	dateSep := string(temporal.DateSeparator)
	timeSep := string(temporal.TimeSeparator)

	hasDate := dateSep != "" && strings.Contains(raw, dateSep)
	hasTime := timeSep != "" && strings.Contains(raw, timeSep)

	lower := strings.ToLower(raw)
	hasAMPM := strings.HasSuffix(lower, " am") || strings.HasSuffix(lower, " pm") ||
		strings.HasSuffix(lower, "am") || strings.HasSuffix(lower, "pm")

	switch {
	case hasDate && hasTime:
		layout := temporal.ShortDateLayout + " " + pickTimeLayout(temporal, hasAMPM)
		t, err := time.Parse(layout, raw)
		return t, token.DateTimeValue, err
	case hasDate:
		t, err := time.Parse(temporal.ShortDateLayout, raw)
		return t, token.DateValue, err
	case hasTime:
		// Time-only literals are parsed against a synthetic base date
		// matching the Access epoch.
		base, err := time.Parse(temporal.ShortDateLayout, reformatEpochBase(temporal))
		if err != nil {
			return time.Time{}, token.NoValue, err
		}
		layout := pickTimeLayout(temporal, hasAMPM)
		t, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, token.NoValue, err
		}
		merged := time.Date(base.Year(), base.Month(), base.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
		return merged, token.TimeValue, nil
	default:
		// A bare numeric or word inside # # (rare); try short date as a
		// last resort.
		t, err := time.Parse(temporal.ShortDateLayout, raw)
		return t, token.DateValue, err
	}
}

func pickTimeLayout(t hostctx.TemporalConfig, hasAMPM bool) string {
	if hasAMPM {
		return t.ShortTimeLayout
	}
	return t.LongTimeLayout
}

// reformatEpochBase renders "12/30/1899" using the locale's date
// separator, as the synthetic base date for time-only literals.
func reformatEpochBase(t hostctx.TemporalConfig) string {
	sep := string(t.DateSeparator)
	if sep == "" {
		sep = "/"
	}
	return strings.Join([]string{"12", "30", "1899"}, sep)
}

// tryScanNumber attempts the bare numeric literal grammar: leading digit,
// digits, at most one '.', optional e/E exponent. On failure the cursor
// must not have moved, so the caller falls through to bare-word scanning.
func (l *lexer) tryScanNumber(start token.Position) (token.Token, bool, error) {
	savedPos, savedLine, savedCol := l.pos, l.line, l.col
	var b strings.Builder

	for {
		r, ok := l.peekRune()
		if !ok || !unicode.IsDigit(r) {
			break
		}
		b.WriteRune(l.advance())
	}
	if r, ok := l.peekRune(); ok && r == '.' {
		if next, ok2 := l.peekRuneAt(1); !ok2 || unicode.IsDigit(next) || !identCharAfterDot(b.String()) {
			b.WriteRune(l.advance())
			for {
				r, ok := l.peekRune()
				if !ok || !unicode.IsDigit(r) {
					break
				}
				b.WriteRune(l.advance())
			}
		}
	}
	if r, ok := l.peekRune(); ok && (r == 'e' || r == 'E') {
		savedExpPos, savedExpLine, savedExpCol := l.pos, l.line, l.col
		var exp strings.Builder
		exp.WriteRune(l.advance())
		if r, ok := l.peekRune(); ok && (r == '+' || r == '-') {
			exp.WriteRune(l.advance())
		}
		digits := 0
		for {
			r, ok := l.peekRune()
			if !ok || !unicode.IsDigit(r) {
				break
			}
			exp.WriteRune(l.advance())
			digits++
		}
		if digits > 0 {
			b.WriteString(exp.String())
		} else {
			l.pos, l.line, l.col = savedExpPos, savedExpLine, savedExpCol
		}
	}

	text := b.String()
	if text == "" || !isWordBoundaryAfter(l) {
		l.pos, l.line, l.col = savedPos, savedLine, savedCol
		return token.Token{}, false, nil
	}

	if i, err := strconv.ParseInt(text, 10, 32); err == nil && !strings.ContainsAny(text, ".eE") {
		return token.Token{
			Kind:     token.Literal,
			ValueStr: text,
			Value:    int32(i),
			ValType:  token.LongValue,
			Pos:      start,
		}, true, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		l.pos, l.line, l.col = savedPos, savedLine, savedCol
		return token.Token{}, false, nil
	}
	return token.Token{
		Kind:     token.Literal,
		ValueStr: text,
		Value:    d,
		ValType:  token.BigDecValue,
		Pos:      start,
	}, true, nil
}

// identCharAfterDot guards against consuming an object-path '.' (e.g.
// "123.Name") as a decimal point when what follows isn't itself a digit;
// digitsSoFar is non-empty whenever this is called, since a bare "." never
// reaches tryScanNumber.
func identCharAfterDot(digitsSoFar string) bool {
	return digitsSoFar != ""
}

// isWordBoundaryAfter is a placeholder hook kept for symmetry with the
// bare-word scanner's boundary logic; numeric literals always stop at the
// first non-digit/non-exponent character, so this is always true today.
func isWordBoundaryAfter(*lexer) bool { return true }

func (l *lexer) scanBareWord(start token.Position) token.Token {
	var b strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok {
			break
		}
		if ba, isAscii := asciiByte(r); isAscii {
			flags := classify(ba)
			if flags.has(flagOp) || flags.has(flagComp) || flags.has(flagDelim) || flags.has(flagSpace) || flags.has(flagQuote) {
				break
			}
		}
		b.WriteRune(l.advance())
	}
	text := b.String()
	return token.Token{Kind: token.String, ValueStr: text, Pos: start}
}
