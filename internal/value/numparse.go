package value

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TryParseNumber attempts to read s as the tokenizer's bare numeric
// literal grammar would: optional sign, digits, at most one '.', optional
// exponent. It returns a Long for integral values that fit in 32 bits,
// else a BigDec, and false if s is not a well-formed number. Shared by the
// lexer's literal scanning and by the operator kernel's string/number
// promotion rules.
func TryParseNumber(s string) (Value, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, false
	}
	if !looksNumeric(trimmed) {
		return nil, false
	}
	if i, err := strconv.ParseInt(trimmed, 10, 32); err == nil {
		return NewLong(int32(i)), true
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, false
	}
	if whole := d.Truncate(0); whole.Equal(d) {
		if i := whole.BigInt(); i.IsInt64() {
			v := i.Int64()
			if v >= -(1<<31) && v <= (1<<31)-1 {
				return NewLong(int32(v)), true
			}
		}
	}
	return NewBigDec(d), true
}

// looksNumeric performs a conservative shape check before handing off to
// strconv/decimal parsing, so that bare words like "E" or "." are rejected
// up front rather than producing a misleading parse error deeper down.
func looksNumeric(s string) bool {
	i := 0
	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsBefore := 0
	for i < n && isDigit(s[i]) {
		i++
		digitsBefore++
	}
	hasDot := false
	digitsAfter := 0
	if i < n && s[i] == '.' {
		hasDot = true
		i++
		for i < n && isDigit(s[i]) {
			i++
			digitsAfter++
		}
	}
	if digitsBefore == 0 && digitsAfter == 0 {
		return false
	}
	_ = hasDot
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < n && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := 0
		for i < n && isDigit(s[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return false
		}
	}
	return i == n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
