package functions

import (
	"strings"
	"unicode/utf8"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
)

func init() {
	Register("Asc", CategoryText, "Returns the ANSI character code of the first character of a string (0..255).",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) {
			if s == "" {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Asc requires a non-empty string")
			}
			r, _ := utf8.DecodeRuneInString(s)
			if r > 255 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Asc requires a character code <= 255, use AscW for Unicode")
			}
			return value.NewLong(int32(r)), nil
		})))
	Register("AscW", CategoryText, "Returns the Unicode code point of the first character of a string.",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) {
			if s == "" {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "AscW requires a non-empty string")
			}
			r, _ := utf8.DecodeRuneInString(s)
			return value.NewLong(int32(r)), nil
		})))

	Register("Chr", CategoryText, "Returns the ANSI character for a character code (0..255).",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			n, err := value.AsLong(v)
			if err != nil {
				return nil, err
			}
			if n < 0 || n > 255 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Chr requires a character code in 0..255, use ChrW for Unicode")
			}
			return value.NewString(string(rune(n))), nil
		})))
	Register("ChrW", CategoryText, "Returns the character for a Unicode code point.", fn(1, 1, true, chrFn()))

	Register("Str", CategoryText, "Converts a number to its string representation, with a leading space for non-negative values.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			d, err := value.AsDouble(v)
			if err != nil {
				return nil, err
			}
			s := v.String()
			if d >= 0 {
				s = " " + s
			}
			return value.NewString(s), nil
		})))

	Register("LCase", CategoryText, "Converts a string to lowercase.",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) { return value.NewString(strings.ToLower(s)), nil })))
	Register("UCase", CategoryText, "Converts a string to uppercase.",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) { return value.NewString(strings.ToUpper(s)), nil })))
	Register("LTrim", CategoryText, "Removes leading spaces from a string.",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) { return value.NewString(strings.TrimLeft(s, " ")), nil })))
	Register("RTrim", CategoryText, "Removes trailing spaces from a string.",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) { return value.NewString(strings.TrimRight(s, " ")), nil })))
	Register("Trim", CategoryText, "Removes leading and trailing spaces from a string.",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) { return value.NewString(strings.Trim(s, " ")), nil })))
	Register("StrReverse", CategoryText, "Reverses the characters of a string.",
		fn(1, 1, true, textFn(func(s string) (value.Value, error) {
			r := []rune(s)
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return value.NewString(string(r)), nil
		})))

	Register("Len", CategoryText, "Returns the length of a string in characters.",
		fn(1, 1, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if args[0].IsNull() {
				return value.Null, nil
			}
			return value.NewLong(int32(utf8.RuneCountInString(value.AsString(args[0])))), nil
		}))

	Register("Space", CategoryText, "Returns a string of the given number of spaces.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			n, err := value.AsLong(v)
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Space requires a non-negative count")
			}
			return value.NewString(strings.Repeat(" ", int(n))), nil
		})))

	Register("String", CategoryText, "Repeats a character the given number of times.",
		fn(2, 2, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			n, err := value.AsLong(args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "String requires a non-negative count")
			}
			var ch string
			if args[1].Kind() == value.KindString {
				s := value.AsString(args[1])
				if s == "" {
					return nil, accerr.NewEvalError(accerr.CategoryRange, "String requires a non-empty character argument")
				}
				r, _ := utf8.DecodeRuneInString(s)
				ch = string(r)
			} else {
				code, err := value.AsLong(args[1])
				if err != nil {
					return nil, err
				}
				ch = string(rune(code))
			}
			return value.NewString(strings.Repeat(ch, int(n))), nil
		}))

	Register("Left", CategoryText, "Returns the leftmost characters of a string.",
		fn(2, 2, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			s := []rune(value.AsString(args[0]))
			n, err := value.AsLong(args[1])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Left requires a non-negative length")
			}
			if int(n) > len(s) {
				n = int32(len(s))
			}
			return value.NewString(string(s[:n])), nil
		}))

	Register("Right", CategoryText, "Returns the rightmost characters of a string.",
		fn(2, 2, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			s := []rune(value.AsString(args[0]))
			n, err := value.AsLong(args[1])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Right requires a non-negative length")
			}
			if int(n) > len(s) {
				n = int32(len(s))
			}
			return value.NewString(string(s[len(s)-int(n):])), nil
		}))

	Register("Mid", CategoryText, "Returns a substring starting at a 1-based position.",
		fn(2, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if args[0].IsNull() || args[1].IsNull() {
				return value.Null, nil
			}
			s := []rune(value.AsString(args[0]))
			start, err := value.AsLong(args[1])
			if err != nil {
				return nil, err
			}
			if start < 1 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Mid requires a start position >= 1")
			}
			if int(start) > len(s) {
				return value.NewString(""), nil
			}
			length := len(s) - int(start-1)
			if len(args) == 3 && !args[2].IsNull() {
				n, err := value.AsLong(args[2])
				if err != nil {
					return nil, err
				}
				if n < 0 {
					return nil, accerr.NewEvalError(accerr.CategoryRange, "Mid requires a non-negative length")
				}
				if int(n) < length {
					length = int(n)
				}
			}
			return value.NewString(string(s[start-1 : int(start-1)+length])), nil
		}))

	Register("InStr", CategoryText, "Returns the 1-based position of the first occurrence of one string within another.",
		fn(2, 4, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			start, s1, s2, compare, ok, err := instrArgs(args)
			if !ok || err != nil {
				return nil, err
			}
			hay, needle := normalizeCompare(s1, compare), normalizeCompare(s2, compare)
			runes := []rune(hay)
			if start < 1 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "InStr requires a start position >= 1")
			}
			if int(start) > len(runes)+1 {
				return value.NewLong(0), nil
			}
			idx := strings.Index(string(runes[start-1:]), needle)
			if idx < 0 {
				return value.NewLong(0), nil
			}
			pos := start + int32(utf8.RuneCountInString(string(runes[start-1:])[:idx]))
			return value.NewLong(pos), nil
		}))

	Register("InStrRev", CategoryText, "Returns the 1-based position of the last occurrence of one string within another.",
		fn(2, 4, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			hayOrig := value.AsString(args[0])
			needleOrig := value.AsString(args[1])
			start := int32(utf8.RuneCountInString(hayOrig))
			if len(args) >= 3 && !args[2].IsNull() {
				n, err := value.AsLong(args[2])
				if err != nil {
					return nil, err
				}
				if n < -1 || n == 0 {
					return nil, accerr.NewEvalError(accerr.CategoryRange, "InStrRev requires start >= 1 or -1")
				}
				if n != -1 {
					start = n
				}
			}
			compare := compareArg(args, 3)
			hay := normalizeCompare(hayOrig, compare)
			needle := normalizeCompare(needleOrig, compare)
			runes := []rune(hay)
			if int(start) > len(runes) {
				start = int32(len(runes))
			}
			window := string(runes[:start])
			idx := strings.LastIndex(window, needle)
			if idx < 0 {
				return value.NewLong(0), nil
			}
			pos := int32(utf8.RuneCountInString(window[:idx])) + 1
			return value.NewLong(pos), nil
		}))

	Register("Replace", CategoryText, "Replaces occurrences of one string with another.",
		fn(3, 6, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args[0], args[1], args[2]) {
				return value.Null, nil
			}
			expr := []rune(value.AsString(args[0]))
			find := value.AsString(args[1])
			repl := value.AsString(args[2])
			start := int32(1)
			if len(args) >= 4 && !args[3].IsNull() {
				n, err := value.AsLong(args[3])
				if err != nil {
					return nil, err
				}
				start = n
			}
			count := int32(-1)
			if len(args) >= 5 && !args[4].IsNull() {
				n, err := value.AsLong(args[4])
				if err != nil {
					return nil, err
				}
				count = n
			}
			compare := compareArg(args, 5)
			if start < 1 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Replace requires a start position >= 1")
			}
			if int(start) > len(expr)+1 {
				return value.NewString(""), nil
			}
			head, tail := string(expr[:start-1]), string(expr[start-1:])
			if find == "" {
				return value.NewString(head + tail), nil
			}
			n := int(count)
			if count == -1 {
				n = -1
			}
			var replaced string
			if compare == 0 {
				replaced = strings.Replace(tail, find, repl, n)
			} else {
				replaced = replaceFold(tail, find, repl, n)
			}
			return value.NewString(head + replaced), nil
		}))

	Register("StrComp", CategoryText, "Compares two strings, returning -1, 0, or 1.",
		fn(2, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args[0], args[1]) {
				return value.Null, nil
			}
			compare := compareArg(args, 2)
			a, b := normalizeCompare(value.AsString(args[0]), compare), normalizeCompare(value.AsString(args[1]), compare)
			switch {
			case a < b:
				return value.NewLong(-1), nil
			case a > b:
				return value.NewLong(1), nil
			default:
				return value.NewLong(0), nil
			}
		}))

	Register("StrConv", CategoryText, "Converts a string's case per a VBA conversion code (1=uppercase, 2=lowercase, 3=proper case).",
		fn(2, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args[0], args[1]) {
				return value.Null, nil
			}
			s := value.AsString(args[0])
			code, err := value.AsLong(args[1])
			if err != nil {
				return nil, err
			}
			switch code {
			case 1:
				return value.NewString(strings.ToUpper(s)), nil
			case 2:
				return value.NewString(strings.ToLower(s)), nil
			case 3:
				return value.NewString(strings.Title(strings.ToLower(s))), nil
			default:
				return value.NewString(s), nil
			}
		}))

	Register("Hex", CategoryText, "Returns the hexadecimal string for a number's 32-bit two's-complement representation.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			n, err := value.AsLong(v)
			if err != nil {
				return nil, err
			}
			return value.NewString(strings.ToUpper(strconvUint(uint32(n), 16))), nil
		})))
	Register("Oct", CategoryText, "Returns the octal string for a number's 32-bit two's-complement representation.",
		fn(1, 1, true, numericFn(func(v value.Value) (value.Value, error) {
			n, err := value.AsLong(v)
			if err != nil {
				return nil, err
			}
			return value.NewString(strconvUint(uint32(n), 8)), nil
		})))
}

func chrFn() func(hostctx.EvalContext, []value.Value) (value.Value, error) {
	return numericFn(func(v value.Value) (value.Value, error) {
		n, err := value.AsLong(v)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > 0x10FFFF {
			return nil, accerr.NewEvalError(accerr.CategoryRange, "character code %d is out of range", n)
		}
		return value.NewString(string(rune(n))), nil
	})
}

func textFn(f func(string) (value.Value, error)) func(hostctx.EvalContext, []value.Value) (value.Value, error) {
	return func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
		if args[0].IsNull() {
			return value.Null, nil
		}
		return f(value.AsString(args[0]))
	}
}

// instrArgs disambiguates InStr's two call shapes: InStr(s1, s2[, compare])
// and InStr(start, s1, s2[, compare]).
func instrArgs(args []value.Value) (start int32, s1, s2 string, compare int32, ok bool, err error) {
	if len(args) == 2 || (len(args) == 3 && args[0].Kind() == value.KindString) {
		s1, s2 = value.AsString(args[0]), value.AsString(args[1])
		compare = compareArg(args, 2)
		return 1, s1, s2, compare, true, nil
	}
	n, cerr := value.AsLong(args[0])
	if cerr != nil {
		return 0, "", "", 0, false, cerr
	}
	s1, s2 = value.AsString(args[1]), value.AsString(args[2])
	compare = compareArg(args, 3)
	return n, s1, s2, compare, true, nil
}

// compareArg reads the optional compare-mode argument at index i: 0 means
// binary (case-sensitive), anything else (including omitted) means text
// (case-insensitive), matching the engine's case-insensitive default.
func compareArg(args []value.Value, i int) int32 {
	if i >= len(args) || args[i].IsNull() {
		return 1
	}
	n, err := value.AsLong(args[i])
	if err != nil {
		return 1
	}
	return n
}

func normalizeCompare(s string, compare int32) string {
	if compare == 0 {
		return s
	}
	return strings.ToLower(s)
}

func replaceFold(s, find, repl string, n int) string {
	lowerS, lowerFind := strings.ToLower(s), strings.ToLower(find)
	var b strings.Builder
	count := 0
	for {
		if n >= 0 && count >= n {
			b.WriteString(s)
			return b.String()
		}
		idx := strings.Index(lowerS, lowerFind)
		if idx < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:idx])
		b.WriteString(repl)
		s = s[idx+len(find):]
		lowerS = lowerS[idx+len(find):]
		count++
	}
}

func strconvUint(n uint32, base int) string {
	if n == 0 {
		return "0"
	}
	const digits = "0123456789abcdef"
	var buf [32]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = digits[n%uint32(base)]
		n /= uint32(base)
	}
	return string(buf[i:])
}
