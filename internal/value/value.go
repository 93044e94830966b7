// Package value implements the closed set of runtime value variants an
// Access expression can produce: Null, Bool, Long, Double, BigDec, String,
// Date, Time, DateTime, plus their total-semantics coercion accessors. Value
// is an interface implemented by one concrete, immutable struct per
// variant — rather than a single struct with a type tag and an interface{}
// payload — so each variant's zero value and conversion rules live next to
// its own type.
package value

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accessexpr/accessexpr/internal/numeric"
)

// Kind identifies which concrete Value variant a value holds.
type Kind int

// The closed set of runtime value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindLong
	KindDouble
	KindBigDec
	KindString
	KindDate
	KindTime
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindLong:
		return "Long"
	case KindDouble:
		return "Double"
	case KindBigDec:
		return "BigDec"
	case KindString:
		return "String"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindDateTime:
		return "DateTime"
	default:
		return "Unknown"
	}
}

// Value is the common interface every runtime value variant implements.
// Concrete implementations are immutable after construction.
type Value interface {
	Kind() Kind
	IsNull() bool
	// String renders the value the way it would appear when concatenated
	// or coerced to text with no explicit Format pattern.
	String() string
}

// ---------------------------------------------------------------------
// Null
// ---------------------------------------------------------------------

// NullValue is the sole inhabitant of the Null variant.
type NullValue struct{}

// Null is the shared Null instance; every Null value is interchangeable.
var Null Value = NullValue{}

func (NullValue) Kind() Kind     { return KindNull }
func (NullValue) IsNull() bool   { return true }
func (NullValue) String() string { return "" }

// ---------------------------------------------------------------------
// Bool
// ---------------------------------------------------------------------

// BoolValue holds a boolean, representationally -1 (true) or 0 (false)
// whenever coerced to a number or string.
type BoolValue bool

// True and False are the two Bool instances.
var (
	True  Value = BoolValue(true)
	False Value = BoolValue(false)
)

// NewBool returns True or False for b.
func NewBool(b bool) Value {
	if b {
		return True
	}
	return False
}

func (BoolValue) Kind() Kind   { return KindBool }
func (BoolValue) IsNull() bool { return false }
func (b BoolValue) String() string {
	if b {
		return "-1"
	}
	return "0"
}

// ---------------------------------------------------------------------
// Long
// ---------------------------------------------------------------------

// LongValue holds a 32-bit signed integer.
type LongValue int32

func NewLong(v int32) Value { return LongValue(v) }

func (LongValue) Kind() Kind   { return KindLong }
func (LongValue) IsNull() bool { return false }
func (l LongValue) String() string {
	return strconv.FormatInt(int64(l), 10)
}

// ---------------------------------------------------------------------
// Double
// ---------------------------------------------------------------------

// DoubleValue holds a 64-bit IEEE-754 floating point number.
type DoubleValue float64

func NewDouble(v float64) Value { return DoubleValue(v) }

func (DoubleValue) Kind() Kind   { return KindDouble }
func (DoubleValue) IsNull() bool { return false }
func (d DoubleValue) String() string {
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

// ---------------------------------------------------------------------
// BigDec
// ---------------------------------------------------------------------

// BigDecValue holds an arbitrary-precision decimal, always kept in a
// normal form: scale >= 0, no trailing zeros, zero represented as
// scale-0 zero.
type BigDecValue struct {
	D decimal.Decimal
}

// NewBigDec normalizes d and returns it as a Value.
func NewBigDec(d decimal.Decimal) Value {
	return BigDecValue{D: numeric.Normalize(d)}
}

func (BigDecValue) Kind() Kind   { return KindBigDec }
func (BigDecValue) IsNull() bool { return false }
func (b BigDecValue) String() string {
	return b.D.String()
}

// ---------------------------------------------------------------------
// String
// ---------------------------------------------------------------------

// StringValue holds a text value.
type StringValue string

func NewString(v string) Value { return StringValue(v) }

func (StringValue) Kind() Kind   { return KindString }
func (StringValue) IsNull() bool { return false }
func (s StringValue) String() string {
	return string(s)
}

// ---------------------------------------------------------------------
// Temporal variants: Date, Time, DateTime
// ---------------------------------------------------------------------

// TemporalValue holds an instant plus a type tag distinguishing
// date-only, time-only, and combined date+time display.
type TemporalValue struct {
	T    time.Time
	kind Kind // KindDate, KindTime, or KindDateTime
}

// NewDate builds a Date-kind temporal from t, discarding the time of day
// for display purposes (the underlying instant still round-trips exactly).
func NewDate(t time.Time) Value { return TemporalValue{T: t, kind: KindDate} }

// NewTime builds a Time-kind temporal from t.
func NewTime(t time.Time) Value { return TemporalValue{T: t, kind: KindTime} }

// NewDateTime builds a DateTime-kind temporal from t.
func NewDateTime(t time.Time) Value { return TemporalValue{T: t, kind: KindDateTime} }

func (t TemporalValue) Kind() Kind   { return t.kind }
func (TemporalValue) IsNull() bool   { return false }
func (t TemporalValue) String() string {
	switch t.kind {
	case KindDate:
		return t.T.Format("1/2/2006")
	case KindTime:
		return t.T.Format("3:04:05 PM")
	default:
		return t.T.Format("1/2/2006 3:04:05 PM")
	}
}

// Serial returns the Access serial-date double for t.
func (t TemporalValue) Serial() float64 {
	return numeric.ToSerial(t.T)
}

// FromSerialAs rebuilds a temporal of kind k from a serial double, used by
// operators that compute on the serial representation (negate, add,
// subtract) and must rebuild the original temporal kind afterwards.
func FromSerialAs(serial float64, k Kind) Value {
	t := numeric.FromSerial(serial)
	return TemporalValue{T: t, kind: k}
}

// ---------------------------------------------------------------------

// TypeName returns the VBA-style type name for v, as TypeName() reports it.
func TypeName(v Value) string {
	switch v.Kind() {
	case KindNull:
		return "Null"
	case KindBool:
		return "Boolean"
	case KindLong:
		return "Long"
	case KindDouble:
		return "Double"
	case KindBigDec:
		return "Decimal"
	case KindString:
		return "String"
	case KindDate, KindTime, KindDateTime:
		return "Date"
	default:
		return "Unknown"
	}
}

// VarType returns the numeric VB type code VarType() reports: 1=Null,
// 3=Long, 5=Double, 7=Date, 8=String, 11=Boolean, 14=Decimal.
func VarType(v Value) int {
	switch v.Kind() {
	case KindNull:
		return 1
	case KindBool:
		return 11
	case KindLong:
		return 3
	case KindDouble:
		return 5
	case KindBigDec:
		return 14
	case KindString:
		return 8
	case KindDate, KindTime, KindDateTime:
		return 7
	default:
		return 0
	}
}

// quoteAccess renders s as an Access string literal, doubling embedded
// quotes, for Expression.ToRawString/ToCleanString round-tripping.
func quoteAccess(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' {
			b.WriteString(`""`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Literal renders v as source text that would tokenize back to an
// equivalent literal, used by the expression printer's round-trip.
func Literal(v Value) string {
	switch vv := v.(type) {
	case NullValue:
		return "Null"
	case BoolValue:
		if vv {
			return "True"
		}
		return "False"
	case StringValue:
		return quoteAccess(string(vv))
	case TemporalValue:
		switch vv.kind {
		case KindDate:
			return fmt.Sprintf("#%s#", vv.T.Format("1/2/2006"))
		case KindTime:
			return fmt.Sprintf("#%s#", vv.T.Format("3:04:05 PM"))
		default:
			return fmt.Sprintf("#%s#", vv.T.Format("1/2/2006 3:04:05 PM"))
		}
	default:
		return v.String()
	}
}
