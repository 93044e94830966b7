package expr

import (
	"time"

	"github.com/accessexpr/accessexpr/internal/functions"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/ident"
)

// usLocale is a standard en-US locale convention: '/' date separator,
// ':' time separator, month/weekday names spelled out in English,
// Sunday-first weeks.
type usLocale struct{}

func (usLocale) Numeric() NumericConfig {
	return NumericConfig{DecimalSeparator: '.', GroupSeparator: ','}
}

func (usLocale) Temporal() TemporalConfig {
	return TemporalConfig{
		DateSeparator:    '/',
		TimeSeparator:    ':',
		ShortDateLayout:  "1/2/2006",
		LongDateLayout:   "January 2, 2006",
		LongTimeLayout:   "15:04:05",
		ShortTimeLayout:  "3:04:05 PM",
		AMString:         "AM",
		PMString:         "PM",
		FirstDayOfWeek:   1,
		FirstWeekOfYear:  1,
		MonthNames:       [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		MonthNamesAbbr:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		WeekdayNames:     [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		WeekdayNamesAbbr: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	}
}

// StandaloneHost is a ready-to-use ParseContext/EvalContext for callers
// with no field/record to validate: identifiers resolve against Cols,
// keyed by the identifier's String() form such as "[Qty]" (or Null if
// absent or unset), and CurrentColumn/ThisColumnRef return
// Current (or Null). It parses and evaluates under the built-in function
// catalog and the en-US locale.
type StandaloneHost struct {
	usLocale
	Cols    map[string]value.Value
	Current value.Value
}

func (StandaloneHost) GetFunction(name string) (*Function, bool) { return functions.Get(name) }
func (StandaloneHost) DeclaredResultType() ResultType            { return value.KindNull }
func (StandaloneHost) Random() RandomSource                      { return NewDefaultRandomSource() }
func (StandaloneHost) Now() time.Time                            { return time.Now() }

func (h StandaloneHost) Resolve(id ident.Identifier) (value.Value, error) {
	if v, ok := h.Cols[id.String()]; ok {
		return v, nil
	}
	return value.Null, nil
}

func (h StandaloneHost) CurrentColumn() (value.Value, error) {
	if h.Current == nil {
		return value.Null, nil
	}
	return h.Current, nil
}

var _ hostctx.EvalContext = StandaloneHost{}
var _ hostctx.ParseContext = StandaloneHost{}
