package functions

import (
	"time"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/lexer"
	"github.com/accessexpr/accessexpr/internal/value"
)

func init() {
	Register("Now", CategoryDateTime, "Returns the current date and time.",
		fn(0, 0, false, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			return value.NewDateTime(ctx.Now()), nil
		}))
	Register("Date", CategoryDateTime, "Returns the current date.",
		fn(0, 0, false, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			t := ctx.Now()
			return value.NewDate(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)), nil
		}))
	Register("Time", CategoryDateTime, "Returns the current time of day.",
		fn(0, 0, false, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			t := ctx.Now()
			return value.NewTime(time.Date(1899, 12, 30, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)), nil
		}))
	Register("Timer", CategoryDateTime, "Returns the number of seconds elapsed since midnight.",
		fn(0, 0, false, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			t := ctx.Now()
			secs := float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
			return value.NewDouble(secs), nil
		}))

	Register("DateValue", CategoryDateTime, "Converts a string or number to a Date.",
		fn(1, 1, true, temporalFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			t, err := temporalOf(ctx, v)
			if err != nil {
				return nil, err
			}
			return value.NewDate(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)), nil
		})))
	Register("TimeValue", CategoryDateTime, "Converts a string or number to a Time.",
		fn(1, 1, true, temporalFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
			t, err := temporalOf(ctx, v)
			if err != nil {
				return nil, err
			}
			return value.NewTime(time.Date(1899, 12, 30, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)), nil
		})))

	Register("DateSerial", CategoryDateTime, "Builds a Date from year, month, and day components.",
		fn(3, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			y, err := value.AsLong(args[0])
			if err != nil {
				return nil, err
			}
			m, err := value.AsLong(args[1])
			if err != nil {
				return nil, err
			}
			d, err := value.AsLong(args[2])
			if err != nil {
				return nil, err
			}
			if y >= 0 && y <= 99 {
				if y <= 29 {
					y += 2000
				} else {
					y += 1900
				}
			}
			return value.NewDate(time.Date(int(y), time.Month(m), int(d), 0, 0, 0, 0, time.UTC)), nil
		}))

	Register("TimeSerial", CategoryDateTime, "Builds a Time from hour, minute, and second components.",
		fn(3, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			h, err := value.AsLong(args[0])
			if err != nil {
				return nil, err
			}
			mi, err := value.AsLong(args[1])
			if err != nil {
				return nil, err
			}
			s, err := value.AsLong(args[2])
			if err != nil {
				return nil, err
			}
			total := ((int64(h)*3600+int64(mi)*60+int64(s))%86400 + 86400) % 86400
			return value.NewTime(time.Date(1899, 12, 30, 0, 0, int(total), 0, time.UTC)), nil
		}))

	Register("Year", CategoryDateTime, "Returns the year component of a date.",
		fn(1, 1, true, temporalComponent(func(t time.Time) int32 { return int32(t.Year()) })))
	Register("Month", CategoryDateTime, "Returns the month component of a date.",
		fn(1, 1, true, temporalComponent(func(t time.Time) int32 { return int32(t.Month()) })))
	Register("Day", CategoryDateTime, "Returns the day-of-month component of a date.",
		fn(1, 1, true, temporalComponent(func(t time.Time) int32 { return int32(t.Day()) })))
	Register("Hour", CategoryDateTime, "Returns the hour component of a time.",
		fn(1, 1, true, temporalComponent(func(t time.Time) int32 { return int32(t.Hour()) })))
	Register("Minute", CategoryDateTime, "Returns the minute component of a time.",
		fn(1, 1, true, temporalComponent(func(t time.Time) int32 { return int32(t.Minute()) })))
	Register("Second", CategoryDateTime, "Returns the second component of a time.",
		fn(1, 1, true, temporalComponent(func(t time.Time) int32 { return int32(t.Second()) })))

	Register("Weekday", CategoryDateTime, "Returns the day of the week as a number, 1-based from the locale's first day of week.",
		fn(1, 2, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if args[0].IsNull() {
				return value.Null, nil
			}
			t, err := temporalOf(ctx, args[0])
			if err != nil {
				return nil, err
			}
			firstDay := int(ctx.Temporal().FirstDayOfWeek)
			if firstDay < 1 || firstDay > 7 {
				firstDay = 1
			}
			if len(args) == 2 && !args[1].IsNull() {
				n, err := value.AsLong(args[1])
				if err != nil {
					return nil, err
				}
				firstDay = int(n)
			}
			sunBased := int(t.Weekday()) + 1 // time.Sunday == 0 -> 1
			offset := (sunBased - firstDay + 7) % 7
			return value.NewLong(int32(offset + 1)), nil
		}))

	Register("MonthName", CategoryDateTime, "Returns the locale's name for a month number.",
		fn(1, 2, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if args[0].IsNull() {
				return value.Null, nil
			}
			m, err := value.AsLong(args[0])
			if err != nil {
				return nil, err
			}
			if m < 1 || m > 12 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "month %d is out of range", m)
			}
			abbr := false
			if len(args) == 2 && !args[1].IsNull() {
				abbr, err = value.AsBool(args[1])
				if err != nil {
					return nil, err
				}
			}
			names := ctx.Temporal().MonthNames
			if abbr {
				names = ctx.Temporal().MonthNamesAbbr
			}
			return value.NewString(names[m-1]), nil
		}))

	Register("WeekdayName", CategoryDateTime, "Returns the locale's name for a weekday number.",
		fn(1, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if args[0].IsNull() {
				return value.Null, nil
			}
			w, err := value.AsLong(args[0])
			if err != nil {
				return nil, err
			}
			if w < 1 || w > 7 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "weekday %d is out of range", w)
			}
			abbr := false
			if len(args) >= 2 && !args[1].IsNull() {
				abbr, err = value.AsBool(args[1])
				if err != nil {
					return nil, err
				}
			}
			firstDay := int(ctx.Temporal().FirstDayOfWeek)
			if firstDay < 1 || firstDay > 7 {
				firstDay = 1
			}
			if len(args) == 3 && !args[2].IsNull() {
				n, err := value.AsLong(args[2])
				if err != nil {
					return nil, err
				}
				firstDay = int(n)
			}
			idx := (int(w) - 1 + firstDay - 1) % 7
			names := ctx.Temporal().WeekdayNames
			if abbr {
				names = ctx.Temporal().WeekdayNamesAbbr
			}
			return value.NewString(names[idx]), nil
		}))
}

func temporalFn(f func(hostctx.EvalContext, value.Value) (value.Value, error)) func(hostctx.EvalContext, []value.Value) (value.Value, error) {
	return func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
		if args[0].IsNull() {
			return value.Null, nil
		}
		return f(ctx, args[0])
	}
}

func temporalComponent(extract func(time.Time) int32) func(hostctx.EvalContext, []value.Value) (value.Value, error) {
	return temporalFn(func(ctx hostctx.EvalContext, v value.Value) (value.Value, error) {
		t, err := temporalOf(ctx, v)
		if err != nil {
			return nil, err
		}
		return value.NewLong(extract(t)), nil
	})
}

// temporalOf coerces v to a time.Time, parsing a string against the
// locale's date/time layouts the way a #...# literal would be parsed.
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
