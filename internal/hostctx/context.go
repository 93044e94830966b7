// Package hostctx defines the host-supplied contracts the engine depends
// on: LocaleContext, EvalContext, FunctionLookup, and ParseContext, plus
// the small config value types they expose. These live in an internal
// package, rather than directly in pkg/expr, so that internal/lexer,
// internal/parser, and internal/operators can all depend on the contract
// shapes without importing the public pkg/expr package that builds the
// Expression wrapper on top of them.
package hostctx

import (
	"math/rand"
	"time"

	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/ident"
)

// ExprType selects which grammar dialect the parser accepts.
type ExprType int

// Parse modes.
const (
	ExprGeneral ExprType = iota
	ExprDefaultValue
	ExprFieldValidator
	ExprRecordValidator
)

// NumericConfig exposes the locale's number formatting conventions.
type NumericConfig struct {
	DecimalSeparator byte
	GroupSeparator   byte
	// NamedFormats maps a predefined format name ("Currency", "Percent",
	// ...) to its custom pattern string, letting a host override the
	// engine's built-in defaults.
	NamedFormats map[string]string
}

// TemporalConfig exposes the locale's date/time formatting conventions.
type TemporalConfig struct {
	DateSeparator byte
	TimeSeparator byte
	// ShortDateLayout and LongTimeLayout are Go time.Format layout
	// strings for the locale's short date and long time representations,
	// used both to parse #...# literals and to render predefined Format
	// names.
	ShortDateLayout string
	LongDateLayout  string
	LongTimeLayout  string
	ShortTimeLayout string
	AMString        string
	PMString        string
	// FirstDayOfWeek is 1=Sunday .. 7=Saturday, the vbSunday..vbSaturday
	// convention the format engine's w/ww tokens read by default.
	FirstDayOfWeek int
	// FirstWeekOfYear selects which ISO-ish rule 'ww' uses: 1=first week
	// containing Jan 1 (vbFirstJan1, the Access default), 2=first week
	// with >= 4 days in the new year, 3=first full week.
	FirstWeekOfYear int
	MonthNames      [12]string
	MonthNamesAbbr  [12]string
	WeekdayNames    [7]string
	WeekdayNamesAbbr [7]string
}

// LocaleContext is the minimal locale surface the tokenizer, operator
// kernel, and format engine all read from.
type LocaleContext interface {
	Numeric() NumericConfig
	Temporal() TemporalConfig
}

// Function is a registered built-in or host-provided callable, resolved by
// name at parse time.
type Function struct {
	Name      string
	MinParams int
	MaxParams int // -1 means unbounded
	IsPure    bool
	Call      func(ctx EvalContext, args []value.Value) (value.Value, error)
}

// FunctionLookup resolves a function by name at parse time.
type FunctionLookup interface {
	GetFunction(name string) (*Function, bool)
}

// ParseContext combines the two contracts the parser needs.
type ParseContext interface {
	LocaleContext
	FunctionLookup
}

// ResultType names the declared result type an expression is parsed
// against, used by DefaultValue verbatim-string handling and by Nz's
// default-value selection.
type ResultType = value.Kind

// RandomSource is the per-evaluation random generator contract the Rnd()
// function reads and reseeds through Next.
type RandomSource interface {
	// Next returns the next pseudo-random value in [0, 1) for the given
	// seed request: seed > 0 selects/creates a deterministic stream keyed
	// by seed, seed == 0 repeats the last value produced by any stream,
	// seed < 0 reseeds everything and returns one deterministic value.
	Next(seed float64) float64
}

// EvalContext is the full host contract evaluation runs against.
type EvalContext interface {
	LocaleContext
	FunctionLookup

	// Resolve looks up an identifier's current value.
	Resolve(id ident.Identifier) (value.Value, error)
	// CurrentColumn returns the value under validation, for field
	// validators and ThisColumnRef.
	CurrentColumn() (value.Value, error)
	// DeclaredResultType is the result type Nz()'s default argument falls
	// back to when omitted.
	DeclaredResultType() ResultType
	// Random returns the context's random source, for Rnd().
	Random() RandomSource
	// Now returns the current instant, for Now()/Date()/Time()/Timer().
	// Exposed on the context (rather than read directly from time.Now())
	// so hosts can fix it for reproducible evaluation.
	Now() time.Time
}

// DefaultRandomSource is a simple math/rand-backed RandomSource suitable
// for hosts that don't need cross-session determinism beyond a single
// process. Next(0) before any stream has been seeded replays a "last
// value" sentinel rather than an arbitrary zero value.
type DefaultRandomSource struct {
	streams map[float64]*rand.Rand
	last    float64
}

// NewDefaultRandomSource builds a RandomSource whose "last value" sentinel
// starts at 1.953125E-02, Access's own documented default for Rnd(0)
// before Randomize or a positive-seed Rnd call has run.
func NewDefaultRandomSource() *DefaultRandomSource {
	return &DefaultRandomSource{
		streams: make(map[float64]*rand.Rand),
		last:    1.953125e-02,
	}
}

func (d *DefaultRandomSource) Next(seed float64) float64 {
	switch {
	case seed > 0:
		r, ok := d.streams[seed]
		if !ok {
			r = rand.New(rand.NewSource(int64(seed * 1e9)))
			d.streams[seed] = r
		}
		v := r.Float64()
		d.last = v
		return v
	case seed == 0:
		return d.last
	default:
		d.streams = make(map[float64]*rand.Rand)
		r := rand.New(rand.NewSource(int64(seed * 1e9)))
		v := r.Float64()
		d.last = v
		return v
	}
}
