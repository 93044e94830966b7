// Package expr is the public surface of the Access expression engine: the
// Expression wrapper returned by Parse, and the host-supplied contract
// types (LocaleContext, EvalContext, FunctionLookup, ParseContext) a
// caller implements to drive parsing and evaluation. The contracts
// themselves are defined in internal/hostctx (so internal/lexer,
// internal/parser, and internal/operators can depend on the shapes
// without importing this package) and re-exported here by alias.
package expr

import (
	"github.com/accessexpr/accessexpr/internal/functions"
	"github.com/accessexpr/accessexpr/internal/hostctx"
)

// ExprType selects which grammar dialect Parse accepts.
type ExprType = hostctx.ExprType

const (
	ExprGeneral         = hostctx.ExprGeneral
	ExprDefaultValue    = hostctx.ExprDefaultValue
	ExprFieldValidator  = hostctx.ExprFieldValidator
	ExprRecordValidator = hostctx.ExprRecordValidator
)

// NumericConfig exposes the locale's number formatting conventions.
type NumericConfig = hostctx.NumericConfig

// TemporalConfig exposes the locale's date/time formatting conventions.
type TemporalConfig = hostctx.TemporalConfig

// LocaleContext is the minimal locale surface the engine reads from.
type LocaleContext = hostctx.LocaleContext

// Function is a registered built-in or host-provided callable.
type Function = hostctx.Function

// FunctionLookup resolves a function by name at parse time.
type FunctionLookup = hostctx.FunctionLookup

// ParseContext combines the two contracts Parse needs.
type ParseContext = hostctx.ParseContext

// ResultType names the declared result type an expression is parsed
// against.
type ResultType = hostctx.ResultType

// RandomSource is the per-evaluation random generator contract Rnd()
// reads and reseeds through Next.
type RandomSource = hostctx.RandomSource

// EvalContext is the full host contract evaluation runs against.
type EvalContext = hostctx.EvalContext

// DefaultRandomSource is a simple RandomSource suitable for hosts that
// don't need cross-session determinism beyond a single process.
type DefaultRandomSource = hostctx.DefaultRandomSource

// NewDefaultRandomSource builds a RandomSource whose Rnd(0) sentinel
// matches Access's own documented default.
func NewDefaultRandomSource() *DefaultRandomSource {
	return hostctx.NewDefaultRandomSource()
}

// BuiltinFunctions is a FunctionLookup backed by the engine's built-in
// function catalog, for hosts that want the full standard library with
// no extra wiring.
type BuiltinFunctions = functions.Lookup
