package functions

import (
	"math"

	accerr "github.com/accessexpr/accessexpr/internal/errors"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
)

// These implement the standard annuity formulas behind VBA's financial
// functions: pv*(1+r)^n + pmt*(1+r*type)*((1+r)^n-1)/r + fv = 0 for r != 0,
// and pv + pmt*n + fv = 0 for r == 0.

func init() {
	Register("PV", CategoryFinancial, "Returns the present value of an annuity.",
		fn(3, 5, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			rate, nper, pmt, fv, typ, err := annuityArgs(args, 3, 4)
			if err != nil {
				return nil, err
			}
			if rate == 0 {
				return value.NewDouble(-(fv + pmt*nper)), nil
			}
			growth := math.Pow(1+rate, nper)
			pv := -(fv + pmt*(1+rate*typ)*(growth-1)/rate) / growth
			return value.NewDouble(pv), nil
		}))

	Register("FV", CategoryFinancial, "Returns the future value of an annuity.",
		fn(3, 5, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			rate, nper, pmt, pv, typ, err := annuityArgs(args, 3, 4)
			if err != nil {
				return nil, err
			}
			if rate == 0 {
				return value.NewDouble(-(pv + pmt*nper)), nil
			}
			growth := math.Pow(1+rate, nper)
			fv := -(pv*growth + pmt*(1+rate*typ)*(growth-1)/rate)
			return value.NewDouble(fv), nil
		}))

	Register("Pmt", CategoryFinancial, "Returns the periodic payment for an annuity.",
		fn(3, 5, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			rate, nper, pv, fv, typ, err := annuityArgs(args, 3, 4)
			if err != nil {
				return nil, err
			}
			if rate == 0 {
				return value.NewDouble(-(pv + fv) / nper), nil
			}
			growth := math.Pow(1+rate, nper)
			pmt := -(pv*growth + fv) * rate / ((1 + rate*typ) * (growth - 1))
			return value.NewDouble(pmt), nil
		}))

	Register("NPer", CategoryFinancial, "Returns the number of periods for an annuity.",
		fn(3, 5, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			rate, pmt, pv, fv, typ, err := annuityArgs(args, 3, 4)
			if err != nil {
				return nil, err
			}
			if rate == 0 {
				if pmt == 0 {
					return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "NPer requires a non-zero payment when rate is 0")
				}
				return value.NewDouble(-(pv + fv) / pmt), nil
			}
			num := pmt*(1+rate*typ) - fv*rate
			den := pmt*(1+rate*typ) + pv*rate
			if num <= 0 || den <= 0 {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "NPer arguments do not converge to a valid number of periods")
			}
			return value.NewDouble(math.Log(num/den) / math.Log(1+rate)), nil
		}))

	Register("IPmt", CategoryFinancial, "Returns the interest portion of a periodic payment for an annuity.",
		fn(4, 6, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			rate, per, nper, pv, fv, typ, err := ipmtArgs(args)
			if err != nil {
				return nil, err
			}
			pmt := annuityPmt(rate, nper, pv, fv, typ)
			ipmt, _ := splitPayment(rate, per, pmt, pv, typ)
			return value.NewDouble(ipmt), nil
		}))

	Register("PPmt", CategoryFinancial, "Returns the principal portion of a periodic payment for an annuity.",
		fn(4, 6, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			rate, per, nper, pv, fv, typ, err := ipmtArgs(args)
			if err != nil {
				return nil, err
			}
			pmt := annuityPmt(rate, nper, pv, fv, typ)
			_, ppmt := splitPayment(rate, per, pmt, pv, typ)
			return value.NewDouble(ppmt), nil
		}))

	Register("SLN", CategoryFinancial, "Returns straight-line depreciation for a single period.",
		fn(3, 3, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			cost, salvage, life, err := threeDoubles(args)
			if err != nil {
				return nil, err
			}
			if life == 0 {
				return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "SLN requires a non-zero life")
			}
			return value.NewDouble((cost - salvage) / life), nil
		}))

	Register("SYD", CategoryFinancial, "Returns sum-of-years-digits depreciation for a given period.",
		fn(4, 4, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			cost, salvage, life, err := threeDoubles(args[:3])
			if err != nil {
				return nil, err
			}
			period, err := value.AsDouble(args[3])
			if err != nil {
				return nil, err
			}
			if life == 0 {
				return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "SYD requires a non-zero life")
			}
			sumOfYears := life * (life + 1) / 2
			return value.NewDouble((cost - salvage) * (life - period + 1) / sumOfYears), nil
		}))

	Register("DDB", CategoryFinancial, "Returns double-declining-balance depreciation for a given period.",
		fn(4, 5, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			cost, salvage, life, err := threeDoubles(args[:3])
			if err != nil {
				return nil, err
			}
			period, err := value.AsDouble(args[3])
			if err != nil {
				return nil, err
			}
			factor := 2.0
			if len(args) == 5 {
				factor, err = value.AsDouble(args[4])
				if err != nil {
					return nil, err
				}
			}
			if life == 0 {
				return nil, accerr.NewEvalError(accerr.CategoryDivideByZero, "DDB requires a non-zero life")
			}
			book := cost
			var dep float64
			for i := 1.0; i <= period; i++ {
				dep = math.Min(book*factor/life, book-salvage)
				if dep < 0 {
					dep = 0
				}
				book -= dep
			}
			return value.NewDouble(dep), nil
		}))

	Register("Rate", CategoryFinancial, "Returns the periodic interest rate for an annuity, found by iteration.",
		fn(3, 6, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if anyNull(args...) {
				return value.Null, nil
			}
			nper, err := value.AsDouble(args[0])
			if err != nil {
				return nil, err
			}
			pmt, err := value.AsDouble(args[1])
			if err != nil {
				return nil, err
			}
			pv, err := value.AsDouble(args[2])
			if err != nil {
				return nil, err
			}
			fv := argOrDouble(args, 3, 0)
			typ := argOrDouble(args, 4, 0)
			guess := argOrDouble(args, 5, 0.1)

			f := func(r float64) float64 {
				if r == 0 {
					return pv + pmt*nper + fv
				}
				growth := math.Pow(1+r, nper)
				return pv*growth + pmt*(1+r*typ)*(growth-1)/r + fv
			}
			r, err := solveSecant(f, guess, guess*1.1+0.0001)
			if err != nil {
				return nil, accerr.NewEvalError(accerr.CategoryRange, "Rate did not converge: %v", err)
			}
			return value.NewDouble(r), nil
		}))
}

func annuityArgs(args []value.Value, fvIdx, typIdx int) (a, b, c, fv, typ float64, err error) {
	if anyNull(args...) {
		return 0, 0, 0, 0, 0, nil
	}
	a, err = value.AsDouble(args[0])
	if err != nil {
		return
	}
	b, err = value.AsDouble(args[1])
	if err != nil {
		return
	}
	c, err = value.AsDouble(args[2])
	if err != nil {
		return
	}
	fv = argOrDouble(args, fvIdx, 0)
	typ = argOrDouble(args, typIdx, 0)
	return
}

func ipmtArgs(args []value.Value) (rate, per, nper, pv, fv, typ float64, err error) {
	if anyNull(args...) {
		return
	}
	rate, err = value.AsDouble(args[0])
	if err != nil {
		return
	}
	per, err = value.AsDouble(args[1])
	if err != nil {
		return
	}
	nper, err = value.AsDouble(args[2])
	if err != nil {
		return
	}
	pv, err = value.AsDouble(args[3])
	if err != nil {
		return
	}
	fv = argOrDouble(args, 4, 0)
	typ = argOrDouble(args, 5, 0)
	return
}

func annuityPmt(rate, nper, pv, fv, typ float64) float64 {
	if rate == 0 {
		return -(pv + fv) / nper
	}
	growth := math.Pow(1+rate, nper)
	return -(pv*growth + fv) * rate / ((1 + rate*typ) * (growth - 1))
}

// splitPayment returns the interest and principal portions of payment pmt
// at period per, given the running balance's prior growth from pv.
func splitPayment(rate, per, pmt, pv, typ float64) (ipmt, ppmt float64) {
	if typ == 1 && per == 1 {
		return 0, pmt
	}
	priorPeriods := per - 1
	growth := math.Pow(1+rate, priorPeriods)
	balance := pv*growth + pmt*(1+rate*typ)*(growth-1)/rate
	ipmt = -balance * rate
	if typ == 1 {
		ipmt /= 1 + rate
	}
	return ipmt, pmt - ipmt
}

func threeDoubles(args []value.Value) (a, b, c float64, err error) {
	a, err = value.AsDouble(args[0])
	if err != nil {
		return
	}
	b, err = value.AsDouble(args[1])
	if err != nil {
		return
	}
	c, err = value.AsDouble(args[2])
	return
}

func argOrDouble(args []value.Value, i int, def float64) float64 {
	if i < len(args) && !args[i].IsNull() {
		if d, err := value.AsDouble(args[i]); err == nil {
			return d
		}
	}
	return def
}

// solveSecant finds a root of f near x0/x1 by the secant method, bounded
// to 20 iterations and a tolerance of 1e-7, the same bound VBA's Rate uses.
func solveSecant(f func(float64) float64, x0, x1 float64) (float64, error) {
	f0, f1 := f(x0), f(x1)
	for i := 0; i < 20; i++ {
		if f1 == f0 {
			return x1, nil
		}
		x2 := x1 - f1*(x1-x0)/(f1-f0)
		if math.Abs(x2-x1) < 1e-7 {
			return x2, nil
		}
		x0, f0 = x1, f1
		x1 = x2
		f1 = f(x1)
	}
	return 0, accerr.NewEvalError(accerr.CategoryRange, "exceeded 20 iterations")
}
