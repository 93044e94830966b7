package functions

import (
	"github.com/accessexpr/accessexpr/internal/format"
	"github.com/accessexpr/accessexpr/internal/hostctx"
	"github.com/accessexpr/accessexpr/internal/value"
)

func init() {
	Register("Format", CategoryText, "Renders a value under a predefined or custom format pattern.",
		fn(1, 4, true, func(ctx hostctx.EvalContext, args []value.Value) (value.Value, error) {
			if args[0].IsNull() {
				return value.NewString(""), nil
			}
			pattern := ""
			if len(args) >= 2 && !args[1].IsNull() {
				pattern = value.AsString(args[1])
			}
			firstDay := 0
			if len(args) >= 3 && !args[2].IsNull() {
				n, err := value.AsLong(args[2])
				if err != nil {
					return nil, err
				}
				firstDay = int(n)
			}
			firstWeekType := 0
			if len(args) == 4 && !args[3].IsNull() {
				n, err := value.AsLong(args[3])
				if err != nil {
					return nil, err
				}
				firstWeekType = int(n)
			}
			return value.NewString(format.Format(ctx, args[0], pattern, firstDay, firstWeekType)), nil
		}))
}
