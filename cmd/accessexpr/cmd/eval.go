package cmd

import (
	"fmt"

	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/expr"
	"github.com/spf13/cobra"
)

var (
	evalResultType string
	evalCurrent    string
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Parse and evaluate an Access expression",
	Long: `Eval parses an expression under --expr-type and evaluates it against a
bare host: no identifier table, the built-in function catalog, and the
en-US locale (pkg/expr.StandaloneHost).

Use --current to supply the "this column" value a field validator's bare
predicate or ThisColumnRef reads, as a literal expression (e.g. --current 15
or --current '"abc"').`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVar(&evalResultType, "result-type", "", "declared result type (bool, long, double, bigdec, string, date, time, datetime)")
	evalCmd.Flags().StringVar(&evalCurrent, "current", "", "literal expression for the current column value")
}

func runEval(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	exprType, err := parseExprType(exprTypeFlag)
	if err != nil {
		return err
	}
	resultType, err := parseResultType(evalResultType)
	if err != nil {
		return err
	}

	host := expr.StandaloneHost{}
	if evalCurrent != "" {
		cur, err := evalLiteral(evalCurrent, host)
		if err != nil {
			return fmt.Errorf("--current: %w", err)
		}
		host.Current = cur
	}

	e, err := expr.Parse(exprType, src, resultType, host)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	result, err := e.Eval(host)
	if err != nil {
		return fmt.Errorf("eval error: %w", err)
	}

	fmt.Printf("%s (%s)\n", result.String(), value.TypeName(result))
	return nil
}

func evalLiteral(src string, host expr.StandaloneHost) (value.Value, error) {
	e, err := expr.Parse(expr.ExprGeneral, src, value.KindNull, host)
	if err != nil {
		return nil, err
	}
	return e.Eval(host)
}
