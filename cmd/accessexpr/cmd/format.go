package cmd

import (
	"fmt"
	"strings"

	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/expr"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format <expression> <pattern>",
	Short: "Render a value expression under a Format pattern",
	Long: `Format evaluates expression, then renders it through the engine's
Format function under pattern (a predefined name like "Currency" or
"Long Date", or a custom pattern like "#,##0.00").

It is equivalent to running:
  accessexpr eval 'Format(<expression>, "<pattern>")'
with the pattern's quotes escaped for you.`,
	Args: cobra.ExactArgs(2),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	valueExpr, pattern := args[0], args[1]
	escaped := strings.ReplaceAll(pattern, `"`, `""`)
	src := fmt.Sprintf(`Format(%s, "%s")`, valueExpr, escaped)

	host := expr.StandaloneHost{}
	e, err := expr.Parse(expr.ExprGeneral, src, value.KindString, host)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	result, err := e.Eval(host)
	if err != nil {
		return fmt.Errorf("eval error: %w", err)
	}

	fmt.Println(value.AsString(result))
	return nil
}
