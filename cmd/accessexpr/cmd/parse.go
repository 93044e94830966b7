package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/accessexpr/accessexpr/internal/value"
	"github.com/accessexpr/accessexpr/pkg/expr"
	"github.com/accessexpr/accessexpr/pkg/ident"
	"github.com/spf13/cobra"
)

var parseDebug bool

var parseCmd = &cobra.Command{
	Use:   "parse [expression]",
	Short: "Parse an Access expression and print its canonical form",
	Long: `Parse reads an Access expression, parses it under --expr-type, and
prints it back out.

If no expression is given on the command line, parse reads all of stdin
as the expression. Use --debug to print a fully parenthesized form that makes the
parser's precedence and associativity decisions visible.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDebug, "debug", false, "print a fully parenthesized debug form")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}

	exprType, err := parseExprType(exprTypeFlag)
	if err != nil {
		return err
	}

	host := expr.StandaloneHost{}
	e, err := expr.Parse(exprType, src, value.KindNull, host)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	if parseDebug {
		fmt.Println(e.ToDebugString())
	} else {
		fmt.Println(e.ToCleanString())
	}

	var ids []ident.Identifier
	e.CollectIdentifiers(&ids)
	if len(ids) > 0 {
		fmt.Fprintf(os.Stderr, "identifiers:")
		for _, id := range ids {
			fmt.Fprintf(os.Stderr, " %s", id.String())
		}
		fmt.Fprintln(os.Stderr)
	}

	return nil
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}
