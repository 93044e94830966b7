package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var exprTypeFlag string

var rootCmd = &cobra.Command{
	Use:   "accessexpr",
	Short: "Access expression engine CLI",
	Long: `accessexpr parses and evaluates the Access/VBA-flavoured expression
language used in default values, field validators, record validators, and
query expressions.

It is a thin demonstration shell over the pkg/expr engine, not a database
or a query planner.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&exprTypeFlag, "expr-type", "general",
		"grammar dialect: general, default-value, field-validator, or record-validator")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
