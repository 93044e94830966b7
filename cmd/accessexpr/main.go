// Command accessexpr is a thin CLI for exercising the Access expression
// engine: parsing an expression to its canonical form, evaluating it, and
// rendering a value through the Format function.
package main

import (
	"fmt"
	"os"

	"github.com/accessexpr/accessexpr/cmd/accessexpr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
