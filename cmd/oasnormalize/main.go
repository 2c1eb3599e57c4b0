package main

import (
	"fmt"
	"os"

	"github.com/oasnormalize/rewriter/cmd/oasnormalize/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "oasnormalize",
	Short: "Normalize OpenAPI documents for Go client generation",
	Long: `oasnormalize rewrites an OpenAPI 3.x document into a form a Go client
generator can consume without tripping over malformed identifiers,
dangling references, or polymorphic schemas the generator can't express.

fix runs the fixed rewrite pipeline against a single document.
generate-client invokes the external client generator against fix's
output.`,
}

func init() {
	commands.Apply(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
