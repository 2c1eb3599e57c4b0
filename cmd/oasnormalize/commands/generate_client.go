package commands

import (
	"fmt"
	"os"

	"github.com/oasnormalize/rewriter/oaserrors"
	"github.com/oasnormalize/rewriter/pipeline"
	"github.com/spf13/cobra"
)

var (
	generateClientName  string
	generateLibraryName string
	generateTargetDir   string
)

var generateClientCmd = &cobra.Command{
	Use:   "generate-client <fixed-file>",
	Short: "Generate a Go client from a document already produced by fix",
	Long: `generate-client shells out to the external client generator against a
document that has already been through fix. It is a thin wrapper: it does
not itself rewrite or validate the document.`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerateClient,
}

func init() {
	generateClientCmd.Flags().StringVar(&generateClientName, "client-name", "", "generated client struct/type name (required)")
	generateClientCmd.Flags().StringVar(&generateLibraryName, "library-name", "", "generated Go module name (required)")
	generateClientCmd.Flags().StringVar(&generateTargetDir, "target-dir", ".", "directory the generator is invoked from")
	_ = generateClientCmd.MarkFlagRequired("client-name")
	_ = generateClientCmd.MarkFlagRequired("library-name")
}

func runGenerateClient(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	fixedPath := args[0]

	if err := pipeline.GenerateClient(ctx, fixedPath, generateClientName, generateLibraryName, generateTargetDir); err != nil {
		fmt.Fprintf(os.Stderr, "generate-client: %v\n", err)
		if oaserrors.Is(err, oaserrors.ErrCancelled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "client generated")
}

// GetGenerateClientCommand returns the generate-client subcommand for
// wiring into a root command.
func GetGenerateClientCommand() *cobra.Command {
	return generateClientCmd
}
