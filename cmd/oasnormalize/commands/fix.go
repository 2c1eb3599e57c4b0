// Package commands holds the oasnormalize CLI's subcommands, grounded on
// the teacher's per-command cobra file layout (one file per verb, an
// Apply function wiring them into a parent command).
package commands

import (
	"fmt"
	"os"

	"github.com/oasnormalize/rewriter/oaserrors"
	"github.com/oasnormalize/rewriter/pipeline"
	"github.com/oasnormalize/rewriter/rewritelog"
	"github.com/spf13/cobra"
)

var (
	fixDryRun   bool
	fixDisabled []string
)

var fixCmd = &cobra.Command{
	Use:   "fix <source-file> <target-file>",
	Short: "Normalize an OpenAPI document into a client-generator-ready form",
	Long: `Fix reads an OpenAPI 3.x document from source-file and runs it through the
fixed six-stage rewrite pipeline: identifier repair, reference scrubbing,
structural rewrites, deep schema normalization, final cleanup, and
serialization. The result is written to target-file as JSON.

source-file is never modified. target-file is only written once every
stage has completed, unless --dry-run is set, in which case only the
pass ledger is reported.`,
	Args: cobra.ExactArgs(2),
	Run:  runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "compute the pass ledger without writing target-file")
	fixCmd.Flags().StringSliceVar(&fixDisabled, "disable", nil, "pass names to skip (repeatable)")
}

func runFix(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	sourcePath, targetPath := args[0], args[1]

	opts := []pipeline.Option{pipeline.WithDryRun(fixDryRun)}
	if len(fixDisabled) > 0 {
		opts = append(opts, pipeline.WithDisabledPasses(fixDisabled...))
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts = append(opts, pipeline.WithLogger(rewritelog.NewSlogAdapter(nil)))
	}

	result, err := pipeline.Fix(ctx, sourcePath, targetPath, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fix: %v\n", err)
		if oaserrors.Is(err, oaserrors.ErrCancelled) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "applied %d passes", len(result.Applied))
	if fixDryRun {
		fmt.Fprint(cmd.OutOrStdout(), " (dry run, target not written)")
	}
	fmt.Fprintln(cmd.OutOrStdout())
	for _, d := range result.Diagnostics {
		fmt.Fprintf(cmd.OutOrStdout(), "diagnostic: %s\n", d.Message)
	}
}

// GetFixCommand returns the fix subcommand for wiring into a root command.
func GetFixCommand() *cobra.Command {
	return fixCmd
}
