package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/oasnormalize/rewriter/batch"
	"github.com/spf13/cobra"
)

var batchJobs []string

var batchCmd = &cobra.Command{
	Use:   "batch --job source.yaml=target.json [--job ...]",
	Short: "Run fix over several independent documents concurrently",
	Long: `Batch runs fix over multiple documents at once. Each document is parsed,
rewritten, and serialized independently of the others — one document's
pipeline failure does not affect any other document in the batch.

Each --job flag names one source=target pair:

  oasnormalize batch --job a.yaml=a.json --job b.yaml=b.json`,
	Args: cobra.NoArgs,
	Run:  runBatch,
}

func init() {
	batchCmd.Flags().StringArrayVar(&batchJobs, "job", nil, "source=target path pair (repeatable)")
	_ = batchCmd.MarkFlagRequired("job")
}

func runBatch(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	jobs := make([]batch.Job, 0, len(batchJobs))
	for _, spec := range batchJobs {
		source, target, ok := strings.Cut(spec, "=")
		if !ok {
			fmt.Fprintf(os.Stderr, "batch: invalid --job %q, want source=target\n", spec)
			os.Exit(1)
		}
		jobs = append(jobs, batch.Job{Name: spec, SourcePath: source, TargetPath: target})
	}

	failed := false
	for _, result := range batch.Run(ctx, jobs) {
		if result.Err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "batch: %s: %v\n", result.Name, result.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "batch: %s: applied %d passes\n", result.Name, len(result.Result.Applied))
	}

	if failed {
		os.Exit(1)
	}
}

// GetBatchCommand returns the batch subcommand for wiring into a root
// command.
func GetBatchCommand() *cobra.Command {
	return batchCmd
}
