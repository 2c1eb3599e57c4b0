// Package batch fans pipeline.Fix out across multiple independent
// documents concurrently (spec.md §5: "Multiple documents may be
// processed in parallel, but each owns its own D").
package batch

import (
	"context"

	"github.com/oasnormalize/rewriter/pipeline"
	"golang.org/x/sync/errgroup"
)

// Job names one document to fix: a source path, a target path, and the
// options that run's Fix call should use.
type Job struct {
	Name       string
	SourcePath string
	TargetPath string
	Options    []pipeline.Option
}

// Result pairs a Job's Name with its outcome. Err is nil on success.
type Result struct {
	Name   string
	Result pipeline.Result
	Err    error
}

// Concurrency caps how many Fix calls Run executes at the same time.
const Concurrency = 4

// Run executes every job's Fix concurrently, up to Concurrency at a time,
// and returns one Result per job in the same order jobs was given. A
// job's failure does not cancel its siblings or the batch as a whole —
// each job's error is reported in its own Result, since spec.md never
// describes one document's fix failing an unrelated document's fix.
func Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Concurrency)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := pipeline.Fix(gctx, job.SourcePath, job.TargetPath, job.Options...)
			results[i] = Result{Name: job.Name, Result: res, Err: err}
			return nil
		})
	}
	// g.Wait's error is always nil: every job captures its own error into
	// results rather than propagating it, so the group itself never fails.
	_ = g.Wait()

	return results
}
