// Package pipeline is the driver that runs a document through the fixed
// six-stage rewrite sequence (spec.md §4.6) and serializes the result. The
// pass catalogue and stage order are compile-time fixed — the only runtime
// configuration is which named passes are disabled, the logger, and
// dry-run (spec.md §6: "No runtime configuration beyond the two paths;
// pass catalogue/order is compile-time fixed" — WithDisabledPasses and
// WithDryRun are this repo's supplemented escape hatch, grounded on the
// teacher's fixer.Option pattern, not a contradiction of that rule: the
// catalogue and order are still fixed, only membership is toggleable).
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/oasnormalize/rewriter/document"
	"github.com/oasnormalize/rewriter/naming"
	"github.com/oasnormalize/rewriter/normalizer"
	"github.com/oasnormalize/rewriter/oaserrors"
	"github.com/oasnormalize/rewriter/refengine"
	"github.com/oasnormalize/rewriter/rewriter"
	"github.com/oasnormalize/rewriter/rewritelog"
)

// Applied records that a named pass ran against the document (spec.md's
// Fix ledger supplement, grounded on the teacher's fixer.Fix/FixResult).
type Applied struct {
	Stage string
	Pass  string
}

// Result is what a completed Fix run produced.
type Result struct {
	Applied     []Applied
	Diagnostics []document.Diagnostic
}

type config struct {
	log      rewritelog.Logger
	disabled map[string]bool
	dryRun   bool
}

// Option configures a Fix run.
type Option func(*config)

// WithLogger sets the Logger every pass logs pass-local/invariant failures
// through (spec §7). Defaults to rewritelog.NopLogger.
func WithLogger(log rewritelog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithDisabledPasses removes the named passes from every stage they'd
// otherwise run in. Pass names match the spec.md §4.6 stage listings
// (e.g. "scrub_component_refs", "ensure_discriminator_for_oneof").
func WithDisabledPasses(names ...string) Option {
	return func(c *config) {
		for _, n := range names {
			c.disabled[n] = true
		}
	}
}

// WithDryRun computes the full ledger without writing targetPath.
func WithDryRun(dryRun bool) Option {
	return func(c *config) { c.dryRun = dryRun }
}

// Fix reads sourcePath, runs the fixed six-stage rewrite, and writes the
// serialized result to targetPath (spec.md §6). The source file is never
// modified; targetPath is only written on a fully successful run. IO
// failures, a source that cannot be decoded (ErrParse; no partial graph is
// recovered), and cooperative cancellation are the only errors Fix returns —
// every other failure kind is logged and the run continues (spec.md §7).
func Fix(ctx context.Context, sourcePath, targetPath string, opts ...Option) (Result, error) {
	cfg := &config{log: rewritelog.NopLogger{}, disabled: map[string]bool{}}
	for _, opt := range opts {
		opt(cfg)
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return Result{}, oaserrors.ErrIO.Wrap(fmt.Errorf("read %s: %w", sourcePath, err))
	}

	doc, diags, err := document.Parse(src)
	if err != nil {
		return Result{}, oaserrors.ErrParse.Wrap(err)
	}

	run := &run{doc: doc, cfg: cfg}
	if err := run.exec(ctx); err != nil {
		return Result{}, err
	}

	out, err := document.Serialize(run.doc)
	if err != nil {
		return Result{}, oaserrors.ErrIO.Wrap(fmt.Errorf("serialize: %w", err))
	}
	out = fixJSONBooleanLiterals(out)

	_, reparseDiags, reparseErr := document.Parse(out)
	if reparseErr != nil {
		cfg.log.Warn("serialized document failed to re-parse", "error", reparseErr)
	}
	diags = append(diags, reparseDiags...)

	if !cfg.dryRun {
		if err := os.WriteFile(targetPath, out, 0o644); err != nil {
			return Result{}, oaserrors.ErrIO.Wrap(fmt.Errorf("write %s: %w", targetPath, err))
		}
	}

	return Result{Applied: run.applied, Diagnostics: diags}, nil
}

type run struct {
	doc     *document.Document
	cfg     *config
	applied []Applied
}

func (r *run) step(ctx context.Context, stage, pass string, fn func()) error {
	if err := ctx.Err(); err != nil {
		return oaserrors.ErrCancelled.Wrap(err)
	}
	if r.cfg.disabled[pass] {
		return nil
	}
	fn()
	r.applied = append(r.applied, Applied{Stage: stage, Pass: pass})
	return nil
}

func (r *run) exec(ctx context.Context) error {
	doc, log := r.doc, r.cfg.log

	stage1 := []struct {
		name string
		fn   func()
	}{
		{"ensure_security_schemes", func() { rewriter.EnsureSecuritySchemes(doc) }},
		{"rename_conflicting_paths", func() { rewriter.RenameConflictingPaths(doc, log) }},
		{"rename_invalid_component_schemas", func() { naming.RenameInvalidComponentSchemas(doc) }},
		{"resolve_schema_operation_name_collisions", func() { naming.ResolveSchemaOperationNameCollisions(doc) }},
		{"ensure_unique_operation_ids", func() { naming.EnsureUniqueOperationIDs(doc) }},
	}
	for _, p := range stage1 {
		if err := r.step(ctx, "identifiers", p.name, p.fn); err != nil {
			return err
		}
	}

	if err := r.step(ctx, "references", "retarget_path_example_refs", func() { refengine.RetargetPathExampleRefs(doc) }); err != nil {
		return err
	}
	if err := r.step(ctx, "references", "scrub_component_refs", func() { refengine.ScrubAll(doc, log) }); err != nil {
		return err
	}

	stage3 := []struct {
		name string
		fn   func()
	}{
		{"inline_primitive_components", func() { rewriter.InlinePrimitiveComponents(doc) }},
		{"disambiguate_multi_content_request_schemas", func() { rewriter.DisambiguateMultiContentRequestSchemas(doc) }},
		{"fix_content_type_wrapper_collisions", func() { rewriter.FixContentTypeWrapperCollisions(doc) }},
		{"extract_inline_array_item_schemas", func() { rewriter.ExtractInlineArrayItemSchemas(doc) }},
		{"extract_inline_schemas", func() { rewriter.ExtractInlineRequestResponseSchemas(doc) }},
		{"ensure_discriminator_for_oneof", func() { rewriter.EnsureDiscriminatorForPolymorphicSchemas(doc) }},
		{"remove_shadowing_untyped_properties", func() { rewriter.RemoveShadowingUntypedProperties(doc) }},
		{"remove_redundant_derived_value", func() { rewriter.RemoveRedundantDerivedValueOverride(doc) }},
		{"scrub_component_refs", func() { refengine.ScrubAll(doc, log) }},
	}
	for _, p := range stage3 {
		if err := r.step(ctx, "structural", p.name, p.fn); err != nil {
			return err
		}
	}

	stage4 := []struct {
		name string
		fn   func()
	}{
		{"apply_schema_normalizations", func() { normalizer.ApplySchemaNormalizations(doc) }},
		{"deduplicate_composition_branches", func() { normalizer.DeduplicateCompositionBranches(doc) }},
		{"deep_clean_schema", func() { normalizer.DeepCleanSchema(doc) }},
		{"strip_empty_enum_branches", func() { normalizer.StripEmptyEnumBranches(doc) }},
		{"fix_invalid_defaults", func() { normalizer.FixInvalidDefaults(doc) }},
		{"fix_all_inline_value_enums", func() { rewriter.FixInlineValueEnums(doc) }},
		{"promote_enum_branches_under_discriminator", func() { rewriter.PromoteEnumBranchesUnderDiscriminator(doc, log) }},
		{"scrub_component_refs", func() { refengine.ScrubAll(doc, log) }},
	}
	for _, p := range stage4 {
		if err := r.step(ctx, "deep_normalization", p.name, p.fn); err != nil {
			return err
		}
	}

	stage5 := []struct {
		name string
		fn   func()
	}{
		{"remove_empty_inline_schemas", func() { normalizer.Clean(doc) }},
		{"remove_invalid_defaults", func() { normalizer.RemoveInvalidDefaults(doc) }},
	}
	for _, p := range stage5 {
		if err := r.step(ctx, "final", p.name, p.fn); err != nil {
			return err
		}
	}

	if err := r.step(ctx, "serialize", "fix_yaml_unsafe_descriptions", func() {
		normalizer.FixYAMLUnsafeDescriptions(doc)
	}); err != nil {
		return err
	}
	return r.step(ctx, "serialize", "clean_document_for_serialization", func() {
		normalizer.CleanForSerialization(doc)
	})
}
