package publish

import (
	"context"
	"fmt"
	"log/slog"
)

// Pipeline runs the three phases of a publish run in order: build the
// expected set from the local tree, publish the tree, then reconcile
// orphans. Reconciliation is gated on a clean publish phase.
type Pipeline struct {
	root       string
	publisher  *Publisher
	reconciler *Reconciler
	logger     *slog.Logger
}

// NewPipeline creates a Pipeline rooted at the publish directory.
func NewPipeline(root string, publisher *Publisher, reconciler *Reconciler, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		root:       root,
		publisher:  publisher,
		reconciler: reconciler,
		logger:     logger,
	}
}

// RunResult is the combined outcome of one pipeline run. Reconciled is
// false when cleanup was not attempted because publishing recorded
// errors.
type RunResult struct {
	Stats      *Stats
	Reconciled bool
	Reconcile  ReconcileResult
}

// Run executes one full publish run.
func (p *Pipeline) Run(ctx context.Context) (RunResult, error) {
	p.logger.Info("building expected pages set", slog.String("root", p.root))

	expected, err := BuildExpectedSet(p.root)
	if err != nil {
		return RunResult{}, fmt.Errorf("building expected pages set: %w", err)
	}

	p.logger.Info("expected pages set built", slog.Int("pages", len(expected)))

	stats, err := p.publisher.Run(ctx)
	if err != nil {
		return RunResult{Stats: stats}, err
	}

	if stats.HasErrors() {
		p.logger.Warn("skipping orphan cleanup due to publishing errors",
			slog.Int("errors", len(stats.Errors())))

		return RunResult{Stats: stats}, nil
	}

	rec, err := p.reconciler.Reconcile(ctx, expected)
	if err != nil {
		return RunResult{Stats: stats}, fmt.Errorf("reconciling orphans: %w", err)
	}

	return RunResult{Stats: stats, Reconciled: true, Reconcile: rec}, nil
}
