package publish

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/alexjbarnes/wiki-publish/internal/render"
)

// PublisherConfig configures a Publisher.
type PublisherConfig struct {
	// Root is the absolute path of the local markdown tree.
	Root string

	// ImageDir is where image references resolve to for attachment.
	// Empty disables attachment upload.
	ImageDir string

	// Workers bounds the file-upsert pool.
	Workers int

	Store    PageStore
	Upserter *Upserter
	Renderer *render.Renderer
}

// Publisher drives the recursive tree walk. Directory container pages
// are upserted sequentially in pre-order on the calling goroutine,
// because a child needs its parent's remote id before it can be
// attached. Markdown files have no ordering dependency on each other
// and go through a bounded worker pool shared across the whole run.
type Publisher struct {
	root     string
	imageDir string
	workers  int
	store    PageStore
	upserter *Upserter
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(cfg PublisherConfig, logger *slog.Logger) *Publisher {
	return &Publisher{
		root:     cfg.Root,
		imageDir: cfg.ImageDir,
		workers:  cfg.Workers,
		store:    cfg.Store,
		upserter: cfg.Upserter,
		renderer: cfg.Renderer,
		logger:   logger,
	}
}

// Run publishes the whole tree and returns the run's stats. The worker
// pool is created here and joined before returning on every path, so
// all in-flight file upserts are accounted for in the returned stats.
// Directory work never enters the pool: pool-scheduling the recursion
// would deadlock once nesting depth exceeds the pool size.
func (p *Publisher) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	pool := &errgroup.Group{}
	pool.SetLimit(p.workers)

	p.publishDir(ctx, pool, p.root, "", stats)

	// Workers record their outcomes in stats and always return nil.
	_ = pool.Wait()

	return stats, ctx.Err()
}

// publishDir processes one directory whose own container page (or the
// publish root) is already materialized as parentID. Subdirectories are
// upserted inline and descended on success; a failed container records
// one error and abandons the subtree. Files are handed to the pool.
func (p *Publisher) publishDir(ctx context.Context, pool *errgroup.Group, dir, parentID string, stats *Stats) {
	p.logger.Info("publishing directory", slog.String("dir", dir))

	entries, err := os.ReadDir(dir)
	if err != nil {
		stats.RecordFailure(dir, KindDirectory, err.Error(), 0)
		p.logger.Warn("reading directory failed", slog.String("dir", dir), slog.String("error", err.Error()))

		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}

		entryPath := filepath.Join(dir, entry.Name())

		switch {
		case entry.IsDir():
			p.publishSubtree(ctx, pool, entryPath, parentID, stats)

		case entry.Type().IsRegular():
			if !isMarkdown(entry.Name()) {
				p.logger.Debug("skipping non-markdown file", slog.String("path", entryPath))
				continue
			}

			pool.Go(func() error {
				p.publishFile(ctx, entryPath, parentID, stats)
				return nil
			})

		case entry.Type()&fs.ModeSymlink != 0:
			p.logger.Debug("skipping symlink", slog.String("path", entryPath))

		default:
			p.logger.Debug("skipping entry of unknown type", slog.String("path", entryPath))
		}
	}
}

// publishSubtree upserts a directory's container page and, on success,
// recurses under the assigned remote id.
func (p *Publisher) publishSubtree(ctx context.Context, pool *errgroup.Group, dir, parentID string, stats *Stats) {
	title := CanonicalTitle(dir, p.root)

	outcome := p.upserter.Upsert(ctx, title, render.ChildrenMacro, parentID)
	if outcome.Failed() {
		stats.RecordFailure(dir, KindDirectory, reason(outcome.Err), outcome.StatusCode)
		p.logger.Warn("skipping directory and its children",
			slog.String("dir", dir),
			slog.String("error", reason(outcome.Err)),
		)

		return
	}

	p.recordSuccess(outcome, stats)
	p.publishDir(ctx, pool, dir, outcome.PageID, stats)
}

// publishFile renders and upserts one markdown file, then attaches any
// images it references. Runs on a pool worker.
func (p *Publisher) publishFile(ctx context.Context, path, parentID string, stats *Stats) {
	content, err := os.ReadFile(path)
	if err != nil {
		stats.RecordFailure(path, KindFile, err.Error(), 0)
		return
	}

	if !render.ShouldPublish(content) {
		p.logger.Debug("skipping file excluded by frontmatter", slog.String("path", path))
		return
	}

	markup, attachments, err := p.renderer.Render(content)
	if err != nil {
		stats.RecordFailure(path, KindFile, err.Error(), 0)
		return
	}

	title := CanonicalTitle(path, p.root)

	outcome := p.upserter.Upsert(ctx, title, markup, parentID)
	if outcome.Failed() {
		stats.RecordFailure(path, KindFile, reason(outcome.Err), outcome.StatusCode)
		p.logger.Warn("skipping file due to error",
			slog.String("path", path),
			slog.String("error", reason(outcome.Err)),
		)

		return
	}

	p.recordSuccess(outcome, stats)
	p.attachImages(ctx, outcome.PageID, attachments)
}

// attachImages uploads referenced image files to the page. Best-effort:
// a missing or failed attachment is logged and never counted as a
// publish error.
func (p *Publisher) attachImages(ctx context.Context, pageID string, filenames []string) {
	if len(filenames) == 0 {
		return
	}

	if p.imageDir == "" {
		p.logger.Warn("page references images but no image directory is configured",
			slog.String("page_id", pageID))

		return
	}

	for _, name := range filenames {
		imagePath := filepath.Join(p.imageDir, filepath.Base(name))

		data, err := os.ReadFile(imagePath)
		if err != nil {
			p.logger.Error("image file not found, nothing to attach",
				slog.String("path", imagePath),
				slog.String("error", err.Error()),
			)

			continue
		}

		p.logger.Info("attaching file",
			slog.String("path", imagePath),
			slog.String("page_id", pageID),
		)

		if err := p.store.AttachFile(ctx, pageID, filepath.Base(name), data); err != nil {
			p.logger.Warn("attaching file failed",
				slog.String("path", imagePath),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (p *Publisher) recordSuccess(outcome Outcome, stats *Stats) {
	if outcome.Op == OpCreated {
		stats.RecordCreated()
	} else {
		stats.RecordUpdated()
	}
}

func reason(err error) string {
	if err == nil {
		return "unknown error"
	}

	return err.Error()
}
