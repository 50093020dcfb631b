package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alexjbarnes/wiki-publish/internal/config"
	"github.com/alexjbarnes/wiki-publish/internal/logging"
	"github.com/alexjbarnes/wiki-publish/internal/publish"
	"github.com/alexjbarnes/wiki-publish/internal/render"
	"github.com/alexjbarnes/wiki-publish/internal/wiki"
)

var Version = "dev"

// errPublishFailed signals a completed run that recorded per-entry
// failures; the summary has already been printed.
var errPublishFailed = errors.New("some pages failed to publish")

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errPublishFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.NewLogger(cfg.Environment)
	logger.Info("wiki-publish starting",
		slog.String("version", Version),
		slog.String("space", cfg.WikiSpace),
		slog.String("publish_dir", cfg.PublishDir),
		slog.Int("workers", cfg.Workers),
		slog.Bool("watch", cfg.EnableWatch),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := wiki.NewClient(wiki.Config{
		BaseURL:      cfg.WikiBaseURL,
		Space:        cfg.WikiSpace,
		ParentPageID: cfg.WikiParentPageID,
		Login:        cfg.Login,
		APIToken:     cfg.APIToken,
	}, nil)

	upserter := publish.NewUpserter(publish.UpserterConfig{
		Store:  client,
		Suffix: cfg.TitleSuffix,
	}, logger)

	publisher := publish.NewPublisher(publish.PublisherConfig{
		Root:     cfg.PublishDir,
		ImageDir: cfg.ImageDir,
		Workers:  cfg.Workers,
		Store:    client,
		Upserter: upserter,
		Renderer: render.New(),
	}, logger)

	reconciler := publish.NewReconciler(client, cfg.TitleSuffix, logger)
	pipeline := publish.NewPipeline(cfg.PublishDir, publisher, reconciler, logger)

	if cfg.EnableWatch {
		return runWatch(ctx, cfg, pipeline, logger)
	}

	result, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(result)

	if result.Stats.HasErrors() {
		return errPublishFailed
	}

	return nil
}

// runWatch performs an initial publish and then republishes whenever
// local changes settle, until the process is signalled.
func runWatch(ctx context.Context, cfg *config.Config, pipeline *publish.Pipeline, logger *slog.Logger) error {
	runOnce := func(ctx context.Context) error {
		result, err := pipeline.Run(ctx)
		if err != nil {
			return err
		}

		printSummary(result)

		return nil
	}

	if err := runOnce(ctx); err != nil && ctx.Err() == nil {
		logger.Warn("initial publish failed", slog.String("error", err.Error()))
	}

	watcher := publish.NewWatcher(cfg.PublishDir, runOnce, logger)

	err := watcher.Watch(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("shutting down")
		return nil
	}

	return err
}

// printSummary emits the human-readable run report regardless of
// outcome.
func printSummary(result publish.RunResult) {
	stats := result.Stats
	pubErrors := stats.Errors()

	line := strings.Repeat("=", 80)

	fmt.Println("\n" + line)
	fmt.Println("PUBLISHING SUMMARY")
	fmt.Println(line)

	fmt.Printf("\n✅ SUCCESSFUL: %d pages published\n", stats.Succeeded())
	fmt.Printf("   📝 Created: %d new pages\n", stats.Created())
	fmt.Printf("   🔄 Updated: %d existing pages\n", stats.Updated())
	fmt.Printf("❌ FAILED: %d pages\n", len(pubErrors))
	fmt.Printf("\n📊 Success Rate: %.1f%%\n", stats.SuccessRate())

	switch {
	case !result.Reconciled:
		fmt.Println("\n⚠️  Orphan cleanup skipped due to publishing errors")
	case result.Reconcile.Skipped:
		fmt.Printf("\n⚠️  Orphan cleanup skipped: %s\n", result.Reconcile.Reason)
	default:
		fmt.Printf("\n🧹 Orphan cleanup: %d pages removed\n", result.Reconcile.Deleted)
	}

	if len(pubErrors) > 0 {
		fmt.Println("\nERRORS:")
		fmt.Println(strings.Repeat("-", 80))

		for i, e := range pubErrors {
			fmt.Printf("\n%d. %s\n", i+1, e.Path)
			fmt.Printf("   Type: %s\n", e.Kind)
			fmt.Printf("   Error: %s\n", e.Reason)

			if e.StatusCode != 0 {
				fmt.Printf("   Status Code: %d\n", e.StatusCode)
			} else {
				fmt.Printf("   Status Code: N/A\n")
			}
		}

		fmt.Println("\n" + strings.Repeat("-", 80))
		fmt.Println("RECOMMENDATION:")
		fmt.Println("- Review the errors above and fix the issues")
		fmt.Println("- Re-run to publish remaining changes")
		fmt.Println(line + "\n")

		return
	}

	fmt.Println("\n🎉 All pages published successfully!")
	fmt.Println(line + "\n")
}
