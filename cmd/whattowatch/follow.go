package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/yuseong/whattowatch/internal/config"
	"github.com/yuseong/whattowatch/internal/recommend"
)

// Overlap prevention for refresh runs
var refreshInProgress atomic.Bool

func (a *app) cmdRecommend(args []string) error {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	follow := fs.Bool("follow", false, "Keep running and refresh when favorites change")
	interval := fs.Duration("interval", 10*time.Minute, "Periodic refresh interval in follow mode")
	fs.Parse(args)

	if !*follow {
		_, err := a.printRecommendations(context.Background())
		return err
	}
	return a.followRecommendations(*interval)
}

func (a *app) printRecommendations(ctx context.Context) (*recommend.Result, error) {
	rec := a.recommender()
	result, err := rec.Recommendations(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Printf("%s\n\n", rec.QualityLabel())
	if len(result.PreferredGenres) > 0 {
		fmt.Printf("Preferred genres: ")
		for i, g := range result.PreferredGenres {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Printf("%s(%d)", g.Name, g.ID)
		}
		fmt.Printf("  (based on %d favorites)\n\n", result.TotalFavorites)
	}
	for _, item := range result.Movies {
		printMediaItem(item, false)
	}
	fmt.Printf("\nGenerated at %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
	return result, nil
}

// followRecommendations re-runs the recommendation pipeline whenever the
// favorites store signals a change or the refresh interval elapses. The
// config file is watched so API settings apply without a restart.
func (a *app) followRecommendations(interval time.Duration) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	changes, unsubscribe := a.store.Subscribe()
	defer unsubscribe()

	watcher, err := config.NewWatcher(*configPath, 0, func(cfg *config.Config) {
		a.setConfig(cfg)
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	slog.Info("follow mode started", "interval", interval.String())

	a.refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-changes:
			slog.Info("favorites changed, refreshing recommendations")
			a.refresh(ctx)

		case <-ticker.C:
			slog.Info("interval refresh triggered")
			a.refresh(ctx)

		case <-ctx.Done():
			slog.Info("follow mode stopped")
			return nil
		}
	}
}

// refresh performs a single recommendation run with overlap prevention.
func (a *app) refresh(ctx context.Context) {
	if !refreshInProgress.CompareAndSwap(false, true) {
		slog.Warn("refresh skipped: previous run still in progress")
		return
	}
	defer refreshInProgress.Store(false)

	start := time.Now()
	result, err := a.printRecommendations(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("recommendation refresh failed", "error", err)
		return
	}

	// Warm the poster cache so a consumer rendering the list hits memory.
	var urls []string
	for _, item := range result.Movies {
		urls = append(urls, item.PosterURL())
	}
	a.loader.Prefetch(ctx, urls, posterWorkers)

	slog.Debug("refresh complete", "duration_sec", time.Since(start).Seconds())
}
