package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/yuseong/whattowatch/internal/config"
	"github.com/yuseong/whattowatch/internal/favorites"
	"github.com/yuseong/whattowatch/internal/images"
	"github.com/yuseong/whattowatch/internal/recommend"
	"github.com/yuseong/whattowatch/internal/storage"
	"github.com/yuseong/whattowatch/internal/tmdb"
)

var (
	configPath = flag.String("config", "./config/config.yaml", "Path to configuration file")
	verbose    = flag.Bool("verbose", false, "Show detailed logging")
)

const usageText = `Usage: whattowatch [flags] <command> [command flags]

Commands:
  popular    List popular movies (-page N)
  tv         List popular TV shows (-page N)
  search     Search movies and TV shows (-query Q -page N)
  detail     Show detail with cast (-id N -type movie|tv)
  favorite   Manage favorites: add|remove|toggle|list|clear
  recommend  Personalized recommendations (-follow -interval D)

Flags:
`

// app bundles the wired services. The config watcher swaps the API client
// at runtime, so reads go through the mutex.
type app struct {
	cfg    *config.Config
	kv     *storage.SQLiteKV
	store  *favorites.Store
	loader *images.Loader

	mu     sync.RWMutex
	client *tmdb.Client
}

func (a *app) tmdbClient() *tmdb.Client {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.client
}

func (a *app) setConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cfg = cfg
	a.client = newTMDBClient(cfg)
}

func (a *app) recommender() *recommend.Recommender {
	return recommend.New(a.store, a.tmdbClient())
}

func newTMDBClient(cfg *config.Config) *tmdb.Client {
	return tmdb.NewClient(tmdb.Config{
		APIKey:          cfg.TMDB.APIKey,
		Language:        cfg.TMDB.Language,
		Region:          cfg.TMDB.Region,
		TVOriginCountry: cfg.TMDB.TVOriginCountry,
		Timeout:         cfg.Client.Timeout(),
		MaxAttempts:     cfg.Client.MaxAttempts,
		InitialBackoff:  cfg.Client.InitialBackoff(),
	})
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	kv, err := storage.NewSQLiteKV(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	a := &app{
		cfg:    cfg,
		kv:     kv,
		store:  favorites.NewStore(kv),
		loader: images.NewLoader(cfg.Client.Timeout(), slog.Default()),
		client: newTMDBClient(cfg),
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	if err := a.run(command, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "popular":
		return a.cmdPopular(args)
	case "tv":
		return a.cmdPopularTV(args)
	case "search":
		return a.cmdSearch(args)
	case "detail":
		return a.cmdDetail(args)
	case "favorite":
		return a.cmdFavorite(args)
	case "recommend":
		return a.cmdRecommend(args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}
