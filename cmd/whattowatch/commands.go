package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/yuseong/whattowatch/internal/favorites"
	"github.com/yuseong/whattowatch/internal/tmdb"
)

const posterWorkers = 4

func (a *app) cmdPopular(args []string) error {
	fs := flag.NewFlagSet("popular", flag.ExitOnError)
	page := fs.Int("page", 1, "Result page")
	fs.Parse(args)

	result, err := a.tmdbClient().PopularMovies(context.Background(), *page)
	if err != nil {
		return err
	}

	fmt.Printf("Popular movies (page %d/%d, %d total)\n\n", result.Page, result.TotalPages, result.TotalResults)
	var posters []string
	for _, m := range result.Results {
		item := tmdb.FromMovie(m)
		printMediaItem(item, a.store.IsFavorite(item.ID, item.MediaType))
		posters = append(posters, item.PosterURL())
	}
	a.loader.Prefetch(context.Background(), posters, posterWorkers)
	return nil
}

func (a *app) cmdPopularTV(args []string) error {
	fs := flag.NewFlagSet("tv", flag.ExitOnError)
	page := fs.Int("page", 1, "Result page")
	fs.Parse(args)

	result, err := a.tmdbClient().PopularTV(context.Background(), *page)
	if err != nil {
		return err
	}

	fmt.Printf("Popular TV shows (page %d/%d, %d total)\n\n", result.Page, result.TotalPages, result.TotalResults)
	var posters []string
	for _, item := range result.Results {
		printMediaItem(item, a.store.IsFavorite(item.ID, item.MediaType))
		posters = append(posters, item.PosterURL())
	}
	a.loader.Prefetch(context.Background(), posters, posterWorkers)
	return nil
}

func (a *app) cmdSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "Search text")
	page := fs.Int("page", 1, "Result page")
	fs.Parse(args)

	result, err := a.tmdbClient().SearchMulti(context.Background(), *query, *page)
	if err != nil {
		return err
	}

	fmt.Printf("Search results for %q (page %d/%d, %d total)\n\n", *query, result.Page, result.TotalPages, result.TotalResults)
	for _, item := range result.Results {
		printMediaItem(item, a.store.IsFavorite(item.ID, item.MediaType))
	}
	return nil
}

func (a *app) cmdDetail(args []string) error {
	fs := flag.NewFlagSet("detail", flag.ExitOnError)
	id := fs.Int("id", 0, "TMDB id")
	mediaType := fs.String("type", tmdb.MediaTypeMovie, "movie or tv")
	fs.Parse(args)

	detail, err := a.tmdbClient().Detail(context.Background(), *id, *mediaType)
	if err != nil {
		return err
	}

	switch {
	case detail.Movie != nil:
		printMovieDetail(detail.Movie)
	case detail.TV != nil:
		printTVDetail(detail.TV)
	}
	return nil
}

func (a *app) cmdFavorite(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("favorite needs a subcommand: add, remove, toggle, list, clear")
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "list":
		items := a.store.List()
		if len(items) == 0 {
			fmt.Println("No favorites yet")
			return nil
		}
		fmt.Printf("%d favorites\n\n", len(items))
		for _, it := range items {
			printMediaItem(it.ToMediaItem(), true)
			fmt.Printf("          added %s\n", it.AddedAt.Format("2006-01-02 15:04"))
		}
		return nil

	case "clear":
		if err := a.store.ClearAll(); err != nil {
			return err
		}
		fmt.Println("All favorites removed")
		return nil

	case "add", "remove", "toggle":
		fs := flag.NewFlagSet("favorite "+sub, flag.ExitOnError)
		id := fs.Int("id", 0, "TMDB id")
		mediaType := fs.String("type", tmdb.MediaTypeMovie, "movie or tv")
		fs.Parse(rest)

		if sub == "remove" {
			if err := a.store.Remove(*id, *mediaType); err != nil {
				return err
			}
			fmt.Printf("Removed %s %d\n", *mediaType, *id)
			return nil
		}

		// add and toggle resolve the full record first.
		item, err := a.resolveFavorite(*id, *mediaType)
		if err != nil {
			return err
		}
		if sub == "add" {
			if err := a.store.Add(item); err != nil {
				return err
			}
			fmt.Printf("Added: %s\n", item.Title)
			return nil
		}
		nowFavorite, err := a.store.Toggle(item)
		if err != nil {
			return err
		}
		if nowFavorite {
			fmt.Printf("Added: %s\n", item.Title)
		} else {
			fmt.Printf("Removed: %s\n", item.Title)
		}
		return nil

	default:
		return fmt.Errorf("unknown favorite subcommand %q", sub)
	}
}

// resolveFavorite fetches the detail record so the saved favorite carries the
// display fields.
func (a *app) resolveFavorite(id int, mediaType string) (favorites.Item, error) {
	detail, err := a.tmdbClient().Detail(context.Background(), id, mediaType)
	if err != nil {
		return favorites.Item{}, err
	}

	item := favorites.Item{ID: id, MediaType: mediaType}
	switch {
	case detail.Movie != nil:
		item.Title = detail.Movie.Title
		item.PosterPath = detail.Movie.PosterPath
		item.ReleaseDate = detail.Movie.ReleaseDate
		item.VoteAverage = detail.Movie.VoteAverage
		item.Overview = detail.Movie.Overview
	case detail.TV != nil:
		item.Title = detail.TV.Name
		item.PosterPath = detail.TV.PosterPath
		item.ReleaseDate = detail.TV.FirstAirDate
		item.VoteAverage = detail.TV.VoteAverage
		item.Overview = detail.TV.Overview
	}
	return item, nil
}

func printMediaItem(item tmdb.MediaItem, favorite bool) {
	marker := " "
	if favorite {
		marker = "*"
	}
	fmt.Printf("%s %7d  [%s] %s (%s)  %s\n",
		marker, item.ID, item.MediaType, item.DisplayTitle(), item.DisplayYear(), item.FormattedRating())
}

func printMovieDetail(d *tmdb.MovieDetail) {
	fmt.Printf("%s (%s)\n", d.Title, d.ReleaseDate)
	if d.Tagline != "" {
		fmt.Printf("  %s\n", d.Tagline)
	}
	fmt.Printf("  Rating: %.1f (%d votes)\n", d.VoteAverage, d.VoteCount)
	fmt.Printf("  Runtime: %s\n", d.FormattedRuntime())
	if len(d.Genres) > 0 {
		fmt.Printf("  Genres: ")
		for i, g := range d.Genres {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(g.Name)
		}
		fmt.Println()
	}
	if directors := d.Directors(); len(directors) > 0 {
		fmt.Printf("  Director: ")
		for i, c := range directors {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(c.Name)
		}
		fmt.Println()
	}
	if cast := d.MainCast(); len(cast) > 0 {
		fmt.Println("  Cast:")
		for _, c := range cast {
			fmt.Printf("    %s as %s\n", c.Name, c.Character)
		}
	}
	if d.Overview != "" {
		fmt.Printf("\n%s\n", d.Overview)
	}
}

func printTVDetail(d *tmdb.TVDetail) {
	fmt.Printf("%s (%s)\n", d.Name, d.FirstAirDate)
	fmt.Printf("  Rating: %.1f (%d votes)\n", d.VoteAverage, d.VoteCount)
	fmt.Printf("  Seasons: %d, episodes: %d\n", d.NumberOfSeasons, d.NumberOfEpisodes)
	if d.Status != "" {
		fmt.Printf("  Status: %s\n", d.Status)
	}
	if len(d.Genres) > 0 {
		fmt.Printf("  Genres: ")
		for i, g := range d.Genres {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(g.Name)
		}
		fmt.Println()
	}
	if cast := d.MainCast(); len(cast) > 0 {
		fmt.Println("  Cast:")
		for _, c := range cast {
			fmt.Printf("    %s as %s\n", c.Name, c.Character)
		}
	}
	if d.Overview != "" {
		fmt.Printf("\n%s\n", d.Overview)
	}
}
