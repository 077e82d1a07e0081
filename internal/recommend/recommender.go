// Package recommend derives genre preferences from the favorites collection
// and produces a personalized candidate list.
package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/yuseong/whattowatch/internal/favorites"
	"github.com/yuseong/whattowatch/internal/tmdb"
)

const maxCandidates = 10

// MovieSource is the slice of the API client the recommender needs.
type MovieSource interface {
	PopularMovies(ctx context.Context, page int) (*tmdb.MoviePage, error)
	DiscoverMoviesByGenre(ctx context.Context, genreID, page int) (*tmdb.MoviePage, error)
}

// Result is one recommendation run: the inferred preferences, the filtered
// candidate list, and the inputs it was derived from.
type Result struct {
	PreferredGenres []Genre
	Movies          []tmdb.MediaItem
	TotalFavorites  int
	GeneratedAt     time.Time
}

// Recommender produces recommendations from the favorites store and the
// movie source.
type Recommender struct {
	store  *favorites.Store
	source MovieSource
	log    *slog.Logger
	now    func() time.Time
}

// New creates a Recommender.
func New(store *favorites.Store, source MovieSource) *Recommender {
	return &Recommender{
		store:  store,
		source: source,
		log:    slog.Default(),
		now:    time.Now,
	}
}

// AnalyzePreferences ranks the user's preferred genres from the current
// favorites collection.
func (r *Recommender) AnalyzePreferences() []Genre {
	return AnalyzePreferences(r.store.List())
}

// QualityLabel describes the confidence of the current recommendations.
func (r *Recommender) QualityLabel() string {
	return QualityLabel(r.store.Count())
}

// Recommendations derives the preferred genres and fetches a candidate list.
// Only the single top-ranked genre drives the query; the lower-ranked
// preferred genres are reported for display only. With no favorites the
// candidates fall back to plain popular movies. API failures propagate the
// client's error taxonomy unchanged.
func (r *Recommender) Recommendations(ctx context.Context) (*Result, error) {
	items := r.store.List()
	preferred := AnalyzePreferences(items)

	if len(preferred) == 0 {
		page, err := r.source.PopularMovies(ctx, 1)
		if err != nil {
			return nil, err
		}
		return &Result{
			Movies:      truncate(toMediaItems(page.Results)),
			GeneratedAt: r.now(),
		}, nil
	}

	primary := preferred[0]
	r.log.Debug("fetching candidates", "genre", primary.Name, "genre_id", primary.ID)

	page, err := r.source.DiscoverMoviesByGenre(ctx, primary.ID, 1)
	if err != nil {
		return nil, err
	}

	// Exclusion matches on id alone, not (id, mediaType); a show and a movie
	// sharing an id are treated as the same entity here.
	favoriteIDs := make(map[int]bool, len(items))
	for _, it := range items {
		favoriteIDs[it.ID] = true
	}

	var candidates []tmdb.MediaItem
	for _, m := range page.Results {
		if favoriteIDs[m.ID] {
			continue
		}
		candidates = append(candidates, tmdb.FromMovie(m))
	}

	return &Result{
		PreferredGenres: preferred,
		Movies:          truncate(candidates),
		TotalFavorites:  len(items),
		GeneratedAt:     r.now(),
	}, nil
}

func toMediaItems(movies []tmdb.Movie) []tmdb.MediaItem {
	out := make([]tmdb.MediaItem, 0, len(movies))
	for _, m := range movies {
		out = append(out, tmdb.FromMovie(m))
	}
	return out
}

func truncate(items []tmdb.MediaItem) []tmdb.MediaItem {
	if len(items) > maxCandidates {
		return items[:maxCandidates]
	}
	return items
}
