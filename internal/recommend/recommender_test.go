package recommend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/yuseong/whattowatch/internal/favorites"
	"github.com/yuseong/whattowatch/internal/tmdb"
)

// fakeSource records which endpoint was queried and serves canned pages.
type fakeSource struct {
	popular       *tmdb.MoviePage
	discovered    *tmdb.MoviePage
	err           error
	popularCalls  int
	discoverCalls int
	lastGenreID   int
}

func (f *fakeSource) PopularMovies(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	f.popularCalls++
	return f.popular, f.err
}

func (f *fakeSource) DiscoverMoviesByGenre(ctx context.Context, genreID, page int) (*tmdb.MoviePage, error) {
	f.discoverCalls++
	f.lastGenreID = genreID
	return f.discovered, f.err
}

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memKV) Set(key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *memKV) Close() error { return nil }

func newTestStore(t *testing.T, titles ...string) *favorites.Store {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := favorites.NewStore(newMemKV(), favorites.WithLogger(log))
	for i, title := range titles {
		item := favorites.Item{ID: 1000 + i, Title: title, MediaType: "movie"}
		if err := store.Add(item); err != nil {
			t.Fatalf("seed favorite %q: %v", title, err)
		}
	}
	return store
}

func moviePage(ids ...int) *tmdb.MoviePage {
	page := &tmdb.MoviePage{Page: 1, TotalPages: 1}
	for _, id := range ids {
		page.Results = append(page.Results, tmdb.Movie{ID: id})
	}
	page.TotalResults = len(page.Results)
	return page
}

func TestRecommendations_EmptyFavoritesFallsBackToPopular(t *testing.T) {
	source := &fakeSource{popular: moviePage(1, 2, 3)}
	r := New(newTestStore(t), source)

	result, err := r.Recommendations(context.Background())
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}

	if source.popularCalls != 1 || source.discoverCalls != 0 {
		t.Errorf("calls: popular=%d discover=%d, want popular only", source.popularCalls, source.discoverCalls)
	}
	if len(result.PreferredGenres) != 0 {
		t.Errorf("preferred genres = %v, want none", result.PreferredGenres)
	}
	if result.TotalFavorites != 0 {
		t.Errorf("TotalFavorites = %d", result.TotalFavorites)
	}
	if len(result.Movies) != 3 {
		t.Errorf("got %d movies", len(result.Movies))
	}
	if result.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not stamped")
	}
}

func TestRecommendations_QueriesOnlyTopGenre(t *testing.T) {
	store := newTestStore(t, "action one", "action two", "a comedy")
	source := &fakeSource{discovered: moviePage(1, 2)}
	r := New(store, source)

	result, err := r.Recommendations(context.Background())
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}

	if source.discoverCalls != 1 || source.popularCalls != 0 {
		t.Errorf("calls: popular=%d discover=%d, want discover only", source.popularCalls, source.discoverCalls)
	}
	if source.lastGenreID != 28 {
		t.Errorf("queried genre = %d, want 28", source.lastGenreID)
	}
	if len(result.PreferredGenres) != 2 {
		t.Errorf("preferred genres = %v, want 2", result.PreferredGenres)
	}
	if result.TotalFavorites != 3 {
		t.Errorf("TotalFavorites = %d, want 3", result.TotalFavorites)
	}
}

func TestRecommendations_ExcludesFavoritedIDs(t *testing.T) {
	store := newTestStore(t, "action movie")
	// The seeded favorite has id 1000; the discover page includes it.
	source := &fakeSource{discovered: moviePage(1000, 2000, 3000)}
	r := New(store, source)

	result, err := r.Recommendations(context.Background())
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}

	for _, m := range result.Movies {
		if m.ID == 1000 {
			t.Error("favorited id 1000 should have been excluded")
		}
	}
	if len(result.Movies) != 2 {
		t.Errorf("got %d candidates, want 2", len(result.Movies))
	}
}

func TestRecommendations_TruncatesToTen(t *testing.T) {
	store := newTestStore(t, "action movie")
	ids := make([]int, 15)
	for i := range ids {
		ids[i] = 5000 + i
	}
	source := &fakeSource{discovered: moviePage(ids...)}
	r := New(store, source)

	result, err := r.Recommendations(context.Background())
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	if len(result.Movies) != 10 {
		t.Errorf("got %d candidates, want 10", len(result.Movies))
	}
}

func TestRecommendations_PropagatesSourceErrors(t *testing.T) {
	wantErr := errors.New("boom")
	source := &fakeSource{err: wantErr}

	r := New(newTestStore(t, "action movie"), source)
	if _, err := r.Recommendations(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}

	r = New(newTestStore(t), source)
	if _, err := r.Recommendations(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("fallback path error = %v, want %v", err, wantErr)
	}
}

func TestRecommender_QualityLabelTracksCount(t *testing.T) {
	r := New(newTestStore(t), &fakeSource{})
	if got := r.QualityLabel(); got != QualityLabel(0) {
		t.Errorf("QualityLabel() = %q", got)
	}

	r = New(newTestStore(t, "action one", "action two", "action three"), &fakeSource{})
	if got := r.QualityLabel(); got != QualityLabel(3) {
		t.Errorf("QualityLabel() = %q", got)
	}
}
