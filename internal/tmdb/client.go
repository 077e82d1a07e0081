// Package tmdb is a typed client for The Movie Database API.
//
// Every operation takes a context, performs at most one logical provider
// request, and returns either a decoded result or an *Error from the fixed
// taxonomy in errors.go. The client never panics across its public boundary.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yuseong/whattowatch/internal/retry"
)

const defaultBaseURL = "https://api.themoviedb.org"

// Client issues requests against the metadata provider.
type Client struct {
	baseURL         string
	apiKey          string
	language        string
	region          string
	tvOriginCountry string
	httpClient      *http.Client
	maxAttempts     int
	initialBackoff  time.Duration
	log             *slog.Logger
}

// Config holds client construction parameters. Zero values fall back to the
// defaults the app ships with (Korean locale and region).
type Config struct {
	APIKey          string
	Language        string
	Region          string
	TVOriginCountry string
	BaseURL         string // overridden in tests
	Timeout         time.Duration
	MaxAttempts     int
	InitialBackoff  time.Duration
	Logger          *slog.Logger
}

// NewClient creates a TMDB client.
func NewClient(cfg Config) *Client {
	if cfg.Language == "" {
		cfg.Language = "ko-KR"
	}
	if cfg.Region == "" {
		cfg.Region = "KR"
	}
	if cfg.TVOriginCountry == "" {
		cfg.TVOriginCountry = "KR"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		language:        cfg.Language,
		region:          cfg.Region,
		tvOriginCountry: cfg.TVOriginCountry,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
		maxAttempts:     cfg.MaxAttempts,
		initialBackoff:  cfg.InitialBackoff,
		log:             cfg.Logger,
	}
}

// PopularMovies fetches one page of popular movies for the configured region.
// page must be >= 1.
func (c *Client) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	const op = "popular movies"
	if page < 1 {
		return nil, invalidRequest(op, fmt.Errorf("page %d out of range", page))
	}
	var out MoviePage
	if err := c.getJSON(ctx, op, epPopularMovies, requestParams{page: page}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchMulti searches movies and TV shows in one combined request. A query
// that is empty after trimming whitespace fails with an invalid-request error
// before any network I/O.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*MediaPage, error) {
	const op = "search"
	if strings.TrimSpace(query) == "" {
		return nil, invalidRequest(op, fmt.Errorf("empty query"))
	}
	if page < 1 {
		page = 1
	}
	var out MediaPage
	if err := c.getJSON(ctx, op, epMultiSearch, requestParams{page: page, query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PopularTV fetches one page of TV shows for the configured origin country,
// sorted by descending popularity, normalized into the unified media shape.
func (c *Client) PopularTV(ctx context.Context, page int) (*MediaPage, error) {
	const op = "popular tv"
	if page < 1 {
		return nil, invalidRequest(op, fmt.Errorf("page %d out of range", page))
	}
	var tvPage TVPage
	if err := c.getJSON(ctx, op, epDiscoverTV, requestParams{page: page}, &tvPage); err != nil {
		return nil, err
	}

	items := make([]MediaItem, 0, len(tvPage.Results))
	for _, tv := range tvPage.Results {
		items = append(items, fromTVItem(tv))
	}
	return &MediaPage{
		Page:         tvPage.Page,
		Results:      items,
		TotalPages:   tvPage.TotalPages,
		TotalResults: tvPage.TotalResults,
	}, nil
}

// DiscoverMoviesByGenre fetches one page of movies in a genre, sorted by
// descending popularity.
func (c *Client) DiscoverMoviesByGenre(ctx context.Context, genreID, page int) (*MoviePage, error) {
	const op = "discover by genre"
	if page < 1 {
		page = 1
	}
	var out MoviePage
	if err := c.getJSON(ctx, op, epDiscoverMovies, requestParams{page: page, genreID: genreID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MovieDetail fetches extended movie detail with embedded cast and crew in a
// single round trip.
func (c *Client) MovieDetail(ctx context.Context, id int) (*MovieDetail, error) {
	const op = "movie detail"
	var out MovieDetail
	if err := c.getJSON(ctx, op, epMovieDetail, requestParams{id: id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TVDetail fetches extended TV detail with embedded cast and crew in a
// single round trip.
func (c *Client) TVDetail(ctx context.Context, id int) (*TVDetail, error) {
	const op = "tv detail"
	var out TVDetail
	if err := c.getJSON(ctx, op, epTVDetail, requestParams{id: id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Detail fetches detail-with-credits for either media type.
func (c *Client) Detail(ctx context.Context, id int, mediaType string) (*Detail, error) {
	switch mediaType {
	case MediaTypeMovie:
		d, err := c.MovieDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Detail{MediaType: MediaTypeMovie, Movie: d}, nil
	case MediaTypeTV:
		d, err := c.TVDetail(ctx, id)
		if err != nil {
			return nil, err
		}
		return &Detail{MediaType: MediaTypeTV, TV: d}, nil
	default:
		return nil, invalidRequest("detail", fmt.Errorf("unknown media type %q", mediaType))
	}
}

// getJSON builds the URL for ep, executes the request with retries on
// transient failures, and decodes the body into out. An empty body is
// no-data, schema mismatch is decoding-failed, and everything at the
// transport level is a network error.
func (c *Client) getJSON(ctx context.Context, op string, ep endpoint, p requestParams, out any) error {
	requestURL, err := c.buildURL(ep, p)
	if err != nil {
		return invalidRequest(op, err)
	}

	body, err := c.doRequestWithRetry(ctx, requestURL)
	if err != nil {
		return networkError(op, err)
	}
	if len(body) == 0 {
		return noData(op)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.log.Debug("response decode failed", "op", op, "error", err)
		return decodingFailed(op, err)
	}
	return nil
}

// doRequestWithRetry executes an HTTP GET with exponential backoff on 5xx
// and 429 responses. Other statuses are returned as-is so the body (usually
// a provider error object) flows into the normal decode path, matching the
// provider's behavior of shipping errors in JSON bodies.
func (c *Client) doRequestWithRetry(ctx context.Context, requestURL string) ([]byte, error) {
	var body []byte
	attempt := 0

	err := retry.Do(ctx, func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			err := fmt.Errorf("TMDB API error (status %d): %s", resp.StatusCode, string(data))
			if attempt < c.maxAttempts {
				c.log.Warn("retrying request", "attempt", attempt, "max_attempts", c.maxAttempts, "error", err)
			}
			return err
		}

		body = data
		return nil
	}, c.maxAttempts, c.initialBackoff)
	if err != nil {
		return nil, err
	}
	return body, nil
}
