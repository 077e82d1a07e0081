package tmdb

import (
	"fmt"
	"net/url"
	"strconv"
)

// endpoint identifies one logical provider endpoint. URL construction is
// table-driven: each endpoint maps to a path template plus the query
// parameters it requires, so every request URL is built in one place.
type endpoint int

const (
	epPopularMovies endpoint = iota
	epMultiSearch
	epDiscoverTV
	epDiscoverMovies
	epMovieDetail
	epTVDetail
)

type endpointSpec struct {
	// pathTemplate may contain one %d placeholder for a numeric id.
	pathTemplate string
	hasID        bool
	paged        bool
	regioned     bool // adds the region filter
	search       bool // adds the query parameter
	credits      bool // adds append_to_response=credits
	discoverTV   bool // adds TV discovery filters
	byGenre      bool // adds the with_genres filter
}

var endpointTable = map[endpoint]endpointSpec{
	epPopularMovies:  {pathTemplate: "/3/movie/popular", paged: true, regioned: true},
	epMultiSearch:    {pathTemplate: "/3/search/multi", paged: true, search: true},
	epDiscoverTV:     {pathTemplate: "/3/discover/tv", paged: true, discoverTV: true},
	epDiscoverMovies: {pathTemplate: "/3/discover/movie", paged: true, byGenre: true},
	epMovieDetail:    {pathTemplate: "/3/movie/%d", hasID: true, credits: true},
	epTVDetail:       {pathTemplate: "/3/tv/%d", hasID: true, credits: true},
}

// requestParams carries the per-call values the endpoint table may need.
type requestParams struct {
	id      int
	page    int
	query   string
	genreID int
}

// buildURL assembles the full request URL for an endpoint. Every request
// carries the API key and locale; the endpoint spec decides the rest.
func (c *Client) buildURL(ep endpoint, p requestParams) (string, error) {
	spec, ok := endpointTable[ep]
	if !ok {
		return "", fmt.Errorf("unknown endpoint %d", ep)
	}

	path := spec.pathTemplate
	if spec.hasID {
		path = fmt.Sprintf(spec.pathTemplate, p.id)
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base URL %q: %w", c.baseURL, err)
	}
	base.Path = path

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)

	if spec.paged {
		q.Set("page", strconv.Itoa(p.page))
	}
	if spec.regioned && c.region != "" {
		q.Set("region", c.region)
	}
	if spec.search {
		q.Set("query", p.query)
	}
	if spec.credits {
		q.Set("append_to_response", "credits")
	}
	if spec.discoverTV {
		q.Set("sort_by", "popularity.desc")
		q.Set("with_origin_country", c.tvOriginCountry)
	}
	if spec.byGenre {
		q.Set("sort_by", "popularity.desc")
		q.Set("with_genres", strconv.Itoa(p.genreID))
	}

	base.RawQuery = q.Encode()
	return base.String(), nil
}
