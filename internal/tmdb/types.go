package tmdb

import "fmt"

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// MediaTypeMovie and MediaTypeTV are the two media discriminants used
// throughout the app. A numeric id is only unique together with one of these.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)

// MoviePage is one page of a movie list response.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Movie is a single movie record from a list endpoint.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
}

// ReleaseYear returns the leading year of the release date, or "".
func (m Movie) ReleaseYear() string { return yearOf(m.ReleaseDate) }

// PosterURL returns the full poster URL, or "" when no poster exists.
func (m Movie) PosterURL() string { return imageURL(m.PosterPath) }

// MediaPage is one page of a mixed movie/TV response (multi search,
// normalized TV discovery).
type MediaPage struct {
	Page         int         `json:"page"`
	Results      []MediaItem `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// MediaItem is the normalized union of movie and TV records. Movie records
// carry Title/ReleaseDate/OriginalTitle, TV records carry
// Name/FirstAirDate/OriginalName; everything else is shared. All fields
// beyond ID and MediaType are optional on the wire.
type MediaItem struct {
	ID               int     `json:"id"`
	MediaType        string  `json:"media_type"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	OriginalName     string  `json:"original_name,omitempty"`
}

// DisplayTitle returns the movie title or TV name, whichever is set.
func (m MediaItem) DisplayTitle() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Name != "" {
		return m.Name
	}
	return "제목 없음"
}

// DisplayDate returns the release date or first air date, whichever is set.
func (m MediaItem) DisplayDate() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// DisplayYear returns the leading year of the display date, or "".
func (m MediaItem) DisplayYear() string { return yearOf(m.DisplayDate()) }

// PosterURL returns the full poster URL, or "" when no poster exists.
func (m MediaItem) PosterURL() string { return imageURL(m.PosterPath) }

// BackdropURL returns the full backdrop URL, or "" when no backdrop exists.
func (m MediaItem) BackdropURL() string { return imageURL(m.BackdropPath) }

// FormattedRating renders the vote average with one decimal place.
func (m MediaItem) FormattedRating() string {
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// FromMovie converts a movie list record into the normalized shape.
func FromMovie(m Movie) MediaItem {
	return MediaItem{
		ID:               m.ID,
		MediaType:        MediaTypeMovie,
		Title:            m.Title,
		Overview:         m.Overview,
		ReleaseDate:      m.ReleaseDate,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		Popularity:       m.Popularity,
		GenreIDs:         m.GenreIDs,
		Adult:            m.Adult,
		OriginalLanguage: m.OriginalLanguage,
		OriginalTitle:    m.OriginalTitle,
	}
}

// TVPage is one page of a TV list response (discover/tv).
type TVPage struct {
	Page         int      `json:"page"`
	Results      []TVItem `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

// TVItem is a single TV record from a list endpoint.
type TVItem struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	Overview         string   `json:"overview"`
	FirstAirDate     string   `json:"first_air_date"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	Popularity       float64  `json:"popularity"`
	GenreIDs         []int    `json:"genre_ids"`
	Adult            bool     `json:"adult"`
	OriginalLanguage string   `json:"original_language"`
	OriginalName     string   `json:"original_name"`
	OriginCountry    []string `json:"origin_country"`
}

func fromTVItem(tv TVItem) MediaItem {
	return MediaItem{
		ID:               tv.ID,
		MediaType:        MediaTypeTV,
		Name:             tv.Name,
		Overview:         tv.Overview,
		FirstAirDate:     tv.FirstAirDate,
		PosterPath:       tv.PosterPath,
		BackdropPath:     tv.BackdropPath,
		VoteAverage:      tv.VoteAverage,
		VoteCount:        tv.VoteCount,
		Popularity:       tv.Popularity,
		GenreIDs:         tv.GenreIDs,
		Adult:            tv.Adult,
		OriginalLanguage: tv.OriginalLanguage,
		OriginalName:     tv.OriginalName,
	}
}

// Genre is a genre entry from a detail response.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry is a production country entry from a detail response.
type ProductionCountry struct {
	ISO31661 string `json:"iso_3166_1"`
	Name     string `json:"name"`
}

// SpokenLanguage is a spoken language entry from a detail response.
type SpokenLanguage struct {
	ISO6391     string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name"`
}

// Credits holds the cast and crew embedded in a detail response via
// append_to_response.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember is a single cast entry.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

// CrewMember is a single crew entry.
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	Department  string `json:"department"`
	ProfilePath string `json:"profile_path"`
}

// MovieDetail is the extended movie record with embedded credits.
type MovieDetail struct {
	ID                  int                 `json:"id"`
	Title               string              `json:"title"`
	OriginalTitle       string              `json:"original_title"`
	Overview            string              `json:"overview"`
	Tagline             string              `json:"tagline"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             int                 `json:"runtime"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
	Popularity          float64             `json:"popularity"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Homepage            string              `json:"homepage"`
	IMDbID              string              `json:"imdb_id"`
	Status              string              `json:"status"`
	Adult               bool                `json:"adult"`
	OriginalLanguage    string              `json:"original_language"`
	Credits             *Credits            `json:"credits"`
}

// MainCast returns up to the first six cast members.
func (d MovieDetail) MainCast() []CastMember { return mainCast(d.Credits) }

// Directors returns every crew member whose job is Director.
func (d MovieDetail) Directors() []CrewMember { return directors(d.Credits) }

// FormattedRuntime renders the runtime as "N시간 M분".
func (d MovieDetail) FormattedRuntime() string { return formatRuntime(d.Runtime) }

// TVDetail is the extended TV record with embedded credits.
type TVDetail struct {
	ID                  int                 `json:"id"`
	Name                string              `json:"name"`
	OriginalName        string              `json:"original_name"`
	Overview            string              `json:"overview"`
	Tagline             string              `json:"tagline"`
	FirstAirDate        string              `json:"first_air_date"`
	LastAirDate         string              `json:"last_air_date"`
	NumberOfSeasons     int                 `json:"number_of_seasons"`
	NumberOfEpisodes    int                 `json:"number_of_episodes"`
	EpisodeRunTime      []int               `json:"episode_run_time"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	VoteAverage         float64             `json:"vote_average"`
	VoteCount           int                 `json:"vote_count"`
	Popularity          float64             `json:"popularity"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Homepage            string              `json:"homepage"`
	Status              string              `json:"status"`
	Type                string              `json:"type"`
	InProduction        bool                `json:"in_production"`
	Adult               bool                `json:"adult"`
	OriginalLanguage    string              `json:"original_language"`
	Credits             *Credits            `json:"credits"`
}

// MainCast returns up to the first six cast members.
func (d TVDetail) MainCast() []CastMember { return mainCast(d.Credits) }

// Detail is the union returned by Client.Detail; exactly one of Movie and TV
// is set, matching the requested media type.
type Detail struct {
	MediaType string
	Movie     *MovieDetail
	TV        *TVDetail
}

// DisplayTitle returns the title of whichever side of the union is set.
func (d Detail) DisplayTitle() string {
	switch {
	case d.Movie != nil:
		return d.Movie.Title
	case d.TV != nil:
		return d.TV.Name
	default:
		return ""
	}
}

func mainCast(c *Credits) []CastMember {
	if c == nil {
		return nil
	}
	if len(c.Cast) <= 6 {
		return c.Cast
	}
	return c.Cast[:6]
}

func directors(c *Credits) []CrewMember {
	if c == nil {
		return nil
	}
	var out []CrewMember
	for _, crew := range c.Crew {
		if crew.Job == "Director" {
			out = append(out, crew)
		}
	}
	return out
}

func formatRuntime(minutes int) string {
	if minutes <= 0 {
		return "정보 없음"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%d시간 %d분", h, m)
	case h > 0:
		return fmt.Sprintf("%d시간", h)
	default:
		return fmt.Sprintf("%d분", m)
	}
}

func yearOf(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return ""
}

func imageURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}
