package favorites

import (
	"strconv"
	"time"

	"github.com/yuseong/whattowatch/internal/tmdb"
)

// Item is the persisted form of a saved movie or TV show. It is a trimmed
// copy of the media record plus the timestamp it was saved at; genre ids are
// deliberately not stored (the recommender infers genres from text instead).
type Item struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	MediaType   string    `json:"mediaType"` // movie | tv
	PosterPath  string    `json:"posterPath,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	VoteAverage float64   `json:"voteAverage,omitempty"`
	Overview    string    `json:"overview,omitempty"`
	AddedAt     time.Time `json:"addedAt"`
}

// Key returns the stable identifier combining media type and id. The same
// numeric id can collide between a movie and a show, so neither part alone
// is unique.
func (it Item) Key() string {
	return it.MediaType + ":" + strconv.Itoa(it.ID)
}

// FromMediaItem builds an Item from a normalized media record. AddedAt is
// left zero; the store assigns it at the moment of saving.
func FromMediaItem(m tmdb.MediaItem) Item {
	return Item{
		ID:          m.ID,
		Title:       m.DisplayTitle(),
		MediaType:   m.MediaType,
		PosterPath:  m.PosterPath,
		ReleaseDate: m.DisplayDate(),
		VoteAverage: m.VoteAverage,
		Overview:    m.Overview,
	}
}

// ToMediaItem converts a saved item back into the display shape.
func (it Item) ToMediaItem() tmdb.MediaItem {
	m := tmdb.MediaItem{
		ID:          it.ID,
		MediaType:   it.MediaType,
		Overview:    it.Overview,
		PosterPath:  it.PosterPath,
		VoteAverage: it.VoteAverage,
	}
	if it.MediaType == tmdb.MediaTypeTV {
		m.Name = it.Title
		m.FirstAirDate = it.ReleaseDate
		m.OriginalName = it.Title
	} else {
		m.Title = it.Title
		m.ReleaseDate = it.ReleaseDate
		m.OriginalTitle = it.Title
	}
	return m
}
