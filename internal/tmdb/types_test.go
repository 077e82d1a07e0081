package tmdb

import "testing"

func TestMediaItem_DisplayTitleFallsBackWhenUnset(t *testing.T) {
	item := MediaItem{ID: 1, MediaType: MediaTypeMovie}
	if got := item.DisplayTitle(); got != "제목 없음" {
		t.Errorf("DisplayTitle() = %q", got)
	}
}

func TestMediaItem_DisplayYear(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2019-05-30", "2019"},
		{"1999", "1999"},
		{"", ""},
		{"99", ""},
	}
	for _, c := range cases {
		item := MediaItem{ReleaseDate: c.date}
		if got := item.DisplayYear(); got != c.want {
			t.Errorf("DisplayYear(%q) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestMediaItem_PosterURL(t *testing.T) {
	item := MediaItem{PosterPath: "/abc.jpg"}
	if got := item.PosterURL(); got != "https://image.tmdb.org/t/p/w500/abc.jpg" {
		t.Errorf("PosterURL() = %q", got)
	}
	if got := (MediaItem{}).PosterURL(); got != "" {
		t.Errorf("empty poster path should give empty URL, got %q", got)
	}
}

func TestMovieDetail_FormattedRuntime(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{139, "2시간 19분"},
		{120, "2시간"},
		{45, "45분"},
		{0, "정보 없음"},
		{-1, "정보 없음"},
	}
	for _, c := range cases {
		d := MovieDetail{Runtime: c.minutes}
		if got := d.FormattedRuntime(); got != c.want {
			t.Errorf("FormattedRuntime(%d) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestMovieDetail_MainCastTruncatesToSix(t *testing.T) {
	var credits Credits
	for i := 0; i < 10; i++ {
		credits.Cast = append(credits.Cast, CastMember{ID: i, Order: i})
	}
	d := MovieDetail{Credits: &credits}
	if got := len(d.MainCast()); got != 6 {
		t.Errorf("MainCast() returned %d members, want 6", got)
	}

	if got := (MovieDetail{}).MainCast(); got != nil {
		t.Errorf("MainCast() without credits = %v, want nil", got)
	}
}

func TestFromMovie_SetsMovieMediaType(t *testing.T) {
	item := FromMovie(Movie{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15"})
	if item.MediaType != MediaTypeMovie {
		t.Errorf("media type = %q", item.MediaType)
	}
	if item.DisplayTitle() != "Fight Club" || item.DisplayDate() != "1999-10-15" {
		t.Errorf("converted item = %+v", item)
	}
}
