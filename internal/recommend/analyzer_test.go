package recommend

import (
	"testing"

	"github.com/yuseong/whattowatch/internal/favorites"
)

func TestEstimateGenres_KeywordsInTitleAndOverview(t *testing.T) {
	cases := []struct {
		name string
		item favorites.Item
		want []int
	}{
		{
			name: "english action keyword in title",
			item: favorites.Item{Title: "A Fight Movie"},
			want: []int{28},
		},
		{
			name: "english action keyword in overview",
			item: favorites.Item{Title: "Untitled", Overview: "An action film about revenge."},
			want: []int{28},
		},
		{
			name: "korean romance keyword",
			item: favorites.Item{Title: "어느 사랑 이야기"},
			want: []int{10749},
		},
		{
			name: "multiple rules match",
			item: favorites.Item{Title: "Funny Love Story"},
			want: []int{35, 10749},
		},
		{
			name: "no keyword defaults to drama",
			item: favorites.Item{Title: "Untitled", Overview: "A film."},
			want: []int{18},
		},
		{
			name: "matching is case-insensitive",
			item: favorites.Item{Title: "ACTION HERO"},
			want: []int{28},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := estimateGenres(c.item)
			if len(got) != len(c.want) {
				t.Fatalf("estimateGenres() = %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Errorf("estimateGenres() = %v, want %v", got, c.want)
					break
				}
			}
		})
	}
}

func TestAnalyzePreferences_RanksByCountThenID(t *testing.T) {
	items := []favorites.Item{
		{Title: "action one"},
		{Title: "action two"},
		{Title: "a comedy"},
		{Title: "scary horror"},
	}

	got := AnalyzePreferences(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 genres, got %d: %v", len(got), got)
	}
	if got[0].ID != 28 {
		t.Errorf("top genre = %d, want 28 (most counts)", got[0].ID)
	}
	// comedy (35) and horror (27) tie at one count each; the lower id wins.
	if got[1].ID != 27 || got[2].ID != 35 {
		t.Errorf("tie order = %d, %d, want 27 then 35", got[1].ID, got[2].ID)
	}
}

func TestAnalyzePreferences_CapsAtThree(t *testing.T) {
	items := []favorites.Item{
		{Title: "action"},
		{Title: "comedy"},
		{Title: "horror"},
		{Title: "thriller"},
		{Title: "fantasy"},
	}
	if got := AnalyzePreferences(items); len(got) != 3 {
		t.Errorf("expected at most 3 genres, got %d", len(got))
	}
}

func TestAnalyzePreferences_EmptyCollection(t *testing.T) {
	if got := AnalyzePreferences(nil); got != nil {
		t.Errorf("expected nil for empty collection, got %v", got)
	}
}

func TestAnalyzePreferences_NamesAreKorean(t *testing.T) {
	got := AnalyzePreferences([]favorites.Item{{Title: "action"}})
	if len(got) != 1 || got[0].Name != "액션" {
		t.Errorf("genres = %v, want one named 액션", got)
	}
}

func TestGenreName_UnknownID(t *testing.T) {
	if got := GenreName(99999); got != "기타" {
		t.Errorf("GenreName(99999) = %q", got)
	}
	if got := GenreName(28); got != "액션" {
		t.Errorf("GenreName(28) = %q", got)
	}
}

func TestQualityLabel_Buckets(t *testing.T) {
	cases := []struct {
		count int
		want  string
	}{
		{0, "찜한 영화가 없어서 인기 영화를 추천드려요"},
		{1, "더 많은 영화를 찜하시면 맞춤 추천이 정확해져요"},
		{2, "더 많은 영화를 찜하시면 맞춤 추천이 정확해져요"},
		{3, "취향 분석 중... 조금 더 정확한 추천이 가능해요"},
		{5, "취향 분석 중... 조금 더 정확한 추천이 가능해요"},
		{6, "취향 분석 완료! 맞춤 추천을 제공합니다"},
		{10, "취향 분석 완료! 맞춤 추천을 제공합니다"},
		{11, "완벽한 취향 분석! 최고의 맞춤 추천을 제공합니다"},
		{50, "완벽한 취향 분석! 최고의 맞춤 추천을 제공합니다"},
	}
	for _, c := range cases {
		if got := QualityLabel(c.count); got != c.want {
			t.Errorf("QualityLabel(%d) = %q, want %q", c.count, got, c.want)
		}
	}
}
