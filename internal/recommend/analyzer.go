package recommend

import (
	"sort"
	"strings"

	"github.com/yuseong/whattowatch/internal/favorites"
)

// keywordRule maps a set of substrings to one genre id. A favorite whose
// lower-cased title+overview contains any keyword counts once for the genre.
type keywordRule struct {
	keywords []string
	genreID  int
}

// keywordRules is the fixed genre-inference table, tested in order. A
// favorite may match any number of rules; one that matches none defaults to
// drama (18). Persisted favorites do not carry genre ids, so genre is
// inferred after the fact from text.
var keywordRules = []keywordRule{
	{[]string{"액션", "전투", "격투", "fight", "action"}, 28},
	{[]string{"코미디", "웃음", "재미", "comedy", "funny"}, 35},
	{[]string{"로맨스", "사랑", "연애", "romance", "love"}, 10749},
	{[]string{"드라마", "감동", "인생", "drama"}, 18},
	{[]string{"공포", "무서", "horror", "scary"}, 27},
	{[]string{"스릴러", "긴장", "thriller", "suspense"}, 53},
	{[]string{"sf", "과학", "미래", "sci-fi", "science fiction"}, 878},
	{[]string{"애니메이션", "애니", "animation", "animated"}, 16},
	{[]string{"범죄", "경찰", "범인", "crime", "police"}, 80},
	{[]string{"판타지", "마법", "fantasy", "magic"}, 14},
}

const defaultGenreID = 18 // drama

// estimateGenres infers genre ids for one favorite from its text.
func estimateGenres(it favorites.Item) []int {
	text := strings.ToLower(it.Title) + " " + strings.ToLower(it.Overview)

	var ids []int
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				ids = append(ids, rule.genreID)
				break
			}
		}
	}
	if len(ids) == 0 {
		ids = append(ids, defaultGenreID)
	}
	return ids
}

// AnalyzePreferences derives up to three preferred genres from the saved
// favorites, ranked by occurrence count descending. Equal counts break by
// lower genre id so the ranking is deterministic. An empty collection yields
// an empty list.
func AnalyzePreferences(items []favorites.Item) []Genre {
	if len(items) == 0 {
		return nil
	}

	counts := make(map[int]int)
	for _, it := range items {
		for _, id := range estimateGenres(it) {
			counts[id]++
		}
	}

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})

	if len(ids) > 3 {
		ids = ids[:3]
	}
	preferred := make([]Genre, 0, len(ids))
	for _, id := range ids {
		preferred = append(preferred, Genre{ID: id, Name: GenreName(id)})
	}
	return preferred
}

// QualityLabel maps the favorites count to one of five fixed confidence
// messages. The buckets are 0, 1-2, 3-5, 6-10 and 11+.
func QualityLabel(favoritesCount int) string {
	switch {
	case favoritesCount == 0:
		return "찜한 영화가 없어서 인기 영화를 추천드려요"
	case favoritesCount <= 2:
		return "더 많은 영화를 찜하시면 맞춤 추천이 정확해져요"
	case favoritesCount <= 5:
		return "취향 분석 중... 조금 더 정확한 추천이 가능해요"
	case favoritesCount <= 10:
		return "취향 분석 완료! 맞춤 추천을 제공합니다"
	default:
		return "완벽한 취향 분석! 최고의 맞춤 추천을 제공합니다"
	}
}
