package recommend

// Genre is a TMDB genre id plus its Korean display name.
type Genre struct {
	ID   int
	Name string
}

// genreNames maps the major TMDB genre ids to Korean display names.
var genreNames = map[int]string{
	28:    "액션",
	12:    "모험",
	16:    "애니메이션",
	35:    "코미디",
	80:    "범죄",
	99:    "다큐멘터리",
	18:    "드라마",
	10751: "가족",
	14:    "판타지",
	36:    "역사",
	27:    "공포",
	10402: "음악",
	9648:  "미스터리",
	10749: "로맨스",
	878:   "SF",
	10770: "TV 영화",
	53:    "스릴러",
	10752: "전쟁",
	37:    "서부",
}

// GenreName returns the Korean name for a genre id, or "기타" if unknown.
func GenreName(id int) string {
	if name, ok := genreNames[id]; ok {
		return name
	}
	return "기타"
}
