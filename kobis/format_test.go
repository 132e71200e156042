package kobis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := map[string]int64{
		"1234":      1234,
		"-3":        -3,
		"0":         0,
		"":          0,
		"  42 ":     42,
		"1,234,567": 1234567,
		"abc":       0,
	}

	for input, want := range cases {
		assert.Equal(t, want, ParseNumber(input), input)
	}
}

func TestFormatAudience(t *testing.T) {
	cases := map[string]string{
		"999":      "999",
		"9999":     "9,999",
		"10000":    "1만",
		"123456":   "12만",
		"10000000": "1.0천만",
		"12345678": "1.2천만",
		"":         "0",
	}

	for input, want := range cases {
		assert.Equal(t, want, FormatAudience(input), input)
	}
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "2024.01.05", DisplayDate("20240105"))
	assert.Equal(t, "2024", DisplayDate("2024"))
	assert.Equal(t, "", DisplayDate(""))
	assert.Equal(t, "2023.12.20", DisplayOpenDate("2023-12-20"))
}

func TestFormatRankChange(t *testing.T) {
	assert.Equal(t, "NEW", FormatRankChange(BoxOfficeEntry{RankOldAndNew: "NEW", RankInten: "0"}))
	assert.Equal(t, "▲2", FormatRankChange(BoxOfficeEntry{RankOldAndNew: "OLD", RankInten: "2"}))
	assert.Equal(t, "▼1", FormatRankChange(BoxOfficeEntry{RankOldAndNew: "OLD", RankInten: "-1"}))
	assert.Equal(t, "-", FormatRankChange(BoxOfficeEntry{RankOldAndNew: "OLD", RankInten: "0"}))
}

func TestConsoleFormatter(t *testing.T) {
	f := NewConsoleFormatter(true)

	t.Run("empty box office", func(t *testing.T) {
		assert.Equal(t, "No box office data for this date", f.FormatBoxOffice("Daily", &BoxOffice{}))
	})

	t.Run("box office", func(t *testing.T) {
		out := f.FormatBoxOffice("Daily Box Office", &BoxOffice{
			ShowRange: "20240101~20240101",
			Entries: []BoxOfficeEntry{
				{Rank: "1", MovieNm: "서울의 봄", MovieCd: "20236180", AudiCnt: "123456", AudiAcc: "11234567", RankInten: "1", RankOldAndNew: "OLD"},
				{Rank: "2", MovieNm: "노량", MovieCd: "20231496", AudiCnt: "98765", AudiAcc: "3456789", RankOldAndNew: "NEW"},
			},
		})
		assert.Contains(t, out, "Daily Box Office (2024.01.01)")
		assert.Contains(t, out, "├──  1. 서울의 봄 [▲1]")
		assert.Contains(t, out, "╰──  2. 노량 [NEW]")
		assert.Contains(t, out, "Audience: 123,456 (total 1.1천만)")
		assert.Contains(t, out, "Code: 20231496")
	})

	t.Run("search results", func(t *testing.T) {
		out := f.FormatSearchResult(SearchResult{
			TotalCount: 23,
			Movies: []MovieSummary{
				{MovieCd: "20141527", MovieNm: "고질라", PrdtYear: "2014", GenreAlt: "액션,SF", Directors: []Person{{PeopleNm: "가렛 에드워즈"}}},
			},
		}, 1, 10)
		assert.Contains(t, out, "Found 23 movies (page 1 of 3)")
		assert.Contains(t, out, "╰── 고질라 (2014) [20141527]")
		assert.Contains(t, out, "액션,SF | Director: 가렛 에드워즈")
	})

	t.Run("no search results", func(t *testing.T) {
		assert.Equal(t, "No movies found", f.FormatSearchResult(SearchResult{}, 1, 10))
	})

	t.Run("movie detail", func(t *testing.T) {
		out := f.FormatMovieDetail(&MovieDetail{
			MovieCd:   "20183782",
			MovieNm:   "기생충",
			ShowTm:    "131",
			Genres:    []Genre{{GenreNm: "드라마"}},
			Directors: []Person{{PeopleNm: "봉준호"}},
			Actors:    []Actor{{PeopleNm: "송강호", Cast: "기택"}},
		}, true)
		assert.True(t, strings.HasPrefix(out, "\n기생충 ♥\n"))
		assert.Contains(t, out, "Runtime:     131 min")
		assert.Contains(t, out, "송강호 (기택)")
	})
}
