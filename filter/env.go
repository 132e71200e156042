package filter

import (
	"slices"
	"strconv"
	"strings"

	"github.com/s0up4200/kobis/favorites"
	"github.com/s0up4200/kobis/kobis"
)

// BoxOfficeEnv exposes one ranking row to filter expressions
func BoxOfficeEnv(e kobis.BoxOfficeEntry) Env {
	return Env{
		"Entry":       e,
		"Rank":        e.RankNumber(),
		"RankInten":   e.RankChange(),
		"IsNew":       e.IsNew(),
		"Title":       e.MovieNm,
		"MovieCd":     e.MovieCd,
		"OpenDate":    parseDate(e.OpenDt),
		"Audience":    e.Audience(),
		"AudienceAcc": e.AudienceAcc(),
		"Sales":       e.Sales(),
		"SalesAcc":    e.SalesAccumulated(),
		"SalesShare":  e.SalesSharePercent(),
		"Screens":     e.Screens(),
		"Shows":       e.Shows(),
	}
}

// FavoriteEnv exposes one saved movie to filter expressions
func FavoriteEnv(f favorites.FavoriteMovie) Env {
	genres := f.GenreLabels()
	year, _ := strconv.Atoi(strings.TrimSpace(f.PrdtYear))

	return Env{
		"Favorite":  f,
		"Title":     f.MovieNm,
		"TitleEn":   f.MovieNmEn,
		"Genres":    genres,
		"Year":      year,
		"Directors": f.Directors,
		"AddedAt":   f.AddedAt,
		"MovieCd":   f.MovieCd,
		"OpenDate":  parseDate(f.OpenDt),
		"hasGenre":  createHasGenreFunc(genres),
	}
}

func createHasGenreFunc(genres []string) func(string) bool {
	return func(genre string) bool {
		genre = strings.TrimSpace(genre)
		return slices.ContainsFunc(genres, func(g string) bool {
			return strings.EqualFold(g, genre)
		})
	}
}
