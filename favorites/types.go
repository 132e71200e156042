package favorites

import (
	"strings"
	"time"

	"github.com/s0up4200/kobis/kobis"
)

// Movie is the minimal set of fields needed to bookmark a movie
type Movie struct {
	MovieCd   string `json:"movieCd"`
	MovieNm   string `json:"movieNm"`
	MovieNmEn string `json:"movieNmEn,omitempty"`
	GenreAlt  string `json:"genreAlt,omitempty"`
	PrdtYear  string `json:"prdtYear,omitempty"`
	OpenDt    string `json:"openDt,omitempty"`
	Directors string `json:"directors,omitempty"`
}

// FavoriteMovie is a bookmarked movie. AddedAt is assigned when the
// bookmark is created.
type FavoriteMovie struct {
	Movie
	AddedAt time.Time `json:"addedAt"`
}

// GenreLabels splits the comma-separated genre string into trimmed labels
func (f FavoriteMovie) GenreLabels() []string {
	return splitGenres(f.GenreAlt)
}

// FromSummary builds a Movie from a catalog search row
func FromSummary(m kobis.MovieSummary) Movie {
	return Movie{
		MovieCd:   m.MovieCd,
		MovieNm:   m.MovieNm,
		MovieNmEn: m.MovieNmEn,
		GenreAlt:  m.GenreAlt,
		PrdtYear:  m.PrdtYear,
		OpenDt:    m.OpenDt,
		Directors: m.DirectorNames(),
	}
}

// FromDetail builds a Movie from a full movie record
func FromDetail(m *kobis.MovieDetail) Movie {
	return Movie{
		MovieCd:   m.MovieCd,
		MovieNm:   m.MovieNm,
		MovieNmEn: m.MovieNmEn,
		GenreAlt:  strings.Join(m.GenreNames(), ","),
		PrdtYear:  m.PrdtYear,
		OpenDt:    m.OpenDt,
		Directors: m.DirectorNames(),
	}
}

// FromBoxOffice builds a Movie from a ranking entry, which only carries
// the identifier, title and opening date
func FromBoxOffice(e kobis.BoxOfficeEntry) Movie {
	return Movie{
		MovieCd: e.MovieCd,
		MovieNm: e.MovieNm,
		OpenDt:  e.OpenDt,
	}
}

func splitGenres(genreAlt string) []string {
	var labels []string
	for _, part := range strings.Split(genreAlt, ",") {
		if label := strings.TrimSpace(part); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
