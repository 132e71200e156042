package kobis

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

const (
	searchMoviesPath = "movie/searchMovieList.json"
	movieDetailPath  = "movie/searchMovieInfo.json"

	// DefaultPage is the page requested when none is set
	DefaultPage = 1
	// DefaultPerPage is the page size requested when none is set
	DefaultPerPage = 10
)

// SearchQuery lists every catalog filter the provider recognizes. String
// fields are sent verbatim when non-empty and omitted otherwise.
type SearchQuery struct {
	MovieName           string `url:"movieNm,omitempty"`
	DirectorName        string `url:"directorNm,omitempty"`
	OpenStartDate       string `url:"openStartDt,omitempty"`
	OpenEndDate         string `url:"openEndDt,omitempty"`
	ProductionStartYear string `url:"prdtStartYear,omitempty"`
	ProductionEndYear   string `url:"prdtEndYear,omitempty"`
	NationCode          string `url:"repNationCd,omitempty"`
	TypeCode            string `url:"movieTypeCd,omitempty"`
	Page                int    `url:"curPage"`
	PerPage             int    `url:"itemPerPage"`
}

// WithDefaults fills the page number and page size when unset
func (q SearchQuery) WithDefaults() SearchQuery {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	return q
}

// Values encodes the query with defaults applied
func (q SearchQuery) Values() (url.Values, error) {
	values, err := query.Values(q.WithDefaults())
	if err != nil {
		return nil, fmt.Errorf("failed to encode search query: %w", err)
	}
	return values, nil
}

// SearchMovies searches the catalog. TotalCount is the provider-reported
// match count and may exceed the returned page.
func (c *Client) SearchMovies(ctx context.Context, q SearchQuery) (SearchResult, error) {
	params, err := q.Values()
	if err != nil {
		return SearchResult{}, err
	}

	var envelope movieListEnvelope
	if err := c.Get(ctx, searchMoviesPath, params, &envelope); err != nil {
		return SearchResult{}, fmt.Errorf("failed to search movies: %w", err)
	}

	movies := envelope.MovieListResult.MovieList
	if movies == nil {
		movies = []MovieSummary{}
	}

	c.logger.Debug().
		Str("query", params.Encode()).
		Int("count", len(movies)).
		Int("total", envelope.MovieListResult.TotCnt).
		Msg("Retrieved movie list from KOBIS")

	return SearchResult{
		Movies:     movies,
		TotalCount: envelope.MovieListResult.TotCnt,
	}, nil
}

// MovieDetail retrieves the full record for movieCd. The provider has no
// distinct not-found signal, so an absent or identifier-less record is
// reported as ErrNotFound.
func (c *Client) MovieDetail(ctx context.Context, movieCd string) (*MovieDetail, error) {
	movieCd = strings.TrimSpace(movieCd)
	if movieCd == "" {
		return nil, fmt.Errorf("%w: movie code is required", ErrInvalidMovieCode)
	}

	params := url.Values{}
	params.Set("movieCd", movieCd)

	var envelope movieInfoEnvelope
	if err := c.Get(ctx, movieDetailPath, params, &envelope); err != nil {
		return nil, fmt.Errorf("failed to get movie %s: %w", movieCd, err)
	}

	detail := envelope.MovieInfoResult.MovieInfo
	if detail.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, movieCd)
	}

	c.logger.Debug().
		Str("movie_cd", movieCd).
		Str("title", detail.MovieNm).
		Msg("Retrieved movie detail from KOBIS")

	return detail, nil
}
