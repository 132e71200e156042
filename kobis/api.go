package kobis

import (
	"context"
)

// API defines the interface for KOBIS operations
type API interface {
	// DailyBoxOffice retrieves the daily ranking for a YYYYMMDD date
	DailyBoxOffice(ctx context.Context, date string) ([]BoxOfficeEntry, error)

	// WeeklyBoxOffice retrieves the weekly, weekend or weekday ranking
	WeeklyBoxOffice(ctx context.Context, date string, group WeekGroup) ([]BoxOfficeEntry, error)

	// SearchMovies searches the movie catalog
	SearchMovies(ctx context.Context, q SearchQuery) (SearchResult, error)

	// MovieDetail retrieves a single movie by its code
	MovieDetail(ctx context.Context, movieCd string) (*MovieDetail, error)
}

// BoxOfficeFetcher provides rankings with their envelope metadata
type BoxOfficeFetcher interface {
	DailyBoxOfficeResult(ctx context.Context, date string) (*BoxOffice, error)
	WeeklyBoxOfficeResult(ctx context.Context, date string, group WeekGroup) (*BoxOffice, error)
}

// DetailFetcher provides movie details
type DetailFetcher interface {
	MovieDetail(ctx context.Context, movieCd string) (*MovieDetail, error)
}

var (
	_ API              = (*Client)(nil)
	_ BoxOfficeFetcher = (*Client)(nil)
	_ DetailFetcher    = (*CachedDetails)(nil)
)
