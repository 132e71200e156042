package view

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/s0up4200/kobis/kobis"
)

// Searcher runs catalog searches
type Searcher interface {
	SearchMovies(ctx context.Context, q kobis.SearchQuery) (kobis.SearchResult, error)
}

// SearchState is a snapshot of the search page
type SearchState struct {
	Params     SearchParams
	Movies     []kobis.MovieSummary
	TotalCount int
	TotalPages int
	Loading    bool
	Err        error
	Generation uint64
}

type searchPage struct {
	params SearchParams
	result kobis.SearchResult
}

// SearchView drives the search page. Only the response to the most recent
// submission is shown; earlier ones are dropped.
type SearchView struct {
	searcher Searcher
	loader   *Loader[searchPage]
	logger   zerolog.Logger
}

// NewSearchView creates a search page backed by searcher
func NewSearchView(searcher Searcher, logger zerolog.Logger) *SearchView {
	logger = logger.With().Str("view", "search").Logger()
	return &SearchView{
		searcher: searcher,
		loader:   NewLoader[searchPage](logger),
		logger:   logger,
	}
}

// Submit starts a search for params. A blank term clears the results
// without contacting the provider.
func (v *SearchView) Submit(ctx context.Context, params SearchParams) uint64 {
	if !params.Searchable() {
		return v.loader.Reset(ctx)
	}

	params = params.WithPage(params.Page)
	pending := searchPage{params: params}
	return v.loader.Load(ctx, pending, func(ctx context.Context) (searchPage, error) {
		v.logger.Debug().Str("term", params.Term).Int("page", params.Page).Msg("Searching movies")
		result, err := v.searcher.SearchMovies(ctx, params.Query())
		if err != nil {
			return pending, err
		}
		return searchPage{params: params, result: result}, nil
	})
}

// OnChange registers fn to receive every committed state
func (v *SearchView) OnChange(fn func(SearchState)) {
	v.loader.OnChange(func(s State[searchPage]) {
		fn(toSearchState(s))
	})
}

// State returns the current snapshot
func (v *SearchView) State() SearchState {
	return toSearchState(v.loader.State())
}

// Wait blocks until every submitted search has returned
func (v *SearchView) Wait() {
	v.loader.Wait()
}

// Close abandons any search in flight
func (v *SearchView) Close() {
	v.loader.Close()
}

func toSearchState(s State[searchPage]) SearchState {
	movies := s.Value.result.Movies
	if movies == nil {
		movies = []kobis.MovieSummary{}
	}
	return SearchState{
		Params:     s.Value.params,
		Movies:     movies,
		TotalCount: s.Value.result.TotalCount,
		TotalPages: s.Value.result.TotalPages(PerPage),
		Loading:    s.Loading,
		Err:        s.Err,
		Generation: s.Generation,
	}
}
