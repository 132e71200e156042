package view

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/kobis/kobis"
)

type fakeSearcher struct {
	mu      sync.Mutex
	calls   []kobis.SearchQuery
	block   map[string]chan struct{}
	results map[string]kobis.SearchResult
	errs    map[string]error
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		block:   make(map[string]chan struct{}),
		results: make(map[string]kobis.SearchResult),
		errs:    make(map[string]error),
	}
}

func (f *fakeSearcher) SearchMovies(_ context.Context, q kobis.SearchQuery) (kobis.SearchResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	ch := f.block[q.MovieName]
	result := f.results[q.MovieName]
	err := f.errs[q.MovieName]
	f.mu.Unlock()

	if ch != nil {
		<-ch
	}
	return result, err
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func movies(names ...string) []kobis.MovieSummary {
	out := make([]kobis.MovieSummary, 0, len(names))
	for _, name := range names {
		out = append(out, kobis.MovieSummary{MovieCd: name, MovieNm: name})
	}
	return out
}

func TestSearchView_Submit(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.results["alien"] = kobis.SearchResult{Movies: movies("a1", "a2"), TotalCount: 25}

	v := NewSearchView(searcher, zerolog.Nop())
	defer v.Close()

	gen := v.Submit(context.Background(), SearchParams{Term: "alien", Year: "1979", Page: 2})
	v.Wait()

	state := v.State()
	assert.Equal(t, gen, state.Generation)
	assert.False(t, state.Loading)
	require.NoError(t, state.Err)
	assert.Len(t, state.Movies, 2)
	assert.Equal(t, 25, state.TotalCount)
	assert.Equal(t, 3, state.TotalPages)
	assert.Equal(t, "alien", state.Params.Term)
	assert.Equal(t, 2, state.Params.Page)

	require.Len(t, searcher.calls, 1)
	q := searcher.calls[0]
	assert.Equal(t, "1979", q.ProductionStartYear)
	assert.Equal(t, "1979", q.ProductionEndYear)
	assert.Equal(t, PerPage, q.PerPage)
	assert.Equal(t, 2, q.Page)
}

func TestSearchView_DiscardsStaleResponse(t *testing.T) {
	searcher := newFakeSearcher()
	release := make(chan struct{})
	searcher.block["slow"] = release
	searcher.results["slow"] = kobis.SearchResult{Movies: movies("stale"), TotalCount: 1}
	searcher.results["fast"] = kobis.SearchResult{Movies: movies("fresh"), TotalCount: 1}

	v := NewSearchView(searcher, zerolog.Nop())
	defer v.Close()

	v.Submit(context.Background(), SearchParams{Term: "slow"})
	second := v.Submit(context.Background(), SearchParams{Term: "fast"})

	// the fast response lands first, then the slow one arrives late
	require.Eventually(t, func() bool { return !v.State().Loading }, time.Second, time.Millisecond)
	close(release)
	v.Wait()

	state := v.State()
	assert.Equal(t, second, state.Generation)
	require.Len(t, state.Movies, 1)
	assert.Equal(t, "fresh", state.Movies[0].MovieNm)
	assert.Equal(t, "fast", state.Params.Term)
}

func TestSearchView_StaleResponseArrivingFirst(t *testing.T) {
	searcher := newFakeSearcher()
	releaseSlow := make(chan struct{})
	releaseFast := make(chan struct{})
	searcher.block["first"] = releaseSlow
	searcher.block["second"] = releaseFast
	searcher.results["first"] = kobis.SearchResult{Movies: movies("old")}
	searcher.results["second"] = kobis.SearchResult{Movies: movies("new")}

	v := NewSearchView(searcher, zerolog.Nop())
	defer v.Close()

	v.Submit(context.Background(), SearchParams{Term: "first"})
	v.Submit(context.Background(), SearchParams{Term: "second"})

	close(releaseSlow)
	require.Eventually(t, func() bool { return searcher.callCount() == 2 }, time.Second, time.Millisecond)
	assert.True(t, v.State().Loading)

	close(releaseFast)
	v.Wait()

	state := v.State()
	assert.False(t, state.Loading)
	require.Len(t, state.Movies, 1)
	assert.Equal(t, "new", state.Movies[0].MovieNm)
}

func TestSearchView_SupersededRequestIsCancelled(t *testing.T) {
	cancelled := make(chan error, 1)
	searcher := searcherFunc(func(ctx context.Context, q kobis.SearchQuery) (kobis.SearchResult, error) {
		if q.MovieName == "first" {
			<-ctx.Done()
			cancelled <- ctx.Err()
			return kobis.SearchResult{}, ctx.Err()
		}
		return kobis.SearchResult{Movies: movies("second")}, nil
	})

	v := NewSearchView(searcher, zerolog.Nop())
	defer v.Close()

	v.Submit(context.Background(), SearchParams{Term: "first"})
	v.Submit(context.Background(), SearchParams{Term: "second"})
	v.Wait()

	select {
	case err := <-cancelled:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("superseded request was not cancelled")
	}

	state := v.State()
	require.NoError(t, state.Err)
	assert.Equal(t, "second", state.Movies[0].MovieNm)
}

func TestSearchView_BlankTermClears(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.results["alien"] = kobis.SearchResult{Movies: movies("a1"), TotalCount: 1}

	v := NewSearchView(searcher, zerolog.Nop())
	defer v.Close()

	v.Submit(context.Background(), SearchParams{Term: "alien"})
	v.Wait()
	require.Len(t, v.State().Movies, 1)

	v.Submit(context.Background(), SearchParams{Term: "  "})
	v.Wait()

	state := v.State()
	assert.Empty(t, state.Movies)
	assert.NotNil(t, state.Movies)
	assert.Zero(t, state.TotalCount)
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Equal(t, 1, searcher.callCount())
}

func TestSearchView_ErrorClearsMovies(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.results["alien"] = kobis.SearchResult{Movies: movies("a1"), TotalCount: 1}
	searcher.errs["broken"] = kobis.ErrNetwork

	v := NewSearchView(searcher, zerolog.Nop())
	defer v.Close()

	v.Submit(context.Background(), SearchParams{Term: "alien"})
	v.Wait()
	v.Submit(context.Background(), SearchParams{Term: "broken"})
	v.Wait()

	state := v.State()
	require.Error(t, state.Err)
	assert.True(t, errors.Is(state.Err, kobis.ErrNetwork))
	assert.Empty(t, state.Movies)
	assert.Equal(t, "broken", state.Params.Term)
}

func TestSearchView_CloseDropsInFlight(t *testing.T) {
	searcher := newFakeSearcher()
	release := make(chan struct{})
	searcher.block["alien"] = release
	searcher.results["alien"] = kobis.SearchResult{Movies: movies("a1")}

	v := NewSearchView(searcher, zerolog.Nop())

	gen := v.Submit(context.Background(), SearchParams{Term: "alien"})
	v.Close()
	close(release)
	v.Wait()

	state := v.State()
	assert.Equal(t, gen, state.Generation)
	assert.True(t, state.Loading)
	assert.Empty(t, state.Movies)

	v.Submit(context.Background(), SearchParams{Term: "alien"})
	v.Wait()
	assert.Equal(t, 1, searcher.callCount())
}

func TestSearchView_OnChange(t *testing.T) {
	searcher := newFakeSearcher()
	searcher.results["alien"] = kobis.SearchResult{Movies: movies("a1")}

	v := NewSearchView(searcher, zerolog.Nop())
	defer v.Close()

	var mu sync.Mutex
	var states []SearchState
	v.OnChange(func(s SearchState) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	v.Submit(context.Background(), SearchParams{Term: "alien"})
	v.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, states, 2)
	assert.True(t, states[0].Loading)
	assert.False(t, states[1].Loading)
	assert.Len(t, states[1].Movies, 1)
}

type searcherFunc func(ctx context.Context, q kobis.SearchQuery) (kobis.SearchResult, error)

func (f searcherFunc) SearchMovies(ctx context.Context, q kobis.SearchQuery) (kobis.SearchResult, error) {
	return f(ctx, q)
}
