package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/kobis/kobis"
)

func resetSearchFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		searchDirector, searchYear, searchType, searchNation, searchFromURL = "", "", "", "", ""
		searchPage, searchPerPage = 1, 0
	}
	reset()
	t.Cleanup(reset)
}

func TestBuildSearchQuery(t *testing.T) {
	resetSearchFlags(t)
	searchYear = "2019"
	searchNation = "K"
	searchPage = 2

	q, err := buildSearchQuery([]string{" 기생충 "}, 20)
	require.NoError(t, err)
	assert.Equal(t, kobis.SearchQuery{
		MovieName:           "기생충",
		ProductionStartYear: "2019",
		ProductionEndYear:   "2019",
		NationCode:          "K",
		Page:                2,
		PerPage:             20,
	}, q)
}

func TestBuildSearchQuery_DirectorOnly(t *testing.T) {
	resetSearchFlags(t)
	searchDirector = "봉준호"

	q, err := buildSearchQuery(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, q.MovieName)
	assert.Equal(t, "봉준호", q.DirectorName)
	assert.Equal(t, 1, q.Page)
}

func TestBuildSearchQuery_FromURL(t *testing.T) {
	resetSearchFlags(t)
	searchFromURL = "http://localhost/search?q=alien&year=1979&type=all&page=3"

	q, err := buildSearchQuery(nil, 50)
	require.NoError(t, err)
	assert.Equal(t, "alien", q.MovieName)
	assert.Equal(t, "1979", q.ProductionEndYear)
	assert.Empty(t, q.TypeCode)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 10, q.PerPage)

	searchFromURL = "http://localhost/search?year=1979"
	_, err = buildSearchQuery(nil, 50)
	assert.Error(t, err)
}

func TestBuildSearchQuery_RequiresTerm(t *testing.T) {
	resetSearchFlags(t)

	_, err := buildSearchQuery([]string{"  "}, 10)
	assert.Error(t, err)
}
