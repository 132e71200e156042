package filter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/kobis/favorites"
	"github.com/s0up4200/kobis/kobis"
)

func testEntries() []kobis.BoxOfficeEntry {
	return []kobis.BoxOfficeEntry{
		{Rank: "1", RankInten: "0", RankOldAndNew: "OLD", MovieCd: "20231001", MovieNm: "서울의 봄", OpenDt: "2023-11-22", AudiCnt: "152,554", AudiAcc: "9,000,000", SalesShare: "45.2", ScrnCnt: "1200", ShowCnt: "5000"},
		{Rank: "2", RankInten: "3", RankOldAndNew: "NEW", MovieCd: "20231002", MovieNm: "Wonka", OpenDt: "2023-12-06", AudiCnt: "80,000", AudiAcc: "80,000", SalesShare: "20.1", ScrnCnt: "900", ShowCnt: "3000"},
		{Rank: "3", RankInten: "-1", RankOldAndNew: "OLD", MovieCd: "20231003", MovieNm: "노량", OpenDt: "", AudiCnt: "12,000", AudiAcc: "12,000", SalesShare: "5.0", ScrnCnt: "300", ShowCnt: "800"},
	}
}

func testFavorites() []favorites.FavoriteMovie {
	now := time.Now()
	return []favorites.FavoriteMovie{
		{Movie: favorites.Movie{MovieCd: "20183782", MovieNm: "기생충", MovieNmEn: "Parasite", GenreAlt: "드라마, 스릴러", PrdtYear: "2019", Directors: "봉준호"}, AddedAt: now.AddDate(0, 0, -40)},
		{Movie: favorites.Movie{MovieCd: "20040014", MovieNm: "올드보이", GenreAlt: "스릴러", PrdtYear: "2003", Directors: "박찬욱"}, AddedAt: now.AddDate(0, 0, -2)},
		{Movie: favorites.Movie{MovieCd: "20224666", MovieNm: "범죄도시2", GenreAlt: "범죄,액션", PrdtYear: "bad"}, AddedAt: now},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Rank <= 10`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `containsFold(Title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "non-boolean result",
			expression: `upper("x")`,
			wantErr:    true,
		},
		{
			name:       "helpers",
			expression: `hasGenre("드라마") and daysSince(AddedAt) > 7 and hasPrefixFold(Title, "기")`,
		},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestBoxOfficeFilters(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{`Rank <= 2`, []string{"서울의 봄", "Wonka"}},
		{`IsNew`, []string{"Wonka"}},
		{`RankInten < 0`, []string{"노량"}},
		{`Audience >= 80000`, []string{"서울의 봄", "Wonka"}},
		{`AudienceAcc > 1000000 and SalesShare > 40`, []string{"서울의 봄"}},
		{`containsFold(Title, "WON")`, []string{"Wonka"}},
		{`hasPrefixFold(Title, "wo")`, []string{"Wonka"}},
		{`hasSuffixFold(Title, "의 봄")`, []string{"서울의 봄"}},
		{`Title contains "Won"`, []string{"Wonka"}},
		{`Title startsWith "노"`, []string{"노량"}},
		{`Screens < 500 or Shows > 4000`, []string{"서울의 봄", "노량"}},
		{`OpenDate < parseDate("1900-01-01")`, []string{"노량"}},
		{`OpenDate > parseDate("2023-12-01")`, []string{"Wonka"}},
		{`hasGenre("드라마")`, []string{}},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			got, err := SelectBoxOffice(context.Background(), f, testEntries())
			require.NoError(t, err)

			titles := make([]string, 0, len(got))
			for _, e := range got {
				titles = append(titles, e.MovieNm)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestFavoriteFilters(t *testing.T) {
	tests := []struct {
		expression string
		want       []string
	}{
		{`hasGenre("스릴러")`, []string{"기생충", "올드보이"}},
		{`hasGenre(" 액션 ")`, []string{"범죄도시2"}},
		{`Year >= 2000 and Year < 2010`, []string{"올드보이"}},
		{`Year == 0`, []string{"범죄도시2"}},
		{`daysSince(AddedAt) > 30`, []string{"기생충"}},
		{`AddedAt > daysAgo(7)`, []string{"올드보이", "범죄도시2"}},
		{`TitleEn == "Parasite"`, []string{"기생충"}},
		{`Directors == "봉준호" or MovieCd == "20040014"`, []string{"기생충", "올드보이"}},
		{`"범죄" in Genres`, []string{"범죄도시2"}},
	}

	compiler := NewExprCompiler()
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := compiler.Compile(tt.expression)
			require.NoError(t, err)

			got, err := SelectFavorites(context.Background(), f, testFavorites())
			require.NoError(t, err)

			titles := make([]string, 0, len(got))
			for _, m := range got {
				titles = append(titles, m.MovieNm)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestRuntimeErrorDoesNotMatch(t *testing.T) {
	f, err := NewExprCompiler().Compile(`Missing.Field > 1`)
	require.NoError(t, err)

	assert.False(t, f.Evaluate(Env{}))
}

func TestSelect(t *testing.T) {
	entries := testEntries()

	all, err := SelectBoxOffice(context.Background(), nil, entries)
	require.NoError(t, err)
	assert.Equal(t, entries, all)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f, err := NewExprCompiler().Compile(`true`)
	require.NoError(t, err)
	_, err = SelectBoxOffice(ctx, f, entries)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile("Rank == 1")
	require.NoError(t, err)
	again, err := compiler.Compile("  Rank == 1  ")
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = compiler.Compile("Rank == 2")
	require.NoError(t, err)
	_, err = compiler.Compile("Rank == 3")
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Zero(t, compiler.Size())

	uncached := NewExprCompiler()
	_, err = uncached.Compile("Rank == 1")
	require.NoError(t, err)
	assert.Zero(t, uncached.Size())
}

func TestWithCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isBlockbuster": func(n int64) bool { return n >= 10_000_000 },
	}))

	f, err := compiler.Compile(`isBlockbuster(AudienceAcc)`)
	require.NoError(t, err)

	assert.True(t, f.Evaluate(Env{"AudienceAcc": int64(12_000_000)}))
	assert.False(t, f.Evaluate(Env{"AudienceAcc": int64(100)}))
}

func TestHelperCallsCompile(t *testing.T) {
	expressions := []string{
		`containsFold(Title, "x")`,
		`hasPrefixFold(Title, "x")`,
		`hasSuffixFold(Title, "x")`,
		`lower(Title) == "x"`,
		`upper(Title) == "X"`,
		`hasGenre("드라마")`,
		`daysSince(AddedAt) > 1`,
		`AddedAt > daysAgo(1)`,
		`OpenDate < parseDate("2020-01-01")`,
		`AddedAt < now()`,
	}

	compiler := NewExprCompiler()
	for _, expression := range expressions {
		t.Run(expression, func(t *testing.T) {
			_, err := compiler.Compile(expression)
			assert.NoError(t, err)
		})
	}
}
