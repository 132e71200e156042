package filter

import (
	"context"

	"github.com/s0up4200/kobis/favorites"
	"github.com/s0up4200/kobis/kobis"
)

// Select returns the items whose environment matches f, keeping their order.
// A nil filter matches everything.
func Select[T any](ctx context.Context, f Filter, items []T, env func(T) Env) ([]T, error) {
	if f == nil {
		return append([]T{}, items...), nil
	}

	matches := make([]T, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.Evaluate(env(item)) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

// SelectBoxOffice filters ranking rows
func SelectBoxOffice(ctx context.Context, f Filter, entries []kobis.BoxOfficeEntry) ([]kobis.BoxOfficeEntry, error) {
	return Select(ctx, f, entries, BoxOfficeEnv)
}

// SelectFavorites filters saved movies
func SelectFavorites(ctx context.Context, f Filter, movies []favorites.FavoriteMovie) ([]favorites.FavoriteMovie, error) {
	return Select(ctx, f, movies, FavoriteEnv)
}
