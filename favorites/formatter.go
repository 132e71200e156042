package favorites

import (
	"fmt"
	"strings"

	"github.com/s0up4200/kobis/kobis"
)

// FormatList renders saved movies as a tree, most recently added last
func FormatList(movies []FavoriteMovie, showDetails bool) string {
	if len(movies) == 0 {
		return "No favorite movies yet"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nFavorites (%d):\n\n", len(movies))

	for i, movie := range movies {
		isLast := i == len(movies)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── ♥ %s", prefix, movie.MovieNm)
		if movie.PrdtYear != "" {
			fmt.Fprintf(&sb, " (%s)", movie.PrdtYear)
		}
		fmt.Fprintf(&sb, " [%s]\n", movie.MovieCd)

		var parts []string
		if movie.GenreAlt != "" {
			parts = append(parts, movie.GenreAlt)
		}
		if movie.Directors != "" {
			parts = append(parts, "Director: "+movie.Directors)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(parts, " | "))
		}
		if showDetails {
			if movie.MovieNmEn != "" {
				fmt.Fprintf(&sb, "%s%s\n", indent, movie.MovieNmEn)
			}
			if movie.OpenDt != "" {
				fmt.Fprintf(&sb, "%sOpened: %s\n", indent, kobis.DisplayOpenDate(movie.OpenDt))
			}
		}
		fmt.Fprintf(&sb, "%sAdded: %s\n", indent, kobis.FormatAddedAt(movie.AddedAt))

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatGenres renders the genre set on one line
func FormatGenres(genres []string) string {
	if len(genres) == 0 {
		return "No genres"
	}
	return strings.Join(genres, ", ")
}
