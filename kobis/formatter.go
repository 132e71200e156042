package kobis

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides console output formatting for KOBIS data
type ConsoleFormatter struct {
	ShowDetails bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(showDetails bool) *ConsoleFormatter {
	return &ConsoleFormatter{ShowDetails: showDetails}
}

// FormatBoxOffice formats a ranking for console display
func (f *ConsoleFormatter) FormatBoxOffice(title string, result *BoxOffice) string {
	if result == nil || len(result.Entries) == 0 {
		return "No box office data for this date"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s", title)
	if result.ShowRange != "" {
		fmt.Fprintf(&sb, " (%s)", formatShowRange(result.ShowRange))
	}
	sb.WriteString(":\n\n")

	for i, entry := range result.Entries {
		isLast := i == len(result.Entries)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %2s. %s [%s]\n", prefix, entry.Rank, entry.MovieNm, FormatRankChange(entry))
		fmt.Fprintf(&sb, "%sAudience: %s (total %s)\n", indent, FormatNumber(entry.Audience()), FormatAudience(entry.AudiAcc))
		if f.ShowDetails {
			fmt.Fprintf(&sb, "%sSales: %s (share %s%%)\n", indent, FormatSales(entry.SalesAmt), entry.SalesShare)
			fmt.Fprintf(&sb, "%sScreens: %s | Shows: %s\n", indent, FormatNumber(entry.Screens()), FormatNumber(entry.Shows()))
			if entry.OpenDt != "" {
				fmt.Fprintf(&sb, "%sOpened: %s\n", indent, DisplayOpenDate(entry.OpenDt))
			}
			fmt.Fprintf(&sb, "%sCode: %s\n", indent, entry.MovieCd)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatSearchResult formats one page of search results
func (f *ConsoleFormatter) FormatSearchResult(result SearchResult, page, perPage int) string {
	if len(result.Movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nFound %d movie", result.TotalCount)
	if result.TotalCount != 1 {
		sb.WriteString("s")
	}
	if pages := result.TotalPages(perPage); pages > 1 {
		fmt.Fprintf(&sb, " (page %d of %d)", page, pages)
	}
	sb.WriteString(":\n\n")

	for i, movie := range result.Movies {
		isLast := i == len(result.Movies)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s", prefix, movie.MovieNm)
		if movie.PrdtYear != "" {
			fmt.Fprintf(&sb, " (%s)", movie.PrdtYear)
		}
		fmt.Fprintf(&sb, " [%s]\n", movie.MovieCd)

		if movie.MovieNmEn != "" {
			fmt.Fprintf(&sb, "%s%s\n", indent, movie.MovieNmEn)
		}
		var parts []string
		if movie.GenreAlt != "" {
			parts = append(parts, movie.GenreAlt)
		}
		if movie.NationAlt != "" {
			parts = append(parts, movie.NationAlt)
		}
		if directors := movie.DirectorNames(); directors != "" {
			parts = append(parts, "Director: "+directors)
		}
		if len(parts) > 0 {
			fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(parts, " | "))
		}
		if f.ShowDetails {
			if movie.OpenDt != "" {
				fmt.Fprintf(&sb, "%sOpened: %s\n", indent, DisplayOpenDate(movie.OpenDt))
			}
			if movie.TypeNm != "" || movie.PrdtStatNm != "" {
				fmt.Fprintf(&sb, "%s%s %s\n", indent, movie.TypeNm, movie.PrdtStatNm)
			}
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatMovieDetail formats a full movie record
func (f *ConsoleFormatter) FormatMovieDetail(movie *MovieDetail, favorite bool) string {
	if movie.IsEmpty() {
		return "Movie not found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s", movie.MovieNm)
	if favorite {
		sb.WriteString(" ♥")
	}
	sb.WriteString("\n")
	if movie.MovieNmEn != "" {
		fmt.Fprintf(&sb, "%s\n", movie.MovieNmEn)
	}
	sb.WriteString(strings.Repeat("━", 50) + "\n")

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "%-12s %s\n", label+":", value)
		}
	}

	row("Code", movie.MovieCd)
	row("Year", movie.PrdtYear)
	row("Opened", DisplayOpenDate(movie.OpenDt))
	if rt := movie.Runtime(); rt > 0 {
		row("Runtime", fmt.Sprintf("%d min", int(rt.Minutes())))
	}
	row("Status", movie.PrdtStatNm)
	row("Type", movie.TypeNm)
	row("Nations", strings.Join(movie.NationNames(), ", "))
	row("Genres", strings.Join(movie.GenreNames(), ", "))
	row("Directors", movie.DirectorNames())
	row("Rating", movie.WatchGrade())

	if len(movie.Actors) > 0 {
		sb.WriteString("\nCast:\n")
		limit := len(movie.Actors)
		if !f.ShowDetails && limit > 10 {
			limit = 10
		}
		for _, actor := range movie.Actors[:limit] {
			if actor.Cast != "" {
				fmt.Fprintf(&sb, "  • %s (%s)\n", actor.PeopleNm, actor.Cast)
			} else {
				fmt.Fprintf(&sb, "  • %s\n", actor.PeopleNm)
			}
		}
		if limit < len(movie.Actors) {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(movie.Actors)-limit)
		}
	}

	if len(movie.Companys) > 0 {
		sb.WriteString("\nCompanies:\n")
		for _, c := range movie.Companys {
			if c.CompanyPartNm != "" {
				fmt.Fprintf(&sb, "  • %s (%s)\n", c.CompanyNm, c.CompanyPartNm)
			} else {
				fmt.Fprintf(&sb, "  • %s\n", c.CompanyNm)
			}
		}
	}

	if f.ShowDetails && len(movie.Staffs) > 0 {
		sb.WriteString("\nStaff:\n")
		for _, s := range movie.Staffs {
			fmt.Fprintf(&sb, "  • %s: %s\n", s.StaffRoleNm, s.PeopleNm)
		}
	}

	return sb.String()
}

// formatShowRange renders "20240101~20240107" as "2024.01.01 ~ 2024.01.07"
func formatShowRange(showRange string) string {
	from, to, ok := strings.Cut(showRange, "~")
	if !ok || from == to {
		return DisplayDate(from)
	}
	return DisplayDate(from) + " ~ " + DisplayDate(to)
}
