package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/kobis/kobis"
	"github.com/s0up4200/kobis/view"
)

var (
	searchDirector string
	searchYear     string
	searchType     string
	searchNation   string
	searchPage     int
	searchPerPage  int
	searchFromURL  string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search the movie catalog",
	Long: `Search the movie catalog by title. --year limits the production year,
--type takes 220101 (feature), 220102 (short) or 220103 (omnibus) and
--nation takes K (Korean) or F (foreign).

--from-url reads the search from a saved page URL instead, e.g.
  kobis search --from-url 'http://localhost/search?q=alien&page=2'`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchDirector, "director", "", "director name")
	searchCmd.Flags().StringVar(&searchYear, "year", "", "production year")
	searchCmd.Flags().StringVar(&searchType, "type", "", "movie type code")
	searchCmd.Flags().StringVar(&searchNation, "nation", "", "nation code (K or F)")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", 0, "results per page (default from config)")
	searchCmd.Flags().StringVar(&searchFromURL, "from-url", "", "read search state from a page URL")
}

// buildSearchQuery turns the command line into a catalog query
func buildSearchQuery(args []string, perPage int) (kobis.SearchQuery, error) {
	if searchFromURL != "" {
		params, err := view.ParseSearchURL(searchFromURL)
		if err != nil {
			return kobis.SearchQuery{}, err
		}
		if !params.Searchable() {
			return kobis.SearchQuery{}, fmt.Errorf("search URL has no search term")
		}
		return params.Query(), nil
	}

	term := ""
	if len(args) > 0 {
		term = strings.TrimSpace(args[0])
	}
	if term == "" && searchDirector == "" {
		return kobis.SearchQuery{}, fmt.Errorf("a search term or --director is required")
	}

	q := view.SearchParams{
		Term:   term,
		Year:   searchYear,
		Type:   searchType,
		Nation: searchNation,
	}.WithPage(searchPage).Query()
	q.DirectorName = strings.TrimSpace(searchDirector)
	q.PerPage = perPage
	return q, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	perPage := cfg.Search.PerPage
	if searchPerPage > 0 {
		perPage = searchPerPage
	}

	q, err := buildSearchQuery(args, perPage)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("movie", q.MovieName).
		Str("director", q.DirectorName).
		Int("page", q.Page).
		Msg("Searching catalog")

	result, err := kobisClient.SearchMovies(ctx, q)
	if err != nil {
		return err
	}

	formatter := kobis.NewConsoleFormatter(showDetails)
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSearchResult(result, q.Page, q.PerPage))
	return nil
}
