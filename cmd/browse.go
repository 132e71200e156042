package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/kobis/favorites"
	"github.com/s0up4200/kobis/kobis"
	"github.com/s0up4200/kobis/view"
)

const browseHelp = `Type a title to search, or one of:
  :year <yyyy|all>    :type <code|all>    :nation <K|F|all>
  :page <n>  :next  :prev                 :url <page url>
  :box [daily|weekly|weekend|weekdays] [yyyymmdd]
  :info <movieCd>     :fav <movieCd>      :favs
  :help  :quit`

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:     "browse",
	Short:   "Interactively search movies and the box office",
	Long:    "Start an interactive prompt. Results are shown as soon as the latest request finishes; typing a new query abandons the previous one.\n\n" + browseHelp,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// browseAPI is what an interactive session queries
type browseAPI interface {
	view.Searcher
	kobis.BoxOfficeFetcher
}

// browser is one interactive session
type browser struct {
	out       io.Writer
	outMu     sync.Mutex
	formatter *kobis.ConsoleFormatter
	search    *view.SearchView
	boxOffice *view.BoxOfficeView
	params    view.SearchParams
}

func newBrowser(out io.Writer, api browseAPI) *browser {
	b := &browser{
		out:       out,
		formatter: kobis.NewConsoleFormatter(showDetails),
		search:    view.NewSearchView(api, logger),
		boxOffice: view.NewBoxOfficeView(api, logger),
	}
	b.search.OnChange(b.renderSearch)
	b.boxOffice.OnChange(b.renderBoxOffice)
	return b
}

func (b *browser) print(s string) {
	b.outMu.Lock()
	defer b.outMu.Unlock()
	fmt.Fprint(b.out, s)
}

func (b *browser) renderSearch(s view.SearchState) {
	switch {
	case s.Loading:
		return
	case s.Err != nil:
		b.print(fmt.Sprintf("Search failed: %v\n", s.Err))
	case !s.Params.Searchable():
		return
	default:
		result := kobis.SearchResult{Movies: s.Movies, TotalCount: s.TotalCount}
		b.print(b.formatter.FormatSearchResult(result, s.Params.Page, view.PerPage))
	}
}

func (b *browser) renderBoxOffice(s view.BoxOfficeState) {
	switch {
	case s.Loading:
		return
	case s.Err != nil:
		b.print(fmt.Sprintf("Box office failed: %v\n", s.Err))
	default:
		b.print(b.formatter.FormatBoxOffice(s.Title(), s.Result))
	}
}

func (b *browser) close() {
	b.search.Close()
	b.boxOffice.Close()
}

func (b *browser) submit(ctx context.Context, params view.SearchParams) {
	b.params = params
	if params.Searchable() {
		b.print(fmt.Sprintf("Searching %q...\n", params.Term))
	}
	b.search.Submit(ctx, params)
}

// handle runs one input line and reports whether the session should end
func (b *browser) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ":") {
		b.submit(ctx, view.SearchParams{
			Term:   line,
			Year:   b.params.Year,
			Type:   b.params.Type,
			Nation: b.params.Nation,
			Page:   1,
		})
		return false
	}

	command, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(command) {
	case "q", "quit", "exit":
		return true
	case "help", "h", "?":
		b.print(browseHelp + "\n")
	case "year":
		b.resubmit(ctx, b.withFilter("year", arg))
	case "type":
		b.resubmit(ctx, b.withFilter("type", arg))
	case "nation":
		b.resubmit(ctx, b.withFilter("nation", arg))
	case "page":
		page, err := strconv.Atoi(arg)
		if err != nil {
			b.print("Usage: :page <n>\n")
			return false
		}
		b.resubmit(ctx, b.params.WithPage(page))
	case "next":
		b.resubmit(ctx, b.params.WithPage(b.params.Page+1))
	case "prev":
		b.resubmit(ctx, b.params.WithPage(b.params.Page-1))
	case "url":
		params, err := view.ParseSearchURL(arg)
		if err != nil {
			b.print(err.Error() + "\n")
			return false
		}
		b.submit(ctx, params)
	case "box":
		b.showBoxOffice(ctx, arg)
	case "info":
		b.showMovie(ctx, arg)
	case "fav":
		b.toggleFavorite(ctx, arg)
	case "favs":
		b.print(favorites.FormatList(store.List(), showDetails))
	default:
		b.print(fmt.Sprintf("Unknown command %q, try :help\n", command))
	}
	return false
}

func (b *browser) withFilter(name, value string) view.SearchParams {
	values := b.params.Values()
	values.Set(name, value)
	values.Del("page")
	return view.ParseSearchParams(values)
}

func (b *browser) resubmit(ctx context.Context, params view.SearchParams) {
	if !params.Searchable() {
		b.params = params
		b.print("Filters updated; type a title to search\n")
		return
	}
	b.submit(ctx, params)
}

func (b *browser) showBoxOffice(ctx context.Context, arg string) {
	fields := strings.Fields(arg)
	kindName, date := "", kobis.Yesterday(time.Now())
	for _, field := range fields {
		if kobis.ValidateDate(field) == nil {
			date = field
			continue
		}
		kindName = field
	}

	kind, err := view.ParseBoxOfficeKind(kindName)
	if err != nil {
		b.print(err.Error() + "\n")
		return
	}
	b.boxOffice.Show(ctx, kind, date)
}

func (b *browser) showMovie(ctx context.Context, movieCd string) {
	if movieCd == "" {
		b.print("Usage: :info <movieCd>\n")
		return
	}
	movie, err := details.MovieDetail(ctx, movieCd)
	if err != nil {
		b.print(fmt.Sprintf("Lookup failed: %v\n", err))
		return
	}
	b.print(b.formatter.FormatMovieDetail(movie, store.IsFavorite(movie.MovieCd)))
}

func (b *browser) toggleFavorite(ctx context.Context, movieCd string) {
	if movieCd == "" {
		b.print("Usage: :fav <movieCd>\n")
		return
	}
	if store.Remove(movieCd) {
		b.print(fmt.Sprintf("Removed %s from favorites\n", movieCd))
		return
	}
	movie, err := details.MovieDetail(ctx, movieCd)
	if err != nil {
		b.print(fmt.Sprintf("Lookup failed: %v\n", err))
		return
	}
	if store.Toggle(favorites.FromDetail(movie)) {
		b.print(fmt.Sprintf("♥ Added %s to favorites\n", movie.MovieNm))
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	b := newBrowser(cmd.OutOrStdout(), kobisClient)
	defer b.close()

	b.print(browseHelp + "\n")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				// input ended, let the last requests finish
				b.search.Wait()
				b.boxOffice.Wait()
				return nil
			}
			if b.handle(ctx, line) {
				return nil
			}
		}
	}
}
