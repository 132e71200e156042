package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/kobis/favorites"
	"github.com/s0up4200/kobis/filter"
)

var assumeYes bool

// favoritesCmd groups the favorites subcommands
var favoritesCmd = &cobra.Command{
	Use:     "favorites",
	Aliases: []string{"fav"},
	Short:   "Manage favorite movies",
	PersistentPreRunE: initializeApp,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite movies",
	Long: `List favorite movies in the order they were added.

Entries can be narrowed with an expression, for example:
  kobis favorites list --filter 'hasGenre("드라마") and Year >= 2010'`,
	Args: cobra.NoArgs,
	RunE: runFavoritesList,
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <movieCd>...",
	Short: "Add movies to favorites by movie code",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFavoritesAdd,
}

var favoritesRemoveCmd = &cobra.Command{
	Use:     "remove <movieCd>...",
	Aliases: []string{"rm"},
	Short:   "Remove movies from favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runFavoritesRemove,
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <movieCd>",
	Short: "Add a movie if missing, remove it otherwise",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesToggle,
}

var favoritesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every favorite movie",
	Args:  cobra.NoArgs,
	RunE:  runFavoritesClear,
}

var favoritesGenresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres across favorite movies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), favorites.FormatGenres(store.Genres()))
		return nil
	},
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write favorites as JSON to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFavoritesExport,
}

var favoritesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge favorites from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoritesImport,
}

func init() {
	rootCmd.AddCommand(favoritesCmd)

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	favoritesCmd.AddCommand(favoritesToggleCmd)
	favoritesCmd.AddCommand(favoritesClearCmd)
	favoritesCmd.AddCommand(favoritesGenresCmd)
	favoritesCmd.AddCommand(favoritesExportCmd)
	favoritesCmd.AddCommand(favoritesImportCmd)

	addFilterFlags(favoritesListCmd)
	favoritesClearCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompt")
}

func runFavoritesList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	movies, err := filter.SelectFavorites(ctx, f, store.List())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), favorites.FormatList(movies, showDetails))
	return nil
}

// fetchFavoriteMovies looks up every code concurrently
func fetchFavoriteMovies(ctx context.Context, codes []string) ([]favorites.Movie, error) {
	movies := make([]favorites.Movie, len(codes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, code := range codes {
		g.Go(func() error {
			detail, err := details.MovieDetail(ctx, code)
			if err != nil {
				return fmt.Errorf("movie %s: %w", code, err)
			}
			movies[i] = favorites.FromDetail(detail)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return movies, nil
}

func runFavoritesAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	movies, err := fetchFavoriteMovies(ctx, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, movie := range movies {
		if store.Add(movie) {
			fmt.Fprintf(out, "♥ Added %s [%s]\n", movie.MovieNm, movie.MovieCd)
		} else {
			fmt.Fprintf(out, "  %s [%s] is already a favorite\n", movie.MovieNm, movie.MovieCd)
		}
	}
	return nil
}

func runFavoritesRemove(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, code := range args {
		if store.Remove(code) {
			fmt.Fprintf(out, "Removed %s\n", code)
		} else {
			fmt.Fprintf(out, "%s is not a favorite\n", code)
		}
	}
	return nil
}

func runFavoritesToggle(cmd *cobra.Command, args []string) error {
	code := strings.TrimSpace(args[0])

	// Removal needs no lookup
	if store.IsFavorite(code) {
		store.Remove(code)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", code)
		return nil
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	movies, err := fetchFavoriteMovies(ctx, []string{code})
	if err != nil {
		return err
	}
	if store.Toggle(movies[0]) {
		fmt.Fprintf(cmd.OutOrStdout(), "♥ Added %s [%s]\n", movies[0].MovieNm, movies[0].MovieCd)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", code)
	}
	return nil
}

func runFavoritesClear(cmd *cobra.Command, args []string) error {
	count := store.Count()
	if count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No favorite movies to clear")
		return nil
	}

	if !assumeYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Remove all %d favorite movies? [y/N]: ", count)
		if !confirm(cmd.InOrStdin()) {
			logger.Info().Msg("Clear cancelled")
			return nil
		}
	}

	store.ClearAll()
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d favorite movies\n", count)
	return nil
}

func confirm(in io.Reader) bool {
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func runFavoritesExport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "-" {
		return store.Export(cmd.OutOrStdout())
	}

	file, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := store.Export(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	logger.Info().Str("file", args[0]).Int("count", store.Count()).Msg("Exported favorites")
	return nil
}

func runFavoritesImport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer file.Close()

	added, err := store.Import(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new favorite movies (%d total)\n", added, store.Count())
	return nil
}
