package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/kobis/favorites"
	"github.com/s0up4200/kobis/kobis"
)

var saveFavorite bool

// movieCmd represents the movie command
var movieCmd = &cobra.Command{
	Use:     "movie <movieCd>",
	Short:   "Show details for one movie",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runMovie,
}

func init() {
	rootCmd.AddCommand(movieCmd)

	movieCmd.Flags().BoolVar(&saveFavorite, "favorite", false, "also add the movie to favorites")
}

func runMovie(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	movie, err := details.MovieDetail(ctx, args[0])
	if err != nil {
		return err
	}

	if saveFavorite && store.Add(favorites.FromDetail(movie)) {
		logger.Info().Str("movie", movie.MovieNm).Msg("Added to favorites")
	}

	formatter := kobis.NewConsoleFormatter(showDetails)
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMovieDetail(movie, store.IsFavorite(movie.MovieCd)))
	return nil
}
