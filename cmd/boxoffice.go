package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/kobis/filter"
	"github.com/s0up4200/kobis/kobis"
	"github.com/s0up4200/kobis/view"
)

var (
	boxOfficeDate string
	weekly        bool
	weekend       bool
	weekdays      bool
)

// boxOfficeCmd represents the boxoffice command
var boxOfficeCmd = &cobra.Command{
	Use:   "boxoffice",
	Short: "Show the box office ranking",
	Long: `Show the daily box office ranking, or the weekly ranking with --weekly,
--weekend or --weekdays. The date defaults to yesterday.

Rows can be narrowed with an expression, for example:
  kobis boxoffice --filter 'IsNew or RankInten >= 3'`,
	Args:    cobra.NoArgs,
	PreRunE: initializeApp,
	RunE:    runBoxOffice,
}

func init() {
	rootCmd.AddCommand(boxOfficeCmd)

	boxOfficeCmd.Flags().StringVar(&boxOfficeDate, "date", "", "target date as YYYYMMDD (default yesterday)")
	boxOfficeCmd.Flags().BoolVar(&weekly, "weekly", false, "show the weekly ranking (Mon-Sun)")
	boxOfficeCmd.Flags().BoolVar(&weekend, "weekend", false, "show the weekend ranking (Fri-Sun)")
	boxOfficeCmd.Flags().BoolVar(&weekdays, "weekdays", false, "show the weekday ranking (Mon-Thu)")
	boxOfficeCmd.MarkFlagsMutuallyExclusive("weekly", "weekend", "weekdays")
	addFilterFlags(boxOfficeCmd)
}

func selectedKind() view.BoxOfficeKind {
	switch {
	case weekly:
		return view.Weekly
	case weekend:
		return view.Weekend
	case weekdays:
		return view.Weekdays
	default:
		return view.Daily
	}
}

func runBoxOffice(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	date := boxOfficeDate
	if date == "" {
		date = kobis.Yesterday(time.Now())
	}

	f, err := resolveFilter()
	if err != nil {
		return err
	}

	kind := selectedKind()
	logger.Debug().Str("kind", string(kind)).Str("date", date).Msg("Fetching box office")

	result, err := kind.Fetch(ctx, kobisClient, date)
	if err != nil {
		return err
	}

	total := len(result.Entries)
	result.Entries, err = filter.SelectBoxOffice(ctx, f, result.Entries)
	if err != nil {
		return err
	}
	if f != nil {
		logger.Info().Int("matched", len(result.Entries)).Int("total", total).Msg("Filtered box office")
	}

	formatter := kobis.NewConsoleFormatter(showDetails)
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoxOffice(kind.Title(), result))
	return nil
}
