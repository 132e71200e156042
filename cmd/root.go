package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/kobis/config"
	"github.com/s0up4200/kobis/favorites"
	"github.com/s0up4200/kobis/filter"
	"github.com/s0up4200/kobis/kobis"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	kobisClient *kobis.Client
	details     *kobis.CachedDetails
	store       *favorites.Store
	filters     *filter.Manager

	// Command flags
	filterExpr  string
	preset      string
	showDetails bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kobis",
	Short: "Browse the Korean box office and keep a list of favorite movies",
	Long: `kobis is a CLI for the Korean Film Council open API (KOBIS). It shows the
daily and weekly box office, searches the movie catalog, prints movie
details and keeps a local list of favorite movies.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.kobis/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&showDetails, "details", false, "show extended output")
}

// initializeApp initializes the configuration, clients and favorites store
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	kobisClient, err = kobis.NewClient(cfg.Kobis.APIKey, logger,
		kobis.WithBaseURL(cfg.Kobis.BaseURL),
		kobis.WithTimeout(cfg.Kobis.Timeout),
		kobis.WithUserAgent("kobis-cli/"+appVersion),
	)
	if err != nil {
		return fmt.Errorf("failed to create KOBIS client: %w", err)
	}
	details = kobis.NewCachedDetails(kobisClient)

	storage := favorites.NewOSFileStorage(cfg.Favorites.Dir)
	store = favorites.Open(storage, logger)
	logger.Debug().
		Str("dir", storage.Dir()).
		Int("count", store.Count()).
		Msg("Loaded favorites")

	filters = filter.NewManager()
	if err := filters.RegisterFilters(cfg.Filter.Presets); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format, colored only on a terminal
	fd := os.Stderr.Fd()
	terminal := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// commandContext is cancelled on interrupt
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

// resolveFilter combines the --preset and --filter flags
func resolveFilter() (filter.CompiledFilter, error) {
	f, err := filters.Resolve(preset, filterExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	if f != nil {
		logger.Debug().Str("filter", f.Expression()).Msg("Applying filter")
	}
	return f, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}
