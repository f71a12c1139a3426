package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fleacr/WebScraperYCombinator/cache"
	"github.com/fleacr/WebScraperYCombinator/config"
	"github.com/fleacr/WebScraperYCombinator/export"
	"github.com/fleacr/WebScraperYCombinator/models"
	"github.com/fleacr/WebScraperYCombinator/pipeline"
	"github.com/fleacr/WebScraperYCombinator/scraper"
)

// flag values; zero values mean "not set, use config/env".
var (
	flagOutput    string
	flagListing   string
	flagMax       int
	flagProfiles  bool
	flagNoDetails bool
	flagHeadful   bool
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "ycscraper",
	Short: "Scrape the Y Combinator startup directory to CSV",
	Long: `ycscraper renders the YC startup directory in a headless browser,
extracts one record per company (name, profile URL, location, description)
and writes the results to a CSV file. With --profiles it also visits each
company's profile page to collect the website and LinkedIn links.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "CSV output path (default yc_companies.csv)")
	rootCmd.Flags().StringVar(&flagListing, "listing-url", "", "directory URL to scrape")
	rootCmd.Flags().IntVar(&flagMax, "max", 0, "stop after this many companies (0 = all)")
	rootCmd.Flags().BoolVar(&flagProfiles, "profiles", false, "visit each profile page for website/LinkedIn links")
	rootCmd.Flags().BoolVar(&flagNoDetails, "no-details", false, "omit the location and description columns")
	rootCmd.Flags().BoolVar(&flagHeadful, "headful", false, "run the browser with a visible window")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

func run(cmd *cobra.Command, _ []string) error {
	// ── 1. Load configuration (.env, environment, then flags) ────────
	if err := godotenv.Load(); err != nil {
		// No .env file is the normal case; the environment still applies.
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := config.Load()
	applyFlags(cmd, cfg)

	// ── 2. Initialise structured logging ─────────────────────────────
	initLogger(cfg.Log)
	slog.Info("ycscraper starting",
		"listingURL", cfg.Run.ListingURL,
		"output", cfg.Run.OutputFile,
		"profiles", cfg.Run.EnrichProfiles,
		"headless", cfg.Browser.Headless,
	)

	// ── 3. Cancel the run on SIGINT/SIGTERM ──────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 4. Launch the browser session ────────────────────────────────
	sc, err := scraper.New(cfg.Browser, cfg.Render)
	if err != nil {
		return reportErr(err)
	}
	// Guaranteed release on every exit path, error exits included.
	defer sc.Close()

	// ── 5. Open the output sink ──────────────────────────────────────
	writer, err := export.Create(cfg.Run.OutputFile, export.Columns{
		Details:  cfg.Run.IncludeDetails,
		Profiles: cfg.Run.EnrichProfiles,
	})
	if err != nil {
		return reportErr(err)
	}

	// ── 6. Run the pipeline ──────────────────────────────────────────
	var profiles *cache.Cache
	if cfg.Run.EnrichProfiles {
		profiles = cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	pl := pipeline.New(sc, writer, profiles, cfg.Run)
	stats, runErr := pl.Run(ctx)

	// Flush even after a failed run so partial output reaches disk.
	closeErr := writer.Close()

	if runErr != nil {
		return reportErr(runErr)
	}
	if closeErr != nil {
		return reportErr(closeErr)
	}

	slog.Info("scrape complete",
		"output", cfg.Run.OutputFile,
		"companiesFound", stats.CompaniesFound,
		"rowsWritten", stats.RowsWritten,
		"profilesRendered", stats.ProfilesRendered,
		"profileFailures", stats.ProfileFailures,
		"cacheHits", stats.CacheHits,
	)
	return nil
}

// applyFlags overlays explicitly set CLI flags onto the loaded config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagOutput != "" {
		cfg.Run.OutputFile = flagOutput
	}
	if flagListing != "" {
		cfg.Run.ListingURL = flagListing
	}
	if cmd.Flags().Changed("max") {
		cfg.Run.MaxCompanies = flagMax
	}
	if flagProfiles {
		cfg.Run.EnrichProfiles = true
	}
	if flagNoDetails {
		cfg.Run.IncludeDetails = false
	}
	if flagHeadful {
		cfg.Browser.Headless = false
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
}

// reportErr logs the failure with its code so the operator sees which of
// the failure kinds occurred, then passes the error up to main.
func reportErr(err error) error {
	var se *models.ScrapeError
	if errors.As(err, &se) {
		slog.Error("scrape failed", "code", se.Code, "error", err)
	} else {
		slog.Error("scrape failed", "error", err)
	}
	return err
}

// initLogger configures slog based on the Log config.
func initLogger(cfg config.Log) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
