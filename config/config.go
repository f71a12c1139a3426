package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser Browser
	Render  Render
	Run     Run
	Cache   Cache
	Log     Log
}

// Browser controls the Rod browser instance.
type Browser struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// Bin overrides the Chromium binary path.
	Bin string

	// Proxy is an optional proxy URL passed to the launcher.
	Proxy string

	// MaxPages is the page pool capacity.
	MaxPages int // default: 2
}

// Render controls page rendering behavior.
type Render struct {
	// ListingTimeout is the deadline for rendering the listing page,
	// including the scroll-to-exhaustion phase.
	ListingTimeout time.Duration // default: 180s

	// ProfileTimeout is the deadline for rendering one profile page.
	ProfileTimeout time.Duration // default: 30s

	// ScrollPause is the wait between scroll steps, giving the page time
	// to load the next batch of cards.
	ScrollPause time.Duration // default: 1s

	// MaxScrollRounds caps the scroll loop in case the page keeps
	// growing indefinitely. 0 means no cap.
	MaxScrollRounds int // default: 200

	// BlockedResourceTypes lists resource types to block during rendering.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string
}

// Run controls what gets scraped and where results go.
type Run struct {
	// ListingURL is the YC directory page to scrape.
	ListingURL string // default: "https://www.ycombinator.com/companies"

	// OutputFile is the CSV destination path.
	OutputFile string // default: "yc_companies.csv"

	// SortValue is the <select> option value used to order the listing.
	// Empty disables sorting.
	SortValue string // default: "YCCompany_By_Launch_Date_production"

	// IncludeDetails adds the location and description columns.
	IncludeDetails bool // default: true

	// EnrichProfiles visits each company profile page to collect the
	// website and LinkedIn links.
	EnrichProfiles bool // default: false

	// MaxCompanies truncates the run after this many records. 0 = all.
	MaxCompanies int // default: 0

	// ProfileRPS is the sustained rate of profile page loads per second.
	ProfileRPS float64 // default: 0.5

	// ProfileBurst is the burst size for profile page loads.
	ProfileBurst int // default: 1
}

// Cache controls the profile render cache.
type Cache struct {
	// MaxEntries is the maximum number of cached profile results.
	MaxEntries int // default: 1000

	// TTL is how long a cached profile result stays valid.
	TTL time.Duration // default: 1h
}

// Log controls structured logging.
type Log struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: Browser{
			Headless:  envBoolOr("YC_HEADLESS", true),
			NoSandbox: envBoolOr("YC_NO_SANDBOX", false),
			Bin:       os.Getenv("YC_BROWSER_BIN"),
			Proxy:     os.Getenv("YC_PROXY"),
			MaxPages:  envIntOr("YC_MAX_PAGES", 2),
		},
		Render: Render{
			ListingTimeout:  envDurationOr("YC_LISTING_TIMEOUT", 180*time.Second),
			ProfileTimeout:  envDurationOr("YC_PROFILE_TIMEOUT", 30*time.Second),
			ScrollPause:     envDurationOr("YC_SCROLL_PAUSE", time.Second),
			MaxScrollRounds: envIntOr("YC_MAX_SCROLL_ROUNDS", 200),
			BlockedResourceTypes: envSliceOr("YC_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
		},
		Run: Run{
			ListingURL:     envOr("YC_LISTING_URL", "https://www.ycombinator.com/companies"),
			OutputFile:     envOr("YC_OUTPUT_FILE", "yc_companies.csv"),
			SortValue:      envOr("YC_SORT_VALUE", "YCCompany_By_Launch_Date_production"),
			IncludeDetails: envBoolOr("YC_INCLUDE_DETAILS", true),
			EnrichProfiles: envBoolOr("YC_ENRICH_PROFILES", false),
			MaxCompanies:   envIntOr("YC_MAX_COMPANIES", 0),
			ProfileRPS:     envFloatOr("YC_PROFILE_RPS", 0.5),
			ProfileBurst:   envIntOr("YC_PROFILE_BURST", 1),
		},
		Cache: Cache{
			MaxEntries: envIntOr("YC_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("YC_CACHE_TTL", time.Hour),
		},
		Log: Log{
			Level:  envOr("YC_LOG_LEVEL", "info"),
			Format: envOr("YC_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
