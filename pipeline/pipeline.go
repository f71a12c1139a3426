package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/fleacr/WebScraperYCombinator/cache"
	"github.com/fleacr/WebScraperYCombinator/config"
	"github.com/fleacr/WebScraperYCombinator/extract"
	"github.com/fleacr/WebScraperYCombinator/models"
)

// Renderer is the browser-facing dependency of the pipeline. It returns
// fully rendered page content; *scraper.Scraper is the production
// implementation.
type Renderer interface {
	RenderListing(ctx context.Context, listingURL, sortValue string) (*models.RenderResult, error)
	RenderProfile(ctx context.Context, profileURL string) (*models.RenderResult, error)
}

// Sink receives extracted records. *export.CSVWriter is the production
// implementation. Sink errors are fatal to the run.
type Sink interface {
	Write(models.Company) error
}

// Stats summarises one pipeline run for operator reporting.
type Stats struct {
	CompaniesFound   int
	RowsWritten      int
	ProfilesRendered int
	ProfileFailures  int
	CacheHits        int
}

// Pipeline wires the renderer, the extractor and the sink into the
// listing → records → CSV flow. Pages are processed sequentially: one
// browser session, one writer.
type Pipeline struct {
	renderer Renderer
	sink     Sink
	profiles *cache.Cache
	limiter  *rate.Limiter
	run      config.Run
}

// New assembles a Pipeline. The profile cache may be nil; it is only
// consulted when profile enrichment is enabled.
func New(renderer Renderer, sink Sink, profiles *cache.Cache, run config.Run) *Pipeline {
	limit := rate.Limit(run.ProfileRPS)
	if run.ProfileRPS <= 0 {
		limit = rate.Inf
	}
	burst := run.ProfileBurst
	if burst < 1 {
		burst = 1
	}
	return &Pipeline{
		renderer: renderer,
		sink:     sink,
		profiles: profiles,
		limiter:  rate.NewLimiter(limit, burst),
		run:      run,
	}
}

// Run executes one full scrape.
//
// A listing navigation failure aborts the run before any data row is
// written. A failure on a single profile page is recovered locally: the
// record keeps its listing fields and the run continues. A sink failure
// is fatal.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	rendered, err := p.renderer.RenderListing(ctx, p.run.ListingURL, p.run.SortValue)
	if err != nil {
		return stats, err
	}

	companies, err := extract.Listing(rendered.HTML, rendered.FinalURL)
	if err != nil {
		return stats, err
	}
	stats.CompaniesFound = len(companies)
	slog.Info("listing extracted",
		"url", rendered.FinalURL,
		"companies", len(companies),
	)

	if p.run.MaxCompanies > 0 && len(companies) > p.run.MaxCompanies {
		companies = companies[:p.run.MaxCompanies]
	}

	for _, company := range companies {
		if ctx.Err() != nil {
			return stats, models.NewScrapeError(
				models.ErrCodeTimeout, "run canceled", ctx.Err(),
			)
		}

		if p.run.EnrichProfiles {
			p.enrich(ctx, &company, stats)
		}

		if err := p.sink.Write(company); err != nil {
			return stats, err
		}
		stats.RowsWritten++
	}

	return stats, nil
}

// enrich fills in the profile-derived fields of company, consulting the
// cache before rendering. Failures are logged and swallowed: the listing
// fields alone still make a valid row.
func (p *Pipeline) enrich(ctx context.Context, company *models.Company, stats *Stats) {
	key := cache.Key(company.ProfileURL)
	if p.profiles != nil {
		if details, ok := p.profiles.Get(key); ok {
			stats.CacheHits++
			applyDetails(company, details)
			return
		}
	}

	// Pace profile page loads so the run stays polite.
	if err := p.limiter.Wait(ctx); err != nil {
		stats.ProfileFailures++
		return
	}

	rendered, err := p.renderer.RenderProfile(ctx, company.ProfileURL)
	if err != nil {
		stats.ProfileFailures++
		slog.Warn("profile render failed, keeping listing fields",
			"company", company.Name,
			"url", company.ProfileURL,
			"error", err,
		)
		return
	}
	stats.ProfilesRendered++

	details, err := extract.Profile(rendered.HTML)
	if err != nil {
		stats.ProfileFailures++
		slog.Warn("profile extraction failed, keeping listing fields",
			"company", company.Name,
			"url", company.ProfileURL,
			"error", err,
		)
		return
	}

	if p.profiles != nil {
		p.profiles.Set(key, details)
	}
	applyDetails(company, details)
}

func applyDetails(company *models.Company, details models.ProfileDetails) {
	company.Website = details.Website
	company.LinkedIn = details.LinkedIn
	company.FounderLinkedIn = details.Founders
}
