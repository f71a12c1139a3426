package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/fleacr/WebScraperYCombinator/models"
)

// listingCardSelector matches one company card on the directory page.
// The extractor uses the same anchor shape; the renderer only needs it to
// know the dynamic content has arrived.
const listingCardSelector = `a[href^="/companies/"]`

// RenderListing renders the YC directory page and returns its HTML after
// the infinite-scroll content has been exhausted.
//
// Lifecycle (numbered steps match the inline comments):
//
//  1. Timeout guard     – hard deadline on the entire operation
//  2. Acquire page      – borrow a tab from the pool (or create one)
//  3. DEFER: cleanup    – about:blank + return to pool (leak prevention)
//  4. Stealth injection – mask navigator.webdriver etc. (before navigation!)
//  5. Hijack mount      – block images/fonts/media (before navigation!)
//  6. Context binding   – propagate timeout to all Rod operations
//  7. Navigate          – triggers page load
//  8. Wait              – DOM stable, then at least one company card
//  9. Sort              – select the launch-date ordering (best-effort)
//  10. Scroll           – page down until the document stops growing
//  11. Extract          – page.HTML() snapshot + title + final URL
func (s *Scraper) RenderListing(ctx context.Context, listingURL, sortValue string) (*models.RenderResult, error) {
	// ── 1. Timeout guard ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(ctx, s.renderCfg.ListingTimeout)
	defer cancel()

	// ── 2-6. Shared page setup ────────────────────────────────────────
	page, release, err := s.acquirePage()
	if err != nil {
		return nil, err
	}
	// ── 3. CRITICAL DEFER: prevent DOM memory leak + guarantee pool return
	defer release()

	setReferer(page, listingURL)

	router := setupHijack(page, s.renderCfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	// ── 7. Navigate ───────────────────────────────────────────────────
	if navErr := p.Navigate(listingURL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to listing page failed")
	}

	// ── 8. Wait strategy ──────────────────────────────────────────────
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM",
			"error", stableErr,
		)
	}
	if waitErr := p.WaitElementsMoreThan(listingCardSelector, 0); waitErr != nil {
		return nil, categorizeError(waitErr, "no company cards appeared on listing page")
	}

	// ── 9. Sort selection (best-effort, original ordering otherwise) ──
	if sortValue != "" {
		if sortErr := selectSortOption(p, sortValue); sortErr != nil {
			slog.Warn("could not apply listing sort, keeping default order",
				"sortValue", sortValue, "error", sortErr,
			)
		}
	}

	// ── 10. Scroll to exhaustion ──────────────────────────────────────
	rounds, scrollErr := scrollToExhaustion(p, s.renderCfg.ScrollPause, s.renderCfg.MaxScrollRounds)
	if scrollErr != nil {
		// A partial scroll still leaves usable cards in the DOM; render
		// whatever loaded rather than dropping the whole page.
		slog.Warn("scroll loop ended early, extracting loaded cards only",
			"rounds", rounds, "error", scrollErr,
		)
	} else {
		slog.Info("listing scroll complete", "rounds", rounds)
	}

	// ── 11. Extract rendered HTML ─────────────────────────────────────
	return snapshot(p, listingURL)
}

// RenderProfile renders a single company profile page.
func (s *Scraper) RenderProfile(ctx context.Context, profileURL string) (*models.RenderResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.renderCfg.ProfileTimeout)
	defer cancel()

	page, release, err := s.acquirePage()
	if err != nil {
		return nil, err
	}
	defer release()

	setReferer(page, profileURL)

	router := setupHijack(page, s.renderCfg.BlockedResourceTypes)
	if router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	if navErr := p.Navigate(profileURL); navErr != nil {
		return nil, categorizeError(navErr, "navigation to profile page failed")
	}
	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge on profile page",
			"url", profileURL, "error", stableErr,
		)
	}

	return snapshot(p, profileURL)
}

// acquirePage borrows a page from the pool, injects stealth JS and the
// Referer header, and returns a release func that parks the page on
// about:blank and puts it back.
func (s *Scraper) acquirePage() (*rod.Page, func(), error) {
	page, acquireErr := s.pagePool.Get(func() (*rod.Page, error) {
		return s.browser.Page(proto.TargetCreateTarget{})
	})
	if acquireErr != nil {
		return nil, nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to acquire page from pool",
			acquireErr,
		)
	}

	// Stealth must be installed before navigation to take effect.
	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth",
			"error", evalErr,
		)
	}

	release := func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank",
				"error", navErr,
			)
		}
		s.pagePool.Put(page)
	}
	return page, release, nil
}

// setReferer sets a Google search Referer on the page, matching how most
// visitors reach the directory.
func setReferer(page *rod.Page, targetURL string) {
	u, parseErr := url.Parse(targetURL)
	if parseErr != nil {
		return
	}
	headers := proto.NetworkHeaders{
		"Referer": gson.New("https://www.google.com/search?q=" + url.QueryEscape(u.Hostname())),
	}
	_ = proto.NetworkSetExtraHTTPHeaders{Headers: headers}.Call(page)
}

// snapshot reads the rendered HTML plus best-effort title and final URL.
func snapshot(p *rod.Page, requestedURL string) (*models.RenderResult, error) {
	rawHTML, htmlErr := p.HTML()
	if htmlErr != nil {
		return nil, categorizeError(htmlErr, "failed to extract page HTML")
	}

	title := evalStringOrEmpty(p, `() => document.title`)
	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = requestedURL
	}

	return &models.RenderResult{
		HTML:     rawHTML,
		Title:    title,
		FinalURL: finalURL,
	}, nil
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors (useful for optional metadata extraction).
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// categorizeError wraps raw errors into typed ScrapeErrors so the caller
// can report the failure kind to the operator.
func categorizeError(err error, msg string) *models.ScrapeError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return models.NewScrapeError(models.ErrCodeTimeout, "render canceled", err)
	default:
		return models.NewScrapeError(models.ErrCodeNavigation, msg, err)
	}
}
