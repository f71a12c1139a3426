package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fleacr/WebScraperYCombinator/models"
)

// Profile parses a rendered company profile page into its outbound links.
// Every field is best-effort: a profile without a website or LinkedIn
// presence simply yields empty fields, not an error.
func Profile(rawHTML string) (models.ProfileDetails, error) {
	details := models.ProfileDetails{}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return details, models.NewScrapeError(
			models.ErrCodeExtraction,
			"profile HTML is not parseable",
			err,
		)
	}

	// Company LinkedIn page.
	if href, ok := doc.Find(`a[href*="linkedin.com/company"]`).First().Attr("href"); ok {
		details.LinkedIn = href
	}

	// Company website: the profile carries an aria-label on the link.
	// Fallback: first external link that is not a LinkedIn URL.
	if href, ok := doc.Find(`a[aria-label="Company website"]`).First().Attr("href"); ok {
		details.Website = href
	} else {
		doc.Find(`a[href^="http"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, exists := s.Attr("href")
			if !exists || href == "" || strings.Contains(href, "linkedin.com") {
				return true
			}
			details.Website = href
			return false
		})
	}

	// Founder LinkedIn profiles, deduped in document order.
	seen := make(map[string]struct{})
	doc.Find(`a[href*="linkedin.com/in"]`).Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		details.Founders = append(details.Founders, href)
	})

	return details, nil
}
