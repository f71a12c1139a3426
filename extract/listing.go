package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fleacr/WebScraperYCombinator/models"
)

const (
	// cardSelector matches one company entry on the directory page.
	cardSelector = `a[href^="/companies/"]`

	// descriptionSelector is the one-line pitch inside a card. The class
	// pair is stable across the directory's Tailwind builds.
	descriptionSelector = `div.mb-1\.5.text-sm`

	// resultsRegionSelector narrows extraction to the directory results,
	// keeping nav and footer links matching cardSelector out of the output.
	// ScopeTo falls back to the full document when nothing matches.
	resultsRegionSelector = "main"
)

// Listing parses rendered directory HTML into one Company per well-formed
// card, in document order. Cards missing a name or a resolvable profile
// link are skipped; they never abort extraction of the remaining cards.
//
// The function is pure: identical input yields an identical record slice.
func Listing(rawHTML string, baseURL string) ([]models.Company, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			"listing base URL is not parseable",
			err,
		)
	}

	scoped := ScopeTo(rawHTML, resultsRegionSelector)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(scoped))
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"listing HTML is not parseable",
			err,
		)
	}

	companies := []models.Company{}
	seen := make(map[string]struct{})

	doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		href, exists := card.Attr("href")
		if !exists || href == "" {
			return
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}
		profileURL := resolved.String()

		// A re-rendered page can repeat a card; keep the first occurrence.
		if _, dup := seen[profileURL]; dup {
			return
		}

		spans := card.Find("span")
		name := strings.TrimSpace(spans.First().Text())
		if name == "" {
			return
		}

		location := ""
		if spans.Length() > 1 {
			location = strings.TrimSpace(spans.Eq(1).Text())
		}

		description := strings.TrimSpace(card.Find(descriptionSelector).First().Text())

		seen[profileURL] = struct{}{}
		companies = append(companies, models.Company{
			Name:        name,
			ProfileURL:  profileURL,
			Location:    location,
			Description: description,
		})
	})

	return companies, nil
}
