package extract

import (
	"reflect"
	"testing"
)

func TestProfile_AllFields(t *testing.T) {
	html := `<html><body>
		<a aria-label="Company website" href="https://acme.example">acme.example</a>
		<a href="https://www.linkedin.com/company/acme-inc">LinkedIn</a>
		<a href="https://www.linkedin.com/in/jane-doe">Jane Doe</a>
		<a href="https://www.linkedin.com/in/john-roe">John Roe</a>
	</body></html>`

	details, err := Profile(html)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if details.Website != "https://acme.example" {
		t.Errorf("website = %q, want %q", details.Website, "https://acme.example")
	}
	if details.LinkedIn != "https://www.linkedin.com/company/acme-inc" {
		t.Errorf("company LinkedIn = %q", details.LinkedIn)
	}
	wantFounders := []string{
		"https://www.linkedin.com/in/jane-doe",
		"https://www.linkedin.com/in/john-roe",
	}
	if !reflect.DeepEqual(details.Founders, wantFounders) {
		t.Errorf("founders = %v, want %v", details.Founders, wantFounders)
	}
}

func TestProfile_WebsiteFallback(t *testing.T) {
	// No aria-label link: the first external non-LinkedIn link wins.
	html := `<html><body>
		<a href="https://www.linkedin.com/company/acme-inc">LinkedIn</a>
		<a href="https://acme.example/home">Visit us</a>
		<a href="https://other.example">Other</a>
	</body></html>`

	details, err := Profile(html)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if details.Website != "https://acme.example/home" {
		t.Errorf("fallback website = %q, want %q", details.Website, "https://acme.example/home")
	}
}

func TestProfile_FoundersDeduplicated(t *testing.T) {
	html := `<html><body>
		<a href="https://www.linkedin.com/in/jane-doe">Jane</a>
		<a href="https://www.linkedin.com/in/jane-doe">Jane again</a>
	</body></html>`

	details, err := Profile(html)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if len(details.Founders) != 1 {
		t.Errorf("expected 1 deduped founder link, got %d", len(details.Founders))
	}
}

func TestProfile_NoLinks(t *testing.T) {
	details, err := Profile(`<html><body><p>Nothing here</p></body></html>`)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if details.Website != "" || details.LinkedIn != "" || len(details.Founders) != 0 {
		t.Errorf("expected empty details, got %+v", details)
	}
}
