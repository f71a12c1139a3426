package extract

import (
	"strings"
	"testing"
)

func TestScopeTo_MatchNarrowsDocument(t *testing.T) {
	html := `<html><body><nav><a href="/x">nav</a></nav><main><p>content</p></main></body></html>`

	scoped := ScopeTo(html, "main")
	if !strings.Contains(scoped, "content") {
		t.Errorf("scoped HTML lost the matched region: %q", scoped)
	}
	if strings.Contains(scoped, "nav") {
		t.Errorf("scoped HTML still contains content outside the selector: %q", scoped)
	}
}

func TestScopeTo_NoMatchReturnsOriginal(t *testing.T) {
	html := `<html><body><p>content</p></body></html>`
	if got := ScopeTo(html, "main"); got != html {
		t.Errorf("expected original HTML back, got %q", got)
	}
}

func TestScopeTo_InvalidSelectorReturnsOriginal(t *testing.T) {
	html := `<html><body><p>content</p></body></html>`
	if got := ScopeTo(html, "???"); got != html {
		t.Errorf("expected original HTML back for invalid selector, got %q", got)
	}
}
