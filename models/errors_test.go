package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestScrapeError_WrapsAndUnwraps(t *testing.T) {
	cause := errors.New("net::ERR_NAME_NOT_RESOLVED")
	err := NewScrapeError(ErrCodeNavigation, "navigation to listing page failed", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if err.Error() == "" {
		t.Error("empty error string")
	}
}

func TestCodeOf(t *testing.T) {
	err := NewScrapeError(ErrCodeSink, "failed to write CSV row", nil)
	wrapped := fmt.Errorf("run aborted: %w", err)

	if got := CodeOf(wrapped); got != ErrCodeSink {
		t.Errorf("CodeOf(wrapped) = %q, want %q", got, ErrCodeSink)
	}
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", got)
	}
}
