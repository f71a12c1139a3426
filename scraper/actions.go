package scraper

import (
	"fmt"
	"time"

	"github.com/go-rod/rod"
)

// sortSettleDelay gives the listing time to re-render after the sort
// option changes.
const sortSettleDelay = 800 * time.Millisecond

// selectSortOption finds the directory's <select> carrying an option with
// the given value, applies it, and waits for the re-render to settle.
func selectSortOption(p *rod.Page, value string) error {
	if waitErr := p.WaitElementsMoreThan("select", 0); waitErr != nil {
		return fmt.Errorf("no sort select found: %w", waitErr)
	}

	res, err := p.Eval(`(value) => {
		const selects = document.querySelectorAll('select');
		for (const sel of selects) {
			const opt = Array.from(sel.options).find(o => o.value === value);
			if (!opt) continue;
			sel.value = value;
			sel.dispatchEvent(new Event('change', { bubbles: true }));
			return true;
		}
		return false;
	}`, value)
	if err != nil {
		return fmt.Errorf("sort selection failed: %w", err)
	}
	if !res.Value.Bool() {
		return fmt.Errorf("no select carries option %q", value)
	}

	return sleepCtx(p, sortSettleDelay)
}

// scrollToExhaustion pages down until document.body.scrollHeight stops
// growing, which is how the directory's infinite scroll signals the end
// of the company list. Returns the number of scroll rounds performed.
func scrollToExhaustion(p *rod.Page, pause time.Duration, maxRounds int) (int, error) {
	lastHeight := -1
	rounds := 0

	for maxRounds <= 0 || rounds < maxRounds {
		res, err := p.Eval(`() => document.body.scrollHeight`)
		if err != nil {
			return rounds, fmt.Errorf("failed to read document height: %w", err)
		}
		height := res.Value.Int()
		if height == lastHeight {
			break
		}
		lastHeight = height

		if err := p.Mouse.Scroll(0, 3000, 0); err != nil {
			return rounds, fmt.Errorf("scroll round %d failed: %w", rounds, err)
		}
		rounds++

		// Pause so lazy-loaded cards have time to arrive.
		if err := sleepCtx(p, pause); err != nil {
			return rounds, err
		}
	}
	return rounds, nil
}

// sleepCtx sleeps for d or until the page's context is done.
func sleepCtx(p *rod.Page, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-p.GetContext().Done():
		return p.GetContext().Err()
	}
}
