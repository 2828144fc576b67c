package browser

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// Page is a single browser tab.
type Page struct {
	ctx context.Context
}

// Navigate loads url and waits for the document body to be ready, bounded by
// timeout. Waiting for body readiness rather than network idle matters for
// pages that keep background requests alive indefinitely.
func (p *Page) Navigate(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return &NavigationError{URL: url, Err: err}
	}
	return nil
}

// WaitVisible waits until sel is visible, bounded by timeout.
func (p *Page) WaitVisible(sel string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.WaitVisible(sel, chromedp.ByQuery))
}

// Click clicks the first element matching sel, bounded by timeout.
func (p *Page) Click(sel string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Click(sel, chromedp.ByQuery))
}

// Evaluate runs a JS expression in the page and unmarshals its result.
func (p *Page) Evaluate(js string, out any) error {
	return chromedp.Run(p.ctx, chromedp.Evaluate(js, out))
}

// Title returns the current document title.
func (p *Page) Title() (string, error) {
	var title string
	if err := chromedp.Run(p.ctx, chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

// Location returns the current URL, after any redirects.
func (p *Page) Location() (string, error) {
	var loc string
	if err := chromedp.Run(p.ctx, chromedp.Location(&loc)); err != nil {
		return "", err
	}
	return loc, nil
}
