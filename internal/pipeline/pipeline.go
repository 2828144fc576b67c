// Package pipeline runs the linear scrape protocol: navigate, reveal, resolve
// the article link, open it in a new tab, and extract its ordered content.
// Every step is attempted exactly once.
package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"readaloud/internal/extract"
)

const (
	// navTimeout bounds each navigation. The wait policy is body readiness,
	// not network idle; target pages keep background requests alive forever.
	navTimeout = 60 * time.Second

	// clickSettle is the extra pause after the reveal click, for whatever
	// animation or content load the click triggers.
	clickSettle = 2 * time.Second

	// DefaultSettleWait is the pause after navigation for client-side
	// rendering. A heuristic, not a readiness signal.
	DefaultSettleWait = 5 * time.Second
)

// Page is the subset of tab operations the sequencer needs. Implemented by
// *browser.Page; faked in tests.
type Page interface {
	Navigate(url string, timeout time.Duration) error
	WaitVisible(sel string, timeout time.Duration) error
	Click(sel string, timeout time.Duration) error
	Evaluate(js string, out any) error
	Title() (string, error)
	Location() (string, error)
}

// Site is the adapter carrying one target site's markup coupling: the three
// selectors/markers the pipeline depends on. Swap it to point the same
// algorithm at different markup.
type Site struct {
	InitialURL      string
	ClickSelector   string
	LinkMarker      string
	ContentSelector string
}

// Runner executes the protocol against one session.
type Runner struct {
	page   Page
	newTab func() (Page, func(), error)
	site   Site
	settle time.Duration
	sleep  func(time.Duration)
}

// Option configures a Runner.
type Option func(*Runner)

// WithSettleWait sets the post-navigation settle pause.
func WithSettleWait(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.settle = d
		}
	}
}

// WithSleep replaces the pause function, letting tests run without real
// delays.
func WithSleep(fn func(time.Duration)) Option {
	return func(r *Runner) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

// New builds a Runner. page is the already-open tab to start from; newTab
// opens the tab the resolved article is loaded into.
func New(page Page, newTab func() (Page, func(), error), site Site, opts ...Option) *Runner {
	r := &Runner{
		page:   page,
		newTab: newTab,
		site:   site,
		settle: DefaultSettleWait,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the full protocol and returns the extraction result. A nil
// error means the content container was found; an empty container still
// yields a result with zero items.
func (r *Runner) Run() (*extract.Result, error) {
	log.Info("navigating", "url", r.site.InitialURL)
	if err := r.page.Navigate(r.site.InitialURL, navTimeout); err != nil {
		return nil, err
	}
	r.sleep(r.settle)

	// The reveal click is optional content: absence is tolerated, unlike the
	// link marker and container below which are required.
	if r.site.ClickSelector != "" {
		r.clickReveal()
	}

	href, err := r.resolveLink()
	if err != nil {
		return nil, err
	}
	log.Info("resolved article link", "href", href)

	tab, closeTab, err := r.newTab()
	if err != nil {
		return nil, fmt.Errorf("open tab: %w", err)
	}
	defer closeTab()

	log.Info("opening article in new tab", "url", href)
	if err := tab.Navigate(href, navTimeout); err != nil {
		return nil, err
	}
	r.sleep(r.settle)

	if err := tab.WaitVisible(r.site.ContentSelector, r.settle); err != nil {
		// Not fatal yet; the existence re-check below decides.
		log.Warn("content container not visible after wait", "selector", r.site.ContentSelector, "err", err)
	}

	var present bool
	if err := tab.Evaluate(existsJS(r.site.ContentSelector), &present); err != nil {
		return nil, fmt.Errorf("check content container: %w", err)
	}
	if !present {
		return nil, &ElementNotFoundError{Selector: r.site.ContentSelector}
	}

	items, err := r.extractItems(tab)
	if err != nil {
		return nil, err
	}

	title, err := tab.Title()
	if err != nil {
		log.Warn("could not read page title", "err", err)
	}
	finalURL, err := tab.Location()
	if err != nil {
		log.Warn("could not read final URL", "err", err)
	}

	res := &extract.Result{
		InitialURL: r.site.InitialURL,
		TargetURL:  href,
		FinalURL:   finalURL,
		Title:      title,
		Items:      items,
		FullText:   extract.JoinText(items),
	}
	log.Info("extraction complete", "items", len(items), "title", title)
	return res, nil
}

// clickReveal waits for the optional click target and clicks it. Failures
// are warnings: the rest of the pipeline may still succeed without it.
func (r *Runner) clickReveal() {
	if err := r.page.WaitVisible(r.site.ClickSelector, r.settle); err != nil {
		log.Warn("click target not found, continuing", "selector", r.site.ClickSelector, "err", err)
		return
	}
	if err := r.page.Click(r.site.ClickSelector, r.settle); err != nil {
		log.Warn("could not click element, continuing", "selector", r.site.ClickSelector, "err", err)
		return
	}
	log.Info("clicked reveal control", "selector", r.site.ClickSelector)
	r.sleep(clickSettle)
}

// resolveLink finds the first element carrying the link marker class and
// reads the href of its first descendant anchor. This is the most brittle
// structural assumption in the pipeline; absence is fatal.
func (r *Runner) resolveLink() (string, error) {
	var href string
	if err := r.page.Evaluate(resolveLinkJS(r.site.LinkMarker), &href); err != nil {
		return "", fmt.Errorf("resolve article link: %w", err)
	}
	if href == "" {
		return "", &ElementNotFoundError{Selector: r.site.LinkMarker}
	}
	return href, nil
}

// extractItems collects the container's matching descendants in document
// order and normalizes them.
func (r *Runner) extractItems(tab Page) ([]extract.Item, error) {
	var nodesJSON string
	if err := tab.Evaluate(collectItemsJS(r.site.ContentSelector), &nodesJSON); err != nil {
		return nil, fmt.Errorf("collect content nodes: %w", err)
	}
	var raw []extract.Item
	if err := json.Unmarshal([]byte(nodesJSON), &raw); err != nil {
		return nil, fmt.Errorf("parse content nodes: %w", err)
	}
	return extract.Collect(raw), nil
}
