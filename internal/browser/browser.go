// Package browser wraps chromedp for attaching to an already-running browser
// over its remote-debugging endpoint. The browser process is externally
// owned: closing a Session only detaches, it never shuts the browser down.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultEndpoint is the conventional remote-debugging address.
const DefaultEndpoint = "http://localhost:9222"

const connectTimeout = 15 * time.Second

// ConnectionError means the remote-debugging endpoint could not be reached.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to browser at %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NavigationError wraps a failed or timed-out navigation.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigation to %s failed: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// Session is one attachment to a remote browser. It owns a dedicated tab;
// further tabs are opened with NewTab.
type Session struct {
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// Connect attaches to the browser listening at endpoint. The websocket is
// established eagerly so a dead endpoint fails here rather than somewhere in
// the middle of a run.
//
// The allocating Run must be issued on the session's own long-lived context:
// the allocator watches whatever context performs the allocation and tears
// the connection down when that context ends, so a timeout sub-context here
// would close the websocket the moment Connect returned. The time bound is
// applied by racing the Run against a timer instead.
func Connect(ctx context.Context, endpoint string) (*Session, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, endpoint)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	release := func() {
		cancel()
		allocCancel()
	}

	done := make(chan error, 1)
	go func() { done <- chromedp.Run(browserCtx) }()

	select {
	case err := <-done:
		if err != nil {
			release()
			return nil, &ConnectionError{Endpoint: endpoint, Err: err}
		}
	case <-time.After(connectTimeout):
		release()
		return nil, &ConnectionError{Endpoint: endpoint, Err: context.DeadlineExceeded}
	}

	return &Session{
		allocCancel: allocCancel,
		ctx:         browserCtx,
		cancel:      cancel,
	}, nil
}

// Close releases the connection. The remote browser keeps running for reuse
// by later runs.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
}

// Page returns the session's own tab.
func (s *Session) Page() *Page {
	return &Page{ctx: s.ctx}
}

// NewTab opens a fresh tab as a child context, so navigating it does not
// disturb the session's first tab. The returned cancel closes the tab.
func (s *Session) NewTab() (*Page, func(), error) {
	ctx, cancel := chromedp.NewContext(s.ctx)
	return &Page{ctx: ctx}, cancel, nil
}
