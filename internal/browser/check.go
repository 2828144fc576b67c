package browser

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

const checkURL = "https://example.com"

// CheckConnection attaches to endpoint and loads a known-good page, proving
// the remote-debugging connection works before the real run starts.
func CheckConnection(ctx context.Context, endpoint string) error {
	s, err := Connect(ctx, endpoint)
	if err != nil {
		return err
	}
	defer s.Close()

	page := s.Page()
	if err := page.Navigate(checkURL, 30*time.Second); err != nil {
		return err
	}
	title, err := page.Title()
	if err != nil {
		return err
	}
	log.Info("browser connection ok", "endpoint", endpoint, "title", title)
	return nil
}
