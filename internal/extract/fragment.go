package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromFragment runs the ordered content extraction over a serialized HTML
// fragment instead of a live page. Useful for synthetic fixtures and for
// reprocessing saved container markup. Text comes from the parsed tree
// rather than the browser's rendered innerText, so whitespace inside
// elements can differ slightly from the live path; trimming and ordering
// behave identically.
func FromFragment(fragment string) ([]Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}

	var raw []Item
	doc.Find(TagSelector).Each(func(_ int, s *goquery.Selection) {
		raw = append(raw, Item{
			Tag:  goquery.NodeName(s),
			Text: s.Text(),
		})
	})
	return Collect(raw), nil
}
