// Package extract turns the matched descendants of an article container
// into an ordered sequence of tagged text items.
package extract

import "strings"

// TagSelector matches the element kinds that carry article content.
// querySelectorAll (and goquery's Find) return matches in document order,
// which is what keeps the extracted items in reading order.
const TagSelector = "p, h2, h3, h4, ul, ol, pre, code"

// Item is a single piece of article content. Tag is always lower case and
// Text is always non-empty after Collect has run.
type Item struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Result holds everything extracted during one run.
type Result struct {
	InitialURL string `json:"initial_url"`
	TargetURL  string `json:"target_url"`
	FinalURL   string `json:"final_url"`
	Title      string `json:"title"`
	Items      []Item `json:"content"`
	FullText   string `json:"full_text"`
}

// Collect normalizes raw items as read from the page: tags are lower-cased,
// text is trimmed, and items whose trimmed text is empty are dropped as
// formatting noise. Relative order is preserved, nothing is deduplicated.
func Collect(raw []Item) []Item {
	items := make([]Item, 0, len(raw))
	for _, it := range raw {
		text := strings.TrimSpace(it.Text)
		if text == "" {
			continue
		}
		items = append(items, Item{
			Tag:  strings.ToLower(it.Tag),
			Text: text,
		})
	}
	return items
}

// JoinText is the canonical joining policy: item texts separated by a blank
// line. The same text is handed to speech synthesis.
func JoinText(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Text)
	}
	return strings.Join(parts, "\n\n")
}
