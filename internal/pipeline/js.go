package pipeline

import (
	"fmt"

	"readaloud/internal/extract"
)

// resolveLinkJS looks up the first element by class marker and returns the
// href of its first descendant anchor, or "" when either is missing.
// getElementsByClassName is used instead of querySelector because the marker
// contains characters ("/") that would need CSS escaping.
func resolveLinkJS(marker string) string {
	return fmt.Sprintf(`(() => {
		const element = document.getElementsByClassName(%q)[0];
		if (!element) return "";
		const anchor = element.querySelector('a');
		if (!anchor) return "";
		return anchor.href;
	})()`, marker)
}

// existsJS reports whether sel matches anything.
func existsJS(sel string) string {
	return fmt.Sprintf(`document.querySelector(%q) !== null`, sel)
}

// collectItemsJS gathers {tag, text} for every matching descendant of the
// container, in document order, as a JSON string. innerText is the rendered
// text; trimming and empty-dropping happen on the Go side.
func collectItemsJS(containerSel string) string {
	return fmt.Sprintf(`(() => {
		const container = document.querySelector(%q);
		if (!container) return "[]";
		const results = [];
		container.querySelectorAll(%q).forEach(el => {
			results.push({tag: el.tagName, text: el.innerText});
		});
		return JSON.stringify(results);
	})()`, containerSel, extract.TagSelector)
}
