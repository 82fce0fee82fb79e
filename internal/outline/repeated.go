package outline

import "strings"

// RepeatedTexts returns the lower-cased line texts that appear on at least
// minFrac of the document's pages. Each text counts once per page. Documents
// with one page or fewer have no repeated furniture.
func RepeatedTexts(lines []Line, minFrac float64) map[string]struct{} {
	repeated := make(map[string]struct{})

	pages := 0
	for _, l := range lines {
		pages = max(pages, l.Page+1)
	}
	if pages <= 1 {
		return repeated
	}

	seen := make(map[int]map[string]struct{})
	counts := make(map[string]int)
	for _, l := range lines {
		key := strings.ToLower(l.Text)
		onPage, ok := seen[l.Page]
		if !ok {
			onPage = make(map[string]struct{})
			seen[l.Page] = onPage
		}
		if _, dup := onPage[key]; dup {
			continue
		}
		onPage[key] = struct{}{}
		counts[key]++
	}

	threshold := float64(pages) * minFrac
	for key, n := range counts {
		if float64(n) >= threshold {
			repeated[key] = struct{}{}
		}
	}
	return repeated
}
