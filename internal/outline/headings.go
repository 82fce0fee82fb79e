package outline

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// BodyMedianFont is the median font size over lines with text, or fallback
// when there are none.
func BodyMedianFont(lines []Line, fallback float64) float64 {
	var sizes []float64
	for _, l := range lines {
		if l.Text != "" {
			sizes = append(sizes, l.FontSize)
		}
	}
	if len(sizes) == 0 {
		return fallback
	}
	sort.Float64s(sizes)
	mid := len(sizes) / 2
	if len(sizes)%2 == 1 {
		return sizes[mid]
	}
	return (sizes[mid-1] + sizes[mid]) / 2
}

// SelectCandidates returns the lines that stand out from body text by size
// or case, skipping the title, repeated page furniture and implausible text.
// The second return value is the body median font.
func SelectCandidates(lines []Line, title *Title, h Heuristics) ([]Line, float64) {
	median := BodyMedianFont(lines, h.DefaultBodyFont)
	repeated := RepeatedTexts(lines, h.RepeatMinFraction)

	var cands []Line
	for _, l := range lines {
		if title.covers(l) {
			continue
		}
		if _, ok := repeated[strings.ToLower(l.Text)]; ok {
			continue
		}
		if !IsPlausible(l.Text, h.MaxWords, h.MaxLen) {
			continue
		}
		if utf8.RuneCountInString(l.Text) < h.MinHeadingLen {
			continue
		}
		if l.FontSize >= median*h.HeadingSizeRatio || IsUpper(l.Text) {
			cands = append(cands, l)
		}
	}
	return cands, median
}

// RankFontSizes maps each distinct size to its dense rank, largest first.
func RankFontSizes(sizes []float64) map[float64]int {
	distinct := slices.Clone(sizes)
	slices.SortFunc(distinct, func(a, b float64) int { return cmp.Compare(b, a) })
	distinct = slices.Compact(distinct)

	ranks := make(map[float64]int, len(distinct))
	for i, s := range distinct {
		ranks[s] = i
	}
	return ranks
}

// LevelLabel formats a zero-based rank as "H1", "H2", ...
func LevelLabel(rank int) string {
	return fmt.Sprintf("H%d", rank+1)
}

// AssignLevels labels each candidate by the dense rank of its font size and
// orders the entries by page, then vertical position.
func AssignLevels(cands []Line, title *Title) Outline {
	sizes := make([]float64, len(cands))
	for i, c := range cands {
		sizes[i] = c.FontSize
	}
	ranks := RankFontSizes(sizes)

	ordered := slices.Clone(cands)
	slices.SortStableFunc(ordered, func(a, b Line) int {
		return cmp.Or(cmp.Compare(a.Page, b.Page), cmp.Compare(a.BBox.Y0, b.BBox.Y0))
	})

	o := Outline{Entries: make([]Entry, 0, len(ordered))}
	if title != nil {
		o.Title = title.Text
	}
	for _, c := range ordered {
		level := "H1"
		if r, ok := ranks[c.FontSize]; ok {
			level = LevelLabel(r)
		}
		o.Entries = append(o.Entries, Entry{Level: level, Text: c.Text, Page: c.Page})
	}
	return o
}
