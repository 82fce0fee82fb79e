package outline

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// GroupLines merges segments into visual lines. Segments are ordered by
// (page, y, x) and walked once; a segment joins the open line when it is on
// the same page as the line's last member and within YTolerance vertically
// and FontTolerance in size of it. Closed lines are never revisited, so
// interleaved columns can mis-merge.
func GroupLines(segs []Segment, h Heuristics) []Line {
	if len(segs) == 0 {
		return nil
	}

	sorted := slices.Clone(segs)
	slices.SortStableFunc(sorted, func(a, b Segment) int {
		return cmp.Or(
			cmp.Compare(a.Page, b.Page),
			cmp.Compare(a.BBox.Y0, b.BBox.Y0),
			cmp.Compare(a.BBox.X0, b.BBox.X0),
		)
	})

	var lines []Line
	cur := []Segment{sorted[0]}
	for _, s := range sorted[1:] {
		last := cur[len(cur)-1]
		if s.Page == last.Page &&
			math.Abs(s.BBox.Y0-last.BBox.Y0) <= h.YTolerance &&
			math.Abs(s.FontSize-last.FontSize) <= h.FontTolerance {
			cur = append(cur, s)
			continue
		}
		lines = append(lines, finalizeLine(cur))
		cur = []Segment{s}
	}
	return append(lines, finalizeLine(cur))
}

func finalizeLine(group []Segment) Line {
	first := group[0]
	l := Line{
		Page:       first.Page,
		FontSize:   first.FontSize,
		BBox:       first.BBox,
		PageWidth:  first.PageWidth,
		PageHeight: first.PageHeight,
		Segments:   group,
	}
	texts := make([]string, len(group))
	for i, s := range group {
		texts[i] = s.Text
		l.FontSize = math.Max(l.FontSize, s.FontSize)
		l.Bold = l.Bold || s.Bold()
		l.BBox = l.BBox.Union(s.BBox)
	}
	l.Text = CleanText(strings.Join(texts, " "))
	return l
}
