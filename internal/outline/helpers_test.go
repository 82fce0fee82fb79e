package outline

const (
	letterW = 612.0
	letterH = 792.0
)

// seg builds a wide (300pt) segment at x=72.
func seg(page int, text string, size, y float64) Segment {
	return segAt(page, text, size, 72, y, 300)
}

func segAt(page int, text string, size, x, y, w float64) Segment {
	return Segment{
		Page:       page,
		Text:       text,
		FontSize:   size,
		BBox:       BBox{X0: x, Y0: y, Width: w, Height: size},
		PageWidth:  letterW,
		PageHeight: letterH,
	}
}

func line(page int, text string, size, y float64) Line {
	return GroupLines([]Segment{seg(page, text, size, y)}, DefaultHeuristics())[0]
}

func entryTexts(o Outline) []string {
	out := make([]string, len(o.Entries))
	for i, e := range o.Entries {
		out[i] = e.Text
	}
	return out
}
