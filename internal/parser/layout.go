package parser

import (
	"unicode/utf8"

	"github.com/dgallion1/docoutline/internal/outline"
)

// Formats without positioned glyphs (text, markdown, HTML, DOCX) are set on
// US Letter pages with one-inch margins so the layout pipeline can read them
// like a PDF.
const (
	flowPageWidth  = 612.0
	flowPageHeight = 792.0
	flowMargin     = 72.0
	flowBodySize   = 12.0

	// Average glyph advance as a fraction of the font size.
	glyphAdvance = 0.5
	leading      = 1.4
)

// headingSize maps a markup heading level to a typographic size.
func headingSize(level int) float64 {
	switch level {
	case 1:
		return 24
	case 2:
		return 20
	case 3:
		return 16
	case 4:
		return 15
	case 5:
		return 13
	default:
		return flowBodySize
	}
}

type flowLayout struct {
	page int
	y    float64
	segs []outline.Segment
}

func newFlowLayout() *flowLayout {
	return &flowLayout{y: flowMargin}
}

// add places one line of text at the current position and advances.
func (f *flowLayout) add(text string, size float64, bold bool) {
	if text == "" {
		return
	}
	if f.y+size > flowPageHeight-flowMargin {
		f.pageBreak()
	}

	maxWidth := flowPageWidth - 2*flowMargin
	width := min(float64(utf8.RuneCountInString(text))*size*glyphAdvance, maxWidth)
	flags := 0
	if bold {
		flags |= outline.FlagBold
	}
	box := outline.BBox{X0: flowMargin, Y0: f.y, Width: width, Height: size}
	if seg, err := outline.NewSegment(f.page, text, size, flags, box, flowPageWidth, flowPageHeight); err == nil {
		f.segs = append(f.segs, seg)
	}
	f.y += size * leading
}

// gap inserts paragraph spacing.
func (f *flowLayout) gap() {
	f.y += flowBodySize * 0.6
}

func (f *flowLayout) pageBreak() {
	f.page++
	f.y = flowMargin
}

func (f *flowLayout) segments() []outline.Segment {
	return f.segs
}
