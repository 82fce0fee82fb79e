// Package outline infers a document's title and heading outline from
// positioned text runs.
package outline

import (
	"errors"
	"fmt"
	"math"
)

// FlagBold is the style bit adapters set for bold runs.
const FlagBold = 1 << 1

var (
	ErrInvalidFontSize = errors.New("font size must be positive")
	ErrInvalidPage     = errors.New("page index must be non-negative")
	ErrInvalidBBox     = errors.New("bounding box must have non-negative extent")
)

// BBox is an axis-aligned box in top-down page coordinates.
type BBox struct {
	X0     float64 `json:"x0"`
	Y0     float64 `json:"y0"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// X1 is the right edge.
func (b BBox) X1() float64 { return b.X0 + b.Width }

// Y1 is the bottom edge.
func (b BBox) Y1() float64 { return b.Y0 + b.Height }

// Union returns the smallest box covering both.
func (b BBox) Union(o BBox) BBox {
	x0 := math.Min(b.X0, o.X0)
	y0 := math.Min(b.Y0, o.Y0)
	x1 := math.Max(b.X1(), o.X1())
	y1 := math.Max(b.Y1(), o.Y1())
	return BBox{X0: x0, Y0: y0, Width: x1 - x0, Height: y1 - y0}
}

// Segment is one run of uniformly styled text reported by an extractor.
type Segment struct {
	Page       int     `json:"page"`
	Text       string  `json:"text"`
	FontSize   float64 `json:"font_size"`
	Flags      int     `json:"flags"`
	BBox       BBox    `json:"bbox"`
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
}

// NewSegment builds a Segment and checks its invariants.
func NewSegment(page int, text string, fontSize float64, flags int, box BBox, pageWidth, pageHeight float64) (Segment, error) {
	s := Segment{
		Page:       page,
		Text:       text,
		FontSize:   fontSize,
		Flags:      flags,
		BBox:       box,
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
	}
	if err := s.Validate(); err != nil {
		return Segment{}, err
	}
	return s, nil
}

// Validate checks the construction-time invariants of a segment.
func (s Segment) Validate() error {
	if s.Page < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPage, s.Page)
	}
	if !(s.FontSize > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, s.FontSize)
	}
	if s.BBox.Width < 0 || s.BBox.Height < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidBBox, s.BBox)
	}
	return nil
}

// Bold reports whether the bold style bit is set.
func (s Segment) Bold() bool { return s.Flags&FlagBold != 0 }

// Line is one or more segments merged into a single visual text line.
type Line struct {
	Page       int
	Text       string
	FontSize   float64
	Bold       bool
	BBox       BBox
	PageWidth  float64
	PageHeight float64

	// Segments are the members in merge order.
	Segments []Segment
}

// WidthRatio is the line width as a fraction of the page width.
func (l Line) WidthRatio() float64 {
	if l.PageWidth <= 0 {
		return 0
	}
	return l.BBox.Width / l.PageWidth
}

// Title is the detected document title. Parts holds the base line followed
// by any continuation lines merged into it.
type Title struct {
	Base  Line
	Parts []Line
	Text  string
}

// covers reports whether the line is the title or one of its parts.
func (t *Title) covers(l Line) bool {
	if t == nil {
		return false
	}
	if l.Page == t.Base.Page && l.Text == t.Text {
		return true
	}
	for _, p := range t.Parts {
		if l.Page == p.Page && l.Text == p.Text {
			return true
		}
	}
	return false
}
