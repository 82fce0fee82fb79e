package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/fumiama/go-docx"
)

// Word's default body size when a run carries no explicit w:sz.
const docxDefaultSize = 11.0

// DOCXExtractor handles .docx files. Run sizes come from w:sz (half-points);
// paragraphs styled "Heading N" without an explicit size get the heading
// size for N. Page breaks (w:br w:type="page") start a new page.
type DOCXExtractor struct{}

func (p *DOCXExtractor) Extract(r io.Reader, filename string) ([]outline.Segment, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "docoutline-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	defer tmp.Close()

	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	flow := newFlowLayout()
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		level := docxHeadingLevel(para)
		text, fontSize, bold, pageBreak := docxParagraphRuns(para)
		if fontSize == 0 {
			fontSize = docxDefaultSize
			if level > 0 {
				fontSize = headingSize(level)
			}
		}
		flow.add(collapseSpace(text), fontSize, bold || level > 0)
		if pageBreak {
			flow.pageBreak()
		}
	}
	return flow.segments(), nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if style == "title" {
		return 1
	}
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(style, "heading"))
	if err != nil || n < 1 || n > 6 {
		return 0
	}
	return n
}

// docxParagraphRuns concatenates the paragraph's run text and reports the
// largest explicit run size in points (0 when none is set), whether any run
// is bold, and whether the paragraph ends with a page break.
func docxParagraphRuns(para *docx.Paragraph) (string, float64, bool, bool) {
	var buf strings.Builder
	var size float64
	var bold, pageBreak bool
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		if rp := run.RunProperties; rp != nil {
			if rp.Size != nil {
				if halfPoints, err := strconv.ParseFloat(rp.Size.Val, 64); err == nil {
					size = max(size, halfPoints/2)
				}
			}
			bold = bold || rp.Bold != nil
		}
		for _, rc := range run.Children {
			switch v := rc.(type) {
			case *docx.Text:
				buf.WriteString(v.Text)
			case *docx.Tab:
				buf.WriteByte(' ')
			case *docx.BarterRabbet:
				if v.Type == "page" {
					pageBreak = true
				}
			}
		}
	}
	return buf.String(), size, bold, pageBreak
}
