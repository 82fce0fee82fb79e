package parser

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Fallback page size when a page has no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// PDFExtractor handles PDF files. It reads glyphs with the Go library first,
// then falls back to pdftotext -bbox-layout if enabled and available.
type PDFExtractor struct {
	FallbackPdftotext bool
}

func (p *PDFExtractor) Extract(r io.Reader, filename string) ([]outline.Segment, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docoutline-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	segs, err := extractPDFSegments(tmpPath)
	if err != nil && p.FallbackPdftotext {
		segs, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf segments: %w", err)
	}
	return segs, nil
}

func extractPDFSegments(path string) (segs []outline.Segment, err error) {
	// The library panics on some malformed streams.
	defer func() {
		if r := recover(); r != nil {
			segs, err = nil, fmt.Errorf("read pdf: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		w, h := pageSize(mediaBox(page.V))
		segs = append(segs, mergeGlyphs(page.Content().Text, i-1, w, h)...)
	}
	return segs, nil
}

// maxPageTreeDepth bounds the Parent walk on malformed page trees.
const maxPageTreeDepth = 32

// mediaBox returns the page's MediaBox coordinates, inherited from the
// nearest ancestor in the page tree when the page itself has none.
func mediaBox(v pdflib.Value) []float64 {
	for depth := 0; !v.IsNull() && depth < maxPageTreeDepth; depth++ {
		if box := v.Key("MediaBox"); box.Len() == 4 {
			out := make([]float64, 4)
			for i := range out {
				out[i] = box.Index(i).Float64()
			}
			return out
		}
		v = v.Key("Parent")
	}
	return nil
}

func pageSize(box []float64) (float64, float64) {
	if len(box) != 4 {
		return defaultPageWidth, defaultPageHeight
	}
	w := math.Abs(box[2] - box[0])
	h := math.Abs(box[3] - box[1])
	if w == 0 || h == 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return w, h
}

// glyphRun accumulates consecutive glyphs drawn with the same font on the
// same baseline.
type glyphRun struct {
	font string
	size float64
	x, y float64
	end  float64
	text strings.Builder
}

// mergeGlyphs joins per-character records into runs and converts them to
// top-down segments. A glyph continues the open run when it shares font,
// size and baseline and starts no further than one em past the run's end.
// Visible gaps wider than a fraction of the size become spaces.
func mergeGlyphs(glyphs []pdflib.Text, page int, pageW, pageH float64) []outline.Segment {
	var segs []outline.Segment
	var cur *glyphRun

	flush := func() {
		if cur == nil {
			return
		}
		text := strings.TrimSpace(norm.NFKC.String(cur.text.String()))
		if text != "" {
			flags := 0
			if isBoldFont(cur.font) {
				flags |= outline.FlagBold
			}
			box := outline.BBox{
				X0:     cur.x,
				Y0:     pageH - cur.y - cur.size,
				Width:  cur.end - cur.x,
				Height: cur.size,
			}
			// Zero-size runs (invisible text) fail validation and are dropped.
			if seg, err := outline.NewSegment(page, text, cur.size, flags, box, pageW, pageH); err == nil {
				segs = append(segs, seg)
			}
		}
		cur = nil
	}

	for _, g := range glyphs {
		size := math.Abs(g.FontSize)
		if cur != nil {
			gap := g.X - cur.end
			if g.Font == cur.font && size == cur.size && math.Abs(g.Y-cur.y) < 0.5 &&
				gap > -size*0.5 && gap <= size {
				if gap > size*0.15 && g.S != " " && !strings.HasSuffix(cur.text.String(), " ") {
					cur.text.WriteByte(' ')
				}
				cur.text.WriteString(g.S)
				cur.end = math.Max(cur.end, g.X+g.W)
				continue
			}
			flush()
		}
		cur = &glyphRun{font: g.Font, size: size, x: g.X, y: g.Y, end: g.X + g.W}
		cur.text.WriteString(g.S)
	}
	flush()
	return segs
}

func isBoldFont(name string) bool {
	name = strings.ToLower(name)
	for _, marker := range []string{"bold", "black", "heavy", "semibold", "demi"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

func extractPdftotext(path string) ([]outline.Segment, error) {
	cmd := exec.Command("pdftotext", "-bbox-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	return parseBBoxLayout(bytes.NewReader(out))
}

// parseBBoxLayout reads pdftotext -bbox-layout XHTML. Each <line> becomes
// one segment whose size is the line box height; no style is available.
func parseBBoxLayout(r io.Reader) ([]outline.Segment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse bbox layout: %w", err)
	}

	var segs []outline.Segment
	page := -1
	pageW, pageH := defaultPageWidth, defaultPageHeight

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "page":
				page++
				pageW = attrFloat(n, "width", defaultPageWidth)
				pageH = attrFloat(n, "height", defaultPageHeight)
			case "line":
				var words []string
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && c.Data == "word" {
						words = append(words, textContent(c))
					}
				}
				text := norm.NFKC.String(strings.Join(words, " "))
				x0, y0 := attrFloat(n, "xmin", 0), attrFloat(n, "ymin", 0)
				x1, y1 := attrFloat(n, "xmax", 0), attrFloat(n, "ymax", 0)
				if strings.TrimSpace(text) != "" {
					box := outline.BBox{X0: x0, Y0: y0, Width: x1 - x0, Height: y1 - y0}
					if seg, err := outline.NewSegment(max(page, 0), text, y1-y0, 0, box, pageW, pageH); err == nil {
						segs = append(segs, seg)
					}
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return segs, nil
}

func attrFloat(n *html.Node, key string, fallback float64) float64 {
	for _, a := range n.Attr {
		if a.Key == key {
			if v, err := strconv.ParseFloat(a.Val, 64); err == nil {
				return v
			}
		}
	}
	return fallback
}
