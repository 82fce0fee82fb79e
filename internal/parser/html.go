package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
	"golang.org/x/net/html"
)

// HTMLExtractor handles HTML files. Heading tags are set at heading sizes and
// block text at body size; <b>/<strong>-only blocks are marked bold.
type HTMLExtractor struct{}

func (p *HTMLExtractor) Extract(r io.Reader, filename string) ([]outline.Segment, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	flow := newFlowLayout()

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				flow.add(collapseSpace(textContent(n)), headingSize(level), true)
				flow.gap()
				return
			}

			switch n.Data {
			case "script", "style", "nav", "head", "template", "noscript":
				return
			case "p", "li", "td", "th", "blockquote", "pre", "dt", "dd", "caption":
				t := collapseSpace(textContent(n))
				flow.add(t, flowBodySize, isAllBold(n))
				flow.gap()
				return
			case "hr":
				flow.gap()
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	// Find <body> or use whole document.
	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return flow.segments(), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		if n.Type == html.ElementNode && n.Data == "br" {
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

// isAllBold reports whether every non-blank text node under n sits inside a
// <b> or <strong> element.
func isAllBold(n *html.Node) bool {
	sawText := false
	allBold := true
	var visit func(*html.Node, bool)
	visit = func(n *html.Node, bold bool) {
		if n.Type == html.ElementNode && (n.Data == "b" || n.Data == "strong") {
			bold = true
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			sawText = true
			allBold = allBold && bold
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c, bold)
		}
	}
	visit(n, false)
	return sawText && allBold
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
