package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// TextExtractor handles plain text files. Every line is set at body size;
// a form feed starts a new page.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) ([]outline.Segment, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	flow := newFlowLayout()
	for scanner.Scan() {
		pages := strings.Split(scanner.Text(), "\f")
		for i, line := range pages {
			if i > 0 {
				flow.pageBreak()
			}
			line = strings.TrimSpace(line)
			if line == "" {
				flow.gap()
				continue
			}
			flow.add(line, flowBodySize, false)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return flow.segments(), nil
}
