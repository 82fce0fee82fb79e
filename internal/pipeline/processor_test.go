package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMarkdown = `# Business Plan

Intro text for the plan.

## Market

Body about the market.
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProcessor() *Processor {
	return NewProcessor(outline.DefaultHeuristics(), parser.Options{}, testLogger())
}

type stubExtractor struct {
	segs  []outline.Segment
	err   error
	panic any
}

func (s stubExtractor) Extract(io.Reader, string) ([]outline.Segment, error) {
	if s.panic != nil {
		panic(s.panic)
	}
	return s.segs, s.err
}

func withExtractor(p *Processor, ext parser.Extractor) *Processor {
	p.extractorFor = func(string, parser.Options) (parser.Extractor, error) { return ext, nil }
	return p
}

func TestProcessBytes_Markdown(t *testing.T) {
	p := newTestProcessor()
	res := p.ProcessBytes(context.Background(), []byte(sampleMarkdown), "plan.md")

	require.True(t, res.OK(), "%+v", res.Err)
	assert.Equal(t, "Business Plan", res.Outline.Title)
	assert.Equal(t, []outline.Entry{{Level: "H1", Text: "Market", Page: 0}}, res.Outline.Entries)
	assert.Equal(t, 1, p.Stats().Snapshot().Count)
}

func TestProcessBytes_Unsupported(t *testing.T) {
	p := newTestProcessor()
	res := p.ProcessBytes(context.Background(), []byte("a,b"), "sheet.csv")

	require.NotNil(t, res.Err)
	assert.Nil(t, res.Outline)
	assert.Equal(t, "sheet.csv", res.Err.File)
	assert.Equal(t, 1, p.Stats().Snapshot().Failed)
}

func TestProcessBytes_ExtractorErrorBecomesRecord(t *testing.T) {
	p := withExtractor(newTestProcessor(), stubExtractor{err: errors.New("bad xref table")})
	res := p.ProcessBytes(context.Background(), nil, "broken.pdf")

	require.NotNil(t, res.Err)
	assert.Equal(t, "broken.pdf", res.Err.File)
	assert.Contains(t, res.Err.Error, "bad xref table")
}

func TestProcessBytes_PanicBecomesRecord(t *testing.T) {
	p := withExtractor(newTestProcessor(), stubExtractor{panic: "index out of range"})
	res := p.ProcessBytes(context.Background(), nil, "evil.pdf")

	require.NotNil(t, res.Err)
	assert.Nil(t, res.Outline)
	assert.Equal(t, "evil.pdf", res.Err.File)
	assert.Contains(t, res.Err.Error, "index out of range")
}

func TestProcessBytes_MalformedSegment(t *testing.T) {
	bad := outline.Segment{Page: 0, Text: "x", FontSize: -1, PageWidth: 612, PageHeight: 792}
	p := withExtractor(newTestProcessor(), stubExtractor{segs: []outline.Segment{bad}})
	res := p.ProcessBytes(context.Background(), nil, "odd.pdf")

	require.NotNil(t, res.Err)
	assert.Contains(t, res.Err.Error, "segment 0")
}

func TestProcessBytes_NoSegmentsIsEmptyOutline(t *testing.T) {
	p := withExtractor(newTestProcessor(), stubExtractor{})
	res := p.ProcessBytes(context.Background(), nil, "blank.pdf")

	require.True(t, res.OK())
	assert.Equal(t, "", res.Outline.Title)
	assert.Empty(t, res.Outline.Entries)
}

func TestProcessBytes_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newTestProcessor().ProcessBytes(ctx, []byte(sampleMarkdown), "plan.md")
	require.NotNil(t, res.Err)
	assert.Equal(t, context.Canceled.Error(), res.Err.Error)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleMarkdown), 0o644))

	p := newTestProcessor()
	res := p.ProcessFile(context.Background(), path)
	require.True(t, res.OK())
	assert.Equal(t, "Business Plan", res.Outline.Title)

	missing := filepath.Join(dir, "missing.md")
	res = p.ProcessFile(context.Background(), missing)
	require.NotNil(t, res.Err)
	assert.Equal(t, missing, res.Err.File)
}
