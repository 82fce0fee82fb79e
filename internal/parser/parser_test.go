package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		name string
		want Extractor
	}{
		{"report.PDF", &PDFExtractor{FallbackPdftotext: true}},
		{"notes.txt", &TextExtractor{}},
		{"README.md", &MarkdownExtractor{}},
		{"page.htm", &HTMLExtractor{}},
		{"memo.docx", &DOCXExtractor{}},
	}
	for _, tt := range tests {
		got, err := ForFile(tt.name, Options{FallbackPdftotext: true})
		require.NoError(t, err, tt.name)
		assert.IsType(t, tt.want, got, tt.name)
	}

	_, err := ForFile("sheet.csv", Options{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestIsSupportedExtension(t *testing.T) {
	assert.True(t, IsSupportedExtension("a/b/Report.Pdf"))
	assert.True(t, IsSupportedExtension("x.markdown"))
	assert.False(t, IsSupportedExtension("image.png"))
	assert.False(t, IsSupportedExtension("noext"))
}

func TestFlowLayout_BreaksPages(t *testing.T) {
	flow := newFlowLayout()
	for i := 0; i < 60; i++ {
		flow.add("line of body text", flowBodySize, false)
	}
	segs := flow.segments()
	require.Len(t, segs, 60)
	assert.Equal(t, 0, segs[0].Page)
	assert.Greater(t, segs[59].Page, 0)
	for _, s := range segs {
		assert.NoError(t, s.Validate())
		assert.LessOrEqual(t, s.BBox.Y1(), flowPageHeight-flowMargin)
	}
}

func TestFlowLayout_SkipsEmptyAndCapsWidth(t *testing.T) {
	flow := newFlowLayout()
	flow.add("", flowBodySize, false)
	flow.add(strings.Repeat("x", 500), flowBodySize, true)
	segs := flow.segments()
	require.Len(t, segs, 1)
	assert.Equal(t, flowPageWidth-2*flowMargin, segs[0].BBox.Width)
	assert.True(t, segs[0].Bold())
}
