package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownExtractor_HeadingSizes(t *testing.T) {
	input := `# Project Overview

Some paragraph text.

## Goals

- item one
- item two

### Details
`
	segs, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "doc.md")
	require.NoError(t, err)

	var texts []string
	for _, s := range segs {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"Project Overview", "Some paragraph text.", "Goals", "item one", "item two", "Details"}, texts)

	assert.Equal(t, 24.0, segs[0].FontSize)
	assert.True(t, segs[0].Bold())
	assert.Equal(t, flowBodySize, segs[1].FontSize)
	assert.False(t, segs[1].Bold())
	assert.Equal(t, 20.0, segs[2].FontSize)
	assert.Equal(t, 16.0, segs[5].FontSize)
}

func TestMarkdownExtractor_SetextHeading(t *testing.T) {
	input := "Title Here\n==========\n\nBody.\n"
	segs, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "setext.md")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "Title Here", segs[0].Text)
	assert.Equal(t, 24.0, segs[0].FontSize)
}

func TestMarkdownExtractor_SoftBreaksSplitLines(t *testing.T) {
	input := "line one\nline two\n"
	segs, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "soft.md")
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, "line one", segs[0].Text)
	assert.Equal(t, "line two", segs[1].Text)
}

func TestMarkdownExtractor_Empty(t *testing.T) {
	segs, err := (&MarkdownExtractor{}).Extract(strings.NewReader(""), "empty.md")
	require.NoError(t, err)
	assert.Empty(t, segs)
}
