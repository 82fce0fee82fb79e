package doctree

import (
	"encoding/json"
	"testing"

	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOutline_Nesting(t *testing.T) {
	o := outline.Outline{
		Title: "Handbook",
		Entries: []outline.Entry{
			{Level: "H1", Text: "Intro", Page: 0},
			{Level: "H2", Text: "Scope", Page: 0},
			{Level: "H3", Text: "Details", Page: 1},
			{Level: "H2", Text: "Terms", Page: 1},
			{Level: "H1", Text: "Policies", Page: 2},
			{Level: "H3", Text: "Skipped Level", Page: 2},
		},
	}

	tree := FromOutline(o)
	assert.Equal(t, "Handbook", tree.Title)
	require.Len(t, tree.Children, 2)

	intro := tree.Children[0]
	assert.Equal(t, "Intro", intro.Title)
	require.Len(t, intro.Children, 2)
	assert.Equal(t, "Scope", intro.Children[0].Title)
	require.Len(t, intro.Children[0].Children, 1)
	assert.Equal(t, "Details", intro.Children[0].Children[0].Title)
	assert.Equal(t, "Terms", intro.Children[1].Title)

	policies := tree.Children[1]
	require.Len(t, policies.Children, 1)
	assert.Equal(t, "Skipped Level", policies.Children[0].Title)

	assert.Equal(t, len(o.Entries), tree.Count())
}

func TestFromOutline_LeadingDeepHeadingStaysAtRoot(t *testing.T) {
	tree := FromOutline(outline.Outline{Entries: []outline.Entry{
		{Level: "H3", Text: "Deep", Page: 0},
		{Level: "H1", Text: "Top", Page: 0},
		{Level: "bogus", Text: "Odd", Page: 0},
	}})
	require.Len(t, tree.Children, 3)
	assert.Equal(t, "Deep", tree.Children[0].Title)
	assert.Equal(t, "Top", tree.Children[1].Title)
	assert.Equal(t, "Odd", tree.Children[2].Title)
}

func TestFromOutline_EmptyMarshalsChildrenArray(t *testing.T) {
	data, err := json.Marshal(FromOutline(outline.Outline{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"","children":[]}`, string(data))
}

func TestMarkdown(t *testing.T) {
	tree := FromOutline(outline.Outline{
		Title: "Guide",
		Entries: []outline.Entry{
			{Level: "H1", Text: "Start", Page: 0},
			{Level: "H2", Text: "Install", Page: 1},
		},
	})
	want := "# Guide\n\n- Start (page 0)\n  - Install (page 1)\n"
	assert.Equal(t, want, tree.Markdown())
}
