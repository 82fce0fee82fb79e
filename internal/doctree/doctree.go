// Package doctree nests a flat heading outline into a section tree.
package doctree

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docoutline/internal/outline"
)

// DocTree is the root of a nested outline.
type DocTree struct {
	Title    string     `json:"title"`
	Children []*DocNode `json:"children"`
}

// DocNode is a heading and the headings nested under it.
type DocNode struct {
	Level    string     `json:"level"`
	Title    string     `json:"title"`
	Page     int        `json:"page"`
	Children []*DocNode `json:"children,omitempty"`
}

// FromOutline nests entries by level: each heading becomes a child of the
// nearest preceding heading with a smaller level number. Unparseable
// levels are treated as H1.
func FromOutline(o outline.Outline) *DocTree {
	tree := &DocTree{Title: o.Title, Children: []*DocNode{}}

	type stackEntry struct {
		node  *DocNode
		level int
	}
	var stack []stackEntry

	for _, e := range o.Entries {
		level := levelNumber(e.Level)
		node := &DocNode{Level: e.Level, Title: e.Text, Page: e.Page}

		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			tree.Children = append(tree.Children, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, stackEntry{node: node, level: level})
	}
	return tree
}

func levelNumber(label string) int {
	var n int
	if _, err := fmt.Sscanf(label, "H%d", &n); err != nil || n < 1 {
		return 1
	}
	return n
}

// Markdown renders the tree as an indented table of contents.
func (t *DocTree) Markdown() string {
	var b strings.Builder
	if t.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", t.Title)
	}
	var walk func(nodes []*DocNode, depth int)
	walk = func(nodes []*DocNode, depth int) {
		for _, n := range nodes {
			fmt.Fprintf(&b, "%s- %s (page %d)\n", strings.Repeat("  ", depth), n.Title, n.Page)
			walk(n.Children, depth+1)
		}
	}
	walk(t.Children, 0)
	return b.String()
}

// Count returns the number of headings in the tree.
func (t *DocTree) Count() int {
	var count func(nodes []*DocNode) int
	count = func(nodes []*DocNode) int {
		n := len(nodes)
		for _, c := range nodes {
			n += count(c.Children)
		}
		return n
	}
	return count(t.Children)
}
