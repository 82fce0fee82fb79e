package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLExtractor_BlocksAndHeadings(t *testing.T) {
	input := `<html><head><title>Ignored</title><style>p{}</style></head>
<body>
  <h1>Main   Title</h1>
  <p>Para with <b>some</b> bold</p>
  <p><strong>All bold</strong></p>
  <script>var x = 1;</script>
  <div><h3>Nested Heading</h3></div>
  <ul><li>first</li><li>second<br>line</li></ul>
</body></html>`

	segs, err := (&HTMLExtractor{}).Extract(strings.NewReader(input), "page.html")
	require.NoError(t, err)

	var texts []string
	for _, s := range segs {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"Main Title", "Para with some bold", "All bold", "Nested Heading", "first", "second line"}, texts)

	assert.Equal(t, 24.0, segs[0].FontSize)
	assert.True(t, segs[0].Bold())
	assert.False(t, segs[1].Bold())
	assert.True(t, segs[2].Bold())
	assert.Equal(t, 16.0, segs[3].FontSize)
}

func TestHTMLExtractor_NoBody(t *testing.T) {
	segs, err := (&HTMLExtractor{}).Extract(strings.NewReader(""), "empty.html")
	require.NoError(t, err)
	assert.Empty(t, segs)
}
