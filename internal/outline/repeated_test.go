package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepeatedTexts_SinglePageIsEmpty(t *testing.T) {
	lines := []Line{line(0, "Header", 10, 20), line(0, "Header", 10, 700)}
	assert.Empty(t, RepeatedTexts(lines, 0.4))
	assert.Empty(t, RepeatedTexts(nil, 0.4))
}

func TestRepeatedTexts_Threshold(t *testing.T) {
	// Five pages at 0.4 gives a threshold of two pages.
	lines := []Line{
		line(0, "Running Footer", 8, 760),
		line(1, "Running Footer", 8, 760),
		line(0, "Only Once", 10, 100),
		line(4, "Last page body", 10, 100),
	}
	got := RepeatedTexts(lines, 0.4)
	assert.Contains(t, got, "running footer")
	assert.NotContains(t, got, "only once")
	assert.NotContains(t, got, "last page body")
}

func TestRepeatedTexts_CountsOncePerPage(t *testing.T) {
	lines := []Line{
		line(0, "Note", 10, 100),
		line(0, "Note", 10, 200),
		line(0, "Note", 10, 300),
		line(4, "Body", 10, 100),
	}
	assert.NotContains(t, RepeatedTexts(lines, 0.4), "note")
}

func TestRepeatedTexts_CaseInsensitive(t *testing.T) {
	lines := []Line{
		line(0, "Confidential", 10, 20),
		line(1, "CONFIDENTIAL", 10, 20),
	}
	assert.Equal(t, map[string]struct{}{"confidential": {}}, RepeatedTexts(lines, 0.4))
}
