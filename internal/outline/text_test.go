package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello   world ", "Hello world"},
		{"• First item", "First item"},
		{" -- * ● nested bullets", "nested bullets"},
		{"line one\nline two", "line one line two"},
		{"Pre-amble - keeps inner dashes", "Pre-amble - keeps inner dashes"},
		{"•", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanText(tt.in), "CleanText(%q)", tt.in)
	}
}

func TestIsPlausible(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"digits only", "12345", false},
		{"punctuation only", "--- ...", false},
		{"underscores and digits", "__1__", false},
		{"section number and word", "1.2 Scope", true},
		{"single word", "Introduction", true},
		{"max words", strings.TrimSpace(strings.Repeat("word ", 40)), true},
		{"too many words", strings.TrimSpace(strings.Repeat("word ", 41)), false},
		{"max length", strings.Repeat("a", 200), true},
		{"too long", strings.Repeat("a", 201), false},
		{"length counts runes", strings.Repeat("é", 200), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPlausible(tt.text, 40, 200))
		})
	}
}

func TestIsUpper(t *testing.T) {
	assert.True(t, IsUpper("INTRODUCTION"))
	assert.True(t, IsUpper("1. OVERVIEW & SCOPE"))
	assert.False(t, IsUpper("Overview"))
	assert.False(t, IsUpper("123"))
	assert.False(t, IsUpper(""))
}

func TestHasTitleHint(t *testing.T) {
	hints := DefaultHeuristics().hintSet()
	assert.True(t, HasTitleHint("(Business)", hints))
	assert.True(t, HasTitleHint("Project PLAN:", hints))
	assert.False(t, HasTitleHint("Introduction", hints))
	assert.False(t, HasTitleHint("Planning", hints))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 3, WordCount(" a  b\tc "))
}
