package outline

import "strings"

// DetectTitle picks the most prominent plausible line on the first pages and
// merges the lines that directly follow it on the same page when their font
// is at least TitleContinuationRatio of the base font.
//
// A line is eligible when it passes IsPlausible and either spans at least
// TitleMinWidthRatio of the page or contains a title hint word. The scan
// keeps the first line with the strictly largest font: a later line of equal
// size never replaces it, even when it carries a hint word.
func DetectTitle(lines []Line, h Heuristics) *Title {
	hints := h.hintSet()

	base := -1
	biggest := 0.0
	for i, l := range lines {
		if l.Page > h.TitleMaxPage {
			continue
		}
		if !IsPlausible(l.Text, h.MaxWords, h.MaxLen) {
			continue
		}
		if l.WidthRatio() < h.TitleMinWidthRatio && !HasTitleHint(l.Text, hints) {
			continue
		}
		if l.FontSize > biggest {
			biggest = l.FontSize
			base = i
		}
	}
	if base < 0 {
		return nil
	}

	t := &Title{Base: lines[base], Parts: []Line{lines[base]}}
	minFont := t.Base.FontSize * h.TitleContinuationRatio
	for _, l := range lines[base+1:] {
		if l.Page != t.Base.Page || l.FontSize < minFont {
			break
		}
		t.Parts = append(t.Parts, l)
	}

	texts := make([]string, len(t.Parts))
	for i, p := range t.Parts {
		texts[i] = p.Text
	}
	t.Text = CleanText(strings.Join(texts, " "))
	return t
}
