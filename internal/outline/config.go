package outline

import (
	"fmt"
	"math"
	"strings"
)

// Heuristics holds every tolerance, threshold and vocabulary the inference
// pipeline uses. Values are passed by copy into each stage.
type Heuristics struct {
	// Line grouping.
	YTolerance    float64 `toml:"y_tolerance"`
	FontTolerance float64 `toml:"font_tolerance"`

	// Text plausibility gate.
	MaxWords int `toml:"max_words"`
	MaxLen   int `toml:"max_len"`

	// Running header/footer detection.
	RepeatMinFraction float64 `toml:"repeat_min_fraction"`

	// Title detection.
	TitleMaxPage           int      `toml:"title_max_page"`
	TitleMinWidthRatio     float64  `toml:"title_min_width_ratio"`
	TitleContinuationRatio float64  `toml:"title_continuation_ratio"`
	TitleHintWords         []string `toml:"title_hint_words"`

	// Heading candidates.
	HeadingSizeRatio float64 `toml:"heading_size_ratio"`
	MinHeadingLen    int     `toml:"min_heading_len"`
	DefaultBodyFont  float64 `toml:"default_body_font"`
}

// DefaultHeuristics returns the tuned defaults.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		YTolerance:    3.0,
		FontTolerance: 1.0,

		MaxWords: 40,
		MaxLen:   200,

		RepeatMinFraction: 0.4,

		TitleMaxPage:           1,
		TitleMinWidthRatio:     0.25,
		TitleContinuationRatio: 0.9,
		TitleHintWords: []string{
			"application", "form", "grant", "ltc", "overview", "foundation", "extension",
			"proposal", "rfp", "business", "plan", "library", "pathways", "parsippany", "troy", "hills",
		},

		HeadingSizeRatio: 1.25,
		MinHeadingLen:    3,
		DefaultBodyFont:  12.0,
	}
}

// Validate reports the first out-of-range setting.
func (h Heuristics) Validate() error {
	for name, v := range map[string]float64{
		"y_tolerance":              h.YTolerance,
		"font_tolerance":           h.FontTolerance,
		"repeat_min_fraction":      h.RepeatMinFraction,
		"title_min_width_ratio":    h.TitleMinWidthRatio,
		"title_continuation_ratio": h.TitleContinuationRatio,
		"heading_size_ratio":       h.HeadingSizeRatio,
		"default_body_font":        h.DefaultBodyFont,
	} {
		if math.IsNaN(v) {
			return fmt.Errorf("%s must be a number, got NaN", name)
		}
	}

	switch {
	case h.YTolerance < 0:
		return fmt.Errorf("y_tolerance must be >= 0, got %v", h.YTolerance)
	case h.FontTolerance < 0:
		return fmt.Errorf("font_tolerance must be >= 0, got %v", h.FontTolerance)
	case h.MaxWords < 1:
		return fmt.Errorf("max_words must be >= 1, got %d", h.MaxWords)
	case h.MaxLen < 1:
		return fmt.Errorf("max_len must be >= 1, got %d", h.MaxLen)
	case h.RepeatMinFraction <= 0 || h.RepeatMinFraction > 1:
		return fmt.Errorf("repeat_min_fraction must be in (0, 1], got %v", h.RepeatMinFraction)
	case h.TitleMaxPage < 0:
		return fmt.Errorf("title_max_page must be >= 0, got %d", h.TitleMaxPage)
	case h.TitleMinWidthRatio < 0 || h.TitleMinWidthRatio > 1:
		return fmt.Errorf("title_min_width_ratio must be in [0, 1], got %v", h.TitleMinWidthRatio)
	case h.TitleContinuationRatio <= 0:
		return fmt.Errorf("title_continuation_ratio must be > 0, got %v", h.TitleContinuationRatio)
	case h.HeadingSizeRatio <= 0:
		return fmt.Errorf("heading_size_ratio must be > 0, got %v", h.HeadingSizeRatio)
	case h.MinHeadingLen < 0:
		return fmt.Errorf("min_heading_len must be >= 0, got %d", h.MinHeadingLen)
	case h.DefaultBodyFont <= 0:
		return fmt.Errorf("default_body_font must be > 0, got %v", h.DefaultBodyFont)
	}
	return nil
}

func (h Heuristics) hintSet() map[string]struct{} {
	set := make(map[string]struct{}, len(h.TitleHintWords))
	for _, w := range h.TitleHintWords {
		set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return set
}
