package services

import (
	"math"
	"unicode/utf8"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// styleKey identifies a font style. Sizes are rounded to absorb sub-point jitter.
type styleKey struct {
	size float64
	font string
}

// DominantStyle returns the style covering the most characters on the page.
// Sizes are rounded half-to-even before keying. Among equally weighted styles the
// first one seen in reading order wins. A page without spans yields
// domain.DefaultDominantStyle.
func DominantStyle(page domain.Page) domain.DominantStyle {
	weights := make(map[styleKey]int)
	var order []styleKey

	for _, block := range page.Blocks {
		for _, line := range block.Lines {
			for _, span := range line.Spans {
				key := styleKey{size: math.RoundToEven(span.Size), font: span.Font}
				if _, seen := weights[key]; !seen {
					order = append(order, key)
				}
				weights[key] += utf8.RuneCountInString(span.Text)
			}
		}
	}

	if len(order) == 0 {
		return domain.DefaultDominantStyle
	}

	best := order[0]
	for _, key := range order[1:] {
		if weights[key] > weights[best] {
			best = key
		}
	}
	return domain.DominantStyle{Size: best.size, Font: best.font}
}
