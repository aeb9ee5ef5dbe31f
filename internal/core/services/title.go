package services

import (
	"strings"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// Title heuristics.
const (
	maxTitleLines = 2
	maxTitleWords = 10

	// titleSizeMargin is how much larger than the body size a title's first span must be.
	titleSizeMargin = 0.5
)

// IsTitle reports whether block is a section title on a page whose body text
// uses dominant, and returns the title text when it is.
//
// A title has one or two lines; its first line is non-empty and has at most ten
// words; and the first span of that line is either larger than the body size by
// more than half a point, or bold where the body is not.
func IsTitle(block domain.Block, dominant domain.DominantStyle) (bool, string) {
	if len(block.Lines) == 0 || len(block.Lines) > maxTitleLines {
		return false, ""
	}

	line := block.Lines[0]
	if len(line.Spans) == 0 {
		return false, ""
	}

	text := titleText(line)
	if text == "" || len(strings.Fields(text)) > maxTitleWords {
		return false, ""
	}

	span := line.Spans[0]
	isLarger := span.Size > dominant.Size+titleSizeMargin
	isBolder := isBold(span.Font) && !isBold(dominant.Font)
	if isLarger || isBolder {
		return true, text
	}
	return false, ""
}

// titleText joins the trimmed span texts of a line with single spaces.
func titleText(line domain.Line) string {
	parts := make([]string, 0, len(line.Spans))
	for _, span := range line.Spans {
		parts = append(parts, strings.TrimSpace(span.Text))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func isBold(font string) bool {
	return strings.Contains(strings.ToLower(font), "bold")
}
