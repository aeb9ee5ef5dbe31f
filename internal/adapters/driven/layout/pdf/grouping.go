package pdf

import (
	"math"
	"unicode/utf8"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// glyph is one positioned text run as emitted by the content stream.
type glyph struct {
	Text string
	Font string
	Size float64
	X    float64
	Y    float64
	W    float64
}

// GroupConfig holds the thresholds for grouping glyphs into lines and blocks.
// All values are fractions of the font size.
type GroupConfig struct {
	// LineTolerance is the baseline distance within which glyphs share a line (default: 0.5)
	LineTolerance float64

	// SpaceGap is the horizontal gap above which a space is inserted (default: 0.15)
	SpaceGap float64

	// BlockGap is the vertical gap between lines above which a new block starts (default: 1.5)
	BlockGap float64

	// SizeChange is the absolute size difference in points between consecutive
	// lines above which a new block starts (default: 0.5)
	SizeChange float64
}

// DefaultGroupConfig returns sensible default configuration.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		LineTolerance: 0.5,
		SpaceGap:      0.15,
		BlockGap:      1.5,
		SizeChange:    0.5,
	}
}

// lineState is a line under construction.
type lineState struct {
	spans []domain.TextSpan
	y     float64
	size  float64
	endX  float64
}

// dominantSize returns the size of the span with the most characters.
func (l *lineState) dominantSize() float64 {
	best, weight := 0.0, -1
	for _, s := range l.spans {
		if n := utf8.RuneCountInString(s.Text); n > weight {
			best, weight = s.Size, n
		}
	}
	return best
}

// groupGlyphs folds glyphs in content-stream order into a page of blocks.
// Stream order is kept; glyphs are never re-sorted.
func groupGlyphs(glyphs []glyph, cfg GroupConfig) domain.Page {
	page := domain.Page{Blocks: []domain.Block{}}

	var (
		block    *domain.Block
		line     *lineState
		prevLine *lineState
	)

	flushLine := func() {
		if line == nil || len(line.spans) == 0 {
			line = nil
			return
		}
		if block != nil && prevLine != nil && startsBlock(prevLine, line, cfg) {
			page.Blocks = append(page.Blocks, *block)
			block = nil
		}
		if block == nil {
			block = &domain.Block{}
		}
		block.Lines = append(block.Lines, domain.Line{Spans: line.spans})
		prevLine = line
		line = nil
	}

	for _, g := range glyphs {
		if g.Text == "" {
			continue
		}

		if line != nil && math.Abs(g.Y-line.y) > cfg.LineTolerance*math.Max(g.Size, line.size) {
			flushLine()
		}
		if line == nil {
			line = &lineState{y: g.Y, size: g.Size, endX: g.X}
		}

		text := g.Text
		if gap := g.X - line.endX; len(line.spans) > 0 && gap > cfg.SpaceGap*g.Size && !endsWithSpace(line) && text[0] != ' ' {
			text = " " + text
		}

		last := len(line.spans) - 1
		if last >= 0 && line.spans[last].Font == g.Font && line.spans[last].Size == g.Size {
			line.spans[last].Text += text
		} else {
			line.spans = append(line.spans, domain.TextSpan{Text: text, Size: g.Size, Font: g.Font})
		}
		line.endX = g.X + g.W
	}

	flushLine()
	if block != nil {
		page.Blocks = append(page.Blocks, *block)
	}
	return page
}

// startsBlock reports whether next is separated from prev by a paragraph gap or a size change.
func startsBlock(prev, next *lineState, cfg GroupConfig) bool {
	prevSize := prev.dominantSize()
	if math.Abs(next.dominantSize()-prevSize) > cfg.SizeChange {
		return true
	}
	return math.Abs(prev.y-next.y) > cfg.BlockGap*prevSize
}

func endsWithSpace(l *lineState) bool {
	if len(l.spans) == 0 {
		return false
	}
	t := l.spans[len(l.spans)-1].Text
	return t != "" && t[len(t)-1] == ' '
}
