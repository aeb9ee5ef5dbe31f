package services

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

func TestDominantStyle(t *testing.T) {
	tests := []struct {
		name string
		page domain.Page
		want domain.DominantStyle
	}{
		{
			name: "no blocks falls back to default",
			page: domain.Page{},
			want: domain.DefaultDominantStyle,
		},
		{
			name: "blocks without spans fall back to default",
			page: domain.Page{Blocks: []domain.Block{block(line()), block()}},
			want: domain.DefaultDominantStyle,
		},
		{
			name: "body text outweighs a larger heading",
			page: domain.Page{Blocks: []domain.Block{
				heading("Introduction"),
				body("This paragraph carries most of the characters on the page."),
			}},
			want: domain.DominantStyle{Size: 10, Font: "Helvetica"},
		},
		{
			name: "weight is summed across spans of the same style",
			page: domain.Page{Blocks: []domain.Block{
				block(line(span("aaaa", 12, "Times"), span("bbbbbb", 10, "Arial"))),
				block(line(span("cccc", 12, "Times"))),
			}},
			want: domain.DominantStyle{Size: 12, Font: "Times"},
		},
		{
			name: "sizes are rounded before keying",
			page: domain.Page{Blocks: []domain.Block{
				block(line(span("aaaa", 9.6, "Arial"))),
				block(line(span("bbbb", 10.4, "Arial"))),
				block(line(span("cccccc", 14, "Arial"))),
			}},
			want: domain.DominantStyle{Size: 10, Font: "Arial"},
		},
		{
			name: "half sizes round to even",
			page: domain.Page{Blocks: []domain.Block{
				block(line(span("abc", 10.5, "Arial"))),
			}},
			want: domain.DominantStyle{Size: 10, Font: "Arial"},
		},
		{
			name: "weight counts characters not bytes",
			page: domain.Page{Blocks: []domain.Block{
				block(line(span("ééé", 10, "Arial"))),
				block(line(span("abcd", 12, "Arial"))),
			}},
			want: domain.DominantStyle{Size: 12, Font: "Arial"},
		},
		{
			name: "font family separates styles of equal size",
			page: domain.Page{Blocks: []domain.Block{
				block(line(span("abc", 10, "Arial"))),
				block(line(span("abcdef", 10, "Arial-Bold"))),
			}},
			want: domain.DominantStyle{Size: 10, Font: "Arial-Bold"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DominantStyle(tt.page))
		})
	}
}

func TestDominantStyle_TieResolvesToAMaximum(t *testing.T) {
	page := domain.Page{Blocks: []domain.Block{
		block(line(span("abcd", 10, "Arial"))),
		block(line(span("wxyz", 12, "Times"))),
	}}

	got := DominantStyle(page)

	assert.Contains(t, []domain.DominantStyle{
		{Size: 10, Font: "Arial"},
		{Size: 12, Font: "Times"},
	}, got)
}

func TestDominantStyle_WeightIsMaximal(t *testing.T) {
	page := domain.Page{Blocks: []domain.Block{
		block(line(span("Title", 18, "Bold"), span(" x", 18, "Bold"))),
		block(line(span("some body text here", 10, "Regular"))),
		block(line(span("caption", 8, "Italic")), line(span("more body", 10, "Regular"))),
	}}

	weights := map[domain.DominantStyle]int{}
	for _, b := range page.Blocks {
		for _, l := range b.Lines {
			for _, s := range l.Spans {
				weights[domain.DominantStyle{Size: s.Size, Font: s.Font}] += utf8.RuneCountInString(s.Text)
			}
		}
	}

	got := DominantStyle(page)
	for style, w := range weights {
		assert.GreaterOrEqual(t, weights[got], w, "style %v outweighs dominant %v", style, got)
	}
}
