package domain

import "strings"

// TextSpan is a run of text sharing one font size and family.
type TextSpan struct {
	Text string  `json:"text"`
	Size float64 `json:"size"`
	Font string  `json:"font"`
}

// Line is an ordered sequence of spans.
type Line struct {
	Spans []TextSpan `json:"spans"`
}

// Block is an ordered sequence of lines. It is the granule of section extraction.
type Block struct {
	Lines []Line `json:"lines"`
}

// Text returns every span of every line concatenated with no separators.
func (b Block) Text() string {
	var sb strings.Builder
	for _, line := range b.Lines {
		for _, span := range line.Spans {
			sb.WriteString(span.Text)
		}
	}
	return sb.String()
}

// Page is an ordered sequence of blocks in the reading order of the layout reader.
type Page struct {
	Blocks []Block `json:"blocks"`
}

// Document is the layout of one input file, page by page.
type Document struct {
	// Name is the file name the document was loaded from.
	Name string

	// Pages are in reading order; page numbers are 1-based positions in this slice.
	Pages []Page
}

// DominantStyle is the font size and family covering the most characters on a page.
type DominantStyle struct {
	Size float64
	Font string
}

// DefaultDominantStyle is used for pages without any spans.
var DefaultDominantStyle = DominantStyle{Size: 10, Font: "default"}
