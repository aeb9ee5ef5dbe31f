package domain

import "strings"

// Section is a titled run of content extracted from a document.
// Section values are comparable with ==.
type Section struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	PageNumber int    `json:"page_number"`
	Document   string `json:"document"`
}

// RefinedText returns the detail view of the section: its normalised content, trimmed.
func (s Section) RefinedText() string {
	return strings.TrimSpace(s.Content)
}

// RankedSection is a Section scored against a persona/task query.
type RankedSection struct {
	Section

	// Score is the cosine similarity between the section and the query.
	Score float64 `json:"score"`

	// ImportanceRank is the 1-based position after sorting by descending score.
	ImportanceRank int `json:"importance_rank"`
}

// NormalizeWhitespace collapses every whitespace run to a single space and trims the result.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
