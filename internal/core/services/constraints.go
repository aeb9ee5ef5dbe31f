package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// ConstraintFilter applies whole-word, case-insensitive keyword constraints to sections.
type ConstraintFilter struct {
	include []string
	exclude []string
}

// NewConstraintFilter lowercases the keywords of c.
func NewConstraintFilter(c domain.Constraints) *ConstraintFilter {
	return &ConstraintFilter{
		include: lowerAll(c.IncludeKeywords),
		exclude: lowerAll(c.ExcludeKeywords),
	}
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		out = append(out, strings.ToLower(kw))
	}
	return out
}

// isWordRune reports whether r is a word character: any letter, number or underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// atWordBoundary reports whether byte offset i of text sits between a word and a non-word rune.
// Both ends of text count as non-word.
func atWordBoundary(text string, i int) bool {
	var before, after bool
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

// containsWord reports whether kw occurs in text with a word boundary at both of its ends.
func containsWord(text, kw string) bool {
	for from := 0; from <= len(text); {
		i := strings.Index(text[from:], kw)
		if i < 0 {
			return false
		}
		start := from + i
		if atWordBoundary(text, start) && atWordBoundary(text, start+len(kw)) {
			return true
		}
		if start == len(text) {
			return false
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return false
}

// IsCompliant reports whether the section passes the constraints.
// Any exclude match rejects the section. A non-empty include list requires at least one match.
func (f *ConstraintFilter) IsCompliant(section domain.Section) bool {
	text := strings.ToLower(section.Title + " " + section.Content)

	for _, kw := range f.exclude {
		if containsWord(text, kw) {
			return false
		}
	}

	if len(f.include) == 0 {
		return true
	}
	for _, kw := range f.include {
		if containsWord(text, kw) {
			return true
		}
	}
	return false
}

// Filter returns the compliant sections in their original order.
func (f *ConstraintFilter) Filter(sections []domain.Section) []domain.Section {
	kept := make([]domain.Section, 0, len(sections))
	for _, s := range sections {
		if f.IsCompliant(s) {
			kept = append(kept, s)
		}
	}
	return kept
}

// IsCompliant checks one section against c.
func IsCompliant(section domain.Section, c domain.Constraints) bool {
	return NewConstraintFilter(c).IsCompliant(section)
}
