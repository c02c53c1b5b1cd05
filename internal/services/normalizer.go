package services

import (
	"regexp"
	"strings"
)

const (
	// MinJobDescriptionWords is the single threshold shared by the
	// classifier short-circuit, the gate's redundant re-check at analyze
	// time, and the prompt builder's template branch. Keeping one
	// constant stops the three checks from silently drifting apart.
	MinJobDescriptionWords = 40

	// MinResumeChars is the floor below which extraction likely failed
	// (scanned or image-only PDF). Shorter text still flows through the
	// pipeline; it only raises a warning.
	MinResumeChars = 200
)

var (
	horizontalWhitespace = regexp.MustCompile(`[ \t]+`)
	excessNewlines       = regexp.MustCompile(`\n{3,}`)
	zeroWidthChars       = regexp.MustCompile("\u200B|\uFEFF")
)

// Normalize cleans raw extracted resume text: runs of spaces and tabs
// collapse to a single space, three or more consecutive newlines collapse
// to exactly two, zero-width spaces and BOM markers are removed, and the
// result is trimmed. Idempotent; empty input maps to empty output.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// Zero-width characters go first: dropping them later could splice
	// two space runs into one and break idempotence.
	text = zeroWidthChars.ReplaceAllString(text, "")
	text = horizontalWhitespace.ReplaceAllString(text, " ")
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
