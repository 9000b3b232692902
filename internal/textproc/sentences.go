package textproc

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// SplitSentences segments text into sentences. Falls back to terminal
// punctuation splitting when the segmenter fails, so callers never lose a
// pool over one malformed review.
func SplitSentences(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return splitOnTerminals(text)
	}

	var out []string
	for _, s := range doc.Sentences() {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splitOnTerminals(text string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// HasNoun reports whether any token in the phrase carries a noun POS tag.
// Tagging failure fails open: a phrase is never rejected because the
// tagger could not process it.
func HasNoun(phrase string) bool {
	doc, err := prose.NewDocument(phrase,
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return true
	}

	for _, tok := range doc.Tokens() {
		if strings.HasPrefix(tok.Tag, "NN") {
			return true
		}
	}
	return false
}
