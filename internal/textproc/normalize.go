package textproc

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// MinReviewLen is the shortest normalized review considered for analysis.
// Anything at or under this length is dropped everywhere, not just from
// snippet selection.
const MinReviewLen = 20

var (
	mdLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag       = regexp.MustCompile(`<[^>]+>`)
	boldPattern   = regexp.MustCompile(`\*\*.*?\*\*`)
)

// RemoveLinks drops URL tokens, keeping the anchor text of markdown links.
func RemoveLinks(input string) string {
	input = mdLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and strips the resulting tags,
// leaving plain prose. Reddit selftext and comment bodies arrive as
// markdown.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := htmlTag.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(plain), " ")
}

// Clean normalizes a raw review: URLs removed, path separators replaced
// with spaces, whitespace collapsed, trimmed. Pure and deterministic.
func Clean(text string) string {
	text = RemoveLinks(text)
	text = strings.ReplaceAll(text, "/", " ")
	text = strings.ReplaceAll(text, "\\", " ")
	return strings.Join(strings.Fields(text), " ")
}

// StripArtifacts removes residual reddit markup (bold spans, zero-width
// space escapes) before sentence segmentation.
func StripArtifacts(text string) string {
	text = boldPattern.ReplaceAllString(text, "")
	return strings.ReplaceAll(text, "x200B", "")
}

// CanonicalKey normalizes a free-form model name for use as a cache key.
// Names arrive from an LLM recommendation list with inconsistent casing
// and spacing; two spellings of the same model must not produce two cache
// entries.
func CanonicalKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}
