// Package normaliser cleans up the whitespace of decoded novel text.
// Only ASCII space and tab count as collapsible horizontal whitespace;
// ideographic spaces and other language-specific spacing characters are
// content and pass through untouched.
package normaliser

import (
	"regexp"
	"strings"
)

var (
	// lineEndings converts CRLF and lone CR to LF in one pass.
	lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

	// blankRuns matches three or more consecutive newlines.
	blankRuns = regexp.MustCompile(`\n{3,}`)

	// leadingSpace matches space/tab runs at the start of a line.
	leadingSpace = regexp.MustCompile(`(?m)^[ \t]+`)

	// trailingSpace matches space/tab runs at the end of a line.
	trailingSpace = regexp.MustCompile(`(?m)[ \t]+$`)

	// innerSpace matches space/tab runs inside a line.
	innerSpace = regexp.MustCompile(`[ \t]+`)
)

// Normalise cleans the whitespace of text. Pure and deterministic.
//
// The steps run in a fixed order: unify line endings, squeeze runs of
// blank lines down to a single blank line, strip indentation and
// trailing space per line, collapse interior space/tab runs to one
// space, and finally trim the whole text. All non-whitespace characters
// survive unchanged.
func Normalise(text string) string {
	if text == "" {
		return ""
	}

	text = lineEndings.Replace(text)
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = leadingSpace.ReplaceAllString(text, "")
	text = trailingSpace.ReplaceAllString(text, "")
	text = innerSpace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
