package services

import (
	"regexp"
	"strings"
)

// headingMarker also consumes one following whitespace rune, newline included.
var headingMarker = regexp.MustCompile(`###\s?`)

var markdownReplacer = strings.NewReplacer(
	"**", "",
	"*", "",
	"📈", "",
	"📉", "",
	"🎯", "",
)

// CleanMarkdown removes heading and emphasis markers and the section emoji
// the models like to emit, then trims surrounding whitespace.
func CleanMarkdown(text string) string {
	text = headingMarker.ReplaceAllString(text, "")
	return strings.TrimSpace(markdownReplacer.Replace(text))
}
