// Package sanitize cleans user-provided free text (sales notes, contact
// names, locations) before it is stored or sent to a text provider.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
)

// StripHTML removes HTML tags, including tags hidden behind entities.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = entityReplacer.Replace(result)
	return htmlTagRegex.ReplaceAllString(result, "")
}

// Text strips HTML and control characters and trims the result. Line breaks
// and tabs are kept; CRLF becomes LF.
func Text(s string) string {
	return Printable(StripHTML(s))
}

// Printable drops control characters other than line breaks and tabs and
// trims the result. Angle brackets and other markup are left alone.
func Printable(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// Line is Text for single-line fields: all whitespace runs collapse to one space.
func Line(s string) string {
	return strings.Join(strings.Fields(Text(s)), " ")
}
