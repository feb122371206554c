// Package textutil cleans free text submitted with profiles and postings.
package textutil

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Opening, closing or self-closing forms of common markup tags.
	markupTagRe = regexp.MustCompile(`(?i)</?(p|div|span|br|hr|ul|ol|li|h[1-6]|b|i|u|em|strong|a|table|tr|td|th|script|style|noscript|iframe)(\s[^>]*)?/?>`)
)

// LooksLikeHTML reports whether text contains markup tags. Angle brackets in
// prose such as "vector<T>" or "<200ms" do not count.
func LooksLikeHTML(text string) bool {
	return markupTagRe.MatchString(text)
}

// PlainText renders text for display on one line: markup is stripped when the
// text is HTML and whitespace is collapsed. Stored text never goes through it.
func PlainText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if !LooksLikeHTML(text) {
		return collapse(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return collapse(text)
	}
	doc.Find("script, style, noscript, iframe").Remove()
	// Keep list items and paragraphs from running together.
	doc.Find("p, li, br, div, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return collapse(doc.Text())
}

// Excerpt shortens text to at most n runes, cutting at the last word boundary
// and appending an ellipsis when something was dropped.
func Excerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	cut := string(runes[:n])
	if i := strings.LastIndexByte(cut, ' '); i > n/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

// CleanSkills trims each skill, drops empties and removes case-insensitive
// duplicates, keeping the first spelling seen.
func CleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
