package blog

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxSlugLength is the column width of posts.slug
const MaxSlugLength = 250

var lower = cases.Lower(language.Und)

// Slugify derives a slug from a title: lowercased letters and digits, with runs
// of spaces, hyphens and underscores collapsed into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range lower.String(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingDash = true
		}
	}
	s := b.String()
	if utf8.RuneCountInString(s) > MaxSlugLength {
		s = strings.TrimRight(string([]rune(s)[:MaxSlugLength]), "-")
	}
	return s
}

// ValidSlug reports whether s consists only of letters, digits, hyphens and
// underscores and fits the column
func ValidSlug(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > MaxSlugLength {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
