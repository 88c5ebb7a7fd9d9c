package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSeparators = regexp.MustCompile(`[\s-]+`)
)

// Slugify converts free text into a URL-safe handle: lower-cased, with runs
// of whitespace and hyphens collapsed into single hyphens and everything
// else dropped.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\s]+`)

// SanitizeFilename makes a string safe to use as a single path element.
func SanitizeFilename(s string) string {
	s = invalidFilenameChars.ReplaceAllString(strings.TrimSpace(s), "-")
	s = strings.Trim(s, "-.")
	if s == "" {
		s = "unnamed"
	}
	if len(s) > 200 {
		s = strings.Trim(s[:200], "-.")
	}
	return s
}

// TitleCase lower-cases a single token and upper-cases its first letter,
// matching how display names are derived from imported name fields.
func TitleCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
