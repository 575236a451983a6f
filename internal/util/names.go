package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// Match sequences of non-alphanumeric characters
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// Match leading/trailing hyphens
	trimHyphens = regexp.MustCompile(`^-+|-+$`)
)

// SlugWords converts an identifier to normalized words.
//   - Converts to lowercase
//   - Normalizes unicode (removes accents)
//   - Treats underscores, spaces and punctuation as separators
func SlugWords(s string) []string {
	s = strings.ToLower(s)
	s = removeAccents(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = trimHyphens.ReplaceAllString(s, "")

	if s == "" {
		return nil
	}

	return strings.Split(s, "-")
}

// DisplayName turns a reference identifier like "oak_planks" into "Oak Planks".
// Returns the input unchanged if it has no alphanumeric words. A Caser is
// stateful, so each call gets its own.
func DisplayName(id string) string {
	words := SlugWords(id)
	if len(words) == 0 {
		return id
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// removeAccents removes diacritical marks from unicode characters.
func removeAccents(s string) string {
	// Decompose unicode characters (NFD normalization)
	result := norm.NFD.String(s)

	var b strings.Builder
	for _, r := range result {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing
			b.WriteRune(r)
		}
	}

	return b.String()
}
