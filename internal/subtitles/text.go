package subtitles

import (
	"html"
	"regexp"
	"strings"
)

var markupRe = regexp.MustCompile(`<[^>]*>`)

// CleanText rend le texte d'un cue affichable en clair : entités décodées
// (YouTube les double-échappe), balises retirées, espaces normalisés.
func CleanText(s string) string {
	s = html.UnescapeString(html.UnescapeString(s))
	s = markupRe.ReplaceAllString(s, " ")
	return normalizeWhitespace(s)
}

// normalizeWhitespace nettoie les espace : un seul espace entre mots, aucun en début/fin
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(s), " "))
}
