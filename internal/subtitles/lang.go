package subtitles

import (
	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// DetectLanguage devine la langue majoritaire du texte des cues.
// Retourne language.Und si aucun cue n'a de texte exploitable.
func DetectLanguage(cues []model.Cue) language.Tag {
	counts := make(map[string]int)
	for _, c := range cues {
		text := CleanText(c.Text)
		if text == "" {
			continue
		}
		code := whatlanggo.DetectLang(text).Iso6391()
		if code == "" {
			continue
		}
		counts[code]++
	}

	var top string
	var topCount int
	for code, n := range counts {
		// départage déterministe en cas d'égalité
		if n > topCount || (n == topCount && code < top) {
			top, topCount = code, n
		}
	}
	if top == "" {
		return language.Und
	}
	return language.Make(top)
}
