package trackcache

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// DefaultLanguage est la langue préférée quand aucune n'est configurée.
const DefaultLanguage = "en"

// DefaultTrack choisit la piste dont la langue correspond à lang, sinon la première.
// Retourne false si tracks est vide.
func DefaultTrack(tracks []model.CaptionTrack, lang string) (model.CaptionTrack, bool) {
	if len(tracks) == 0 {
		return model.CaptionTrack{}, false
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	want := CanonicalLanguage(lang)
	for _, t := range tracks {
		if CanonicalLanguage(t.LanguageCode) == want {
			return t, true
		}
	}
	return tracks[0], true
}

// FindTrack cherche une piste par code langue (forme canonique) ou nom affiché.
func FindTrack(tracks []model.CaptionTrack, nameOrCode string) (model.CaptionTrack, bool) {
	q := strings.TrimSpace(nameOrCode)
	if q == "" {
		return model.CaptionTrack{}, false
	}
	want := CanonicalLanguage(q)
	for _, t := range tracks {
		if CanonicalLanguage(t.LanguageCode) == want {
			return t, true
		}
	}
	for _, t := range tracks {
		if strings.EqualFold(t.DisplayName, q) {
			return t, true
		}
	}
	return model.CaptionTrack{}, false
}

// CanonicalLanguage normalise un code BCP 47 ("en_us" -> "en-US").
// Un code non reconnu est retourné en minuscules.
func CanonicalLanguage(code string) string {
	code = strings.TrimSpace(code)
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return strings.ToLower(code)
	}
	return tag.String()
}
