// Package obsidian rend un transcript sous forme de note Markdown pour Obsidian.
package obsidian

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/patrickprogramme/hearlingo/internal/fsutil"
	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/internal/yt"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

var baseTags = []string{"youtube", "transcript"}

// NoteData contient les données "brutes" pour la note.
type NoteData struct {
	URL       string
	Title     string
	VideoID   model.VideoID
	Language  string // code de la piste
	TrackLine string // "English (en)"
	Detected  string // langue détectée dans le texte, vide si inconnue
	Tags      []string
	Cues      []model.Cue
	Filename  string
}

// NewNoteData construit NoteData à partir d'un transcript.
// detected vaut language.Und quand la détection n'a rien donné.
func NewNoteData(tr subtitles.Transcript, detected language.Tag) NoteData {
	lang := tr.Track.LanguageCode

	trackLine := tr.Track.DisplayName
	if trackLine == "" {
		trackLine = languageName(lang)
	}
	if lang != "" {
		trackLine = fmt.Sprintf("%s (%s)", trackLine, lang)
	}

	tags := append([]string(nil), baseTags...)
	if lang != "" {
		tags = append(tags, "lang/"+strings.ToLower(lang))
	}

	var det string
	if detected != language.Und {
		det = detected.String()
	}

	base := fsutil.SanitizeFilename(tr.Title)
	if lang != "" {
		base = fmt.Sprintf("%s [%s]", base, lang)
	}

	return NoteData{
		URL:       yt.WatchURL("", tr.VideoID),
		Title:     fsutil.CapitalizeFirst(tr.Title),
		VideoID:   tr.VideoID,
		Language:  lang,
		TrackLine: trackLine,
		Detected:  det,
		Tags:      tags,
		Cues:      tr.Cues,
		Filename:  base + " note" + model.FormatMARKDOWN.Extension(),
	}
}

// languageName : nom anglais de la langue, ou le code s'il est inconnu.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
