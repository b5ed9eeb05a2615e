package subtitles

import (
	"fmt"
	"strings"

	"github.com/patrickprogramme/hearlingo/internal/fsutil"
	"github.com/patrickprogramme/hearlingo/internal/yt"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// Plain retourne le transcript au format lisible (un cue par ligne, cues vides ignorés).
func (t Transcript) Plain() string {
	var b strings.Builder
	for _, c := range t.Cues {
		text := CleanText(c.Text)
		if text == "" {
			continue
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String()
}

// Timestamped retourne une ligne "[MM:SS] texte" par cue.
func (t Transcript) Timestamped() string {
	var b strings.Builder
	for _, c := range t.Cues {
		text := CleanText(c.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "[%s] %s\n", model.SecondsFromFloat(c.Start).TimestampMMSS(), text)
	}
	return b.String()
}

// Collapsed retourne le transcript en un seul paragraphe.
func (t Transcript) Collapsed() string {
	parts := make([]string, 0, len(t.Cues))
	for _, c := range t.Cues {
		if text := CleanText(c.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " ")) + "\n"
}

// Markdown retourne une note avec un lien horodaté vers la vidéo pour chaque cue.
func (t Transcript) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	if t.Track.DisplayName != "" {
		fmt.Fprintf(&b, "> %s (%s)\n\n", t.Track.DisplayName, t.Track.LanguageCode)
	}
	for _, c := range t.Cues {
		text := CleanText(c.Text)
		if text == "" {
			continue
		}
		sec := model.SecondsFromFloat(c.Start)
		if t.VideoID != "" {
			fmt.Fprintf(&b, "- [%s](%s) %s\n", sec.TimestampMMSS(), yt.TimestampURL(t.VideoID, sec), text)
		} else {
			fmt.Fprintf(&b, "- %s %s\n", sec.TimestampMMSS(), text)
		}
	}
	return b.String()
}

// Render retourne le contenu à écrire pour format. timestamps ne concerne que txt.
func (t Transcript) Render(format model.Format, timestamps bool) ([]byte, error) {
	switch format {
	case model.FormatTXT:
		if timestamps {
			return []byte(t.Timestamped()), nil
		}
		return []byte(t.Plain()), nil
	case model.FormatMARKDOWN:
		return []byte(t.Markdown()), nil
	default:
		return nil, fmt.Errorf("format inconnu dans Render: %s", format)
	}
}

// Filename retourne "<titre> [<langue>].<ext>", nettoyé pour le système de fichiers.
func (t Transcript) Filename(format model.Format) (string, error) {
	if format != model.FormatTXT && format != model.FormatMARKDOWN {
		return "", fmt.Errorf("format inconnu dans Filename: %q", format)
	}
	base := strings.TrimSpace(t.Title)
	if t.Track.LanguageCode != "" {
		base += " [" + t.Track.LanguageCode + "]"
	}
	return fsutil.SanitizeFilename(base) + format.Extension(), nil
}
