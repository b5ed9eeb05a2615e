package obsidian

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/internal/yt"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// yamlListBlock retourne une liste YAML en bloc, à placer juste après "tags:"
func yamlListBlock(xs []string) string {
	if len(xs) == 0 {
		return " []"
	}
	var b strings.Builder
	for _, s := range xs {
		b.WriteString("\n  - ")
		b.WriteString(strconv.Quote(s))
	}
	return b.String()
}

// quoteBlockPure : préfixe chaque ligne par "> " pour un blockquote Markdown.
func quoteBlockPure(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	return "> " + strings.ReplaceAll(s, "\n", "\n> ")
}

// wikiTags : "#tag" séparés par des espaces, pour le corps de la note.
func wikiTags(xs []string) string {
	out := make([]string, 0, len(xs))
	for _, t := range xs {
		if t = strings.TrimSpace(strings.TrimPrefix(t, "#")); t != "" {
			out = append(out, "#"+t)
		}
	}
	return strings.Join(out, " ")
}

// formatCuesPure : une ligne Markdown cliquable par cue non vide.
// Sans videoID, on produit des lignes sans lien.
func formatCuesPure(cues []model.Cue, videoID model.VideoID) string {
	var b strings.Builder
	for _, c := range cues {
		text := subtitles.CleanText(c.Text)
		if text == "" {
			continue
		}
		sec := model.SecondsFromFloat(c.Start)
		ts := sec.TimestampMMSS()
		if sec >= 3600 {
			ts = sec.TimestampHHMMSS()
		}
		if videoID == "" {
			fmt.Fprintf(&b, "- %s - %s\n", ts, text)
		} else {
			fmt.Fprintf(&b, "- [%s](%s) - %s\n", ts, yt.TimestampURL(videoID, sec), text)
		}
	}
	return b.String()
}
