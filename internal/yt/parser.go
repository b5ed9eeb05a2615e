package yt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

const (
	leadingMarker  = `captions":`
	trailingMarker = `,"videoDetails`
	autoPrefix     = "a."
	asrKind        = "asr"
)

// ParseTrackList extrait les pistes de sous-titres de la page watch brute.
// Le fragment JSON est pris entre la première occurrence de `captions":`
// et la dernière occurrence de `,"videoDetails`.
// Les pistes générées automatiquement sont filtrées.
func ParseTrackList(raw string) ([]model.CaptionTrack, error) {
	start := strings.Index(raw, leadingMarker)
	end := strings.LastIndex(raw, trailingMarker)
	if start < 0 || end < 0 {
		return nil, &ParseError{Stage: StageTrackList, Cause: ErrMarkerNotFound}
	}
	start += len(leadingMarker)
	if end < start {
		return nil, &ParseError{Stage: StageTrackList, Cause: fmt.Errorf("%w: trailing marker before leading marker", ErrMarkerNotFound)}
	}

	var frag captionsFragment
	if err := json.Unmarshal([]byte(raw[start:end]), &frag); err != nil {
		return nil, &ParseError{Stage: StageTrackList, Cause: fmt.Errorf("unmarshal captions: %w", err)}
	}
	if frag.Renderer == nil {
		return []model.CaptionTrack{}, nil
	}

	out := make([]model.CaptionTrack, 0, len(frag.Renderer.CaptionTracks))
	for _, rt := range frag.Renderer.CaptionTracks {
		t := model.CaptionTrack{
			SourceURL:       rt.BaseURL,
			TrackID:         rt.VssID,
			LanguageCode:    rt.LanguageCode,
			DisplayName:     rt.Name.text(),
			IsAutoGenerated: strings.HasPrefix(rt.VssID, autoPrefix) || rt.Kind == asrKind,
		}
		if t.IsAutoGenerated {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (n rawName) text() string {
	if n.SimpleText != "" {
		return n.SimpleText
	}
	var b strings.Builder
	for _, r := range n.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
