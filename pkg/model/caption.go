package model

import "fmt"

// VideoID identifie la vidéo affichée. Clé de cache et de fetch uniquement.
type VideoID string

func (v VideoID) String() string {
	return string(v)
}

// CaptionTrack décrit une piste de sous-titres disponible pour une vidéo.
type CaptionTrack struct {
	SourceURL       string  `json:"source_url"`
	TrackID         string  `json:"track_id"`
	LanguageCode    string  `json:"language_code"`
	DisplayName     string  `json:"display_name"`
	IsAutoGenerated bool    `json:"is_auto_generated"`
	VideoID         VideoID `json:"video_id,omitempty"`
}

func (t CaptionTrack) String() string {
	return fmt.Sprintf("CaptionTrack(lang=%s, name=%q, id=%s)", t.LanguageCode, t.DisplayName, t.TrackID)
}

// Cue est un segment de texte minuté, en secondes.
// Text peut contenir un balisage simple et peut être vide.
type Cue struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// End retourne la fin (exclue) de l'intervalle du cue.
func (c Cue) End() float64 {
	return c.Start + c.Duration
}

// Contains indique si t est dans [Start, Start+Duration).
// Un cue de durée nulle ne contient aucun instant.
func (c Cue) Contains(t float64) bool {
	return t >= c.Start && t < c.End()
}
