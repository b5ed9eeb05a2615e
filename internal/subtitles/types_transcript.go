package subtitles

import (
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// Transcript regroupe les cues d'une piste pour l'export.
type Transcript struct {
	Title   string             // titre (ou identifiant vidéo à défaut)
	VideoID model.VideoID      // vidéo d'origine, pour les liens horodatés
	Track   model.CaptionTrack // piste d'origine
	Cues    []model.Cue        // cues ordonnés
}

// NewTranscript construit un Transcript à partir de données déjà prêtes.
// - pure function, pas d'I/O ni de parsing.
func NewTranscript(title string, track model.CaptionTrack, index *CueIndex) Transcript {
	if title == "" {
		title = string(track.VideoID)
	}
	return Transcript{
		Title:   title,
		VideoID: track.VideoID,
		Track:   track,
		Cues:    index.Cues(),
	}
}
