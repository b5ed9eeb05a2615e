package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/patrickprogramme/hearlingo/internal/fetch"
	"github.com/patrickprogramme/hearlingo/internal/trackcache"
	"github.com/patrickprogramme/hearlingo/internal/yt"
)

var (
	ErrInvalidURL      = errors.New("url invalide")
	ErrNoVideo         = errors.New("aucune vidéo affichée")
	ErrUnknownTrack    = errors.New("piste introuvable")
	ErrNoTrackSelected = errors.New("aucune piste sélectionnée")
)

// Describe traduit une erreur du moteur en message lisible pour l'utilisateur.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var fe *fetch.FetchError
	var pe *yt.ParseError
	switch {
	case errors.Is(err, trackcache.ErrNoCaptions):
		return "Aucun sous-titre disponible pour cette vidéo."
	case errors.Is(err, trackcache.ErrStaleIdentity):
		return "La vidéo a changé pendant le chargement."
	case errors.Is(err, ErrInvalidURL):
		return "Ce n'est pas une URL de vidéo YouTube."
	case errors.Is(err, ErrNoVideo):
		return "Aucune vidéo n'est ouverte."
	case errors.Is(err, ErrUnknownTrack):
		return "Cette langue n'est pas disponible pour la vidéo."
	case errors.Is(err, ErrNoTrackSelected):
		return "Aucune piste de sous-titres n'est sélectionnée."
	case errors.Is(err, fetch.ErrTooLarge):
		return "La réponse de YouTube est trop volumineuse."
	case errors.As(err, &fe):
		if fe.StatusCode != 0 {
			return fmt.Sprintf("YouTube a répondu %s.", fe.Status)
		}
		return "YouTube est injoignable."
	case errors.As(err, &pe):
		if pe.Stage == yt.StageTrackList {
			return "Impossible de lire la liste des sous-titres de la page."
		}
		return "Le document de sous-titres est illisible."
	case errors.Is(err, context.DeadlineExceeded):
		return "Délai dépassé."
	case errors.Is(err, context.Canceled):
		return "Opération annulée."
	default:
		return err.Error()
	}
}
