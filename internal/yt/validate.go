package yt

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// ErrNotWatchURL : l'URL ne désigne pas une vidéo YouTube.
var ErrNotWatchURL = errors.New("not a youtube watch url")

var (
	ytRegex = regexp.MustCompile(`(?i)^https?://(www\.|m\.)?(youtube\.com/watch\?|youtu\.be/)`)
	idRegex = regexp.MustCompile(`^[\w-]{11}$`)
)

func IsYouTubeURL(s string) bool {
	_, err := VideoIDFromURL(s)
	return err == nil
}

// VideoIDFromURL extrait l'identifiant vidéo d'une URL watch (?v=<id>) ou courte (youtu.be/<id>).
func VideoIDFromURL(raw string) (model.VideoID, error) {
	raw = strings.TrimSpace(raw)
	if !ytRegex.MatchString(raw) {
		return "", ErrNotWatchURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", ErrNotWatchURL
	}

	var id string
	if strings.EqualFold(u.Host, "youtu.be") {
		id = strings.TrimPrefix(u.Path, "/")
	} else {
		id = u.Query().Get("v")
	}
	if !idRegex.MatchString(id) {
		return "", ErrNotWatchURL
	}
	return model.VideoID(id), nil
}

// WatchURL construit l'URL de la page watch pour id. base vide -> DefaultBaseURL.
func WatchURL(base string, id model.VideoID) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/watch?v=" + url.QueryEscape(string(id))
}

// TimestampURL retourne un lien vers la vidéo positionné à t secondes.
func TimestampURL(id model.VideoID, t model.Seconds) string {
	return fmt.Sprintf("%s&t=%ds", WatchURL("", id), int64(t))
}
