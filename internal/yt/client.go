package yt

import (
	"context"
	"fmt"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// DefaultBaseURL est l'origine des pages watch.
const DefaultBaseURL = "https://www.youtube.com"

// Interface est l'abstraction utilisée par le cache et l'application. Elle facilite le test
// en autorisant une implémentation factice dans les tests.
type Interface interface {
	FetchTrackList(ctx context.Context, id model.VideoID) ([]model.CaptionTrack, error)
	FetchCues(ctx context.Context, track model.CaptionTrack) ([]model.Cue, error)
}

// Getter est le transport minimal : une URL, des octets en retour.
// *fetch.Client l'implémente.
type Getter interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// Client récupère la page watch et les documents de sous-titres via un Getter.
type Client struct {
	getter  Getter
	baseURL string
}

func NewClient(getter Getter, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{getter: getter, baseURL: baseURL}
}

// FetchTrackList télécharge la page watch de id et en extrait les pistes.
func (c *Client) FetchTrackList(ctx context.Context, id model.VideoID) ([]model.CaptionTrack, error) {
	data, err := c.getter.Get(ctx, WatchURL(c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("fetch track list %s: %w", id, err)
	}
	tracks, err := ParseTrackList(string(data))
	if err != nil {
		return nil, err
	}
	for i := range tracks {
		tracks[i].VideoID = id
	}
	return tracks, nil
}

// FetchCues télécharge le document de la piste (SourceURL tel quel) et le parse.
func (c *Client) FetchCues(ctx context.Context, track model.CaptionTrack) ([]model.Cue, error) {
	data, err := c.getter.Get(ctx, track.SourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetch cues %s: %w", track.LanguageCode, err)
	}
	return ParseCueList(string(data))
}
