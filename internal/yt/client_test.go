package yt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/hearlingo/internal/fetch"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

func TestClient_FetchTrackListAndCues(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dQw4w9WgXcQ", r.URL.Query().Get("v"))
		assert.Equal(t, "SID=1", r.Header.Get("Cookie"))
		_, _ = w.Write([]byte(watchPage(`{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
			`{"baseUrl":"` + srvURL + `/api/timedtext?lang=fr","vssId":".fr","languageCode":"fr","name":{"simpleText":"French"}}]}}`)))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fr", r.URL.Query().Get("lang"))
		_, _ = w.Write([]byte(`<transcript><text start="0" dur="1.5">Bonjour</text></transcript>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	c := NewClient(fetch.New(fetch.WithCookie("SID=1")), srv.URL)

	tracks, err := c.FetchTrackList(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, model.VideoID("dQw4w9WgXcQ"), tracks[0].VideoID)

	cues, err := c.FetchCues(context.Background(), tracks[0])
	require.NoError(t, err)
	assert.Equal(t, []model.Cue{{Start: 0, Duration: 1.5, Text: "Bonjour"}}, cues)
}

func TestClient_FetchErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(fetch.New(), srv.URL)
	_, err := c.FetchTrackList(context.Background(), "dQw4w9WgXcQ")
	var fe *fetch.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusTooManyRequests, fe.StatusCode)
}
