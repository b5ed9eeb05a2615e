package trackcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// fakeSource répond depuis des maps ; une clé présente dans gates bloque jusqu'à fermeture.
type fakeSource struct {
	mu         sync.Mutex
	tracks     map[model.VideoID][]model.CaptionTrack
	cues       map[string][]model.Cue
	errs       map[string]error
	gates      map[string]chan struct{}
	trackCalls map[model.VideoID]int
	cueCalls   map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		tracks:     map[model.VideoID][]model.CaptionTrack{},
		cues:       map[string][]model.Cue{},
		errs:       map[string]error{},
		gates:      map[string]chan struct{}{},
		trackCalls: map[model.VideoID]int{},
		cueCalls:   map[string]int{},
	}
}

func (f *fakeSource) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *fakeSource) wait(key string) {
	f.mu.Lock()
	ch := f.gates[key]
	f.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

func (f *fakeSource) FetchTrackList(ctx context.Context, id model.VideoID) ([]model.CaptionTrack, error) {
	f.mu.Lock()
	f.trackCalls[id]++
	f.mu.Unlock()
	f.wait(string(id))

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[string(id)]; err != nil {
		return nil, err
	}
	out := make([]model.CaptionTrack, len(f.tracks[id]))
	copy(out, f.tracks[id])
	return out, nil
}

func (f *fakeSource) FetchCues(ctx context.Context, track model.CaptionTrack) ([]model.Cue, error) {
	f.mu.Lock()
	f.cueCalls[track.SourceURL]++
	f.mu.Unlock()
	f.wait(track.SourceURL)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[track.SourceURL]; err != nil {
		return nil, err
	}
	return f.cues[track.SourceURL], nil
}

func (f *fakeSource) calls(id model.VideoID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trackCalls[id]
}

func (f *fakeSource) cueCallCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cueCalls[url]
}

func track(id model.VideoID, lang string) model.CaptionTrack {
	return model.CaptionTrack{
		SourceURL:    "https://example.test/" + string(id) + "/" + lang,
		TrackID:      "." + lang,
		LanguageCode: lang,
		DisplayName:  lang,
	}
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestTrackList_DedupsConcurrentRequests(t *testing.T) {
	src := newFakeSource()
	src.tracks["A"] = []model.CaptionTrack{track("A", "en")}
	release := src.gate("A")

	c := New(src)
	h1 := c.TrackList("A")
	h2 := c.TrackList("A")
	assert.Same(t, h1, h2)
	assert.Equal(t, StatePending, h1.State())

	close(release)
	tracks, err := h1.Wait(waitCtx(t))
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, model.VideoID("A"), tracks[0].VideoID)

	c.Drain()
	assert.Equal(t, 1, src.calls("A"))
	assert.Equal(t, StateResolved, c.TrackList("A").State())
	assert.Equal(t, 1, src.calls("A"))
}

func TestTrackList_StaleResponseDiscarded(t *testing.T) {
	src := newFakeSource()
	src.tracks["A"] = []model.CaptionTrack{track("A", "en")}
	src.tracks["B"] = []model.CaptionTrack{track("B", "fr")}
	releaseA := src.gate("A")

	c := New(src)
	hA := c.TrackList("A")
	hB := c.TrackList("B")

	_, err := hA.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrStaleIdentity)

	tracksB, err := hB.Wait(waitCtx(t))
	require.NoError(t, err)

	// la réponse de A arrive après la navigation vers B
	close(releaseA)
	c.Drain()

	id, ok := c.VideoID()
	require.True(t, ok)
	assert.Equal(t, model.VideoID("B"), id)

	again := c.TrackList("B")
	assert.Same(t, hB, again)
	got, err := again.Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, tracksB, got)
	assert.Equal(t, "fr", got[0].LanguageCode)
	assert.Equal(t, 1, src.calls("B"))
}

func TestCues_StaleResponseDiscarded(t *testing.T) {
	src := newFakeSource()
	en := track("A", "en")
	src.tracks["A"] = []model.CaptionTrack{en}
	src.tracks["B"] = []model.CaptionTrack{track("B", "en")}
	src.cues[en.SourceURL] = []model.Cue{{Start: 1, Duration: 1, Text: "a"}}
	release := src.gate(en.SourceURL)

	c := New(src)
	tracks, err := c.TrackList("A").Wait(waitCtx(t))
	require.NoError(t, err)

	hc := c.Cues(tracks[0])
	assert.Equal(t, StatePending, hc.State())

	_, err = c.TrackList("B").Wait(waitCtx(t))
	require.NoError(t, err)

	close(release)
	c.Drain()

	_, err = hc.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrStaleIdentity)

	// une piste de l'ancienne vidéo est refusée sans fetch
	late := c.Cues(tracks[0])
	assert.Equal(t, StateFailed, late.State())
	_, err = late.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrStaleIdentity)
	assert.Equal(t, 1, src.cueCallCount(en.SourceURL))
}

func TestCues_KeepsEarlierTracks(t *testing.T) {
	src := newFakeSource()
	en, fr := track("A", "en"), track("A", "fr")
	src.tracks["A"] = []model.CaptionTrack{en, fr}
	src.cues[en.SourceURL] = []model.Cue{{Start: 0, Duration: 1, Text: "hello"}}
	src.cues[fr.SourceURL] = []model.Cue{{Start: 0, Duration: 1, Text: "bonjour"}}

	c := New(src)
	tracks, err := c.TrackList("A").Wait(waitCtx(t))
	require.NoError(t, err)

	for _, tr := range []model.CaptionTrack{tracks[0], tracks[1], tracks[0], tracks[1]} {
		_, err := c.Cues(tr).Wait(waitCtx(t))
		require.NoError(t, err)
	}
	c.Drain()

	assert.Equal(t, 1, src.cueCallCount(en.SourceURL))
	assert.Equal(t, 1, src.cueCallCount(fr.SourceURL))

	cues, err := c.Cues(tracks[1]).Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, "bonjour", cues[0].Text)
}

func TestTrackList_FailureIsTerminalUntilRetry(t *testing.T) {
	src := newFakeSource()
	boom := errors.New("boom")
	src.errs["A"] = boom

	c := New(src)
	_, err := c.TrackList("A").Wait(waitCtx(t))
	assert.ErrorIs(t, err, boom)

	h := c.TrackList("A")
	assert.Equal(t, StateFailed, h.State())
	c.Drain()
	assert.Equal(t, 1, src.calls("A"))

	src.mu.Lock()
	delete(src.errs, "A")
	src.tracks["A"] = []model.CaptionTrack{track("A", "en")}
	src.mu.Unlock()

	tracks, err := c.RetryTrackList("A").Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
	c.Drain()
	assert.Equal(t, 2, src.calls("A"))

	// une liste résolue n'est pas relancée
	c.RetryTrackList("A")
	c.Drain()
	assert.Equal(t, 2, src.calls("A"))
}

func TestCues_FailureIsTerminalUntilRetry(t *testing.T) {
	src := newFakeSource()
	en := track("A", "en")
	src.tracks["A"] = []model.CaptionTrack{en}
	src.errs[en.SourceURL] = errors.New("bad gateway")

	c := New(src)
	tracks, err := c.TrackList("A").Wait(waitCtx(t))
	require.NoError(t, err)

	_, err = c.Cues(tracks[0]).Wait(waitCtx(t))
	require.Error(t, err)
	assert.Equal(t, StateFailed, c.Cues(tracks[0]).State())

	src.mu.Lock()
	delete(src.errs, en.SourceURL)
	src.mu.Unlock()

	_, err = c.RetryCues(tracks[0]).Wait(waitCtx(t))
	require.NoError(t, err)
	c.Drain()
	assert.Equal(t, 2, src.cueCallCount(en.SourceURL))
}

func TestTrackList_EmptyResolves(t *testing.T) {
	src := newFakeSource()
	c := New(src)
	tracks, err := c.TrackList("A").Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Empty(t, tracks)
	assert.Equal(t, StateResolved, c.TrackList("A").State())
}

func TestInvalidate(t *testing.T) {
	src := newFakeSource()
	src.tracks["A"] = []model.CaptionTrack{track("A", "en")}
	release := src.gate("A")

	c := New(src)
	h := c.TrackList("A")
	c.Invalidate()

	_, err := h.Wait(waitCtx(t))
	assert.ErrorIs(t, err, ErrStaleIdentity)
	_, ok := c.VideoID()
	assert.False(t, ok)

	close(release)
	c.Drain()

	// une nouvelle demande refait un fetch
	_, err = c.TrackList("A").Wait(waitCtx(t))
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls("A"))
}

func TestHandleWait_ContextCanceled(t *testing.T) {
	src := newFakeSource()
	release := src.gate("A")
	defer close(release)

	c := New(src)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.TrackList("A").Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatePending, c.TrackList("A").State())
}
