// Package trackcache met en cache la liste des pistes d'une vidéo et les cues
// de chaque piste, avec une seule requête en vol par clé.
package trackcache

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// Source récupère et parse les documents distants. yt.Client l'implémente.
type Source interface {
	FetchTrackList(ctx context.Context, id model.VideoID) ([]model.CaptionTrack, error)
	FetchCues(ctx context.Context, track model.CaptionTrack) ([]model.Cue, error)
}

// entry est l'entrée vivante : une vidéo, sa liste de pistes, les cues par SourceURL.
type entry struct {
	gen    uint64
	id     model.VideoID
	tracks *Handle[[]model.CaptionTrack]
	cues   map[string]*Handle[[]model.Cue]
}

// Cache garde une seule entrée vivante. Toute réponse arrivée pour une
// génération précédente est ignorée.
type Cache struct {
	src Source
	log *zap.SugaredLogger
	ctx context.Context

	mu    sync.Mutex
	gen   uint64
	entry *entry

	inflight sync.WaitGroup
}

type Option func(*Cache)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithContext fixe le contexte de base des fetchs (annulé à l'arrêt du programme).
func WithContext(ctx context.Context) Option {
	return func(c *Cache) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

func New(src Source, opts ...Option) *Cache {
	c := &Cache{
		src: src,
		log: zap.NewNop().Sugar(),
		ctx: context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VideoID retourne l'identité de l'entrée vivante.
func (c *Cache) VideoID() (model.VideoID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		return "", false
	}
	return c.entry.id, true
}

// TrackList retourne la requête de liste de pistes pour id.
// Si id diffère de l'entrée vivante, celle-ci est abandonnée et un fetch démarre.
func (c *Cache) TrackList(id model.VideoID) *Handle[[]model.CaptionTrack] {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryForLocked(id)
	if e.tracks == nil {
		c.startTrackListLocked(e)
	}
	return e.tracks
}

// RetryTrackList relance la liste de pistes si la précédente a échoué.
func (c *Cache) RetryTrackList(id model.VideoID) *Handle[[]model.CaptionTrack] {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.entryForLocked(id)
	if e.tracks == nil || e.tracks.State() == StateFailed {
		c.startTrackListLocked(e)
	}
	return e.tracks
}

// Cues retourne la requête de cues pour track. Les cues des pistes déjà
// chargées pour la vidéo vivante restent en cache.
func (c *Cache) Cues(track model.CaptionTrack) *Handle[[]model.Cue] {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.liveForLocked(track)
	if !ok {
		return failedHandle[[]model.Cue](ErrStaleIdentity)
	}
	if h, ok := e.cues[track.SourceURL]; ok {
		return h
	}
	return c.startCuesLocked(e, track)
}

// RetryCues relance les cues de track si la requête précédente a échoué.
func (c *Cache) RetryCues(track model.CaptionTrack) *Handle[[]model.Cue] {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.liveForLocked(track)
	if !ok {
		return failedHandle[[]model.Cue](ErrStaleIdentity)
	}
	if h, ok := e.cues[track.SourceURL]; ok && h.State() != StateFailed {
		return h
	}
	return c.startCuesLocked(e, track)
}

// Invalidate abandonne l'entrée vivante : ses requêtes en attente échouent
// avec ErrStaleIdentity et leurs réponses seront ignorées.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropLocked()
}

// Drain attend la fin des goroutines de fetch en vol.
func (c *Cache) Drain() {
	c.inflight.Wait()
}

func (c *Cache) entryForLocked(id model.VideoID) *entry {
	if c.entry != nil && c.entry.id == id {
		return c.entry
	}
	c.dropLocked()
	c.gen++
	c.entry = &entry{
		gen:  c.gen,
		id:   id,
		cues: make(map[string]*Handle[[]model.Cue]),
	}
	c.log.Debugw("cache entry created", "video", id, "generation", c.gen)
	return c.entry
}

// liveForLocked : une piste sans VideoID est rattachée à l'entrée vivante.
func (c *Cache) liveForLocked(track model.CaptionTrack) (*entry, bool) {
	if c.entry == nil {
		return nil, false
	}
	if track.VideoID != "" && track.VideoID != c.entry.id {
		return nil, false
	}
	return c.entry, true
}

func (c *Cache) dropLocked() {
	old := c.entry
	if old == nil {
		return
	}
	c.entry = nil
	if old.tracks != nil && !old.tracks.settled() {
		old.tracks.settle(nil, ErrStaleIdentity)
	}
	for _, h := range old.cues {
		if !h.settled() {
			h.settle(nil, ErrStaleIdentity)
		}
	}
	c.log.Debugw("cache entry dropped", "video", old.id, "generation", old.gen)
}

func (c *Cache) startTrackListLocked(e *entry) {
	h := newHandle[[]model.CaptionTrack]()
	e.tracks = h
	gen, id := e.gen, e.id

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		tracks, err := c.src.FetchTrackList(c.ctx, id)
		if err == nil {
			for i := range tracks {
				tracks[i].VideoID = id
			}
		}
		c.complete(gen, func() bool {
			if h.settled() {
				return false
			}
			h.settle(tracks, err)
			return true
		}, "video", id)
	}()
}

func (c *Cache) startCuesLocked(e *entry, track model.CaptionTrack) *Handle[[]model.Cue] {
	h := newHandle[[]model.Cue]()
	e.cues[track.SourceURL] = h
	gen := e.gen
	track.VideoID = e.id

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		cues, err := c.src.FetchCues(c.ctx, track)
		c.complete(gen, func() bool {
			if h.settled() {
				return false
			}
			h.settle(cues, err)
			return true
		}, "video", track.VideoID, "lang", track.LanguageCode)
	}()
	return h
}

// complete applique apply seulement si la génération est toujours vivante.
func (c *Cache) complete(gen uint64, apply func() bool, kv ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil || c.entry.gen != gen || !apply() {
		c.log.Debugw("stale response discarded", append(kv, "generation", gen)...)
		return
	}
	c.log.Debugw("fetch settled", append(kv, "generation", gen)...)
}
