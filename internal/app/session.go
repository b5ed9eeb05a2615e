package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/patrickprogramme/hearlingo/internal/loop"
	"github.com/patrickprogramme/hearlingo/internal/panel"
	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/internal/trackcache"
	"github.com/patrickprogramme/hearlingo/internal/yt"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// Update décrit l'effet d'un événement : cue actif, saut éventuel, panneau.
type Update struct {
	Active    int     `json:"active"`
	Seeked    bool    `json:"seeked"`
	SeekTo    float64 `json:"seek_to,omitempty"`
	PanelOpen bool    `json:"panel_open"`
	ScrollTo  int     `json:"scroll_to"`
}

// LoopState est l'état de la boucle A/B exposé à l'affichage.
type LoopState struct {
	State  string      `json:"state"`
	Window loop.Window `json:"window"`
}

// State est un instantané de la session.
type State struct {
	SessionID string              `json:"session_id"`
	VideoID   model.VideoID       `json:"video_id,omitempty"`
	Track     *model.CaptionTrack `json:"track,omitempty"`
	CueCount  int                 `json:"cue_count"`
	Time      float64             `json:"time"`
	Paused    bool                `json:"paused"`
	Active    int                 `json:"active"`
	PanelOpen bool                `json:"panel_open"`
	Loop      LoopState           `json:"loop"`
}

// TrackCues associe une piste à ses cues (préchargement).
type TrackCues struct {
	Track model.CaptionTrack
	Cues  []model.Cue
}

// Session relie la vidéo affichée, la piste choisie, son index, la boucle et le panneau.
// Les événements sont traités un par un ; le verrou n'est jamais tenu pendant un fetch.
type Session struct {
	id          string
	log         *zap.SugaredLogger
	cache       *trackcache.Cache
	surface     player.Surface
	defaultLang string

	mu        sync.Mutex
	video     model.VideoID
	selected  *model.CaptionTrack
	selectSeq uint64
	index     *subtitles.CueIndex
	loop      *loop.Controller
	panel     *panel.Panel
	scrollTo  int
}

type SessionOption func(*Session)

func WithDefaultLanguage(lang string) SessionOption {
	return func(s *Session) {
		if lang != "" {
			s.defaultLang = lang
		}
	}
}

func WithLogger(log *zap.SugaredLogger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

func WithID(id string) SessionOption {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

func NewSession(cache *trackcache.Cache, surface player.Surface, opts ...SessionOption) *Session {
	s := &Session{
		id:          uuid.NewString(),
		log:         zap.NewNop().Sugar(),
		cache:       cache,
		surface:     surface,
		defaultLang: trackcache.DefaultLanguage,
		loop:        loop.New(),
		scrollTo:    -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.panel = panel.New(surface, func(i int) { s.scrollTo = i })
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Navigate change la vidéo affichée et lance le chargement de ses pistes.
// Naviguer vers la même vidéo conserve la sélection.
func (s *Session) Navigate(rawURL string) (model.VideoID, error) {
	id, err := yt.VideoIDFromURL(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	s.mu.Lock()
	if s.video != id {
		s.video = id
		s.clearSelectionLocked()
	}
	// une navigation relance une liste en échec
	s.cache.RetryTrackList(id)
	s.mu.Unlock()

	s.log.Infow("navigate", "session", s.id, "video", id)
	return id, nil
}

// Open navigue puis sélectionne la piste par défaut, ou lang si renseigné.
func (s *Session) Open(ctx context.Context, rawURL, lang string) (model.CaptionTrack, error) {
	if _, err := s.Navigate(rawURL); err != nil {
		return model.CaptionTrack{}, err
	}
	return s.SelectLanguage(ctx, lang)
}

// Tracks attend la liste des pistes de la vidéo affichée.
func (s *Session) Tracks(ctx context.Context) ([]model.CaptionTrack, error) {
	h, err := s.trackList()
	if err != nil {
		return nil, err
	}
	tracks, err := h.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, trackcache.ErrNoCaptions
	}
	return tracks, nil
}

// SelectDefault sélectionne la piste de la langue par défaut, sinon la première.
func (s *Session) SelectDefault(ctx context.Context) (model.CaptionTrack, error) {
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return model.CaptionTrack{}, err
	}
	track, ok := trackcache.DefaultTrack(tracks, s.defaultLang)
	if !ok {
		return model.CaptionTrack{}, trackcache.ErrNoCaptions
	}
	return track, s.SelectTrack(ctx, track)
}

// SelectLanguage sélectionne la piste par code langue ou nom affiché ; vide -> défaut.
func (s *Session) SelectLanguage(ctx context.Context, nameOrCode string) (model.CaptionTrack, error) {
	if nameOrCode == "" {
		return s.SelectDefault(ctx)
	}
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return model.CaptionTrack{}, err
	}
	track, ok := trackcache.FindTrack(tracks, nameOrCode)
	if !ok {
		return model.CaptionTrack{}, fmt.Errorf("%w: %s", ErrUnknownTrack, nameOrCode)
	}
	return track, s.SelectTrack(ctx, track)
}

// SelectTrack attend les cues de track et remplace l'index affiché.
// Si une autre sélection ou navigation a eu lieu entre-temps, le résultat est ignoré.
func (s *Session) SelectTrack(ctx context.Context, track model.CaptionTrack) error {
	s.mu.Lock()
	if s.video == "" {
		s.mu.Unlock()
		return ErrNoVideo
	}
	if track.VideoID != "" && track.VideoID != s.video {
		s.mu.Unlock()
		return trackcache.ErrStaleIdentity
	}
	s.clearSelectionLocked()
	seq := s.selectSeq
	selected := track
	s.selected = &selected
	s.mu.Unlock()

	// une sélection explicite relance des cues en échec
	cues, err := s.cache.RetryCues(track).Wait(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectSeq != seq {
		s.log.Debugw("selection superseded", "session", s.id, "lang", track.LanguageCode)
		return trackcache.ErrStaleIdentity
	}
	if err != nil {
		s.log.Warnw("cue load failed", "session", s.id, "video", s.video, "lang", track.LanguageCode, "error", err)
		return err
	}
	s.index = subtitles.Build(cues)
	s.panel.SetCues(s.index)
	s.log.Infow("track selected", "session", s.id, "video", s.video, "lang", track.LanguageCode, "cues", s.index.Len())
	return nil
}

// Selected retourne la piste choisie et son index (nil tant que les cues ne sont pas chargés).
func (s *Session) Selected() (model.CaptionTrack, *subtitles.CueIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return model.CaptionTrack{}, nil, ErrNoTrackSelected
	}
	return *s.selected, s.index, nil
}

// Prefetch charge les cues de toutes les pistes, au plus concurrency à la fois.
func (s *Session) Prefetch(ctx context.Context, concurrency int) ([]TrackCues, error) {
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	out := make([]TrackCues, len(tracks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, t := range tracks {
		g.Go(func() error {
			cues, err := s.cache.Cues(t).Wait(gctx)
			if err != nil {
				return fmt.Errorf("piste %s: %w", t.LanguageCode, err)
			}
			out[i] = TrackCues{Track: t, Cues: cues}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Handle applique un événement du lecteur. La surface doit déjà refléter l'événement.
func (s *Session) Handle(ev player.Event) Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	var upd Update
	switch ev.Kind {
	case player.EventTick:
		if to, ok := s.loop.OnTick(ev.Time); ok {
			s.surface.Seek(to)
			upd.Seeked, upd.SeekTo = true, to
			s.log.Debugw("loop seek", "session", s.id, "from", ev.Time, "to", to)
		}
		s.panel.OnTick()
	case player.EventPlay:
		s.panel.OnPlay()
	case player.EventPause:
		s.panel.OnPause()
	}
	return s.updateLocked(upd)
}

func (s *Session) TogglePanel() Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel.Toggle()
	return s.updateLocked(Update{})
}

// ClickCue place la lecture au début du cue index ; un index hors liste est ignoré.
func (s *Session) ClickCue(index int) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	var upd Update
	if s.panel.Click(index) {
		upd.Seeked, upd.SeekTo = true, s.surface.CurrentTime()
	}
	return s.updateLocked(upd)
}

// SubmitLoop arme la boucle ; false si aucun des deux champs n'est valide.
func (s *Session) SubmitLoop(startText, endText string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.loop.Submit(startText, endText)
	s.log.Debugw("loop submit", "session", s.id, "start", startText, "end", endText, "armed", ok)
	return ok
}

func (s *Session) StopLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop.Stop()
}

func (s *Session) Loop() LoopState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopStateLocked()
}

// Active retourne le cue actif à la position courante.
func (s *Session) Active() (model.Cue, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index.ActiveIndexAt(s.surface.CurrentTime())
	c, ok := s.index.At(i)
	return c, i, ok
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		SessionID: s.id,
		VideoID:   s.video,
		CueCount:  s.index.Len(),
		Time:      s.surface.CurrentTime(),
		Paused:    s.surface.Paused(),
		Active:    s.index.ActiveIndexAt(s.surface.CurrentTime()),
		PanelOpen: s.panel.Open(),
		Loop:      s.loopStateLocked(),
	}
	if s.selected != nil {
		t := *s.selected
		st.Track = &t
	}
	return st
}

// trackList obtient la requête sous s.mu : la vidéo lue et l'entrée du cache
// ne peuvent pas diverger si une navigation a lieu en parallèle.
func (s *Session) trackList() (*trackcache.Handle[[]model.CaptionTrack], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.video == "" {
		return nil, ErrNoVideo
	}
	return s.cache.TrackList(s.video), nil
}

func (s *Session) clearSelectionLocked() {
	s.selectSeq++
	s.selected = nil
	s.index = nil
	s.panel.SetCues(nil)
}

func (s *Session) updateLocked(upd Update) Update {
	upd.Active = s.index.ActiveIndexAt(s.surface.CurrentTime())
	upd.PanelOpen = s.panel.Open()
	upd.ScrollTo = s.scrollTo
	s.scrollTo = -1
	return upd
}

func (s *Session) loopStateLocked() LoopState {
	return LoopState{State: s.loop.State().String(), Window: s.loop.Window()}
}
