package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/patrickprogramme/hearlingo/internal/app"
	"github.com/patrickprogramme/hearlingo/internal/fetch"
	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/internal/trackcache"
	"github.com/patrickprogramme/hearlingo/internal/yt"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

type navigateRequest struct {
	URL string `json:"url"`
}

type navigateResponse struct {
	VideoID model.VideoID `json:"video_id"`
}

type selectTrackRequest struct {
	Language string `json:"language"`
}

type selectTrackResponse struct {
	Track    model.CaptionTrack `json:"track"`
	CueCount int                `json:"cue_count"`
}

type cueResponse struct {
	Index    int     `json:"index"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

type cuesResponse struct {
	Track model.CaptionTrack `json:"track"`
	Cues  []cueResponse      `json:"cues"`
}

type eventRequest struct {
	Kind string  `json:"kind"`
	Time float64 `json:"time"`
}

type updateResponse struct {
	Update   app.Update       `json:"update"`
	Commands []player.Command `json:"commands"`
}

type loopRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// loopResponse : Applied est faux quand les deux bornes étaient invalides
// et que la boucle est restée inchangée.
type loopResponse struct {
	app.LoopState
	Applied bool `json:"applied"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	id, err := s.session.Navigate(req.URL)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, navigateResponse{VideoID: id})
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	tracks, err := s.session.Tracks(r.Context())
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

func (s *Server) handleSelectTrack(w http.ResponseWriter, r *http.Request) {
	var req selectTrackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	track, err := s.session.SelectLanguage(r.Context(), req.Language)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	_, index, err := s.session.Selected()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectTrackResponse{Track: track, CueCount: index.Len()})
}

func (s *Server) handleCues(w http.ResponseWriter, r *http.Request) {
	track, index, err := s.session.Selected()
	if err != nil {
		s.writeErr(w, err)
		return
	}
	cues := index.Cues()
	resp := cuesResponse{Track: track, Cues: make([]cueResponse, 0, len(cues))}
	for i, c := range cues {
		resp.Cues = append(resp.Cues, cueResponse{
			Index:    i,
			Start:    c.Start,
			Duration: c.Duration,
			Text:     subtitles.CleanText(c.Text),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActiveCue(w http.ResponseWriter, r *http.Request) {
	c, i, ok := s.session.Active()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"index": -1})
		return
	}
	writeJSON(w, http.StatusOK, cueResponse{
		Index:    i,
		Start:    c.Start,
		Duration: c.Duration,
		Text:     subtitles.CleanText(c.Text),
	})
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if !decodeBody(w, r, &req) {
		return
	}
	kind, err := player.ParseEventKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ev := player.Event{Kind: kind, Time: req.Time}
	s.surface.Apply(ev)
	s.writeUpdate(w, s.session.Handle(ev))
}

func (s *Server) handleTogglePanel(w http.ResponseWriter, r *http.Request) {
	s.writeUpdate(w, s.session.TogglePanel())
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "indice de cue invalide")
		return
	}
	s.writeUpdate(w, s.session.ClickCue(index))
}

func (s *Server) handleSubmitLoop(w http.ResponseWriter, r *http.Request) {
	var req loopRequest
	if !decodeBody(w, r, &req) {
		return
	}
	applied := s.session.SubmitLoop(req.Start, req.End)
	writeJSON(w, http.StatusOK, loopResponse{LoopState: s.session.Loop(), Applied: applied})
}

func (s *Server) handleStopLoop(w http.ResponseWriter, r *http.Request) {
	s.session.StopLoop()
	writeJSON(w, http.StatusOK, s.session.Loop())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleTranscript : ?format=txt|md&timestamps=true
func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := model.FormatTXT
	if v := q.Get("format"); v != "" {
		f, err := model.ParseFormat(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = f
	}
	timestamps, _ := strconv.ParseBool(q.Get("timestamps"))

	tr, err := app.BuildTranscript(s.session, s.title)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	data, err := tr.Render(format, timestamps)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	contentType := "text/plain; charset=utf-8"
	if format == model.FormatMARKDOWN {
		contentType = "text/markdown; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeUpdate(w http.ResponseWriter, upd app.Update) {
	cmds := s.surface.Drain()
	if cmds == nil {
		cmds = []player.Command{}
	}
	writeJSON(w, http.StatusOK, updateResponse{Update: upd, Commands: cmds})
}

func (s *Server) writeErr(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Warnw("request failed", "status", status, "error", err)
	}
	writeError(w, status, app.Describe(err))
}

// statusFor : 400 entrée, 404 absent, 409 identité périmée, 502 YouTube.
func statusFor(err error) int {
	var fe *fetch.FetchError
	var pe *yt.ParseError
	switch {
	case errors.Is(err, app.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, trackcache.ErrNoCaptions), errors.Is(err, app.ErrUnknownTrack):
		return http.StatusNotFound
	case errors.Is(err, trackcache.ErrStaleIdentity),
		errors.Is(err, app.ErrNoVideo),
		errors.Is(err, app.ErrNoTrackSelected):
		return http.StatusConflict
	case errors.As(err, &fe), errors.As(err, &pe), errors.Is(err, fetch.ErrTooLarge):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
