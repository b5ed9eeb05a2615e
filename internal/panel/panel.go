// Package panel synchronise le panneau de transcript avec la lecture.
package panel

import (
	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// Cues est la vue du panneau sur l'index de la piste sélectionnée.
// *subtitles.CueIndex l'implémente.
type Cues interface {
	ActiveIndexAt(t float64) int
	At(i int) (model.Cue, bool)
}

// Panel : fermé pendant la lecture, ouvert à la pause.
type Panel struct {
	surface  player.Surface
	cues     Cues
	open     bool
	onScroll func(index int)
}

// New crée un panneau fermé. onScroll reçoit l'indice du cue à faire défiler en vue.
func New(surface player.Surface, onScroll func(index int)) *Panel {
	if onScroll == nil {
		onScroll = func(int) {}
	}
	return &Panel{surface: surface, onScroll: onScroll}
}

// SetCues remplace l'index affiché (changement de piste ou de vidéo). nil vide le panneau.
func (p *Panel) SetCues(cues Cues) {
	p.cues = cues
}

func (p *Panel) Open() bool {
	return p.open
}

func (p *Panel) OnPlay() {
	p.open = false
}

func (p *Panel) OnPause() {
	p.open = true
	p.scrollActive()
}

// OnTick : panneau ouvert et vidéo en pause, le cue actif reste en vue.
func (p *Panel) OnTick() {
	if p.open && p.surface.Paused() {
		p.scrollActive()
	}
}

// Toggle ouvre ou ferme le panneau. L'ouverture pendant la lecture met d'abord en pause.
func (p *Panel) Toggle() {
	if p.open {
		p.open = false
		return
	}
	if !p.surface.Paused() {
		p.surface.Pause()
	}
	p.open = true
	p.scrollActive()
}

// Click place la lecture au début du cue index. Un clic hors cue (index invalide) est ignoré.
func (p *Panel) Click(index int) bool {
	if p.cues == nil {
		return false
	}
	c, ok := p.cues.At(index)
	if !ok {
		return false
	}
	p.surface.Seek(c.Start)
	return true
}

func (p *Panel) scrollActive() {
	if p.cues == nil {
		return
	}
	if i := p.cues.ActiveIndexAt(p.surface.CurrentTime()); i >= 0 {
		p.onScroll(i)
	}
}
