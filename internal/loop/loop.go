// Package loop maintient la position de lecture dans une fenêtre [début, fin] choisie par l'utilisateur.
package loop

import (
	"strings"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

type State int

const (
	Idle State = iota
	Armed
)

func (s State) String() string {
	if s == Armed {
		return "armed"
	}
	return "idle"
}

// Window : une borne non fixée n'est pas appliquée, sauf le début qui vaut 0
// quand la fin est dépassée.
type Window struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	HasStart bool    `json:"has_start"`
	HasEnd   bool    `json:"has_end"`
}

// Controller est une machine à deux états Idle/Armed.
// Il ne dépend ni de la vidéo ni de la piste affichées.
type Controller struct {
	state  State
	window Window
}

func New() *Controller {
	return &Controller{}
}

func (c *Controller) State() State {
	return c.state
}

// Window retourne la dernière fenêtre soumise, conservée après Stop pour l'affichage.
func (c *Controller) Window() Window {
	return c.window
}

// Submit remplace la fenêtre et arme la boucle. Chaque champ est "SS" ou "MM:SS" ;
// un champ invalide est considéré comme non fixé. Si aucun des deux n'est valide,
// rien ne change et Submit retourne false.
func (c *Controller) Submit(startText, endText string) bool {
	start, hasStart := model.ParseTimecode(strings.TrimSpace(startText))
	end, hasEnd := model.ParseTimecode(strings.TrimSpace(endText))
	if !hasStart && !hasEnd {
		return false
	}
	c.window = Window{Start: start, End: end, HasStart: hasStart, HasEnd: hasEnd}
	c.state = Armed
	return true
}

// Stop désarme sans effacer la fenêtre.
func (c *Controller) Stop() {
	c.state = Idle
}

// OnTick retourne la position à atteindre si t sort de la fenêtre armée.
func (c *Controller) OnTick(t float64) (float64, bool) {
	if c.state != Armed {
		return 0, false
	}
	w := c.window
	if w.HasStart && t < w.Start {
		return w.Start, true
	}
	if w.HasEnd && t > w.End {
		if w.HasStart {
			return w.Start, true
		}
		return 0, true
	}
	return 0, false
}
