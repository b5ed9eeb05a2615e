// Package player décrit la surface de lecture pilotée par le moteur.
package player

import (
	"fmt"
	"sync"
)

// Surface est le port vers le lecteur vidéo.
type Surface interface {
	CurrentTime() float64
	Paused() bool
	Seek(t float64)
	Pause()
}

type EventKind string

const (
	EventTick  EventKind = "tick"
	EventPlay  EventKind = "play"
	EventPause EventKind = "pause"
)

// ParseEventKind accepte "tick", "play" ou "pause".
func ParseEventKind(s string) (EventKind, error) {
	switch EventKind(s) {
	case EventTick, EventPlay, EventPause:
		return EventKind(s), nil
	default:
		return "", fmt.Errorf("événement de lecture inconnu: %q", s)
	}
}

// Event est une notification du lecteur : mise à jour de position, lecture ou pause.
type Event struct {
	Kind EventKind `json:"kind"`
	Time float64   `json:"time"`
}

type CommandKind string

const (
	CommandSeek  CommandKind = "seek"
	CommandPause CommandKind = "pause"
)

// Command est une action demandée au lecteur par le moteur.
type Command struct {
	Kind CommandKind `json:"kind"`
	Time float64     `json:"time,omitempty"`
}

// Virtual est une Surface en mémoire : elle reflète les événements reçus
// et enregistre les commandes émises, à transmettre au vrai lecteur.
type Virtual struct {
	mu       sync.Mutex
	time     float64
	paused   bool
	commands []Command
}

// NewVirtual crée une surface en pause à 0.
func NewVirtual() *Virtual {
	return &Virtual{paused: true}
}

// Apply met à jour l'état à partir d'un événement du lecteur.
func (v *Virtual) Apply(ev Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.time = ev.Time
	switch ev.Kind {
	case EventPlay:
		v.paused = false
	case EventPause:
		v.paused = true
	}
}

func (v *Virtual) CurrentTime() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.time
}

func (v *Virtual) Paused() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.paused
}

func (v *Virtual) Seek(t float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.time = t
	v.commands = append(v.commands, Command{Kind: CommandSeek, Time: t})
}

func (v *Virtual) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paused = true
	v.commands = append(v.commands, Command{Kind: CommandPause})
}

// Drain retourne et vide les commandes en attente.
func (v *Virtual) Drain() []Command {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.commands
	v.commands = nil
	return out
}
