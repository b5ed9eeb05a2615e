package trackcache

import "context"

// State est l'état d'une requête en cache.
type State int

const (
	StatePending State = iota
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle donne accès à une requête partagée : tous les appelants d'une même clé
// reçoivent le même Handle tant que l'entrée est vivante.
type Handle[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func newHandle[T any]() *Handle[T] {
	return &Handle[T]{done: make(chan struct{})}
}

// failedHandle retourne un Handle déjà en échec.
func failedHandle[T any](err error) *Handle[T] {
	h := newHandle[T]()
	h.settle(*new(T), err)
	return h
}

// settle fixe le résultat. Appelé une seule fois, sous le verrou du cache.
func (h *Handle[T]) settle(v T, err error) {
	h.value = v
	h.err = err
	close(h.done)
}

func (h *Handle[T]) settled() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// State ne bloque pas.
func (h *Handle[T]) State() State {
	if !h.settled() {
		return StatePending
	}
	if h.err != nil {
		return StateFailed
	}
	return StateResolved
}

// Done est fermé quand la requête est réglée.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Wait bloque jusqu'au résultat ou l'annulation de ctx.
// L'annulation de ctx n'annule pas la requête partagée.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.value, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
