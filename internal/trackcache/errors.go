package trackcache

import "errors"

var (
	// ErrNoCaptions : la liste de pistes est résolue mais vide.
	ErrNoCaptions = errors.New("no captions available")
	// ErrStaleIdentity : la requête appartient à une vidéo qui n'est plus affichée.
	ErrStaleIdentity = errors.New("video identity changed")
)
