// Package clipboard enveloppe atotto/clipboard pour le texte des URLs et des transcripts.
package clipboard

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
)

var (
	ErrUnsupported = errors.New("presse-papier indisponible sur ce système")
	ErrEmpty       = errors.New("le texte à copier ne peut pas être vide")
)

// Unsupported indique si aucun presse-papier n'est accessible (ex. serveur sans X11).
func Unsupported() bool {
	return clipboard.Unsupported
}

// ReadText lit le presse-papier, espaces de début et de fin retirés.
func ReadText() (string, error) {
	if Unsupported() {
		return "", ErrUnsupported
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// WriteText remplace le contenu du presse-papier par text.
func WriteText(text string) error {
	if Unsupported() {
		return ErrUnsupported
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	return clipboard.WriteAll(text)
}
