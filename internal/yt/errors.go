package yt

import (
	"errors"
	"fmt"
)

// Étapes de parsing rapportées dans ParseError.
const (
	StageTrackList = "trackList"
	StageCueList   = "cueList"
)

// ErrMarkerNotFound : le fragment JSON des pistes n'a pas pu être délimité dans la page.
var ErrMarkerNotFound = errors.New("caption marker not found")

// ParseError signale un document inexploitable (marqueurs absents, JSON ou XML invalide).
type ParseError struct {
	Stage string
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Stage, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
