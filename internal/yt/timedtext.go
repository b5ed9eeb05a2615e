package yt

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// ParseCueList convertit un document <transcript> en cues, dans l'ordre du document.
// Un attribut numérique absent ou invalide vaut 0 ; un document mal formé est une erreur.
func ParseCueList(raw string) ([]model.Cue, error) {
	var doc rawTranscript
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, &ParseError{Stage: StageCueList, Cause: fmt.Errorf("unmarshal transcript: %w", err)}
	}

	cues := make([]model.Cue, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		cues = append(cues, model.Cue{
			Start:    parseSeconds(t.Start),
			Duration: parseSeconds(t.Dur),
			Text:     t.Body,
		})
	}
	return cues, nil
}

// parseSeconds : valeur non numérique, négative ou non finie -> 0.
func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
