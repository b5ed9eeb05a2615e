package model

import (
	"math"
	"regexp"
	"strconv"
)

var (
	bareSecondsRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
	minSecRe      = regexp.MustCompile(`^(\d{1,3}):(\d+(?:\.\d+)?)$`)
)

// ParseTimecode convertit "SS" (ex. "12", "12.5") ou "MM:SS" (ex. "1:05", "01:05.5") en secondes.
// Les secondes de "MM:SS" ne sont pas bornées : "1:5" vaut 65 et "1:75" vaut 135.
// Retourne false si le texte ne correspond à aucun des deux motifs.
func ParseTimecode(s string) (float64, bool) {
	if bareSecondsRe.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	m := minSecRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	sec, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	return float64(minutes*60) + sec, true
}

// SecondsFromFloat tronque une position de lecture en secondes entières (jamais négative).
func SecondsFromFloat(t float64) Seconds {
	if t <= 0 || math.IsNaN(t) {
		return 0
	}
	return Seconds(math.Floor(t))
}
