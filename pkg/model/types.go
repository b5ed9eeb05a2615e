package model

import (
	"fmt"
	"strings"
)

// Seconds : position entière en secondes, pour l'affichage et les liens horodatés.
type Seconds int64

// TimestampHHMMSS formate en "HH:MM:SS". Exemple : 3661 -> "01:01:01".
func (s Seconds) TimestampHHMMSS() string {
	total := s.clamped()
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// TimestampMMSS formate en "MM:SS", les minutes ne sont jamais reportées en heures.
// Exemple : 65 -> "01:05", 5999 -> "99:59".
func (s Seconds) TimestampMMSS() string {
	total := s.clamped()
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func (s Seconds) clamped() int64 {
	if s < 0 {
		return 0
	}
	return int64(s)
}

// Format : format d'export d'un transcript
type Format string

const (
	FormatTXT      Format = "txt"
	FormatMARKDOWN Format = "md"
)

// Formats liste les formats d'export acceptés.
func Formats() []Format {
	return []Format{FormatTXT, FormatMARKDOWN}
}

// ParseFormat accepte "txt"/"text" et "md"/"markdown", avec ou sans point initial.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "txt", "text":
		return FormatTXT, nil
	case "md", "markdown":
		return FormatMARKDOWN, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %q (txt ou md)", s)
	}
}

// Extension retourne l'extension de fichier, point compris.
func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}
