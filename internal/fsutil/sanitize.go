package fsutil

import (
	"regexp"
	"strings"
	"unicode"
)

// maxFilenameRunes : longueur maximale du nom, en runes
const maxFilenameRunes = 200

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>"/\\|?*\x00-\x1F]`)

// multiSpace détecte les séquences d'espaces (y compris insécables) pour les réduire à un seul.
var multiSpace = regexp.MustCompile(`[\s\x{00A0}]+`)

// noms réservés sous Windows, avec ou sans extension
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
}

// SanitizeFilename nettoie un titre de vidéo pour en faire un nom de fichier valide.
// Étapes :
// - Remplace ":" par "-" explicitement
// - Remplace les autres caractères interdits par un espace
// - Réduit les espaces et supprime les points terminaux
// - Coupe à maxFilenameRunes sans casser un caractère UTF-8
// - Préfixe "_" un nom réservé Windows ; "untitled" si rien ne reste
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", "-")
	clean := invalidFileRunes.ReplaceAllString(name, " ")
	clean = multiSpace.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)
	clean = strings.TrimRight(clean, ". ")

	if clean == "" {
		return "untitled"
	}

	if rs := []rune(clean); len(rs) > maxFilenameRunes {
		clean = strings.TrimRight(string(rs[:maxFilenameRunes]), ". ")
	}

	stem, _, _ := strings.Cut(clean, ".")
	if reservedNames[strings.ToUpper(stem)] {
		clean = "_" + clean
	}

	return CapitalizeFirst(clean)
}

// CapitalizeFirst met en majuscule le premier caractère (rune) de s.
// Ne touche pas au reste de la chaîne. Vide -> retourne "".
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
