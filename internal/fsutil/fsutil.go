// Package fsutil regroupe l'écriture atomique des fichiers exportés et le nettoyage des noms.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	DirPerm  = 0o755
	FilePerm = 0o644

	// nombre de suffixes _N essayés avant d'abandonner
	maxUniqueAttempts = 1000
)

// ErrNoFreeName : tous les suffixes _1.._N sont déjà pris.
var ErrNoFreeName = errors.New("aucun nom de fichier libre")

// WriteFileAtomic écrit data dans destPath via un fichier temporaire du même
// répertoire renommé ensuite. Crée les répertoires parents si nécessaire.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	committed = true
	return nil
}

// SaveUniqueAtomic écrit content dans outDir/name et retourne le chemin final.
// Sans overwrite, un fichier existant n'est jamais remplacé : "nom_1.ext", "nom_2.ext"...
func SaveUniqueAtomic(outDir, name string, content []byte, overwrite bool) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("name empty")
	}
	final := filepath.Join(outDir, name)
	if !overwrite {
		var err error
		if final, err = freePath(outDir, name); err != nil {
			return "", err
		}
	}
	if err := WriteFileAtomic(final, content, FilePerm); err != nil {
		return "", err
	}
	return final, nil
}

// freePath retourne outDir/name, ou la première variante suffixée qui n'existe pas.
func freePath(outDir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i <= maxUniqueAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		p := filepath.Join(outDir, candidate)
		_, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoFreeName, filepath.Join(outDir, name))
}
