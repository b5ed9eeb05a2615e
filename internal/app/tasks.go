package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/patrickprogramme/hearlingo/internal/clipboard"
	"github.com/patrickprogramme/hearlingo/internal/fsutil"
	"github.com/patrickprogramme/hearlingo/internal/obsidian"
	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// ExportOptions : paramètres de sauvegarde d'un transcript.
type ExportOptions struct {
	OutputDir    string
	SaveInSubdir bool
	Format       model.Format
	Timestamps   bool
	Overwrite    bool
}

// dirFor : dossier de sortie, avec un sous-dossier par vidéo si SaveInSubdir.
func (o ExportOptions) dirFor(title string) string {
	if o.SaveInSubdir {
		return filepath.Join(o.OutputDir, fsutil.SanitizeFilename(title))
	}
	return o.OutputDir
}

// ExportOptionsFromConfig reprend les valeurs de la config ; format vide -> config.
func (a *App) ExportOptionsFromConfig(format string) (ExportOptions, error) {
	if format == "" {
		format = a.cfg.TranscriptFormat
	}
	f, err := model.ParseFormat(format)
	if err != nil {
		return ExportOptions{}, err
	}
	return ExportOptions{
		OutputDir:    a.cfg.OutputDir,
		SaveInSubdir: a.cfg.SaveInSubdir,
		Format:       f,
		Timestamps:   a.cfg.Timestamps,
	}, nil
}

// BuildTranscript construit le transcript de la piste sélectionnée.
func BuildTranscript(s *Session, title string) (subtitles.Transcript, error) {
	track, index, err := s.Selected()
	if err != nil {
		return subtitles.Transcript{}, err
	}
	if index == nil {
		return subtitles.Transcript{}, fmt.Errorf("%w: cues non chargés", ErrNoTrackSelected)
	}
	return subtitles.NewTranscript(title, track, index), nil
}

// SaveTranscript écrit tr dans le dossier de sortie et retourne le chemin final.
func SaveTranscript(tr subtitles.Transcript, opts ExportOptions) (string, error) {
	if len(tr.Cues) == 0 {
		return "", fmt.Errorf("SaveTranscript: aucun cue à sauvegarder")
	}
	outDir := opts.dirFor(tr.Title)
	name, err := tr.Filename(opts.Format)
	if err != nil {
		return "", fmt.Errorf("SaveTranscript: %w", err)
	}
	data, err := tr.Render(opts.Format, opts.Timestamps)
	if err != nil {
		return "", fmt.Errorf("SaveTranscript: %w", err)
	}
	path, err := fsutil.SaveUniqueAtomic(outDir, name, data, opts.Overwrite)
	if err != nil {
		return "", fmt.Errorf("write transcript %s: %w", name, err)
	}
	return path, nil
}

// SaveNote écrit la note Obsidian de tr (frontmatter + cues horodatés) et retourne le chemin final.
func SaveNote(r *obsidian.Renderer, tr subtitles.Transcript, opts ExportOptions) (string, error) {
	if len(tr.Cues) == 0 {
		return "", fmt.Errorf("SaveNote: aucun cue à sauvegarder")
	}
	data := obsidian.NewNoteData(tr, subtitles.DetectLanguage(tr.Cues))
	content, err := r.RenderNote(data)
	if err != nil {
		return "", fmt.Errorf("render error: %w", err)
	}
	path, err := fsutil.SaveUniqueAtomic(opts.dirFor(tr.Title), data.Filename, content, opts.Overwrite)
	if err != nil {
		return "", fmt.Errorf("write note %s: %w", data.Filename, err)
	}
	return path, nil
}

// ExportAll précharge toutes les pistes et sauvegarde un transcript par langue.
func ExportAll(ctx context.Context, s *Session, title string, concurrency int, opts ExportOptions) ([]string, error) {
	all, err := s.Prefetch(ctx, concurrency)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, tc := range all {
		tr := subtitles.NewTranscript(title, tc.Track, subtitles.Build(tc.Cues))
		if len(tr.Cues) == 0 {
			continue
		}
		p, err := SaveTranscript(tr, opts)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// CopyTranscript copie le texte brut du transcript dans le presse-papier.
func CopyTranscript(tr subtitles.Transcript) error {
	if err := clipboard.WriteText(tr.Collapsed()); err != nil {
		return fmt.Errorf("copie dans le presse-papier: %w", err)
	}
	return nil
}
