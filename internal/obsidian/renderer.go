package obsidian

import (
	"bytes"
	"fmt"
	"io/fs"
	"sort"
	"text/template"

	"github.com/patrickprogramme/hearlingo/internal/assets"
)

// Renderer exécute les templates de note, parsés une fois à la construction.
type Renderer struct {
	templates *template.Template
}

// NewRendererFromFS parse les templates de fsys correspondant aux patterns.
// Le nom d'un template est le basename de son fichier.
func NewRendererFromFS(fsys fs.FS, patterns ...string) (*Renderer, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fsys est nil")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("aucun template fourni")
	}
	t := template.New("root").Funcs(noteFuncs())
	for _, p := range patterns {
		var err error
		if t, err = t.ParseFS(fsys, p); err != nil {
			return nil, fmt.Errorf("parse pattern %q: %w", p, err)
		}
	}
	return &Renderer{templates: t}, nil
}

// DefaultRenderer utilise les templates embarqués dans le binaire.
func DefaultRenderer() (*Renderer, error) {
	return NewRendererFromFS(assets.Embedded, assets.NoteTemplatePattern)
}

// Render exécute le template tmplName avec data.
func (r *Renderer) Render(tmplName string, data NoteData) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is nil")
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}

// RenderNote rend la note avec le template par défaut.
func (r *Renderer) RenderNote(data NoteData) ([]byte, error) {
	return r.Render(assets.NoteTemplate, data)
}

// TemplateNames retourne les noms des templates parsés, triés.
func (r *Renderer) TemplateNames() []string {
	var names []string
	for _, t := range r.templates.Templates() {
		if n := t.Name(); n != "" && n != "root" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func noteFuncs() template.FuncMap {
	return template.FuncMap{
		"yamlList":   yamlListBlock,
		"quoteBlock": quoteBlockPure,
		"formatCues": formatCuesPure,
		"wikiTags":   wikiTags,
	}
}
