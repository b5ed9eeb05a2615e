package assets

import "embed"

//go:embed hearlingo.example.yaml
//go:embed templates/*.tmpl
var Embedded embed.FS

// Nom de l'asset de config par défaut (chemin DANS Embedded)
const DefaultConfigAsset = "hearlingo.example.yaml"

// NoteTemplatePattern : templates de note, relatifs à Embedded.
const NoteTemplatePattern = "templates/*.tmpl"

// NoteTemplate est le nom (basename) du template de note Obsidian.
const NoteTemplate = "obsidian_note.md.tmpl"
