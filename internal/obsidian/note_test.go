package obsidian

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

func testTranscript() subtitles.Transcript {
	track := model.CaptionTrack{LanguageCode: "fr", VideoID: "dQw4w9WgXcQ"}
	return subtitles.NewTranscript("ma vidéo", track, subtitles.Build([]model.Cue{
		{Start: 1, Duration: 2, Text: "bonjour &amp; bienvenue"},
		{Start: 3, Duration: 1, Text: "  "},
		{Start: 3725, Duration: 1, Text: "fin"},
	}))
}

func TestNewNoteData(t *testing.T) {
	n := NewNoteData(testTranscript(), language.French)

	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", n.URL)
	assert.Equal(t, "Ma vidéo", n.Title)
	assert.Equal(t, "French (fr)", n.TrackLine)
	assert.Equal(t, "fr", n.Detected)
	assert.Equal(t, []string{"youtube", "transcript", "lang/fr"}, n.Tags)
	assert.Equal(t, "Ma vidéo [fr] note.md", n.Filename)

	n = NewNoteData(testTranscript(), language.Und)
	assert.Empty(t, n.Detected)
}

func TestRenderNote(t *testing.T) {
	r, err := DefaultRenderer()
	require.NoError(t, err)

	out, err := r.RenderNote(NewNoteData(testTranscript(), language.French))
	require.NoError(t, err)
	s := string(out)

	assert.Contains(t, s, "title: \"Ma vidéo\"\n")
	assert.Contains(t, s, "detected_language: fr\n")
	assert.Contains(t, s, "cues: 3\n")
	assert.Contains(t, s, "tags:\n  - \"youtube\"\n  - \"transcript\"\n  - \"lang/fr\"\n")
	assert.Contains(t, s, "> French (fr)\n")
	assert.Contains(t, s, "#youtube #transcript #lang/fr\n")
	assert.Contains(t, s, "- [00:01](https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=1s) - bonjour & bienvenue\n")
	assert.Contains(t, s, "- [01:02:05](https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=3725s) - fin\n")
}

func TestRenderer_CustomFS(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.tmpl": {Data: []byte(`{{ wikiTags .Tags }}|{{ quoteBlock .TrackLine }}`)},
	}
	r, err := NewRendererFromFS(fsys, "*.tmpl")
	require.NoError(t, err)
	assert.Equal(t, []string{"custom.tmpl"}, r.TemplateNames())

	out, err := r.Render("custom.tmpl", NoteData{
		Tags:      []string{"a", " ", "#b"},
		TrackLine: "une\ndeux\n",
	})
	require.NoError(t, err)
	assert.Equal(t, "#a #b|> une\n> deux", string(out))

	_, err = r.Render("missing.tmpl", NoteData{})
	assert.Error(t, err)
}

func TestRenderer_Errors(t *testing.T) {
	_, err := NewRendererFromFS(nil, "*.tmpl")
	assert.Error(t, err)

	_, err = NewRendererFromFS(fstest.MapFS{})
	assert.Error(t, err)

	_, err = NewRendererFromFS(fstest.MapFS{}, "*.tmpl")
	assert.Error(t, err)
}

func TestYamlListBlock_Empty(t *testing.T) {
	assert.Equal(t, " []", yamlListBlock(nil))
}

func TestFormatCues_NoVideo(t *testing.T) {
	got := formatCuesPure([]model.Cue{{Start: 65, Text: "<b>x</b>"}}, "")
	assert.Equal(t, "- 01:05 - x\n", got)
}
