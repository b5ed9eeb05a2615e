package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickprogramme/hearlingo/internal/config"
	"github.com/patrickprogramme/hearlingo/internal/obsidian"
	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

type stubUI struct {
	url  string
	err  error
	info []string
}

func (u *stubUI) GetYtURL(ctx context.Context) (string, error) { return u.url, u.err }
func (u *stubUI) PrintInfo(ctx context.Context, s string)      { u.info = append(u.info, s) }
func (u *stubUI) PrintError(ctx context.Context, s string)     {}

func newTestApp(t *testing.T, src *stubSource, ui *stubUI) *App {
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	cfg.SaveInSubdir = false
	return New(cfg, ui, nil, src)
}

func TestResolveURL(t *testing.T) {
	a := newTestApp(t, newStubSource(), &stubUI{url: urlB})
	ctx := context.Background()

	u, err := a.ResolveURL(ctx, urlA)
	require.NoError(t, err)
	assert.Equal(t, urlA, u)

	u, err = a.ResolveURL(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, urlB, u)

	_, err = a.ResolveURL(ctx, "not a url")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestExportOptionsFromConfig(t *testing.T) {
	a := newTestApp(t, newStubSource(), &stubUI{})

	opts, err := a.ExportOptionsFromConfig("")
	require.NoError(t, err)
	assert.Equal(t, model.FormatTXT, opts.Format)
	assert.True(t, opts.Timestamps)

	opts, err = a.ExportOptionsFromConfig("md")
	require.NoError(t, err)
	assert.Equal(t, model.FormatMARKDOWN, opts.Format)

	_, err = a.ExportOptionsFromConfig("pdf")
	assert.Error(t, err)
}

func TestOpenAndSaveTranscript(t *testing.T) {
	src := newStubSource()
	src.add(idA, "en",
		model.Cue{Start: 0, Duration: 2, Text: "hello"},
		model.Cue{Start: 65, Duration: 2, Text: "world"},
	)
	a := newTestApp(t, src, &stubUI{})

	s, err := a.Open(testCtx(t), urlA, "en", player.NewVirtual())
	require.NoError(t, err)

	tr, err := BuildTranscript(s, "Ma vidéo")
	require.NoError(t, err)
	assert.Equal(t, idA, tr.VideoID)

	opts, err := a.ExportOptionsFromConfig("txt")
	require.NoError(t, err)

	path, err := SaveTranscript(tr, opts)
	require.NoError(t, err)
	assert.Equal(t, a.Config().OutputDir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[00:00] hello")
	assert.Contains(t, string(data), "[01:05] world")

	// un second export ne remplace pas le premier
	path2, err := SaveTranscript(tr, opts)
	require.NoError(t, err)
	assert.NotEqual(t, path, path2)
}

func TestBuildTranscript_NoSelection(t *testing.T) {
	s, _, _ := newTestSession(newStubSource())
	_, err := BuildTranscript(s, "")
	assert.ErrorIs(t, err, ErrNoTrackSelected)
}

func TestExportAll_SkipsEmptyTracks(t *testing.T) {
	src := newStubSource()
	src.add(idA, "en", model.Cue{Start: 0, Duration: 1, Text: "hello"})
	src.add(idA, "fr", model.Cue{Start: 0, Duration: 1, Text: "bonjour"})
	src.add(idA, "de")
	a := newTestApp(t, src, &stubUI{})

	s := a.NewSession(testCtx(t), player.NewVirtual())
	_, err := s.Navigate(urlA)
	require.NoError(t, err)

	opts, err := a.ExportOptionsFromConfig("md")
	require.NoError(t, err)

	paths, err := ExportAll(testCtx(t), s, "", 2, opts)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		assert.Equal(t, ".md", filepath.Ext(p))
		assert.FileExists(t, p)
	}
}

func TestSaveNote_InSubdir(t *testing.T) {
	src := newStubSource()
	src.add(idA, "fr", model.Cue{Start: 0, Duration: 2, Text: "bonjour tout le monde"})
	a := newTestApp(t, src, &stubUI{})

	s, err := a.Open(testCtx(t), urlA, "fr", player.NewVirtual())
	require.NoError(t, err)
	tr, err := BuildTranscript(s, "Cours de français")
	require.NoError(t, err)

	r, err := obsidian.DefaultRenderer()
	require.NoError(t, err)

	opts := ExportOptions{OutputDir: t.TempDir(), SaveInSubdir: true, Format: model.FormatMARKDOWN}
	path, err := SaveNote(r, tr, opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.OutputDir, "Cours de français"), filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "video_id: AAAAAAAAAAA")
	assert.Contains(t, string(data), "bonjour tout le monde")
}
