package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patrickprogramme/hearlingo/internal/clipboard"
	"github.com/patrickprogramme/hearlingo/internal/yt"
)

// ErrNoInput : l'entrée standard est fermée avant qu'une URL valide soit saisie.
var ErrNoInput = errors.New("aucune URL saisie")

type terminalUI struct {
	reader   *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	readClip func() (string, error)
}

func NewTerminal() Interface {
	return NewTerminalWith(os.Stdin, os.Stdout, os.Stderr, clipboard.ReadText)
}

// NewTerminalWith permet d'injecter les flux et la lecture du presse-papier (tests).
func NewTerminalWith(in io.Reader, out, errOut io.Writer, readClip func() (string, error)) Interface {
	return &terminalUI{
		reader:   bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		readClip: readClip,
	}
}

func (t *terminalUI) GetYtURL(ctx context.Context) (string, error) {
	// 1) clipboard
	if t.readClip != nil {
		if clip, err := t.readClip(); err == nil {
			clip = strings.TrimSpace(clip)
			if yt.IsYouTubeURL(clip) {
				t.PrintInfo(ctx, fmt.Sprintf("Utilisation de l'URL depuis le presse-papier: %s", clip))
				return clip, nil
			}
		}
	}
	// 2) prompt
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(t.out, "Entrez l'URL d'une vidéo Youtube: ")
		input, err := t.reader.ReadString('\n')
		url := strings.TrimSpace(input)
		if yt.IsYouTubeURL(url) {
			return url, nil
		}
		if err != nil {
			return "", ErrNoInput
		}
		fmt.Fprintln(t.out, "❌ URL invalide. Essayez à nouveau.")
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}
