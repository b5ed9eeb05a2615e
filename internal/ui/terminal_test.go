package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetYtURL_FromClipboard(t *testing.T) {
	var out bytes.Buffer
	tui := NewTerminalWith(strings.NewReader(""), &out, &out, func() (string, error) {
		return " https://youtu.be/dQw4w9WgXcQ\n", nil
	})

	url, err := tui.GetYtURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", url)
	assert.Contains(t, out.String(), "presse-papier")
}

func TestGetYtURL_PromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("pas une url\nhttps://www.youtube.com/watch?v=dQw4w9WgXcQ\n")
	tui := NewTerminalWith(in, &out, &out, func() (string, error) {
		return "", errors.New("no clipboard")
	})

	url, err := tui.GetYtURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", url)
	assert.Contains(t, out.String(), "URL invalide")
}

func TestGetYtURL_EOF(t *testing.T) {
	var out bytes.Buffer
	tui := NewTerminalWith(strings.NewReader("nope"), &out, &out, nil)
	_, err := tui.GetYtURL(context.Background())
	assert.ErrorIs(t, err, ErrNoInput)
}
