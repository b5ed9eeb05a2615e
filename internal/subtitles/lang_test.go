package subtitles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

func TestDetectLanguage(t *testing.T) {
	cues := []model.Cue{
		{Text: "Bonjour à tous, aujourd'hui nous allons parler de la cuisine française et de ses traditions."},
		{Text: "Nous commençons par une recette très simple que vous pouvez préparer chez vous."},
		{Text: ""},
	}
	assert.Equal(t, language.French, DetectLanguage(cues))
}

func TestDetectLanguage_NoText(t *testing.T) {
	assert.Equal(t, language.Und, DetectLanguage(nil))
	assert.Equal(t, language.Und, DetectLanguage([]model.Cue{{Text: "  "}}))
}
