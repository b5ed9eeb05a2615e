package yt

import (
	"encoding/xml"
	"strings"
)

// captionsFragment est l'objet JSON délimité par les marqueurs dans la page watch.
type captionsFragment struct {
	Renderer *struct {
		CaptionTracks []rawCaptionTrack `json:"captionTracks"`
	} `json:"playerCaptionsTracklistRenderer"`
}

type rawCaptionTrack struct {
	BaseURL      string  `json:"baseUrl"`
	VssID        string  `json:"vssId"`
	LanguageCode string  `json:"languageCode"`
	Kind         string  `json:"kind"`
	Name         rawName `json:"name"`
}

// rawName : YouTube envoie soit simpleText, soit une liste de runs.
type rawName struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

// rawTranscript : document <transcript><text start=".." dur="..">...</text></transcript>.
// Les attributs sont gardés en texte : la conversion tolérante est faite au parsing.
type rawTranscript struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []rawText `xml:"text"`
}

type rawText struct {
	Start string
	Dur   string
	Body  string
}

// UnmarshalXML garde le texte des éléments imbriqués (<font>, <i>...) :
// Body contient tout le texte du nœud, balises retirées.
func (t *rawText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "start":
			t.Start = a.Value
		case "dur":
			t.Dur = a.Value
		}
	}

	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tk := tok.(type) {
		case xml.CharData:
			b.Write(tk)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				t.Body = b.String()
				return nil
			}
			depth--
		}
	}
}
