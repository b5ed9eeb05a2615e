package config

import (
	"fmt"
	"net"
	"net/url"

	"golang.org/x/text/language"

	"github.com/patrickprogramme/hearlingo/pkg/model"
)

// Validate vérifie les valeurs qui ne peuvent pas être corrigées par normalisation.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config nil")
	}
	if _, err := language.Parse(c.DefaultLanguage); err != nil {
		return fmt.Errorf("default_language %q n'est pas un code de langue valide : %w", c.DefaultLanguage, err)
	}
	if _, err := model.ParseFormat(c.TranscriptFormat); err != nil {
		return fmt.Errorf("transcript_format : %w", err)
	}
	if c.Fetch.BaseURL != "" {
		if u, err := url.Parse(c.Fetch.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("fetch.base_url %q n'est pas une URL absolue", c.Fetch.BaseURL)
		}
	}
	if c.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
			return fmt.Errorf("server.addr %q : %w", c.Server.Addr, err)
		}
	}
	return nil
}
