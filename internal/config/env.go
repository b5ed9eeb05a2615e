package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Variables d'environnement reconnues
const (
	EnvConfigPath      = "HEARLINGO_CONFIG"
	EnvCookie          = "HEARLINGO_COOKIE"
	EnvDefaultLanguage = "HEARLINGO_DEFAULT_LANGUAGE"
	EnvLogLevel        = "HEARLINGO_LOG_LEVEL"
)

// LoadDotEnv charge les fichiers .env donnés (par défaut ./.env) sans écraser
// les variables déjà définies. Un fichier absent n'est pas une erreur.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("lecture de %s impossible : %w", p, err)
		}
	}
	return nil
}

// ApplyEnv surcharge la configuration avec les variables d'environnement non vides.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvCookie)); v != "" {
		c.Fetch.Cookie = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultLanguage)); v != "" {
		c.DefaultLanguage = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return c.Validate()
}
