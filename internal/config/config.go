package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/hearlingo/internal/assets"
	"github.com/patrickprogramme/hearlingo/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const (
	CurrentConfigVersion = 1
	DefaultFileName      = "hearlingo.yaml"
)

// FetchConfig : paramètres des requêtes vers YouTube
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	MaxBytes       int64         `yaml:"max_bytes"`
	UserAgent      string        `yaml:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language"`
	Cookie         string        `yaml:"cookie"`
	BaseURL        string        `yaml:"base_url"`
}

// LogConfig : niveau et fichier tournant optionnel
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// struct pour les paramètres de configuration
type Config struct {
	// Sélection de piste
	DefaultLanguage string `yaml:"default_language"`

	// Export
	OutputDir        string `yaml:"output_dir"`
	SaveInSubdir     bool   `yaml:"save_in_subdir"`
	TranscriptFormat string `yaml:"transcript_format"`
	Timestamps       bool   `yaml:"timestamps"`

	PrefetchConcurrency int `yaml:"prefetch_concurrency"`

	Fetch FetchConfig `yaml:"fetch"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log LogConfig `yaml:"log"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.DefaultLanguage = "en"

	c.OutputDir = "."
	c.SaveInSubdir = true
	c.TranscriptFormat = "txt"
	c.Timestamps = true

	c.PrefetchConcurrency = 3

	c.Fetch.Timeout = 15 * time.Second
	c.Fetch.MaxBytes = 10_000_000
	c.Fetch.UserAgent = "HearLingo/1.0"
	c.Fetch.AcceptLanguage = "en-US,en;q=0.8"
	c.Fetch.BaseURL = "https://www.youtube.com"

	c.Server.Addr = "127.0.0.1:8787"

	c.Log.Level = "info"
	c.Log.MaxSizeMB = 10
	c.Log.MaxBackups = 3
	c.Log.MaxAgeDays = 28

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Default retourne la configuration par défaut, sans fichier.
func Default() *Config {
	c := defaultConfig()
	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	// si le fichier n'existe pas -> essayer de créer à partir de l'asset embarqué
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// sans config_version, le fichier est considéré en version 0
	cfg.ConfigVersion = 0
	// On déserialise dans cfg initialisé : les champs absents conservent les valeurs par défaut.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	// gestion de version : si le fichier est plus ancien -> orchestrer la mise à jour
	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		cfg.normalizeConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration %s invalide : %w", path, err)
	}

	return cfg, nil
}

// Path retourne le chemin du fichier chargé (vide pour Default()).
func (c *Config) Path() string {
	return c.configFilePath
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("échec mkdir pour la configuration %s : %w", filepath.Dir(dstPath), err)
	}

	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}

	fmt.Printf("info : fichier de configuration par défaut créé : %s\n", dstPath)
	return nil
}

func (c *Config) normalizeConfig() {
	c.OutputDir = filepath.Clean(c.OutputDir)

	c.DefaultLanguage = strings.TrimSpace(c.DefaultLanguage)
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "en"
	}

	c.TranscriptFormat = strings.TrimSpace(strings.ToLower(c.TranscriptFormat))
	if c.TranscriptFormat == "" {
		c.TranscriptFormat = "txt"
	}

	if c.PrefetchConcurrency <= 0 {
		c.PrefetchConcurrency = 1
	}

	c.Fetch.Cookie = strings.TrimSpace(c.Fetch.Cookie)
	c.Fetch.BaseURL = strings.TrimRight(strings.TrimSpace(c.Fetch.BaseURL), "/")
	c.Log.Level = strings.TrimSpace(strings.ToLower(c.Log.Level))
	c.Server.Addr = strings.TrimSpace(c.Server.Addr)
}
