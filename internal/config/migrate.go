package config

import (
	"fmt"
	"os"
	"time"

	"github.com/patrickprogramme/hearlingo/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// migration fait passer la config de la version v à v+1.
type migration func(cfg *Config) error

// migrations[v] : étape v -> v+1
var migrations = map[int]migration{
	0: migrateCookieToEnv,
}

// 0 -> 1 : un cookie fourni par l'environnement n'est plus recopié dans le fichier
func migrateCookieToEnv(cfg *Config) error {
	if os.Getenv(EnvCookie) != "" {
		cfg.Fetch.Cookie = ""
	}
	return nil
}

// orchestrateConfigUpgrade : sauvegarde, migrations, réécriture du fichier.
// En cas d'échec d'écriture, le contenu d'origine est restauré.
func orchestrateConfigUpgrade(cfg *Config, fromVersion int) error {
	if cfg == nil {
		return fmt.Errorf("config nil lors de la migration")
	}
	path := cfg.configFilePath
	if path == "" {
		return fmt.Errorf("chemin du fichier de configuration inconnu : impossible de faire une sauvegarde")
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("lecture du fichier pour sauvegarde impossible : %w", err)
	}
	backupPath := fmt.Sprintf("%s.bak.v%d.%s", path, fromVersion, time.Now().Format("20060102T150405"))
	if err := fsutil.WriteFileAtomic(backupPath, original, 0o644); err != nil {
		return fmt.Errorf("écriture de la sauvegarde %s impossible : %w", backupPath, err)
	}

	for v := fromVersion; v < CurrentConfigVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return fmt.Errorf("aucune migration définie depuis la version %d", v)
		}
		if err := step(cfg); err != nil {
			return fmt.Errorf("migration %d -> %d : %w", v, v+1, err)
		}
	}
	cfg.ConfigVersion = CurrentConfigVersion
	cfg.normalizeConfig()

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("échec d'encodage YAML de la configuration migrée : %w", err)
	}
	if err := fsutil.WriteFileAtomic(path, b, 0o644); err != nil {
		_ = fsutil.WriteFileAtomic(path, original, 0o644)
		return fmt.Errorf("échec d'écriture du fichier de configuration migré %s : %w", path, err)
	}

	fmt.Printf("info : configuration mise à jour de la version %d à %d (sauvegarde : %s)\n", fromVersion, CurrentConfigVersion, backupPath)
	return nil
}
