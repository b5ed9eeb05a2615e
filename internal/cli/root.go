package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/hearlingo/internal/app"
	"github.com/patrickprogramme/hearlingo/internal/config"
	"github.com/patrickprogramme/hearlingo/internal/logging"
	"github.com/patrickprogramme/hearlingo/internal/ui"
)

var (
	configPath  string
	verbose     bool
	logger      *logging.Logger
	application *app.App
)

var rootCmd = &cobra.Command{
	Use:   "hearlingo",
	Short: "Sous-titres YouTube synchronisés avec la lecture",
	Long: `HearLingo récupère les sous-titres d'une vidéo YouTube, les synchronise
avec la position de lecture et permet de répéter un passage en boucle (A/B).

L'URL est lue en argument, sinon dans le presse-papier, sinon demandée.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute lance la commande demandée ; SIGINT/SIGTERM annulent le contexte.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erreur : %s\n", app.Describe(err))
		if logger != nil {
			logger.Debugw("command failed", "error", err)
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Chemin du fichier de configuration (défaut : à côté de l'exécutable)")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Logs détaillés")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(resolveConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return fmt.Errorf("config env: %w", err)
	}

	logger, err = logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Verbose:    verbose,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return err
	}
	logger.Debugw("config loaded", "path", cfg.Path(), "default_language", cfg.DefaultLanguage)

	application = app.New(cfg, ui.NewTerminal(), logger.SugaredLogger, nil)
	return nil
}

// resolveConfigPath : flag > HEARLINGO_CONFIG > à côté de l'exécutable
func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(config.EnvConfigPath); env != "" {
		return env
	}
	exePath, err := os.Executable()
	if err != nil {
		return config.DefaultFileName
	}
	return filepath.Join(filepath.Dir(exePath), config.DefaultFileName)
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
