package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/hearlingo/internal/httpapi"
	"github.com/patrickprogramme/hearlingo/internal/player"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve [url]",
	Short: "Démarre l'API HTTP pilotée par le lecteur",
	Long: `Démarre l'API JSON à laquelle un lecteur (overlay navigateur ou autre) envoie
ses événements de lecture. Les sauts et pauses demandés par le moteur sont
renvoyés dans chaque réponse.

Si une URL est donnée, la vidéo est ouverte au démarrage.

Exemples :
  hearlingo serve
  hearlingo serve --addr 127.0.0.1:9000 https://youtu.be/dQw4w9WgXcQ`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().
		String("addr", "", "Adresse d'écoute (défaut : server.addr de la config)")
	serveCmd.Flags().
		StringP("title", "t", "", "Titre utilisé pour /api/transcript")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = application.Config().Server.Addr
	}
	title, _ := cmd.Flags().GetString("title")

	surface := player.NewVirtual()
	session := application.NewSession(ctx, surface)
	if url := argAt(args, 0); url != "" {
		if _, err := session.Navigate(url); err != nil {
			return err
		}
	}

	srv := httpapi.NewServer(session, surface,
		httpapi.WithLogger(logger.SugaredLogger),
		httpapi.WithTitle(title),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Infow("shutting down", "addr", addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
