package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/internal/trackcache"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks [url]",
	Short: "Liste les pistes de sous-titres d'une vidéo",
	Long: `Liste les pistes de sous-titres manuelles d'une vidéo YouTube.
La piste sélectionnée par défaut est marquée d'une étoile.

Exemples :
  hearlingo tracks https://www.youtube.com/watch?v=dQw4w9WgXcQ
  hearlingo tracks`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTracks,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}

func runTracks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	url, err := application.ResolveURL(ctx, argAt(args, 0))
	if err != nil {
		return err
	}

	s := application.NewSession(ctx, player.NewVirtual())
	id, err := s.Navigate(url)
	if err != nil {
		return err
	}
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return err
	}

	def, _ := trackcache.DefaultTrack(tracks, application.Config().DefaultLanguage)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Vidéo %s : %d piste(s)\n", id, len(tracks))
	for _, t := range tracks {
		mark := " "
		if t.SourceURL == def.SourceURL {
			mark = "*"
		}
		fmt.Fprintf(out, "%s %-8s %s\n", mark, t.LanguageCode, t.DisplayName)
	}
	return nil
}
