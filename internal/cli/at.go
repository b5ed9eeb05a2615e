package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

var atCmd = &cobra.Command{
	Use:   "at [url] <temps>",
	Short: "Affiche le cue actif à un instant donné",
	Long: `Affiche le cue actif à l'instant donné (SS ou MM:SS).

Exemples :
  hearlingo at https://youtu.be/dQw4w9WgXcQ 01:05
  hearlingo at 42 --lang fr`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)

	atCmd.Flags().
		StringP("lang", "l", "", "Langue de la piste (code ou nom affiché)")
}

func runAt(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lang, _ := cmd.Flags().GetString("lang")

	urlArg, timeArg := "", args[0]
	if len(args) == 2 {
		urlArg, timeArg = args[0], args[1]
	}
	t, ok := model.ParseTimecode(timeArg)
	if !ok {
		return fmt.Errorf("temps invalide %q : attendu SS ou MM:SS", timeArg)
	}

	surface := player.NewVirtual()
	s, err := application.Open(ctx, urlArg, lang, surface)
	if err != nil {
		return err
	}
	surface.Apply(player.Event{Kind: player.EventTick, Time: t})

	out := cmd.OutOrStdout()
	stamp := model.SecondsFromFloat(t).TimestampMMSS()
	c, i, ok := s.Active()
	if !ok {
		fmt.Fprintf(out, "Aucun cue à %s\n", stamp)
		return nil
	}
	fmt.Fprintf(out, "#%d [%s] %s\n", i, model.SecondsFromFloat(c.Start).TimestampMMSS(), subtitles.CleanText(c.Text))
	return nil
}
