package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patrickprogramme/hearlingo/internal/app"
	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/internal/subtitles"
	"github.com/patrickprogramme/hearlingo/pkg/model"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [url]",
	Short: "Simule une lecture et affiche la synchronisation",
	Long: `Fait avancer un lecteur virtuel de --from à --to par pas de --step secondes
et affiche les changements de cue actif, les sauts de la boucle A/B et l'état du panneau.

Exemples :
  hearlingo simulate https://youtu.be/dQw4w9WgXcQ --to 01:00
  hearlingo simulate --loop-start 00:10 --loop-end 00:20 --to 60
  hearlingo simulate --pause-at 30`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().
		StringP("lang", "l", "", "Langue de la piste (code ou nom affiché)")
	simulateCmd.Flags().
		String("from", "0", "Position de départ (SS ou MM:SS)")
	simulateCmd.Flags().
		String("to", "60", "Position de fin (SS ou MM:SS)")
	simulateCmd.Flags().
		Float64("step", 1, "Pas entre deux ticks, en secondes")
	simulateCmd.Flags().
		String("loop-start", "", "Début de boucle (SS ou MM:SS)")
	simulateCmd.Flags().
		String("loop-end", "", "Fin de boucle (SS ou MM:SS)")
	simulateCmd.Flags().
		String("pause-at", "", "Met la lecture en pause à cette position")
	simulateCmd.Flags().
		Int("max-ticks", 1000, "Nombre maximum de ticks (une boucle ne termine jamais)")
}

// simulation décrit une lecture virtuelle.
type simulation struct {
	From, To  float64
	Step      float64
	LoopStart string
	LoopEnd   string
	PauseAt   float64
	HasPause  bool
	MaxTicks  int
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	lang, _ := flags.GetString("lang")
	sim := simulation{}
	sim.Step, _ = flags.GetFloat64("step")
	sim.LoopStart, _ = flags.GetString("loop-start")
	sim.LoopEnd, _ = flags.GetString("loop-end")
	sim.MaxTicks, _ = flags.GetInt("max-ticks")

	var ok bool
	from, _ := flags.GetString("from")
	if sim.From, ok = model.ParseTimecode(from); !ok {
		return fmt.Errorf("--from invalide %q", from)
	}
	to, _ := flags.GetString("to")
	if sim.To, ok = model.ParseTimecode(to); !ok {
		return fmt.Errorf("--to invalide %q", to)
	}
	if pauseAt, _ := flags.GetString("pause-at"); pauseAt != "" {
		if sim.PauseAt, ok = model.ParseTimecode(pauseAt); !ok {
			return fmt.Errorf("--pause-at invalide %q", pauseAt)
		}
		sim.HasPause = true
	}
	if sim.Step <= 0 {
		return fmt.Errorf("--step doit être positif")
	}

	surface := player.NewVirtual()
	s, err := application.Open(ctx, argAt(args, 0), lang, surface)
	if err != nil {
		return err
	}
	return runSimulation(cmd.OutOrStdout(), s, surface, sim)
}

// runSimulation : une ligne par changement de cue, saut ou état du panneau.
func runSimulation(out io.Writer, s *app.Session, surface *player.Virtual, sim simulation) error {
	if sim.LoopStart != "" || sim.LoopEnd != "" {
		if !s.SubmitLoop(sim.LoopStart, sim.LoopEnd) {
			return fmt.Errorf("boucle invalide : début %q, fin %q", sim.LoopStart, sim.LoopEnd)
		}
		w := s.Loop().Window
		fmt.Fprintf(out, "boucle armée %s\n", describeWindow(w.Start, w.HasStart, w.End, w.HasEnd))
	}
	_, index, err := s.Selected()
	if err != nil {
		return err
	}

	emit := func(ev player.Event) app.Update {
		surface.Apply(ev)
		return s.Handle(ev)
	}

	t := sim.From
	upd := emit(player.Event{Kind: player.EventPlay, Time: t})
	lastActive, lastPanel := -2, upd.PanelOpen

	for tick := 0; tick < sim.MaxTicks && t <= sim.To; tick++ {
		ev := player.Event{Kind: player.EventTick, Time: t}
		if sim.HasPause && t >= sim.PauseAt {
			ev.Kind = player.EventPause
		}
		upd = emit(ev)

		stamp := model.SecondsFromFloat(t).TimestampMMSS()
		if upd.Seeked {
			fmt.Fprintf(out, "[%s] saut vers %s\n", stamp, model.SecondsFromFloat(upd.SeekTo).TimestampMMSS())
		}
		if upd.Active != lastActive {
			lastActive = upd.Active
			if c, ok := index.At(upd.Active); ok {
				fmt.Fprintf(out, "[%s] #%d %s\n", stamp, upd.Active, subtitles.CleanText(c.Text))
			} else {
				fmt.Fprintf(out, "[%s] -\n", stamp)
			}
		}
		if upd.PanelOpen != lastPanel {
			lastPanel = upd.PanelOpen
			fmt.Fprintf(out, "[%s] panneau %s\n", stamp, openClosed(upd.PanelOpen))
		}
		if upd.ScrollTo >= 0 {
			fmt.Fprintf(out, "[%s] défilement vers #%d\n", stamp, upd.ScrollTo)
		}
		if ev.Kind == player.EventPause {
			break
		}
		t = surface.CurrentTime() + sim.Step
	}
	surface.Drain()
	return nil
}

func describeWindow(start float64, hasStart bool, end float64, hasEnd bool) string {
	var b strings.Builder
	b.WriteString("[")
	if hasStart {
		b.WriteString(model.SecondsFromFloat(start).TimestampMMSS())
	} else {
		b.WriteString("-")
	}
	b.WriteString(", ")
	if hasEnd {
		b.WriteString(model.SecondsFromFloat(end).TimestampMMSS())
	} else {
		b.WriteString("-")
	}
	b.WriteString("]")
	return b.String()
}

func openClosed(open bool) string {
	if open {
		return "ouvert"
	}
	return "fermé"
}
