package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/patrickprogramme/hearlingo/internal/app"
	"github.com/patrickprogramme/hearlingo/internal/obsidian"
	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/internal/subtitles"
)

var transcriptCmd = &cobra.Command{
	Use:   "transcript [url]",
	Short: "Affiche ou sauvegarde le transcript d'une piste",
	Long: `Affiche le transcript de la piste sélectionnée (langue par défaut, sinon --lang).

Avec --save, le transcript est écrit dans output_dir (un sous-dossier par vidéo si
save_in_subdir est actif). Avec --all, toutes les pistes sont téléchargées en parallèle
et sauvegardées.

Exemples :
  hearlingo transcript https://youtu.be/dQw4w9WgXcQ
  hearlingo transcript --lang fr --timestamps=false
  hearlingo transcript --save --format md --title "Ma vidéo"
  hearlingo transcript --note --title "Ma vidéo"
  hearlingo transcript --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTranscript,
}

func init() {
	rootCmd.AddCommand(transcriptCmd)

	transcriptCmd.Flags().
		StringP("lang", "l", "", "Langue de la piste (code ou nom affiché)")
	transcriptCmd.Flags().
		StringP("format", "f", "", "Format de sortie (txt, md) ; défaut : config")
	transcriptCmd.Flags().
		Bool("timestamps", true, "Préfixe [MM:SS] en txt ; défaut : config")
	transcriptCmd.Flags().
		StringP("title", "t", "", "Titre du transcript (défaut : identifiant vidéo)")
	transcriptCmd.Flags().
		BoolP("save", "s", false, "Écrit le transcript dans output_dir")
	transcriptCmd.Flags().
		Bool("overwrite", false, "Remplace un fichier existant au lieu de numéroter")
	transcriptCmd.Flags().
		BoolP("copy", "c", false, "Copie le texte dans le presse-papier")
	transcriptCmd.Flags().
		BoolP("note", "n", false, "Écrit une note Obsidian (frontmatter + cues horodatés)")
	transcriptCmd.Flags().
		Bool("all", false, "Sauvegarde toutes les pistes de la vidéo")
}

func runTranscript(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	lang, _ := cmd.Flags().GetString("lang")
	format, _ := cmd.Flags().GetString("format")
	title, _ := cmd.Flags().GetString("title")
	save, _ := cmd.Flags().GetBool("save")
	overwrite, _ := cmd.Flags().GetBool("overwrite")
	copyText, _ := cmd.Flags().GetBool("copy")
	all, _ := cmd.Flags().GetBool("all")
	note, _ := cmd.Flags().GetBool("note")

	opts, err := application.ExportOptionsFromConfig(format)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timestamps") {
		opts.Timestamps, _ = cmd.Flags().GetBool("timestamps")
	}
	opts.Overwrite = overwrite

	url, err := application.ResolveURL(ctx, argAt(args, 0))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if all {
		s := application.NewSession(ctx, player.NewVirtual())
		if _, err := s.Navigate(url); err != nil {
			return err
		}
		paths, err := app.ExportAll(ctx, s, title, application.Config().PrefetchConcurrency, opts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(out, p)
		}
		logger.Infow("transcripts saved", "video", s.Snapshot().VideoID, "count", len(paths))
		return nil
	}

	s, err := application.Open(ctx, url, lang, player.NewVirtual())
	if err != nil {
		return err
	}
	tr, err := app.BuildTranscript(s, title)
	if err != nil {
		return err
	}

	if detected := subtitles.DetectLanguage(tr.Cues); detected != language.Und {
		logger.Debugw("language detected", "track", tr.Track.LanguageCode, "detected", detected.String())
	}

	switch {
	case note:
		r, err := obsidian.DefaultRenderer()
		if err != nil {
			return fmt.Errorf("impossible de construire le renderer: %w", err)
		}
		path, err := app.SaveNote(r, tr, opts)
		if err != nil {
			return err
		}
		application.UI().PrintInfo(ctx, "Note écrite : "+path)
	case save:
		path, err := app.SaveTranscript(tr, opts)
		if err != nil {
			return err
		}
		application.UI().PrintInfo(ctx, "Transcript écrit : "+path)
	default:
		data, err := tr.Render(opts.Format, opts.Timestamps)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}

	if copyText {
		if err := app.CopyTranscript(tr); err != nil {
			return err
		}
		application.UI().PrintInfo(ctx, "Transcript copié dans le presse-papier.")
	}
	return nil
}
