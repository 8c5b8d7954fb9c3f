package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tubenotes/internal/config"
	"tubenotes/internal/store"
	"tubenotes/internal/translate"
)

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "translate <url> <language>",
		Short: "Translate a processed video's subtitles",
		Long: `Translate renders the stored subtitle track into another language as a
bilingual markdown transcript. Run "tubenotes languages" for the list of
supported language codes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				session, err := loadSession(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				if len(session.Cues) == 0 {
					return fmt.Errorf("video %s has no stored subtitles; re-process it first", session.Video.VideoID)
				}

				completer, err := newLLMClient(cfg)
				if err != nil {
					return err
				}
				svc := translate.NewService(completer, cfg.Translation.BatchSize)

				translated, err := svc.Translate(cmd.Context(), session.Cues, session.Video.Language, args[1])
				if err != nil {
					return err
				}
				markdown := translate.FormatBilingual(translated)

				if outputPath != "" {
					if err := os.WriteFile(outputPath, []byte(markdown), 0o644); err != nil {
						return fmt.Errorf("write translation: %w", err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote translation to %s\n", outputPath)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), markdown)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the bilingual markdown to a file")
	return cmd
}
