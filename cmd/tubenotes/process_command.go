package main

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"tubenotes/internal/config"
	"tubenotes/internal/logging"
	"tubenotes/internal/pipeline"
	"tubenotes/internal/segment"
	"tubenotes/internal/store"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var languages []string
	var noIndex bool

	cmd := &cobra.Command{
		Use:   "process <url>",
		Short: "Download, segment, and index a video's subtitles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				runCfg := *cfg
				if len(languages) > 0 {
					runCfg.YouTube.Languages = languages
				}
				if noIndex {
					runCfg.Embeddings.Enabled = false
				}

				lock := flock.New(cfg.LockPath())
				locked, err := lock.TryLock()
				if err != nil {
					return fmt.Errorf("acquire processing lock: %w", err)
				}
				if !locked {
					return errors.New("another tubenotes process is already running")
				}
				defer lock.Unlock()

				logger, err := logging.NewFromConfig(&runCfg)
				if err != nil {
					return err
				}

				proc := pipeline.NewProcessor(&runCfg, st, logger)
				session, err := proc.Process(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Processed %q by %s\n", session.Video.Title, session.Video.Author)
				fmt.Fprintf(out, "Blocks: %d  Chunks: %d  Indexed: %s\n\n",
					len(session.Blocks), len(session.Chunks), yesNo(session.Indexed()))
				fmt.Fprint(out, segment.TableOfContents(session.RebuiltBlocks()))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&languages, "language", nil, "Subtitle language preference, highest first (overrides config)")
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "Skip embedding for this run; chat will be unavailable")
	return cmd
}
