package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubenotes/internal/config"
	"tubenotes/internal/segment"
	"tubenotes/internal/store"
)

func newTocCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toc <url>",
		Short: "Show the table of contents for a processed video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				session, err := loadSession(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s by %s\n\n", session.Video.Title, session.Video.Author)
				fmt.Fprint(out, segment.TableOfContents(session.RebuiltBlocks()))
				return nil
			})
		},
	}
}
