package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubenotes/internal/config"
	"tubenotes/internal/segment"
	"tubenotes/internal/store"
	"tubenotes/internal/timeutil"
)

func newBlockCommand(ctx *commandContext) *cobra.Command {
	blockCmd := &cobra.Command{
		Use:   "block",
		Short: "Inspect individual transcript blocks",
	}
	blockCmd.AddCommand(newBlockShowCommand(ctx))
	blockCmd.AddCommand(newBlockContentCommand(ctx))
	return blockCmd
}

func newBlockShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <url> <index>",
		Short: "Preview a block's title, time range, and excerpt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				session, err := loadSession(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				preview, err := segment.LookupBlock(session.RebuiltBlocks(), args[1])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Block %d: %s\n", preview.Index, preview.Title)
				fmt.Fprintf(out, "Time: %s - %s  Cues: %d\n\n",
					timeutil.FormatTime(preview.Start), timeutil.FormatTime(preview.End), preview.CueCount)
				fmt.Fprintln(out, preview.Excerpt)
				return nil
			})
		},
	}
}

func newBlockContentCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "content <url> <index>",
		Short: "Print a block's full timestamped transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				session, err := loadSession(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				content, err := segment.FullContent(session.RebuiltBlocks(), args[1])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			})
		},
	}
}
