package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tubenotes/internal/config"
	"tubenotes/internal/store"
	"tubenotes/internal/youtube"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "List processed videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				videos, err := st.ListSessions(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(videos) == 0 {
					fmt.Fprintln(out, "No processed videos yet.")
					return nil
				}

				rows := make([][]string, 0, len(videos))
				for _, video := range videos {
					rows = append(rows, []string{
						video.VideoID,
						video.Title,
						video.Author,
						video.Language,
						yesNo(video.HasChapters),
						video.UpdatedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Title", "Author", "Lang", "Chapters", "Updated"},
					rows,
				))
				return nil
			})
		},
	}

	sessionsCmd.AddCommand(newSessionsRemoveCommand(ctx))
	return sessionsCmd
}

func newSessionsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <url>",
		Short: "Delete a processed video and its index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				videoID, err := youtube.ExtractVideoID(args[0])
				if err != nil {
					return err
				}
				video, err := st.GetVideo(cmd.Context(), videoID)
				if err != nil {
					return err
				}
				if video == nil {
					return fmt.Errorf("video %s is not in the store", videoID)
				}
				if err := st.Remove(cmd.Context(), videoID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q (%s)\n", video.Title, videoID)
				return nil
			})
		},
	}
}
