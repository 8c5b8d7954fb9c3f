package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tubenotes/internal/chat"
	"tubenotes/internal/config"
	"tubenotes/internal/store"
)

func newAskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <url> [question]",
		Short: "Ask questions about a processed video's transcript",
		Long: `Ask answers questions about a processed video using its embedded
transcript chunks. With a question argument it answers once and exits;
without one it starts an interactive session. Type "exit" to leave.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				session, err := loadSession(cmd.Context(), st, args[0])
				if err != nil {
					return err
				}
				if !session.Indexed() {
					return fmt.Errorf("video %s has no embedding index; re-process it with embeddings enabled", session.Video.VideoID)
				}

				completer, err := newLLMClient(cfg)
				if err != nil {
					return err
				}
				embedder, err := newEmbedClient(cfg)
				if err != nil {
					return err
				}
				svc := chat.NewService(completer, embedder, st, cfg.Chat.TopK)

				out := cmd.OutOrStdout()
				if len(args) > 1 {
					question := strings.Join(args[1:], " ")
					answer, err := svc.Ask(cmd.Context(), session.Video.VideoID, question, nil)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, answer.Text)
					return nil
				}

				fmt.Fprintf(out, "Chatting about %q. Type your question, or \"exit\" to quit.\n", session.Video.Title)
				return runChatLoop(cmd, svc, session.Video.VideoID, cfg.Chat.HistoryLimit)
			})
		},
	}
}

func runChatLoop(cmd *cobra.Command, svc *chat.Service, videoID string, historyLimit int) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	var history []chat.Exchange

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return nil
		}

		answer, err := svc.Ask(cmd.Context(), videoID, question, history)
		if err != nil {
			if errors.Is(err, cmd.Context().Err()) {
				return err
			}
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "\n%s\n\n", answer.Text)

		history = append(history, chat.Exchange{Question: question, Answer: answer.Text})
		if historyLimit > 0 && len(history) > historyLimit {
			history = history[len(history)-historyLimit:]
		}
	}
}
