package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tubenotes/internal/translate"
)

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "languages",
		Short:       "List supported translation languages",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, 8)
			for _, lang := range translate.Languages() {
				rows = append(rows, []string{lang.Code, lang.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Language"}, rows))
			return nil
		},
	}
}
