package cli

import (
	"fmt"

	"github.com/alexanderramin/lifestyle/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newQuestionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "List the assessment questions and answer scale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatQuestions(app.questionnaire()))
			return nil
		},
	}
}
