package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/lifestyle/internal/cli/formatter"
	"github.com/alexanderramin/lifestyle/internal/repository"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 10

var errHistoryDisabled = errors.New("assessment history is not available")

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errHistoryDisabled
			}
			records, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("listing assessments: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(records, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Number of assessments to show (0 for all)")

	cmd.AddCommand(
		newHistoryShowCmd(app),
		newHistoryTrendCmd(app),
	)

	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one past assessment in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errHistoryDisabled
			}
			rec, err := app.History.Get(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("assessment %q not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("loading assessment: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecord(rec, app.questionnaire(), app.now()))
			return nil
		},
	}
}

func newHistoryTrendCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show which areas were weakest across recent assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errHistoryDisabled
			}
			ctx := cmd.Context()
			counts, err := app.History.WeakDomainTrend(ctx, limit)
			if err != nil {
				return fmt.Errorf("computing trend: %w", err)
			}
			records, err := app.History.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("listing assessments: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrend(counts, len(records)))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Number of recent assessments to include (0 for all)")

	return cmd
}
