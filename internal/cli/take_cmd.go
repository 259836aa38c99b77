package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/lifestyle/internal/assessment"
	"github.com/alexanderramin/lifestyle/internal/cli/formatter"
	"github.com/alexanderramin/lifestyle/internal/domain"
	"github.com/alexanderramin/lifestyle/internal/questionnaire"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// takeOptions are the flags shared by "take" and the bare root command.
type takeOptions struct {
	answers  string
	endpoint string
	noSave   bool
}

func bindTakeFlags(fs *pflag.FlagSet, o *takeOptions) {
	fs.StringVar(&o.answers, "answers", "", "Comma-separated answers, one per question (e.g. 1,2,3,4,1,2,3,4)")
	fs.StringVar(&o.endpoint, "endpoint", "", "Recommendation endpoint URL (overrides config)")
	fs.BoolVar(&o.noSave, "no-save", false, "Do not record this assessment in history")
}

func newTakeCmd(app *App) *cobra.Command {
	var opts takeOptions

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Take the lifestyle assessment",
		Long: `Take the lifestyle assessment.

Runs an interactive form when stdin is a terminal. With --answers the
assessment runs without prompts, one value (1-4) per question in order.`,
		Args: cobra.NoArgs,
		RunE: takeRunE(app, &opts),
	}
	bindTakeFlags(cmd.Flags(), &opts)

	return cmd
}

func takeRunE(app *App, opts *takeOptions) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		r := app.recommenderFor(opts.endpoint)
		if r == nil {
			return errors.New("no recommendation client configured")
		}
		save := app.SaveHistory && !opts.noSave

		if opts.answers != "" {
			responses, err := parseAnswers(app.questionnaire(), opts.answers)
			if err != nil {
				return err
			}
			return runTake(cmd.Context(), app, r, responses, save, cmd.OutOrStdout(), cmd.ErrOrStderr())
		}

		if !app.interactive() {
			return fmt.Errorf("stdin is not a terminal: pass --answers with %d comma-separated values from 1 to 4",
				app.questionnaire().Len())
		}
		return app.runProgram(newAssessmentModel(app, r, save))
	}
}

// parseAnswers maps a comma-separated list of option values onto the
// questions in order.
func parseAnswers(q *questionnaire.Questionnaire, s string) (domain.ResponseMap, error) {
	parts := strings.Split(s, ",")
	if len(parts) != q.Len() {
		return nil, fmt.Errorf("--answers: got %d values, want %d", len(parts), q.Len())
	}

	responses := make(domain.ResponseMap, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || !q.ValidValue(v) {
			return nil, fmt.Errorf("--answers: value %d is %q, want one of %s", i+1, strings.TrimSpace(p), validValues(q))
		}
		responses[q.Questions[i].ID] = v
	}
	return responses, nil
}

func validValues(q *questionnaire.Questionnaire) string {
	vals := make([]string, len(q.Options))
	for i, o := range q.Options {
		vals[i] = strconv.Itoa(o.Value)
	}
	return strings.Join(vals, ", ")
}

// runTake scores responses, fetches recommendations when needed and prints
// the result.
func runTake(ctx context.Context, app *App, r assessment.Recommender, responses domain.ResponseMap, save bool, out, errOut io.Writer) error {
	ctrl := assessment.NewController(app.questionnaire(), app.logger())
	for id, v := range responses {
		ctrl.RecordAnswer(id, v)
	}

	sub, ok := ctrl.Begin()
	if !ok {
		return errors.New("assessment is incomplete")
	}
	if sub.NeedsFetch() {
		stop := func() {}
		if app.interactive() {
			stop = formatter.StartSpinner(errOut, formatter.LoadingText)
		}
		recs, err := r.Recommend(ctx, sub.Domains)
		stop()
		ctrl.Complete(sub, recs, err)
	}

	fmt.Fprint(out, formatter.FormatResult(resultView(ctrl, "")))

	if save && app.History != nil {
		rec := newRecord(ctrl, app.now())
		if err := app.History.Record(ctx, rec); err != nil {
			app.logger().Warn("recording assessment failed", zap.Error(err))
			return nil
		}
		fmt.Fprintf(out, "\n%s\n", formatter.Dim("Saved as "+rec.ID))
	}
	return nil
}

func resultView(ctrl *assessment.Controller, spin string) formatter.ResultView {
	result := ctrl.Result()
	return formatter.ResultView{
		Score:           result.TotalScore,
		MaxScore:        ctrl.MaxScore(),
		Category:        result.Category,
		WeakDomains:     result.WeakDomains,
		Loading:         ctrl.Loading(),
		Spinner:         spin,
		Error:           ctrl.ErrorMessage(),
		Recommendations: result.Recommendations,
	}
}

// newRecord snapshots a finished controller for history.
func newRecord(ctrl *assessment.Controller, takenAt time.Time) *domain.AssessmentRecord {
	return &domain.AssessmentRecord{
		TakenAt:             takenAt,
		Responses:           ctrl.Responses(),
		Result:              ctrl.Result(),
		MaxScore:            ctrl.MaxScore(),
		RecommendationError: ctrl.ErrorMessage(),
	}
}
