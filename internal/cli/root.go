package cli

import (
	"time"

	"github.com/alexanderramin/lifestyle/internal/assessment"
	"github.com/alexanderramin/lifestyle/internal/questionnaire"
	"github.com/alexanderramin/lifestyle/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds everything CLI commands need. Setup, when set, runs before any
// command with the --config value and is expected to fill in the rest.
type App struct {
	Questionnaire *questionnaire.Questionnaire
	Recommender   assessment.Recommender
	History       service.HistoryService
	Logger        *zap.Logger

	// NewRecommender builds a recommender for an --endpoint override.
	NewRecommender func(endpoint string) assessment.Recommender

	// SaveHistory records finished assessments through History.
	SaveHistory bool

	Setup         func(configPath string) error
	IsInteractive func() bool
	RunProgram    func(m tea.Model) error
	Now           func() time.Time
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) questionnaire() *questionnaire.Questionnaire {
	if a.Questionnaire == nil {
		a.Questionnaire = questionnaire.Default()
	}
	return a.Questionnaire
}

// recommenderFor returns the recommender to use, honouring an endpoint
// override.
func (a *App) recommenderFor(endpoint string) assessment.Recommender {
	if endpoint != "" && a.NewRecommender != nil {
		return a.NewRecommender(endpoint)
	}
	return a.Recommender
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "lifestyle" command and registers all
// subcommands against the provided App. Without a subcommand it behaves
// like "take".
func NewRootCmd(app *App) *cobra.Command {
	var configPath string
	var opts takeOptions

	root := &cobra.Command{
		Use:           "lifestyle",
		Short:         "Health-promoting lifestyle self-assessment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			return app.Setup(configPath)
		},
		Args: cobra.NoArgs,
		RunE: takeRunE(app, &opts),
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.lifestyle/config.yaml)")
	bindTakeFlags(root.Flags(), &opts)

	root.AddCommand(
		newTakeCmd(app),
		newQuestionsCmd(app),
		newHistoryCmd(app),
	)

	return root
}
