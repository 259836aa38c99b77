package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/lifestyle/internal/assessment"
	"github.com/alexanderramin/lifestyle/internal/cli"
	"github.com/alexanderramin/lifestyle/internal/config"
	"github.com/alexanderramin/lifestyle/internal/db"
	"github.com/alexanderramin/lifestyle/internal/logging"
	"github.com/alexanderramin/lifestyle/internal/questionnaire"
	"github.com/alexanderramin/lifestyle/internal/recommend"
	"github.com/alexanderramin/lifestyle/internal/repository"
	"github.com/alexanderramin/lifestyle/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{}
	var cleanup []func()
	defer func() {
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()

	// Wiring waits for the --config flag, so it runs from the root command.
	app.Setup = func(configPath string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		logger, err := logging.New(logging.Options{Path: cfg.LogPath, Level: cfg.LogLevel})
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		cleanup = append(cleanup, func() { _ = logger.Sync() })

		q, err := questionnaire.Load(cfg.QuestionsPath)
		if err != nil {
			return fmt.Errorf("loading questions: %w", err)
		}

		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		cleanup = append(cleanup, func() { database.Close() })

		// Wire history
		assessmentRepo := repository.NewSQLiteAssessmentRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)
		history := service.NewHistoryService(assessmentRepo, uow, service.NewLogUseCaseObserver(logger))

		// Wire recommendation client
		var observer recommend.Observer = recommend.NoopObserver{}
		if cfg.LogCalls {
			observer = recommend.NewLogObserver(logger)
		}
		newRecommender := func(endpoint string) assessment.Recommender {
			rc := cfg.Recommend()
			rc.Endpoint = endpoint
			return recommend.NewClient(rc, observer)
		}

		app.Questionnaire = q
		app.Recommender = recommend.NewClient(cfg.Recommend(), observer)
		app.NewRecommender = newRecommender
		app.History = history
		app.Logger = logger
		app.SaveHistory = cfg.SaveHistory

		logger.Debug("configured",
			zap.String("endpoint", cfg.RecommendationEndpoint),
			zap.String("db_path", cfg.DBPath),
			zap.Bool("save_history", cfg.SaveHistory))
		return nil
	}

	// Detect interactive terminal for the assessment form.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
