package cli

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/lifestyle/internal/assessment"
	"github.com/alexanderramin/lifestyle/internal/domain"
	"github.com/alexanderramin/lifestyle/internal/teatest"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecommender answers instantly with a canned outcome.
type fakeRecommender struct {
	mu    sync.Mutex
	calls [][]string
	recs  []string
	err   error
}

func (f *fakeRecommender) Recommend(_ context.Context, domains []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), domains...))
	return f.recs, f.err
}

func (f *fakeRecommender) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

// blockingRecommender never answers until its context is cancelled.
type blockingRecommender struct{}

func (blockingRecommender) Recommend(ctx context.Context, _ []string) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// TestDriver wraps teatest.Driver with access to the assessment model.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the assessment model for app and r and drains Init.
// Spinner ticks are dropped so a long fetch does not keep the driver busy.
func NewTestDriver(t *testing.T, app *App, r assessment.Recommender) *TestDriver {
	t.Helper()
	m := newAssessmentModel(app, r, app.SaveHistory)
	d := teatest.New(t, m,
		teatest.WithSize(100, 40),
		teatest.WithCmdTimeout(200*time.Millisecond),
		teatest.WithSkip(func(msg tea.Msg) bool {
			_, ok := msg.(spinner.TickMsg)
			return ok
		}),
	)
	d.DrainInit()
	t.Cleanup(func() { m.cancel() })
	return &TestDriver{Driver: d}
}

func (d *TestDriver) model() *assessmentModel {
	return d.Model.(*assessmentModel)
}

func (d *TestDriver) ctrl() *assessment.Controller {
	return d.model().ctrl
}

// AnswerAll picks the option offset steps below the first on every question.
func (d *TestDriver) AnswerAll(offset int) {
	d.T.Helper()
	for range d.ctrl().Questionnaire().Questions {
		d.PressDownN(offset)
		d.PressEnter()
	}
}

func (d *TestDriver) PlainView() string {
	return stripANSI(d.View())
}

func TestTUI_StartsOnForm(t *testing.T) {
	d := NewTestDriver(t, testApp(t), &fakeRecommender{})

	view := d.PlainView()
	assert.Contains(t, view, "HEALTH-PROMOTING LIFESTYLE ASSESSMENT")
	assert.Contains(t, view, "Balance time between work and play")
	assert.Contains(t, view, "Please Answer All Questions")
	assert.Equal(t, assessment.PhaseAnswering, d.ctrl().Phase())
}

func TestTUI_AllNeverShowsRecommendations(t *testing.T) {
	r := &fakeRecommender{recs: []string{"Sleep eight hours", "Walk after lunch"}}
	d := NewTestDriver(t, testApp(t), r)

	d.AnswerAll(0)

	require.Equal(t, assessment.PhaseResultsReady, d.ctrl().Phase())
	assert.Equal(t, [][]string{allDomains}, r.Calls())

	view := d.PlainView()
	assert.Contains(t, view, "Your Lifestyle Assessment Result")
	assert.Contains(t, view, "Score: 8 / 32")
	assert.Contains(t, view, "Category: Poor")
	assert.Contains(t, view, "Personalized Recommendations for You:")
	assert.Contains(t, view, "• Sleep eight hours")
	assert.Contains(t, view, "• Walk after lunch")
	assert.NotContains(t, view, "Generating personalized advice...")
}

func TestTUI_AllRoutinelySkipsFetch(t *testing.T) {
	r := &fakeRecommender{}
	d := NewTestDriver(t, testApp(t), r)

	d.AnswerAll(3)

	require.Equal(t, assessment.PhaseResultsReady, d.ctrl().Phase())
	assert.Empty(t, r.Calls())

	view := d.PlainView()
	assert.Contains(t, view, "Score: 32 / 32")
	assert.Contains(t, view, "Category: Excellent")
	assert.Contains(t, view, assessment.Affirmation)
}

func TestTUI_FetchErrorKeepsScore(t *testing.T) {
	r := &fakeRecommender{err: errors.New("connection refused")}
	d := NewTestDriver(t, testApp(t), r)

	d.AnswerAll(0)

	require.Equal(t, assessment.PhaseResultsWithError, d.ctrl().Phase())
	assert.False(t, d.ctrl().Loading())

	view := d.PlainView()
	assert.Contains(t, view, "Score: 8 / 32")
	assert.Contains(t, view, assessment.FetchFailedMessage)
	assert.NotContains(t, view, "Personalized Recommendations for You:")
}

func TestTUI_ShowsLoadingWhileFetching(t *testing.T) {
	d := NewTestDriver(t, testApp(t), blockingRecommender{})

	d.AnswerAll(0)

	require.Equal(t, assessment.PhaseSubmitting, d.ctrl().Phase())
	assert.True(t, d.ctrl().Loading())

	view := d.PlainView()
	assert.Contains(t, view, "Score: 8 / 32")
	assert.Contains(t, view, "Category: Poor")
	assert.Contains(t, view, "Generating personalized advice...")

	// The fetch answers late.
	d.Send(recommendationsMsg{
		sub:  assessment.Submission{Generation: 1, Domains: allDomains},
		recs: []string{"Late but current"},
	})
	assert.Equal(t, assessment.PhaseResultsReady, d.ctrl().Phase())
	assert.Contains(t, d.PlainView(), "• Late but current")
}

func TestTUI_StaleCompletionAfterRetakeIgnored(t *testing.T) {
	d := NewTestDriver(t, testApp(t), blockingRecommender{})

	d.AnswerAll(0)
	require.True(t, d.ctrl().Loading())

	d.PressKey('r')
	require.Equal(t, assessment.PhaseAnswering, d.ctrl().Phase())

	d.Send(recommendationsMsg{
		sub:  assessment.Submission{Generation: 1, Domains: allDomains},
		recs: []string{"Stale advice"},
	})

	assert.Equal(t, assessment.PhaseAnswering, d.ctrl().Phase())
	assert.False(t, d.ctrl().Submitted())
	assert.Empty(t, d.ctrl().Recommendations())
	assert.NotContains(t, d.PlainView(), "Stale advice")
}

func TestTUI_RetakeResets(t *testing.T) {
	d := NewTestDriver(t, testApp(t), &fakeRecommender{recs: []string{"x"}})

	d.AnswerAll(0)
	require.True(t, d.ctrl().Finished())

	d.PressKey('r')

	c := d.ctrl()
	assert.Equal(t, assessment.PhaseAnswering, c.Phase())
	assert.False(t, c.Submitted())
	assert.False(t, c.HasError())
	assert.Equal(t, 0, c.Score())
	assert.Empty(t, c.Recommendations())
	assert.Contains(t, d.PlainView(), "Please Answer All Questions")

	// A second sitting works the same way.
	d.AnswerAll(3)
	assert.Contains(t, d.PlainView(), "Score: 32 / 32")
}

func TestTUI_QuitClosesController(t *testing.T) {
	d := NewTestDriver(t, testApp(t), blockingRecommender{})

	d.AnswerAll(0)
	d.PressKey('q')

	assert.True(t, d.Quitting)
	assert.True(t, d.ctrl().Closed())
	assert.False(t, d.ctrl().Complete(assessment.Submission{Generation: 1}, []string{"late"}, nil))
	assert.Empty(t, d.View())
}

func TestTUI_CtrlCQuitsWhileAnswering(t *testing.T) {
	d := NewTestDriver(t, testApp(t), &fakeRecommender{})

	d.PressEnter()
	d.PressCtrlC()

	assert.True(t, d.Quitting)
	assert.True(t, d.ctrl().Closed())
}

func TestTUI_RecordsHistory(t *testing.T) {
	app := testApp(t)
	d := NewTestDriver(t, app, &fakeRecommender{})

	d.AnswerAll(3)

	records, err := app.History.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 32, records[0].Result.TotalScore)
	assert.Contains(t, d.PlainView(), "Saved as "+records[0].ID)
}

func TestTUI_HistoryFailureDoesNotChangeResult(t *testing.T) {
	env := setupTestEnv(t)
	env.app.History = failingHistory{}
	d := NewTestDriver(t, env.app, &fakeRecommender{})

	d.AnswerAll(3)

	view := d.PlainView()
	assert.Contains(t, view, "Category: Excellent")
	assert.NotContains(t, view, "Saved as")
	assert.Len(t, env.logs.FilterMessage("recording assessment failed").All(), 1)
}

func TestTUI_KeysIgnoredWhileAnsweringExceptCtrlC(t *testing.T) {
	d := NewTestDriver(t, testApp(t), &fakeRecommender{})

	d.PressKey('q')
	d.PressKey('r')

	assert.False(t, d.Quitting)
	assert.Equal(t, assessment.PhaseAnswering, d.ctrl().Phase())
}

// failingHistory refuses every write.
type failingHistory struct{}

func (failingHistory) Record(context.Context, *domain.AssessmentRecord) error {
	return errors.New("disk full")
}

func (failingHistory) Get(context.Context, string) (*domain.AssessmentRecord, error) {
	return nil, errors.New("disk full")
}

func (failingHistory) List(context.Context, int) ([]*domain.AssessmentRecord, error) {
	return nil, errors.New("disk full")
}

func (failingHistory) WeakDomainTrend(context.Context, int) ([]domain.DomainCount, error) {
	return nil, errors.New("disk full")
}
