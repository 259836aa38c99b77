package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/lifestyle/internal/assessment"
	"github.com/alexanderramin/lifestyle/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"
)

// recommendationsMsg carries the outcome of a recommendation fetch back
// into the Update loop.
type recommendationsMsg struct {
	sub  assessment.Submission
	recs []string
	err  error
}

// historySavedMsg reports the outcome of recording a finished assessment.
type historySavedMsg struct {
	generation uint64
	id         string
	err        error
}

var (
	retakeKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retake"))
	quitKey   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// assessmentModel is the interactive assessment: a huh form with one select
// per question, followed by the results screen.
type assessmentModel struct {
	app         *App
	ctrl        *assessment.Controller
	recommender assessment.Recommender
	save        bool
	logger      *zap.Logger

	// ctx is cancelled on retake and quit so an in-flight fetch stops early.
	ctx    context.Context
	cancel context.CancelFunc

	form    *huh.Form
	values  []int
	spinner spinner.Model
	width   int

	// generation counts sittings so a late history result is not shown
	// after a retake.
	generation uint64
	savedID    string
	quitting   bool
}

func newAssessmentModel(app *App, r assessment.Recommender, save bool) *assessmentModel {
	logger := app.logger()
	m := &assessmentModel{
		app:         app,
		ctrl:        assessment.NewController(app.questionnaire(), logger),
		recommender: r,
		save:        save,
		logger:      logger,
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StylePurple)),
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.buildForm()
	return m
}

func (m *assessmentModel) buildForm() {
	q := m.ctrl.Questionnaire()
	m.values = make([]int, len(q.Questions))

	groups := make([]*huh.Group, 0, len(q.Questions))
	for i, question := range q.Questions {
		options := make([]huh.Option[int], 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, huh.NewOption(o.Label, o.Value))
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title(fmt.Sprintf("%d. %s", i+1, question.Text)).
				Description(question.Domain).
				Options(options...).
				Value(&m.values[i]),
		))
	}

	m.form = huh.NewForm(groups...).WithTheme(lifestyleHuhTheme()).WithShowHelp(false)
}

func (m *assessmentModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m *assessmentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form = m.form.WithWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.ctrl.Phase() != assessment.PhaseAnswering {
			switch {
			case key.Matches(msg, quitKey):
				return m, m.quit()
			case key.Matches(msg, retakeKey):
				return m, m.retake()
			}
			return m, nil
		}

	case recommendationsMsg:
		if !m.ctrl.Complete(msg.sub, msg.recs, msg.err) {
			return m, nil
		}
		return m, m.saveHistory()

	case historySavedMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		if msg.err != nil {
			m.logger.Warn("recording assessment failed", zap.Error(msg.err))
			return m, nil
		}
		m.savedID = msg.id
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.ctrl.Phase() != assessment.PhaseAnswering {
		return m, nil
	}
	return m.updateForm(msg)
}

// updateForm forwards msg to the form and mirrors its answers into the
// controller.
func (m *assessmentModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	m.syncAnswers()

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.submit()
	case huh.StateAborted:
		return m, m.quit()
	}
	return m, cmd
}

func (m *assessmentModel) syncAnswers() {
	for i, question := range m.ctrl.Questionnaire().Questions {
		if v := m.values[i]; v != 0 {
			m.ctrl.RecordAnswer(question.ID, v)
		}
	}
}

// submit starts the two-phase submit. The fetch runs as a Cmd and reports
// back through recommendationsMsg.
func (m *assessmentModel) submit() tea.Cmd {
	sub, ok := m.ctrl.Begin()
	if !ok {
		// The form finished with a gap; start over on the same answers.
		values := m.values
		m.buildForm()
		copy(m.values, values)
		return m.form.Init()
	}
	if !sub.NeedsFetch() {
		return m.saveHistory()
	}

	r, ctx := m.recommender, m.ctx
	fetch := func() tea.Msg {
		recs, err := r.Recommend(ctx, sub.Domains)
		return recommendationsMsg{sub: sub, recs: recs, err: err}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

func (m *assessmentModel) saveHistory() tea.Cmd {
	if !m.save || m.app.History == nil {
		return nil
	}
	rec := newRecord(m.ctrl, m.app.now())
	history, gen := m.app.History, m.generation
	return func() tea.Msg {
		err := history.Record(context.Background(), rec)
		return historySavedMsg{generation: gen, id: rec.ID, err: err}
	}
}

func (m *assessmentModel) retake() tea.Cmd {
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.ctrl.Retake()
	m.generation++
	m.savedID = ""
	m.buildForm()
	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}
	return m.form.Init()
}

func (m *assessmentModel) quit() tea.Cmd {
	m.cancel()
	m.ctrl.Close()
	m.quitting = true
	return tea.Quit
}

func (m *assessmentModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.ctrl.Phase() == assessment.PhaseAnswering {
		b.WriteString(formatter.Header(m.ctrl.Questionnaire().Title))
		b.WriteString("\n\n")
		b.WriteString(m.form.View())
		b.WriteString("\n\n")
		b.WriteString(m.submitHint())
		b.WriteString("\n")
		b.WriteString(renderHints(key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")), quitKey))
		return b.String()
	}

	b.WriteString(formatter.FormatResult(resultView(m.ctrl, m.spinner.View())))
	if m.savedID != "" {
		b.WriteString("\n" + formatter.Dim("Saved as "+m.savedID) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(renderHints(retakeKey, quitKey))
	return b.String()
}

// submitHint is the submit button: disabled until every question has an
// answer.
func (m *assessmentModel) submitHint() string {
	if m.ctrl.IsComplete() {
		return submitButtonStyle.Render("Get My Results")
	}
	label := fmt.Sprintf("Please Answer All Questions (%d/%d)", m.ctrl.Answered(), m.ctrl.Questionnaire().Len())
	return disabledButtonStyle.Render(label)
}

func renderHints(bindings ...key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
	}
	return strings.Join(hints, "  ")
}
