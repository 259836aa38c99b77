// Package assessment holds the form controller: it owns the answers of one
// sitting, scores a complete submission and tracks the recommendation
// request that may follow.
//
// A Controller is not safe for concurrent use. The TUI drives it from the
// bubbletea Update loop; the recommendation fetch runs elsewhere and hands
// its outcome back through Complete.
package assessment

import (
	"context"

	"github.com/alexanderramin/lifestyle/internal/domain"
	"github.com/alexanderramin/lifestyle/internal/questionnaire"
	"github.com/alexanderramin/lifestyle/internal/scoring"
	"go.uber.org/zap"
)

const (
	// FetchFailedMessage is shown whenever recommendations cannot be loaded.
	FetchFailedMessage = "Could not load personalized recommendations. Please try again later."

	// Affirmation replaces the request when no domain is weak.
	Affirmation = "Keep up the great work! Your lifestyle habits are strong."
)

// Recommender fetches recommendations for a list of weak domains.
type Recommender interface {
	Recommend(ctx context.Context, domains []string) ([]string, error)
}

// Phase is the controller state.
type Phase int

const (
	PhaseAnswering Phase = iota
	PhaseSubmitting
	PhaseResultsReady
	PhaseResultsWithError
)

func (p Phase) String() string {
	switch p {
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResultsReady:
		return "results_ready"
	case PhaseResultsWithError:
		return "results_with_error"
	default:
		return "unknown"
	}
}

// Submission identifies one started submit. Complete applies an outcome
// only while the submission is still current.
type Submission struct {
	Generation uint64
	Domains    []string
}

// NeedsFetch reports whether recommendations must be requested.
func (s Submission) NeedsFetch() bool { return len(s.Domains) > 0 }

// Controller is the assessment form state machine.
type Controller struct {
	q      *questionnaire.Questionnaire
	logger *zap.Logger

	responses       domain.ResponseMap
	submitted       bool
	score           int
	category        domain.Category
	weakDomains     []string
	recommendations []string
	loading         bool
	errMsg          string

	phase      Phase
	generation uint64
	closed     bool
}

// NewController creates a controller in the Answering phase.
func NewController(q *questionnaire.Questionnaire, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{q: q, logger: logger.Named("assessment")}
	c.reset()
	return c
}

func (c *Controller) reset() {
	c.responses = domain.ResponseMap{}
	c.submitted = false
	c.score = 0
	c.category = domain.CategoryNone
	c.weakDomains = []string{}
	c.recommendations = []string{}
	c.loading = false
	c.errMsg = ""
	c.phase = PhaseAnswering
}

// Questionnaire returns the question bank the controller scores against.
func (c *Controller) Questionnaire() *questionnaire.Questionnaire { return c.q }

// RecordAnswer sets the answer for questionID. Unknown questions, values
// outside the option scale, and calls outside the Answering phase are
// ignored.
func (c *Controller) RecordAnswer(questionID, value int) {
	if c.phase != PhaseAnswering {
		return
	}
	if _, ok := c.q.Question(questionID); !ok {
		return
	}
	if !c.q.ValidValue(value) {
		return
	}
	c.responses[questionID] = value
}

// IsComplete reports whether every question has an answer.
func (c *Controller) IsComplete() bool {
	return c.responses.CompleteFor(c.q.Questions)
}

// Begin is the synchronous half of submit. It scores the responses and
// marks the controller submitted and loading. When the returned submission
// needs a fetch the caller requests recommendations for its domains and
// passes the outcome to Complete. With no weak domain the affirmation is
// set and loading is cleared before Begin returns.
//
// Begin does nothing and returns false when the form is incomplete or a
// submission has already been made.
func (c *Controller) Begin() (Submission, bool) {
	if c.closed || c.phase != PhaseAnswering || !c.IsComplete() {
		return Submission{}, false
	}

	eval := scoring.Evaluate(c.q.Questions, c.responses)
	c.score = eval.Total
	c.category = eval.Category
	c.weakDomains = eval.WeakDomains

	c.generation++
	c.submitted = true
	c.loading = true
	c.errMsg = ""
	c.recommendations = []string{}
	c.phase = PhaseSubmitting

	if len(c.weakDomains) == 0 {
		c.recommendations = []string{Affirmation}
		c.finish(PhaseResultsReady)
		return Submission{Generation: c.generation}, true
	}

	domains := append([]string(nil), c.weakDomains...)
	return Submission{Generation: c.generation, Domains: domains}, true
}

// Complete applies the outcome of the fetch started by Begin. It returns
// false and changes nothing when sub is stale: the controller was closed,
// retaken, or already completed.
func (c *Controller) Complete(sub Submission, recs []string, err error) bool {
	if c.closed || c.phase != PhaseSubmitting || sub.Generation != c.generation {
		return false
	}

	if err != nil {
		c.logger.Error("recommendation fetch failed",
			zap.Strings("domains", sub.Domains),
			zap.Error(err))
		c.errMsg = FetchFailedMessage
		c.recommendations = []string{}
		c.finish(PhaseResultsWithError)
		return true
	}

	if recs == nil {
		recs = []string{}
	}
	c.recommendations = append([]string(nil), recs...)
	c.finish(PhaseResultsReady)
	return true
}

func (c *Controller) finish(p Phase) {
	c.loading = false
	c.phase = p
}

// Submit runs Begin, the fetch and Complete in sequence. It returns false
// when Begin refused the submission.
func (c *Controller) Submit(ctx context.Context, r Recommender) bool {
	sub, ok := c.Begin()
	if !ok {
		return false
	}
	if !sub.NeedsFetch() {
		return true
	}
	recs, err := r.Recommend(ctx, sub.Domains)
	c.Complete(sub, recs, err)
	return true
}

// Retake discards all answers and results and returns to Answering. Any
// fetch still in flight becomes stale.
func (c *Controller) Retake() {
	if c.closed {
		return
	}
	c.generation++
	c.reset()
}

// Close marks the controller torn down. Later completions are dropped.
func (c *Controller) Close() { c.closed = true }

// Closed reports whether Close was called.
func (c *Controller) Closed() bool { return c.closed }

func (c *Controller) Phase() Phase { return c.phase }
func (c *Controller) Submitted() bool { return c.submitted }
func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) ErrorMessage() string { return c.errMsg }
func (c *Controller) HasError() bool { return c.errMsg != "" }
func (c *Controller) Score() int { return c.score }
func (c *Controller) MaxScore() int { return c.q.MaxScore() }
func (c *Controller) Answered() int { return len(c.responses) }

// Category returns the band of the last submission, empty before submit.
func (c *Controller) Category() domain.Category { return c.category }

// Answer returns the recorded value for questionID.
func (c *Controller) Answer(questionID int) (int, bool) {
	v, ok := c.responses[questionID]
	return v, ok
}

// Responses returns a copy of the recorded answers.
func (c *Controller) Responses() domain.ResponseMap { return c.responses.Clone() }

// Recommendations returns a copy of the current recommendations.
func (c *Controller) Recommendations() []string {
	return append([]string{}, c.recommendations...)
}

// Result returns a snapshot of the submission outcome.
func (c *Controller) Result() domain.AssessmentResult {
	return domain.AssessmentResult{
		TotalScore:      c.score,
		Category:        c.category,
		WeakDomains:     append([]string{}, c.weakDomains...),
		Recommendations: c.Recommendations(),
	}
}

// Finished reports whether results are final, successful or not.
func (c *Controller) Finished() bool {
	return c.phase == PhaseResultsReady || c.phase == PhaseResultsWithError
}
