package testutil

import (
	"time"

	"github.com/alexanderramin/lifestyle/internal/domain"
	"github.com/alexanderramin/lifestyle/internal/questionnaire"
	"github.com/alexanderramin/lifestyle/internal/scoring"
	"github.com/google/uuid"
)

// UniformResponses answers every question of q with v.
func UniformResponses(q *questionnaire.Questionnaire, v int) domain.ResponseMap {
	m := domain.ResponseMap{}
	for _, item := range q.Questions {
		m[item.ID] = v
	}
	return m
}

// ResponsesFrom builds a response map from values in question order.
func ResponsesFrom(q *questionnaire.Questionnaire, values ...int) domain.ResponseMap {
	m := domain.ResponseMap{}
	for i, item := range q.Questions {
		if i >= len(values) {
			break
		}
		m[item.ID] = values[i]
	}
	return m
}

// RecordOption customizes a fixture record.
type RecordOption func(*domain.AssessmentRecord)

func WithTakenAt(t time.Time) RecordOption {
	return func(r *domain.AssessmentRecord) {
		r.TakenAt = t
	}
}

func WithRecommendations(recs ...string) RecordOption {
	return func(r *domain.AssessmentRecord) {
		r.Result.Recommendations = recs
	}
}

func WithRecommendationError(msg string) RecordOption {
	return func(r *domain.AssessmentRecord) {
		r.RecommendationError = msg
		r.Result.Recommendations = []string{}
	}
}

// NewTestRecord scores responses against the reference questionnaire and
// wraps the result in a history record.
func NewTestRecord(responses domain.ResponseMap, opts ...RecordOption) *domain.AssessmentRecord {
	q := questionnaire.Default()
	eval := scoring.Evaluate(q.Questions, responses)
	now := time.Now().UTC()
	r := &domain.AssessmentRecord{
		ID:        uuid.New().String(),
		TakenAt:   now,
		Responses: responses.Clone(),
		MaxScore:  q.MaxScore(),
		Result: domain.AssessmentResult{
			TotalScore:      eval.Total,
			Category:        eval.Category,
			WeakDomains:     eval.WeakDomains,
			Recommendations: []string{"Drink more water"},
		},
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
