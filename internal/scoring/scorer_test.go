package scoring

import (
	"testing"

	"github.com/alexanderramin/lifestyle/internal/domain"
	"github.com/alexanderramin/lifestyle/internal/questionnaire"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func uniform(questions []domain.Question, v int) domain.ResponseMap {
	m := domain.ResponseMap{}
	for _, q := range questions {
		m[q.ID] = v
	}
	return m
}

func TestCategorize_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  domain.Category
	}{
		{8, domain.CategoryPoor},
		{12, domain.CategoryPoor},
		{13, domain.CategoryModerate},
		{19, domain.CategoryModerate},
		{20, domain.CategoryGood},
		{25, domain.CategoryGood},
		{26, domain.CategoryExcellent},
		{32, domain.CategoryExcellent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Categorize(tt.score), "score %d", tt.score)
	}
}

func TestEvaluate_AllNever(t *testing.T) {
	qs := questionnaire.Default().Questions

	got := Evaluate(qs, uniform(qs, domain.ValueNever))

	assert.Equal(t, 8, got.Total)
	assert.Equal(t, domain.CategoryPoor, got.Category)
	want := []string{
		"Stress management", "Energy regulation", "Mental health",
		"Psychological well-being", "Physical activity", "Social health",
		"Preventive behavior", "Health responsibility",
	}
	if diff := cmp.Diff(want, got.WeakDomains); diff != "" {
		t.Errorf("weak domains mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluate_AllRoutinely(t *testing.T) {
	qs := questionnaire.Default().Questions

	got := Evaluate(qs, uniform(qs, domain.ValueRoutinely))

	assert.Equal(t, 32, got.Total)
	assert.Equal(t, domain.CategoryExcellent, got.Category)
	assert.NotNil(t, got.WeakDomains)
	assert.Empty(t, got.WeakDomains)
}

func TestWeakDomains_OnlyNeverCounts(t *testing.T) {
	qs := questionnaire.Default().Questions
	responses := uniform(qs, domain.ValueSometimes)
	responses[3] = domain.ValueNever
	responses[7] = domain.ValueNever

	got := WeakDomains(qs, responses)

	if diff := cmp.Diff([]string{"Mental health", "Preventive behavior"}, got); diff != "" {
		t.Errorf("weak domains mismatch (-want +got):\n%s", diff)
	}
}

func TestWeakDomains_DuplicatesKeptInQuestionOrder(t *testing.T) {
	qs := []domain.Question{
		{ID: 1, Text: "a", Domain: "Sleep"},
		{ID: 2, Text: "b", Domain: "Diet"},
		{ID: 3, Text: "c", Domain: "Sleep"},
	}
	responses := domain.ResponseMap{1: 1, 2: 1, 3: 1}

	got := WeakDomains(qs, responses)

	if diff := cmp.Diff([]string{"Sleep", "Diet", "Sleep"}, got); diff != "" {
		t.Errorf("weak domains mismatch (-want +got):\n%s", diff)
	}
}

func TestTotal_MissingCountsAsZero(t *testing.T) {
	qs := questionnaire.Default().Questions
	responses := domain.ResponseMap{1: 4, 2: 4}

	assert.Equal(t, 8, Total(qs, responses))
	assert.Len(t, WeakDomains(qs, responses), 6)
}

func TestEvaluate_MixedModerate(t *testing.T) {
	qs := questionnaire.Default().Questions
	// 2+2+2+2+2+2+2+3 = 17
	responses := uniform(qs, domain.ValueSometimes)
	responses[8] = domain.ValueOften

	got := Evaluate(qs, responses)

	assert.Equal(t, 17, got.Total)
	assert.Equal(t, domain.CategoryModerate, got.Category)
	assert.Empty(t, got.WeakDomains)
}
