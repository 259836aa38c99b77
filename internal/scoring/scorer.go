package scoring

import "github.com/alexanderramin/lifestyle/internal/domain"

// Upper bounds (inclusive) of the named score bands. Anything above
// GoodMax is Excellent.
const (
	PoorMax     = 12
	ModerateMax = 19
	GoodMax     = 25
)

// WeakThreshold is the value below which an answer marks its domain weak.
const WeakThreshold = domain.ValueSometimes

// Evaluation is the synchronous part of a submission.
type Evaluation struct {
	Total       int
	Category    domain.Category
	WeakDomains []string
}

// Evaluate scores responses against questions. Missing answers count as 0,
// which also places their domain in WeakDomains.
func Evaluate(questions []domain.Question, responses domain.ResponseMap) Evaluation {
	total := Total(questions, responses)
	return Evaluation{
		Total:       total,
		Category:    Categorize(total),
		WeakDomains: WeakDomains(questions, responses),
	}
}

// Total sums the response value of every question.
func Total(questions []domain.Question, responses domain.ResponseMap) int {
	total := 0
	for _, q := range questions {
		total += responses[q.ID]
	}
	return total
}

// WeakDomains lists, in question order, the domain of every question
// answered below WeakThreshold. Shared domains appear once per question.
func WeakDomains(questions []domain.Question, responses domain.ResponseMap) []string {
	weak := []string{}
	for _, q := range questions {
		if responses[q.ID] < WeakThreshold {
			weak = append(weak, q.Domain)
		}
	}
	return weak
}

// Categorize maps a total score onto its band.
func Categorize(total int) domain.Category {
	switch {
	case total <= PoorMax:
		return domain.CategoryPoor
	case total <= ModerateMax:
		return domain.CategoryModerate
	case total <= GoodMax:
		return domain.CategoryGood
	default:
		return domain.CategoryExcellent
	}
}
