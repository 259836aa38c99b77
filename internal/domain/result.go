package domain

import "time"

type Category string

const (
	CategoryNone      Category = ""
	CategoryPoor      Category = "Poor"
	CategoryModerate  Category = "Moderate"
	CategoryGood      Category = "Good"
	CategoryExcellent Category = "Excellent"
)

// ValidCategories is the canonical set of stored category strings.
var ValidCategories = map[Category]bool{
	CategoryPoor: true, CategoryModerate: true,
	CategoryGood: true, CategoryExcellent: true,
}

// AssessmentResult is what a submission produces. WeakDomains keeps question
// order and may contain duplicates when questions share a domain.
type AssessmentResult struct {
	TotalScore      int
	Category        Category
	WeakDomains     []string
	Recommendations []string
}

// AssessmentRecord is a completed assessment kept in history.
type AssessmentRecord struct {
	ID        string
	TakenAt   time.Time
	Responses ResponseMap
	Result    AssessmentResult
	MaxScore  int

	// RecommendationError holds the user-facing message when the
	// recommendation fetch failed, empty otherwise.
	RecommendationError string

	CreatedAt time.Time
}

// Failed reports whether recommendations could not be loaded.
func (r *AssessmentRecord) Failed() bool {
	return r.RecommendationError != ""
}

// DomainCount is one row of a weak-domain frequency summary.
type DomainCount struct {
	Domain string
	Count  int
}
