package formatter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/lifestyle/internal/domain"
	"github.com/alexanderramin/lifestyle/internal/questionnaire"
)

// FormatHistory renders past assessments as a table, newest first.
func FormatHistory(records []*domain.AssessmentRecord, now time.Time) string {
	if len(records) == 0 {
		return Dim("No assessments recorded yet. Run 'lifestyle take' to start one.") + "\n"
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			TruncID(r.ID),
			RelativeDateFrom(r.TakenAt, now),
			ScoreFraction(r.Result.TotalScore, r.MaxScore),
			CategoryBadge(r.Result.Category),
			weakSummary(r.Result.WeakDomains),
			recommendationSummary(r),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Assessment History"))
	b.WriteString("\n\n")
	b.WriteString(RenderTable(
		[]string{"ID", "TAKEN", "SCORE", "CATEGORY", "WEAK AREAS", "ADVICE"},
		rows,
	))
	return b.String()
}

func weakSummary(domains []string) string {
	areas := uniqueDomains(domains)
	if len(areas) == 0 {
		return Dim("none")
	}
	return strings.Join(areas, ", ")
}

func recommendationSummary(r *domain.AssessmentRecord) string {
	if r.Failed() {
		return StyleRed.Render("failed")
	}
	n := len(r.Result.Recommendations)
	if n == 1 {
		return "1 tip"
	}
	return fmt.Sprintf("%d tips", n)
}

// FormatRecord renders one stored assessment in full. q labels the
// answers; answers to questions q does not know are shown by ID.
func FormatRecord(r *domain.AssessmentRecord, q *questionnaire.Questionnaire, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Assessment " + r.ID))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Taken:"), HumanDateFrom(r.TakenAt, now))

	b.WriteString(Bold("Answers"))
	b.WriteString("\n")
	b.WriteString(answersTable(r.Responses, q))
	b.WriteString("\n")

	b.WriteString(FormatResult(ResultView{
		Score:           r.Result.TotalScore,
		MaxScore:        r.MaxScore,
		Category:        r.Result.Category,
		WeakDomains:     r.Result.WeakDomains,
		Error:           r.RecommendationError,
		Recommendations: r.Result.Recommendations,
	}))
	return b.String()
}

func answersTable(responses domain.ResponseMap, q *questionnaire.Questionnaire) string {
	rows := make([][]string, 0, len(responses))
	seen := make(map[int]bool, len(responses))
	for _, question := range q.Questions {
		v, ok := responses[question.ID]
		if !ok {
			continue
		}
		seen[question.ID] = true
		rows = append(rows, []string{question.Text, answerLabel(q, v)})
	}
	var extra []int
	for id := range responses {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	slices.Sort(extra)
	for _, id := range extra {
		rows = append(rows, []string{fmt.Sprintf("Question %d", id), answerLabel(q, responses[id])})
	}
	return RenderTable([]string{"QUESTION", "ANSWER"}, rows)
}

func answerLabel(q *questionnaire.Questionnaire, v int) string {
	if label := q.Label(v); label != "" {
		return fmt.Sprintf("%s (%d)", label, v)
	}
	return fmt.Sprintf("%d", v)
}

// FormatTrend renders weak-domain frequencies over the last n assessments.
func FormatTrend(counts []domain.DomainCount, n int) string {
	if len(counts) == 0 {
		if n == 0 {
			return Dim("No assessments recorded yet.") + "\n"
		}
		return StyleGreen.Render("No weak areas in your recent assessments.") + "\n"
	}

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			DomainBadge(c.Domain),
			fmt.Sprintf("%d", c.Count),
			StyleYellow.Render(strings.Repeat("█", c.Count)),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Weak Areas"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Across your last %d assessments", n)))
	b.WriteString("\n\n")
	b.WriteString(RenderTable([]string{"DOMAIN", "COUNT", ""}, rows))
	return b.String()
}
