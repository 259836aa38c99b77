package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lifestyle/internal/questionnaire"
)

// FormatQuestions renders the question bank followed by the answer scale.
func FormatQuestions(q *questionnaire.Questionnaire) string {
	var b strings.Builder

	b.WriteString(Header(q.Title))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(q.Questions))
	for _, question := range q.Questions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", question.ID),
			DomainBadge(question.Domain),
			question.Text,
		})
	}
	b.WriteString(RenderTable([]string{"#", "DOMAIN", "QUESTION"}, rows))
	b.WriteString("\n")

	b.WriteString(Bold("Answer scale"))
	b.WriteString("\n")
	for _, o := range q.Options {
		fmt.Fprintf(&b, "  %s %s\n", StyleBlue.Render(fmt.Sprintf("%d", o.Value)), o.Label)
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("Maximum score: %d", q.MaxScore())))

	return b.String()
}
