package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lifestyle/internal/domain"
)

// Text shown on the results screen.
const (
	ResultTitle         = "Your Lifestyle Assessment Result"
	LoadingText         = "Generating personalized advice..."
	RecommendationsHead = "Personalized Recommendations for You:"
)

// ResultView is everything the results screen needs. Spinner is the
// current spinner frame, drawn before LoadingText while Loading.
type ResultView struct {
	Score           int
	MaxScore        int
	Category        domain.Category
	WeakDomains     []string
	Loading         bool
	Spinner         string
	Error           string
	Recommendations []string
}

// FormatResult renders the results screen.
func FormatResult(v ResultView) string {
	var b strings.Builder

	b.WriteString(Title(ResultTitle))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  Score: %s  %s\n",
		Bold(ScoreFraction(v.Score, v.MaxScore)),
		RenderScoreBar(v.Score, v.MaxScore, ScoreBarWidth, v.Category))
	fmt.Fprintf(&b, "  Category: %s\n", CategoryColor(v.Category).Bold(true).Render(string(v.Category)))

	if areas := uniqueDomains(v.WeakDomains); len(areas) > 0 {
		badges := make([]string, len(areas))
		for i, d := range areas {
			badges[i] = DomainBadge(d)
		}
		fmt.Fprintf(&b, "  Areas to improve: %s\n", strings.Join(badges, Dim(", ")))
	}
	b.WriteString("\n")

	switch {
	case v.Loading:
		if v.Spinner != "" {
			b.WriteString("  " + v.Spinner + " ")
		} else {
			b.WriteString("  ")
		}
		b.WriteString(Dim(LoadingText))
		b.WriteString("\n")
	case v.Error != "":
		b.WriteString("  " + StyleRed.Render(v.Error) + "\n")
	default:
		b.WriteString(StyleHeader.Render(RecommendationsHead))
		b.WriteString("\n")
		for _, rec := range v.Recommendations {
			fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render("•"), rec)
		}
	}

	return b.String()
}

func uniqueDomains(domains []string) []string {
	seen := make(map[string]bool, len(domains))
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}
