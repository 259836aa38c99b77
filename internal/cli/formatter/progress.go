package formatter

import (
	"strings"

	"github.com/alexanderramin/lifestyle/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// ScoreBarWidth is the bar width used on the results screen.
const ScoreBarWidth = 16

// RenderScoreBar renders score out of total as a bar like [████░░░░],
// colored by category.
func RenderScoreBar(score, total, width int, c domain.Category) string {
	if width < 2 {
		width = 2
	}
	filled := 0
	if total > 0 {
		filled = score * width / total
	}
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return "[" + CategoryColor(c).Render(bar) + "]"
}
