package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"now", now, "Today"},
		{"future", now.Add(3 * time.Hour), "Today"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestHumanDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today 09:30", HumanDateFrom(time.Date(2026, 2, 7, 9, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "Yesterday 23:05", HumanDateFrom(time.Date(2026, 2, 6, 23, 5, 0, 0, time.UTC), now))
	assert.Equal(t, "Sep 30, 2022 08:00", HumanDateFrom(time.Date(2022, 9, 30, 8, 0, 0, 0, time.UTC), now))
}

func TestDomainBadge(t *testing.T) {
	assert.Equal(t, "Nutrition", stripANSI(DomainBadge("nutrition")))
	assert.Equal(t, "--", stripANSI(DomainBadge("")))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "12345678", stripANSI(TruncID("1234567890abcdef")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestScoreFraction(t *testing.T) {
	assert.Equal(t, "20 / 32", ScoreFraction(20, 32))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "LONG HEADER"},
		[][]string{{"wide cell", "x"}, {"y"}},
	))

	lines := splitLines(out)
	assert.Len(t, lines, 4)
	assert.Equal(t, "A          LONG HEADER", lines[0])
	assert.Equal(t, "─────────  ───────────", lines[1])
	assert.Equal(t, "wide cell  x", lines[2])
	assert.Equal(t, "y          ", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
