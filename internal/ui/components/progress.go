package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizagent/internal/ui/theme"
)

// ScoreBar renders a fraction as a filled bar followed by its percentage.
type ScoreBar struct {
	Label   string
	Percent float64 // 0..1
	Width   int
}

// View renders the bar. Widths below 4 cells are widened to 4.
func (p ScoreBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}

	barWidth := p.Width - lipgloss.Width(b.String()) - 6
	if barWidth < 4 {
		barWidth = 4
	}

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	b.WriteString(lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	return b.String()
}
