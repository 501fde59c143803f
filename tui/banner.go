package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerBase    = lipgloss.NewStyle().Bold(true).Padding(1, 4).Border(lipgloss.RoundedBorder())
	victoryBanner = bannerBase.Foreground(lipgloss.Color("11")).BorderForeground(lipgloss.Color("10"))
	defeatBanner  = bannerBase.Foreground(lipgloss.Color("15")).BorderForeground(lipgloss.Color("9"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// Banner renders the end-of-game message printed after the terminal is
// restored. It is empty when the player quit.
func Banner(r Result) string {
	var title string
	style := defeatBanner
	switch r.Outcome {
	case "victory":
		title = "WINNER WINNER, BIRD DINNER"
		style = victoryBanner
	case "defeat":
		title = "YOU DIED"
	default:
		return ""
	}
	detail := detailStyle.Render(fmt.Sprintf("blings %d  ticks %d", r.Collected, r.Tick))
	return style.Render(lipgloss.JoinVertical(lipgloss.Center, title, detail))
}
