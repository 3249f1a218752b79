package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = `  ██████╗ ██╗   ██╗██╗███████╗██╗ ██████╗ ███╗   ██╗██╗██╗  ██╗
 ██╔═══██╗██║   ██║██║╚══███╔╝██║██╔═══██╗████╗  ██║██║╚██╗██╔╝
 ██║   ██║██║   ██║██║  ███╔╝ ██║██║   ██║██╔██╗ ██║██║ ╚███╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██║██║   ██║██║╚██╗██║██║ ██╔██╗
 ╚██████╔╝╚██████╔╝██║███████╗██║╚██████╔╝██║ ╚████║██║██╔╝ ██╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═══╝╚═╝╚═╝  ╚═╝`

const arcadeTitleCompact = "Q · U · I · Z · I · O · N · I · X"

// dashboard is the stats bar content.
type dashboard struct {
	Rank    string
	Level   int
	XP      int
	Coins   int
	Mastery int
	Badges  int
}

// renderTitle returns the styled title block or compact fallback. The full
// art is wider than the content column, so it is placed rather than wrapped.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, style.Render(arcadeTitleFull))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	rankStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	coinStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	xpStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			rankStyle.Render(fmt.Sprintf("★L%d", d.Level)),
			coinStyle.Render(fmt.Sprintf("◆%d", d.Coins)),
			xpStyle.Render(fmt.Sprintf("⚡%d", d.XP)),
			dimStyle.Render(fmt.Sprintf("%d%%", d.Mastery)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s\n%s",
			rankStyle.Render(fmt.Sprintf("★ %s L%d", strings.ToUpper(d.Rank), d.Level)),
			coinStyle.Render(fmt.Sprintf("◆ %d COINS", d.Coins)),
			xpStyle.Render(fmt.Sprintf("⚡ %d XP", d.XP)),
			dimStyle.Render(fmt.Sprintf("ZONE MASTERY %d%%  ·  %d BADGES", d.Mastery, d.Badges)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().
			Foreground(theme.Text).
			Render("   "+label))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
