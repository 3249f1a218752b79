package quest

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/theme"
)

func (q *QuestScreen) View(width, height int) string {
	switch q.phase {
	case phaseZones:
		return q.renderPicker(width, height, "Choose a zone", q.zones.View())
	case phaseBranches:
		return q.renderPicker(width, height, q.zone.Name+": choose a branch", q.branches.View())
	default:
		return q.renderChallenge(width)
	}
}

func (q *QuestScreen) renderPicker(width, height int, heading, menu string) string {
	cw := components.ContentWidth(width)
	sections := []string{
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(heading),
		"",
		menu,
	}
	if q.phase == phaseBranches && q.zone.Description != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(q.zone.Description))
	}
	if q.notice != "" {
		sections = append(sections, "", theme.Hint.Render(q.notice))
	}
	sections = append(sections, "", q.renderStatus(cw-6))
	return components.CabinetFrame(components.ArcadeCard(strings.Join(sections, "\n"), cw), width, height)
}

// renderStatus is the health and points line.
func (q *QuestScreen) renderStatus(width int) string {
	st := q.svc.Zone.State()
	points := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).
		Render(fmt.Sprintf("%d pts", st.TotalPoints))
	return components.HealthBar(q.health, max(10, width-20)) + "  " + points
}

func (q *QuestScreen) renderChallenge(width int) string {
	c := q.challenge
	if c == nil {
		return ""
	}

	var b strings.Builder
	title := fmt.Sprintf("  %s · %s", q.zone.Name, q.branch.Name)
	if c.Boss() {
		title += "  BOSS"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(title))
	b.WriteString("\n  ")
	b.WriteString(q.renderStatus(width - 4))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	if c.Remediation {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("  Knowledge health low: remediation mode"))
		b.WriteString("\n\n")
	}

	body := lipgloss.NewStyle().Width(max(20, width-6))
	if c.QuestionType == catalog.Text {
		b.WriteString(body.Foreground(theme.Text).Bold(true).Render("  " + c.Prompt))
		b.WriteString("\n\n  ")
		b.WriteString(q.input.View())
		b.WriteString("\n")
	} else {
		b.WriteString(indent(body.Render(q.choice.View()), "  "))
	}

	if r := q.result; r != nil {
		b.WriteString("\n")
		style := theme.Incorrect
		if r.Success {
			style = theme.Correct
		}
		b.WriteString(style.Render("  " + r.Message))
		b.WriteString("\n")
		if !r.Success && c.QuestionType == catalog.Text {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  Answer: " + c.Answer))
			b.WriteString("\n")
		}
		if r.RemediationHint != "" {
			b.WriteString(theme.Hint.Render("  " + r.RemediationHint))
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + r.BranchProgressText))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + r.BossProgressText))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(
			fmt.Sprintf("  +%d pts  (x%.2f difficulty, %d%% time)  difficulty now %s",
				r.Reward.PointsEarned, r.Reward.DifficultyMultiplier, r.Reward.TimeEfficiencyPercent, r.Difficulty)))
		b.WriteString("\n")
		for _, badge := range r.NewBadges {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("  🏅 " + badge.Title))
			b.WriteString("\n")
		}
		if r.BossReady {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  The branch boss awaits!"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
