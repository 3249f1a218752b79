package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	switch s.phase {
	case phaseSubject:
		return s.renderPicker(width, height, "Choose a subject", s.subjects.View())
	case phaseGoal:
		return s.renderPicker(width, height, "Choose a learning goal", s.goals.View())
	case phaseFeedback:
		return s.renderFeedback(width)
	default:
		return s.renderQuestion(width)
	}
}

func (s *SessionScreen) renderPicker(width, height int, heading, menu string) string {
	cw := components.ContentWidth(width)
	title := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(heading)

	sections := []string{title, "", menu}
	if s.phase == phaseGoal {
		rec := s.svc.Users.RecommendedDifficulty(s.opts.Subject, adapt.PracticeBasics)
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Suggested difficulty for %s: %s", s.opts.Subject, rec.Difficulty)))
	}
	return components.CabinetFrame(components.ArcadeCard(strings.Join(sections, "\n"), cw), width, height)
}

// renderQuestion renders the active question display.
func (s *SessionScreen) renderQuestion(width int) string {
	if s.question == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Preparing question...")
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	q := s.question
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(fmt.Sprintf("  %s · %s · %s", q.Topic, q.Skill, q.Difficulty)))
	b.WriteString("\n\n")
	b.WriteString(indent(s.choice.View(), "  "))

	if s.hint != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("  Hint: " + s.hint))
		b.WriteString("\n")
	}

	if s.start != nil && len(s.start.Rationale) > 0 && s.question.ID == s.start.Question.ID {
		b.WriteString("\n")
		for _, r := range s.start.Rationale {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  · " + r))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *SessionScreen) renderInfoLine(width int) string {
	remaining := max(0, s.timeAllowed()-s.elapsed)
	secs := int(remaining.Seconds())
	timerStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	if secs <= 5 {
		timerStyle = timerStyle.Foreground(theme.Error).Bold(true)
	}

	var pos string
	if p, err := s.svc.Quiz.Progress(); err == nil {
		pos = fmt.Sprintf("Q %d/%d", p.Current, p.Total)
	}
	d := s.svc.Quiz.ProgressionDisplay()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.opts.Subject)
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s  %s %d  %s %d  ", pos,
			lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("XP"), d.SessionXP,
			lipgloss.NewStyle().Foreground(theme.Success).Render("streak"), d.Streak)) +
		timerStyle.Render(fmt.Sprintf("⏱ %02d", secs))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

// renderFeedback shows the evaluated answer and the adaptation.
func (s *SessionScreen) renderFeedback(width int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n\n")
	b.WriteString(indent(s.choice.View(), "  "))
	b.WriteString("\n")

	style := theme.Incorrect
	if res.IsCorrect {
		style = theme.Correct
	}
	b.WriteString(style.Render("  " + res.Feedback))
	b.WriteString("\n")
	if res.Explanation != "" && !res.IsTimedOut {
		b.WriteString(lipgloss.NewStyle().
			Width(max(20, width-6)).
			Foreground(theme.Text).
			Render("  " + res.Explanation))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if res.XPEarned > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(
			fmt.Sprintf("  +%d XP  +%d coins", res.XPEarned, res.CoinsEarned)))
		b.WriteString("\n")
	}
	if res.Adaptation.Changed() {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			fmt.Sprintf("  Difficulty %s → %s", res.Adaptation.Current, res.Adaptation.Next)))
		b.WriteString("\n")
	}
	for _, r := range res.Adaptation.Reasons {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  · " + r))
		b.WriteString("\n")
	}
	return b.String()
}

func renderError(width, height int, msg string) string {
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(msg) + "\n\n" +
		theme.Hint.Render("press any key to go back")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func renderQuitConfirm(width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End this quiz?") + "\n\n" +
		theme.Hint.Render("Progress on unanswered questions is lost. Y / N")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(body))
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
