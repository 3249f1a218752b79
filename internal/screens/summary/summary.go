package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/quiz"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/layout"
	"github.com/abhisek/quizionix/internal/ui/theme"
)

// SummaryScreen displays the result of a finished quiz.
type SummaryScreen struct {
	summary *quiz.Summary
	done    components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *quiz.Summary) *SummaryScreen {
	return &SummaryScreen{
		summary: summary,
		done: components.NewButton("Back to base", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.done, cmd = s.done.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	center := func(style lipgloss.Style, text string) {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(style.Render(text)))
		b.WriteString("\n")
	}

	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		fmt.Sprintf("%s quiz complete!", sum.Subject))
	center(lipgloss.NewStyle().Foreground(theme.TextDim), sum.LearningGoal.DisplayName())
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Correct: %d/%d        Accuracy: %d%%", sum.Score.Correct, sum.Score.Total, sum.Score.Accuracy))
	center(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
		fmt.Sprintf("+%d XP   +%d coins", sum.Rewards.SessionXP, sum.Rewards.SessionCoins))

	p := sum.Progression
	rank := fmt.Sprintf("%s · Level %d · %d XP", p.Rank, p.Level, p.TotalXP)
	if p.RankProgress.NextRank != "" {
		rank += fmt.Sprintf(" · %d/%d to %s", p.RankProgress.Current, p.RankProgress.Target, p.RankProgress.NextRank)
	}
	center(lipgloss.NewStyle().Foreground(theme.Secondary), rank)
	b.WriteString("\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	section := func(name string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(name)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
	}

	section("Questions")
	for i, r := range sum.Results {
		mark, style := "✗", theme.Incorrect
		switch {
		case r.IsCorrect:
			mark, style = "✓", theme.Correct
		case r.IsTimedOut:
			mark = "⏱"
		case r.IsSkipped:
			mark = "»"
		}
		line := fmt.Sprintf("%s %d. %s (%s)  +%d XP", mark, i+1, r.Topic, r.Difficulty, r.XPEarned)
		center(style, line)
	}
	b.WriteString("\n")

	if len(sum.UserSnapshot.WeakTopics) > 0 {
		section("Weak topics")
		for _, t := range sum.UserSnapshot.WeakTopics[:min(3, len(sum.UserSnapshot.WeakTopics))] {
			center(lipgloss.NewStyle().Foreground(theme.Accent),
				fmt.Sprintf("%s  %d%% of %d", t.Topic, t.Accuracy, t.Attempted))
		}
		b.WriteString("\n")
	}

	section("Next steps")
	for _, r := range sum.Recommendations {
		center(lipgloss.NewStyle().Foreground(theme.Text), r)
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.done.View()))

	return b.String()
}
