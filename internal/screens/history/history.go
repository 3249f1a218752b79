// Package history lists finished quiz sessions, newest first, with the
// answer telemetry of each on demand.
package history

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/ui/layout"
	"github.com/abhisek/quizionix/internal/ui/theme"
	"github.com/abhisek/quizionix/internal/usermodel"
)

// maxSessions bounds the list.
const maxSessions = 50

// HistoryScreen displays past sessions and their answers.
type HistoryScreen struct {
	svc      *screen.Services
	sessions []usermodel.SessionSummary
	answers  map[string][]usermodel.TelemetryEvent // sessionID → answer events
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen from the active user's records.
func New(svc *screen.Services) *HistoryScreen {
	sessions := svc.Users.Sessions()
	slices.Reverse(sessions)
	if len(sessions) > maxSessions {
		sessions = sessions[:maxSessions]
	}

	answers := make(map[string][]usermodel.TelemetryEvent)
	for _, ev := range svc.Users.TelemetryEvents(usermodel.TelemetryLimit) {
		switch ev.Name {
		case "answer_submitted", "question_skipped", "question_timeout":
			answers[ev.SessionID] = append(answers[ev.SessionID], ev)
		}
	}

	return &HistoryScreen{
		svc:      svc,
		sessions: sessions,
		answers:  answers,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start a quick quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-11s  %-16s  %d questions  %d%% accuracy  +%d XP",
			prefix, sess.FinishedAt.Local().Format("Jan 02, 2006"), sess.Subject,
			sess.LearningGoal.DisplayName(), sess.TotalQuestions, sess.Accuracy, sess.SessionXP)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.SessionID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	events := s.answers[sessionID]
	if len(events) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for _, ev := range events {
		mark, c := answerMark(ev)
		topic := ""
		if ev.Topic != nil {
			topic = *ev.Topic
		}
		diff := ""
		if ev.DiffBefore != nil {
			diff = *ev.DiffBefore
		}
		latency := ""
		if ev.LatencyBucket != nil {
			latency = *ev.LatencyBucket
		}
		line := fmt.Sprintf("    %s %-28s %-13s %s", mark, topic, diff, latency)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(c).Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

func answerMark(ev usermodel.TelemetryEvent) (string, color.Color) {
	switch {
	case ev.Name == "question_timeout":
		return "⏱", theme.Accent
	case ev.IsSkipped != nil && *ev.IsSkipped:
		return "»", theme.TextDim
	case ev.IsCorrect != nil && *ev.IsCorrect:
		return "✓", theme.Success
	default:
		return "✗", theme.Error
	}
}
