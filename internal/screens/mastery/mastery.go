// Package mastery shows the zone mastery map and the quiz study plan.
package mastery

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/layout"
	"github.com/abhisek/quizionix/internal/ui/theme"
)

type tab int

const (
	tabZones tab = iota
	tabPlan
)

// MasteryScreen displays zone and branch mastery, or the study plan.
type MasteryScreen struct {
	svc          *screen.Services
	tab          tab
	scrollOffset int
}

var _ screen.Screen = (*MasteryScreen)(nil)
var _ screen.KeyHintProvider = (*MasteryScreen)(nil)

// New creates a new MasteryScreen on the zone tab.
func New(svc *screen.Services) *MasteryScreen {
	return &MasteryScreen{svc: svc}
}

func (s *MasteryScreen) Init() tea.Cmd {
	return nil
}

func (s *MasteryScreen) Title() string {
	return "Mastery Map"
}

func (s *MasteryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Tab", Description: "Zones / Study plan"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *MasteryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.scrollOffset = max(0, s.scrollOffset-1)
		case "down", "j":
			s.scrollOffset++
		case "tab", "shift+tab":
			s.tab = 1 - s.tab
			s.scrollOffset = 0
		}
	}
	return s, nil
}

func (s *MasteryScreen) View(width, height int) string {
	var lines []string
	if s.tab == tabZones {
		lines = s.zoneLines(width)
	} else {
		lines = s.planLines(width)
	}

	// Keep the last page in view.
	s.scrollOffset = min(s.scrollOffset, max(0, len(lines)-height))
	end := min(len(lines), s.scrollOffset+height)
	return strings.Join(lines[s.scrollOffset:end], "\n")
}

func (s *MasteryScreen) zoneLines(width int) []string {
	z := s.svc.Zone
	barWidth := min(40, max(20, width-40))
	header := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := []string{
		"",
		header.Render(fmt.Sprintf("  Overall mastery %d%%", z.OverallMastery())),
	}

	types := z.QuestionTypeMasteryMap()
	var parts []string
	for _, qt := range []catalog.QuestionType{catalog.MultipleChoice, catalog.Text} {
		parts = append(parts, fmt.Sprintf("%s %d%%", qt, types[qt]))
	}
	lines = append(lines, dim.Render("  By question type: "+strings.Join(parts, "  ")), "")

	for _, zv := range z.MasteryMap() {
		title := zv.ZoneName
		switch {
		case !zv.Unlocked:
			title = "🔒 " + title
		case zv.BossCompleted:
			title = "★ " + title
		}
		lines = append(lines,
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  "+title),
			"    "+components.NewProgressBar("Zone  ", float64(zv.Mastery)/100, true, barWidth).View(),
			"    "+components.NewProgressBar("Boss  ", float64(zv.BossMastery)/100, true, barWidth).View(),
		)
		for _, b := range zv.Branches {
			label := fmt.Sprintf("%-14s", b.Name)
			row := "      " + components.NewProgressBar(label, float64(b.Mastery)/100, true, barWidth).View()
			if n := len(b.Badges); n > 0 {
				row += lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(fmt.Sprintf("  🏅%d", n))
			}
			lines = append(lines, row)
		}
		lines = append(lines, "")
	}
	return lines
}

func (s *MasteryScreen) planLines(width int) []string {
	header := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	barWidth := min(40, max(20, width-40))

	lines := []string{"", header.Render("  Study plan, weakest first"), ""}
	for _, e := range s.svc.Quiz.StudyPlan("") {
		lines = append(lines,
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
				Render(fmt.Sprintf("  %s  ·  %d XP  ·  next at %s", e.Subject, e.TotalXP, e.RecommendedDifficulty)),
			"    "+components.NewProgressBar("Accuracy", float64(e.Accuracy)/100, true, barWidth).View(),
		)
		if len(e.WeakTopics) == 0 {
			lines = append(lines, dim.Render("    No weak topics yet"))
		}
		for _, t := range e.WeakTopics {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).
				Render(fmt.Sprintf("    ▸ %s  %d%% of %d", t.Topic, t.Accuracy, t.Attempted)))
		}
		lines = append(lines, "")
	}
	return lines
}
