// Package badgevault displays every badge earned in the zone game and the
// practice arena.
package badgevault

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/ui/layout"
	"github.com/abhisek/quizionix/internal/ui/theme"
)

// group is one vault tab.
type group struct {
	name       string
	icon       string
	categories []badges.Category
}

var groups = []group{
	{name: "Branch", icon: "🌿", categories: []badges.Category{badges.CategoryBranch}},
	{name: "Boss", icon: "⚔", categories: []badges.Category{badges.CategoryBossProgress, badges.CategoryBoss}},
	{name: "Zone", icon: "★", categories: []badges.Category{badges.CategoryZone}},
	{name: "Health", icon: "♥", categories: []badges.Category{badges.CategoryKnowledgeHealth, badges.CategoryGeneral}},
	{name: "Practice", icon: "◆", categories: []badges.Category{badges.CategoryPractice}},
}

// BadgeVaultScreen displays the learner's badge collection.
type BadgeVaultScreen struct {
	all           []badges.Badge
	selectedGroup int
	scrollOffset  int
}

var _ screen.Screen = (*BadgeVaultScreen)(nil)
var _ screen.KeyHintProvider = (*BadgeVaultScreen)(nil)

// New creates a new BadgeVaultScreen, newest badges first.
func New(svc *screen.Services) *BadgeVaultScreen {
	var all []badges.Badge
	if svc.Zone != nil {
		all = append(all, svc.Zone.State().Badges.All()...)
	}
	if svc.Practice != nil {
		all = append(all, svc.Practice.State().Badges.All()...)
	}
	slices.SortStableFunc(all, func(a, b badges.Badge) int {
		return b.EarnedAt.Compare(a.EarnedAt)
	})
	return &BadgeVaultScreen{all: all}
}

func (s *BadgeVaultScreen) Init() tea.Cmd {
	return nil
}

func (s *BadgeVaultScreen) Title() string {
	return "Badge Vault"
}

func (s *BadgeVaultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch group"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgeVaultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.selectedGroup = (s.selectedGroup + 1) % len(groups)
			s.scrollOffset = 0
		case "shift+tab":
			s.selectedGroup = (s.selectedGroup - 1 + len(groups)) % len(groups)
			s.scrollOffset = 0
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
		}
	}
	return s, nil
}

func (s *BadgeVaultScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nTotal: %d badges\n", len(s.all))))
	b.WriteString("\n")

	var tabs []string
	for i, g := range groups {
		label := fmt.Sprintf("%s %s (%d)", g.icon, g.name, s.count(g))
		if i == s.selectedGroup {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "   ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(0, min(width-8, 70))))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No badges in this group yet"))
		return b.String()
	}

	maxVisible := max(3, (height-10)/2)
	start := s.scrollOffset
	end := min(len(filtered), start+maxVisible)

	for _, badge := range filtered[start:end] {
		title := fmt.Sprintf("  %-32s %s", badge.Title, badge.EarnedAt.Local().Format("Jan 02, 2006"))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(categoryColor(badge.Category)).Bold(true).Render(title)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %-43s", badge.Description))))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func (s *BadgeVaultScreen) filtered() []badges.Badge {
	g := groups[s.selectedGroup]
	var out []badges.Badge
	for _, b := range s.all {
		if slices.Contains(g.categories, b.Category) {
			out = append(out, b)
		}
	}
	return out
}

func (s *BadgeVaultScreen) count(g group) int {
	n := 0
	for _, b := range s.all {
		if slices.Contains(g.categories, b.Category) {
			n++
		}
	}
	return n
}

func categoryColor(c badges.Category) color.Color {
	switch c {
	case badges.CategoryBoss, badges.CategoryZone:
		return theme.Accent
	case badges.CategoryBranch:
		return theme.Secondary
	case badges.CategoryPractice:
		return theme.ArcadeYellow
	default:
		return theme.Primary
	}
}

