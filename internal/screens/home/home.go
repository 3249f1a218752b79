package home

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/screens/arena"
	"github.com/abhisek/quizionix/internal/screens/badgevault"
	"github.com/abhisek/quizionix/internal/screens/history"
	"github.com/abhisek/quizionix/internal/screens/mastery"
	"github.com/abhisek/quizionix/internal/screens/quest"
	sessionscreen "github.com/abhisek/quizionix/internal/screens/session"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/layout"
)

// alertHealth is the zone knowledge health below which the mascot warns.
const alertHealth = 40

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc        *screen.Services
	menu       components.Menu
	menuLabels []string
	now        func() time.Time
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *screen.Services) *HomeScreen {
	menuLabels := []string{"QUICK QUIZ", "ZONE QUEST", "PRACTICE ARENA", "MASTERY MAP", "BADGE VAULT", "HISTORY", "EXIT GAME"}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen {
			return sessionscreen.New(svc, svc.QuizDefaults)
		})},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return quest.New(svc) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return arena.New(svc) })},
		{Label: menuLabels[3], Action: push(func() screen.Screen { return mastery.New(svc) })},
		{Label: menuLabels[4], Action: push(func() screen.Screen { return badgevault.New(svc) })},
		{Label: menuLabels[5], Action: push(func() screen.Screen { return history.New(svc) })},
		{Label: menuLabels[6], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		svc:        svc,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		now:        time.Now,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header, footer and frame gaps.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(), cw))
	}
	sections = append(sections, renderStatsBar(h.stats(), cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// stats gathers the dashboard numbers from the engines.
func (h *HomeScreen) stats() dashboard {
	p := h.svc.Users.Progression()
	d := dashboard{
		Rank:  p.Rank,
		Level: p.Level,
		XP:    p.TotalXP,
		Coins: p.TotalCoins,
	}
	if h.svc.Zone != nil {
		d.Mastery = h.svc.Zone.OverallMastery()
		d.Badges += h.svc.Zone.State().Badges.Len()
	}
	if h.svc.Practice != nil {
		d.Badges += h.svc.Practice.State().Badges.Len()
	}
	return d
}

// mascotVariant celebrates a badge earned in the last day and warns when
// zone knowledge health runs low.
func (h *HomeScreen) mascotVariant() MascotVariant {
	if h.svc.Zone != nil && h.svc.Zone.Health() < alertHealth {
		return MascotAlert
	}
	var earned []badges.Badge
	if h.svc.Zone != nil {
		earned = append(earned, h.svc.Zone.State().Badges.All()...)
	}
	if h.svc.Practice != nil {
		earned = append(earned, h.svc.Practice.State().Badges.All()...)
	}
	now := h.now()
	for _, b := range earned {
		if now.Sub(b.EarnedAt) < 24*time.Hour {
			return MascotCelebrating
		}
	}
	return MascotIdle
}
