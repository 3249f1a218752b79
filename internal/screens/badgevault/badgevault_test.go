package badgevault

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/practice"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/zone"
)

func TestBadgeVault(t *testing.T) {
	cat := catalog.Default()
	svc := &screen.Services{
		Zone:     zone.NewEngine(cat, nil),
		Practice: practice.NewGame(cat.ZoneWideTemplates(), nil),
	}
	now := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	svc.Zone.State().Badges.Award(badges.BranchMastery("Science", "Biology"), now.Add(-2*time.Hour))
	svc.Zone.State().Badges.Award(badges.BranchMastery("Science", "Physics"), now)
	svc.Practice.State().Badges.Award(badges.QuickLearner(), now.Add(-time.Hour))

	s := New(svc)
	if len(s.all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(s.all))
	}
	if s.all[0].Branch != "Physics" {
		t.Errorf("newest badge = %q, want Physics branch", s.all[0].Title)
	}

	view := s.View(120, 40)
	for _, want := range []string{"Total: 3 badges", "Branch (2)", "Practice (1)", "Biology Branch Master"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	for range 4 {
		s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	}
	if view := s.View(120, 40); !strings.Contains(view, "Quick Learner") {
		t.Error("practice tab missing Quick Learner")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.selectedGroup != 0 {
		t.Errorf("selectedGroup = %d after wrap, want 0", s.selectedGroup)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc did not pop")
	}
}

func TestBadgeVaultEmptyGroup(t *testing.T) {
	cat := catalog.Default()
	s := New(&screen.Services{Zone: zone.NewEngine(cat, nil)})
	if !strings.Contains(s.View(100, 30), "No badges in this group yet") {
		t.Error("empty View() missing hint")
	}
}
