// Package arena is the practice arena screen: a rotating run of zone-wide
// questions scored with points, XP and a gentler knowledge-health curve.
package arena

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/practice"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/layout"
	"github.com/abhisek/quizionix/internal/ui/theme"
)

// sparks are the knowledge-health sparkline glyphs, lowest first.
var sparks = []rune("▁▂▃▄▅▆▇█")

// ArenaScreen implements screen.Screen for practice runs.
type ArenaScreen struct {
	svc      *screen.Services
	index    int
	question catalog.Template
	choice   components.MultiChoice
	input    components.TextInput
	result   *practice.Result
}

var _ screen.Screen = (*ArenaScreen)(nil)
var _ screen.KeyHintProvider = (*ArenaScreen)(nil)

// New creates the arena on the first question.
func New(svc *screen.Services) *ArenaScreen {
	a := &ArenaScreen{svc: svc}
	a.present(0)
	return a
}

func (a *ArenaScreen) present(i int) {
	a.index = i
	a.question = a.svc.Practice.Question(i)
	a.choice = components.NewMultiChoice(a.question.Prompt, a.question.Options)
	a.input = components.NewTextInput("type your answer", false, 64)
	a.result = nil
}

func (a *ArenaScreen) Init() tea.Cmd {
	return nil
}

func (a *ArenaScreen) Title() string {
	return "Practice Arena"
}

func (a *ArenaScreen) KeyHints() []layout.KeyHint {
	if a.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "R", Description: "New run"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (a *ArenaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	key := kmsg.String()
	if key == "esc" {
		return a, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if a.result != nil {
		switch key {
		case "enter", "space":
			a.present(a.index + 1)
		case "r", "R":
			a.svc.Practice.State().ResetRun()
			a.svc.SavePractice(context.Background())
			a.present(0)
		}
		return a, nil
	}

	if a.question.QuestionType == catalog.Text {
		if key == "enter" && a.input.Value() != "" {
			a.answer(strings.TrimSpace(a.input.Value()))
			return a, nil
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	a.choice, cmd = a.choice.Update(msg)
	if a.choice.Submitted {
		a.answer(a.choice.Chosen())
	}
	return a, cmd
}

func (a *ArenaScreen) answer(selected string) {
	res := a.svc.Practice.Answer(a.question, selected)
	a.result = &res
	if a.question.QuestionType == catalog.Text {
		a.input.Submit(res.Correct)
	} else {
		a.choice.Reveal(a.question.Answer)
	}
	a.svc.SavePractice(context.Background())
}

func (a *ArenaScreen) View(width, height int) string {
	st := a.svc.Practice.State()

	var b strings.Builder
	stats := fmt.Sprintf("  %s  %d pts  %d XP  streak %d  clears %d/%d",
		a.question.Zone, st.Points, st.XP, st.Streak.Correct, st.BranchClears, practice.BossClearTarget)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(stats))
	b.WriteString("\n  ")
	b.WriteString(components.HealthBar(st.Health.Value(), max(20, width-30)))
	b.WriteString("  ")
	b.WriteString(sparkline(st.HealthHistory))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(0, width-4))))
	b.WriteString("\n\n")

	if a.question.QuestionType == catalog.Text {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("  " + a.question.Prompt))
		b.WriteString("\n\n  ")
		b.WriteString(a.input.View())
		b.WriteString("\n")
	} else {
		for _, line := range strings.Split(strings.TrimRight(a.choice.View(), "\n"), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}

	if r := a.result; r != nil {
		b.WriteString("\n")
		if r.Correct {
			b.WriteString(theme.Correct.Render(fmt.Sprintf("  Correct! +%d pts", practice.PointsPerCorrect)))
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("  Not quite. The answer is %s.", a.question.Answer)))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("  Mastery %d%%  Difficulty %s", r.Mastery, r.Difficulty)))
		b.WriteString("\n")
		if r.BossCleared {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  Practice boss cleared!"))
			b.WriteString("\n")
		}
		for _, badge := range r.NewBadges {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render("  🏅 " + badge.Title))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// sparkline renders health values in 0..100 as block glyphs.
func sparkline(values []int) string {
	var b strings.Builder
	for _, v := range values {
		i := min(len(sparks)-1, max(0, v*len(sparks)/101))
		b.WriteRune(sparks[i])
	}
	return lipgloss.NewStyle().Foreground(theme.Success).Render(b.String())
}
