// Package quest is the zone quest screen: pick an unlocked zone and a
// branch, then clear timed challenges while knowledge health decays, and
// finish the branch boss.
package quest

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/router"
	"github.com/abhisek/quizionix/internal/screen"
	"github.com/abhisek/quizionix/internal/ui/components"
	"github.com/abhisek/quizionix/internal/ui/layout"
	"github.com/abhisek/quizionix/internal/zone"
)

type phase int

const (
	phaseZones phase = iota
	phaseBranches
	phaseChallenge
	phaseResult
)

const defaultTickInterval = 250 * time.Millisecond

type zonePickedMsg struct{ ID string }

type branchPickedMsg struct{ ID string }

// decayTickMsg drives knowledge-health decay for one challenge run.
type decayTickMsg struct {
	Gen  int
	Time time.Time
}

// QuestScreen implements screen.Screen for the zone game.
type QuestScreen struct {
	svc   *screen.Services
	phase phase

	zones    components.Menu
	branches components.Menu
	zone     *catalog.Zone
	branch   *catalog.Branch

	challenge *zone.Challenge
	choice    components.MultiChoice
	input     components.TextInput
	gen       int
	health    int
	result    *zone.Result
	notice    string

	now func() time.Time
}

var _ screen.Screen = (*QuestScreen)(nil)
var _ screen.KeyHintProvider = (*QuestScreen)(nil)

// New creates a quest screen on the zone list.
func New(svc *screen.Services) *QuestScreen {
	q := &QuestScreen{svc: svc, now: time.Now}
	q.health = svc.Zone.State().Health.Value()
	q.buildZoneMenu()
	return q
}

func (q *QuestScreen) buildZoneMenu() {
	selected := q.zones.Selected
	var items []components.MenuItem
	for _, info := range q.svc.Zone.Zones() {
		label := info.Zone.Name
		switch {
		case !info.Unlocked:
			label = "🔒 " + label
		case q.svc.Zone.ZoneCompleted(info.Zone.Name):
			label = "★ " + label
		}
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s  %d%%", label, q.svc.Zone.ZoneMastery(info.Zone.Name)),
			Action: func() tea.Cmd {
				return func() tea.Msg { return zonePickedMsg{ID: info.Zone.ID} }
			},
		})
	}
	q.zones = components.NewMenu(items)
	if selected < len(items) {
		q.zones.Selected = selected
	}
}

func (q *QuestScreen) buildBranchMenu() {
	var items []components.MenuItem
	for _, b := range q.svc.Zone.Branches(q.zone.ID) {
		mark := ""
		switch {
		case q.svc.Zone.BossCompleted(q.zone.Name, b.Name):
			mark = " ★"
		case q.svc.Zone.BranchCompleted(q.zone.Name, b.Name):
			mark = " ⚔"
		}
		items = append(items, components.MenuItem{
			Label: fmt.Sprintf("%s  %d%%%s", b.Name, q.svc.Zone.BranchMastery(q.zone.Name, b.Name), mark),
			Action: func() tea.Cmd {
				return func() tea.Msg { return branchPickedMsg{ID: b.ID} }
			},
		})
	}
	q.branches = components.NewMenu(items)
}

func (q *QuestScreen) Init() tea.Cmd {
	return nil
}

func (q *QuestScreen) Title() string {
	return "Zone Quest"
}

func (q *QuestScreen) KeyHints() []layout.KeyHint {
	switch q.phase {
	case phaseChallenge:
		if q.challenge != nil && q.challenge.QuestionType == catalog.Text {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Answer"},
				{Key: "Esc", Description: "Retreat"},
			}
		}
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "Esc", Description: "Retreat"},
		}
	case phaseResult:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next challenge"},
			{Key: "Esc", Description: "Branches"},
		}
	case phaseZones:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Enter zone"},
			{Key: "Ctrl+U", Description: "Unlock next"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (q *QuestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case zonePickedMsg:
		q.notice = ""
		z := q.svc.Zone.EnterZone(msg.ID)
		if z == nil {
			q.notice = "That zone is still locked. Complete the zone before it."
			return q, nil
		}
		q.zone = z
		q.buildBranchMenu()
		q.phase = phaseBranches
		return q, nil

	case branchPickedMsg:
		b := q.svc.Zone.SelectBranch(q.zone.ID, msg.ID)
		if b == nil {
			return q, nil
		}
		q.branch = b
		return q, q.nextChallenge()

	case decayTickMsg:
		return q.handleTick(msg)

	case tea.KeyMsg:
		return q.handleKey(msg)
	}

	if q.phase == phaseChallenge && q.challenge != nil && q.challenge.QuestionType == catalog.Text {
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd
	}
	return q, nil
}

func (q *QuestScreen) tickInterval() time.Duration {
	if q.svc.TickInterval > 0 {
		return q.svc.TickInterval
	}
	return defaultTickInterval
}

// nextChallenge presents a new challenge and starts its decay clock.
func (q *QuestScreen) nextChallenge() tea.Cmd {
	c := q.svc.Zone.NextChallenge()
	q.challenge = c
	q.result = nil
	q.choice = components.NewMultiChoice(c.Prompt, c.Choices())
	q.input = components.NewTextInput("type your answer", false, 64)
	q.gen = q.svc.Zone.StartChallenge(c, q.now())
	q.phase = phaseChallenge

	cmds := []tea.Cmd{q.tickCmd(q.gen)}
	if c.QuestionType == catalog.Text {
		cmds = append(cmds, q.input.Init())
	}
	return tea.Batch(cmds...)
}

func (q *QuestScreen) tickCmd(gen int) tea.Cmd {
	return tea.Tick(q.tickInterval(), func(t time.Time) tea.Msg {
		return decayTickMsg{Gen: gen, Time: t}
	})
}

func (q *QuestScreen) handleTick(msg decayTickMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != q.gen || q.phase != phaseChallenge {
		return q, nil
	}
	res := q.svc.Zone.Tick(msg.Gen, msg.Time)
	if res.Generation != msg.Gen {
		return q, nil
	}
	q.health = res.KnowledgeHealth
	return q, q.tickCmd(msg.Gen)
}

func (q *QuestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch q.phase {
	case phaseZones:
		switch key {
		case "esc":
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		case "ctrl+u":
			if id := q.svc.Zone.UnlockNextLocked(); id != "" {
				q.notice = "Unlocked " + id + "."
				q.svc.SaveZone(context.Background())
			} else {
				q.notice = "Every zone is already open."
			}
			q.buildZoneMenu()
			return q, nil
		}
		var cmd tea.Cmd
		q.zones, cmd = q.zones.Update(msg)
		return q, cmd

	case phaseBranches:
		if key == "esc" {
			q.buildZoneMenu()
			q.phase = phaseZones
			return q, nil
		}
		var cmd tea.Cmd
		q.branches, cmd = q.branches.Update(msg)
		return q, cmd

	case phaseResult:
		switch key {
		case "esc":
			q.backToBranches()
			return q, nil
		case "enter", "space", " ":
			return q, q.nextChallenge()
		}
		return q, nil
	}

	if key == "esc" {
		q.svc.Zone.StopChallenge()
		q.backToBranches()
		return q, nil
	}

	if q.challenge.QuestionType == catalog.Text {
		if key == "enter" {
			if q.input.Value() == "" {
				return q, nil
			}
			return q.answer(q.input.Value())
		}
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		return q, cmd
	}

	var cmd tea.Cmd
	q.choice, cmd = q.choice.Update(msg)
	if q.choice.Submitted {
		return q.answer(q.choice.Chosen())
	}
	return q, cmd
}

// answer evaluates the current challenge and persists the zone state.
func (q *QuestScreen) answer(answer string) (screen.Screen, tea.Cmd) {
	t := q.svc.Zone.Timing(q.now())
	q.svc.Zone.StopChallenge()
	res := q.svc.Zone.EvaluateAnswer(q.challenge, answer, t)
	if res == nil {
		return q, q.nextChallenge()
	}
	q.result = res
	q.health = res.KnowledgeHealth

	if q.challenge.QuestionType == catalog.Text {
		q.input.Submit(res.Success)
	} else {
		q.choice.Reveal(q.challenge.Answer)
	}
	q.phase = phaseResult
	q.svc.SaveZone(context.Background())
	return q, nil
}

func (q *QuestScreen) backToBranches() {
	q.challenge = nil
	q.result = nil
	q.buildBranchMenu()
	q.phase = phaseBranches
}
