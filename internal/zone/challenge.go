package zone

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/health"
)

// Labels used when no zone or branch is selected.
const (
	defaultZone   = "Unknown Zone"
	defaultBranch = "General Path"
)

// Encounter types.
const (
	EncounterBranch = "branch"
	EncounterBoss   = "boss"
)

// Challenge is a single zone question.
type Challenge struct {
	ID           string               `json:"id"`
	Prompt       string               `json:"prompt"`
	Answer       string               `json:"answer"`
	Options      []string             `json:"options,omitempty"`
	Difficulty   adapt.Tier           `json:"difficulty"`
	Remediation  bool                 `json:"remediation"`
	Type         string               `json:"type"`
	QuestionType catalog.QuestionType `json:"questionType"`
	SourceZone   string               `json:"sourceZone,omitempty"`
	SourceBranch string               `json:"sourceBranch"`
}

// Boss reports whether the challenge is a boss encounter.
func (c *Challenge) Boss() bool {
	return c.Type == EncounterBoss
}

// Choices returns the answer options of a multiple-choice challenge.
func (c *Challenge) Choices() []string {
	if c.QuestionType != catalog.MultipleChoice {
		return nil
	}
	return slices.Clone(c.Options)
}

// NextChallenge builds the next challenge for the current branch. Once the
// branch is completed and its boss still stands, the challenge is a boss
// encounter at elevated difficulty.
func (e *Engine) NextChallenge() *Challenge {
	zone := nonEmpty(e.state.CurrentZone, defaultZone)
	branch := nonEmpty(e.state.CurrentBranch, defaultBranch)

	boss := e.BossReady()
	difficulty := e.state.Difficulty
	if boss {
		difficulty = elevateForBoss(difficulty)
	}
	remediation := e.state.Health.RemediationNeeded()

	n := 0
	if rec := e.state.BranchProgress[branchKey(zone, branch)]; rec != nil {
		n = rec.Attempts
	}
	if rec := e.state.BossProgress[branchKey(zone, branch)]; boss && rec != nil {
		n += rec.Attempts
	}
	tmpl := e.catalog.ChallengeTemplate(zone, branch, n)

	var b strings.Builder
	kind := EncounterBranch
	if boss {
		kind = EncounterBoss
		fmt.Fprintf(&b, "BOSS (%s - %s): %s", zone, branch, tmpl.Prompt)
		if rec := e.Boss(); rec != nil {
			fmt.Fprintf(&b, " Branch Boss HP: %d/%d.", rec.HP, rec.MaxHP)
		}
	} else {
		fmt.Fprintf(&b, "Encounter (%s - %s): %s", zone, branch, tmpl.Prompt)
	}
	if remediation {
		b.WriteString(" Remediation hint: slow down and focus on one concept.")
	}
	b.WriteString(" ")
	b.WriteString(flavorLine(kind, difficulty))

	suffix := "-normal"
	if boss {
		suffix = "-boss"
	}
	return &Challenge{
		ID:           tmpl.ID + suffix,
		Prompt:       b.String(),
		Answer:       tmpl.Answer,
		Options:      slices.Clone(tmpl.Options),
		Difficulty:   difficulty,
		Remediation:  remediation,
		Type:         kind,
		QuestionType: tmpl.QuestionType,
		SourceZone:   zone,
		SourceBranch: branch,
	}
}

func elevateForBoss(t adapt.Tier) adapt.Tier {
	if t == adapt.Beginner {
		return adapt.Advanced
	}
	return adapt.Master
}

func flavorLine(kind string, t adapt.Tier) string {
	if kind == EncounterBoss {
		return "Branch Boss active: reduce HP to 0 by answering correctly."
	}
	switch t {
	case adapt.Master:
		return "Master node: precision and consistency matter."
	case adapt.Advanced:
		return "Advanced node: verify once, then commit."
	default:
		return "Beginner node: build momentum with clean clears."
	}
}

// NormalizeAnswer trims, lower-cases and collapses whitespace.
func NormalizeAnswer(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Timing is the pacing of an answered challenge.
type Timing struct {
	ElapsedSeconds  float64
	ExpectedSeconds int
}

// TickResult reports one decay tick.
type TickResult struct {
	Generation        int
	Elapsed           time.Duration
	Decay             float64
	KnowledgeHealth   int
	RemediationNeeded bool
	TimeMultiplier    float64
}

// StartChallenge starts the decay clock for c, cancelling any earlier run.
// The returned generation identifies the run; ticks from an older run are
// ignored by Tick.
func (e *Engine) StartChallenge(c *Challenge, now time.Time) int {
	e.timing = &activeTiming{
		boss:     c.Boss(),
		expected: health.ExpectedSeconds(e.state.Difficulty, c.Boss(), e.state.Health.Value()),
	}
	return e.clock.Start(now)
}

// Tick applies knowledge-health decay for the wall-clock time since the
// previous tick. A tick from a stale generation, or with no running
// challenge, changes nothing.
func (e *Engine) Tick(generation int, now time.Time) TickResult {
	res := TickResult{
		Generation:        e.clock.Generation(),
		KnowledgeHealth:   e.state.Health.Value(),
		RemediationNeeded: e.state.Health.RemediationNeeded(),
	}
	if generation != e.clock.Generation() || !e.clock.Running() || e.timing == nil {
		return res
	}
	delta := e.clock.Advance(now)
	elapsed := e.clock.Elapsed(now).Seconds()
	expected := float64(e.timing.expected)
	res.Elapsed = e.clock.Elapsed(now)
	res.TimeMultiplier = health.Score(health.ScoreInput{
		ElapsedSeconds:  elapsed,
		ExpectedSeconds: expected,
	}).TimeMultiplier
	if delta <= 0 {
		return res
	}

	before := e.state.Health.Exact()
	rate := health.DecayPerSecond(e.state.Difficulty, e.timing.boss, elapsed, expected)
	e.state.Health.Decay(rate, delta)
	e.state.Guard.Check(e.state.Health.Exact())

	res.Decay = before - e.state.Health.Exact()
	res.KnowledgeHealth = e.state.Health.Value()
	res.RemediationNeeded = e.state.Health.RemediationNeeded()
	return res
}

// StopChallenge stops the decay clock.
func (e *Engine) StopChallenge() {
	e.clock.Stop()
}

// Timing returns the pacing of the running challenge at now.
func (e *Engine) Timing(now time.Time) Timing {
	if e.timing == nil {
		return Timing{}
	}
	return Timing{
		ElapsedSeconds:  e.clock.Elapsed(now).Seconds(),
		ExpectedSeconds: e.timing.expected,
	}
}
