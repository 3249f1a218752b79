package badges

import "time"

const (
	// GuardThreshold is the minimum health that keeps the guard streak alive.
	GuardThreshold = 80

	// GuardTarget is the streak length that earns Knowledge Guard.
	GuardTarget = 5
)

// Progress exposes the post-answer mastery state the evaluator reads.
type Progress interface {
	BranchCompleted(zone, branch string) bool
	BossCompleted(zone, branch string) bool
	ZoneCompleted(zone string) bool
	Health() float64
}

// Encounter describes the answered challenge.
type Encounter struct {
	Zone       string
	Branch     string
	Boss       bool
	BossDamage int
}

// Guard counts consecutive answers with health at or above GuardThreshold.
type Guard struct {
	Streak int `json:"streak"`
}

// Observe records one answer at the given health.
func (g *Guard) Observe(health float64) {
	if health >= GuardThreshold {
		g.Streak++
		return
	}
	g.Streak = 0
}

// Check resets the streak if health has dropped below GuardThreshold
// between answers.
func (g *Guard) Check(health float64) {
	if health < GuardThreshold {
		g.Streak = 0
	}
}

// Evaluator awards badges after each committed answer.
type Evaluator struct {
	Ledger *Ledger
	Guard  *Guard
	Now    func() time.Time
}

// Evaluate checks every badge rule against p and returns the newly earned
// badges. Each rule is independent and keyed by a deterministic ID, so
// repeated evaluation never duplicates.
func (e *Evaluator) Evaluate(p Progress, enc Encounter) []Badge {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	var earned []Badge
	award := func(b Badge) {
		if got, ok := e.Ledger.Award(b, now()); ok {
			earned = append(earned, got)
		}
	}

	if enc.Zone != "" && enc.Branch != "" {
		if p.BranchCompleted(enc.Zone, enc.Branch) {
			award(BranchMastery(enc.Zone, enc.Branch))
		}
		if enc.Boss {
			if enc.BossDamage > 0 {
				award(BossEngaged(enc.Zone, enc.Branch))
			}
			if p.BossCompleted(enc.Zone, enc.Branch) {
				award(BossConqueror(enc.Zone, enc.Branch))
			}
		}
	}
	if enc.Zone != "" && p.ZoneCompleted(enc.Zone) {
		award(ZoneComplete(enc.Zone))
	}

	if e.Guard != nil {
		e.Guard.Observe(p.Health())
		if e.Guard.Streak >= GuardTarget {
			award(KnowledgeGuard())
		}
	}
	return earned
}
