// Package zone implements the zone, branch and boss progression game:
// branch clears, boss HP pools, sequential zone unlocks, knowledge health
// and timed point scoring.
package zone

import (
	"encoding/json"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/health"
)

const (
	// BranchClearTarget is the number of correct clears that completes a branch.
	BranchClearTarget = 10

	// BossMaxHP is the HP pool of every branch boss.
	BossMaxHP = 100

	// BossDamagePerHit is dealt by each correct boss answer.
	BossDamagePerHit = 20

	// ResearchLogLimit bounds the research log, oldest entries first out.
	ResearchLogLimit = 5000

	// StateSchemaVersion is written with every persisted state.
	StateSchemaVersion = "1.0"
)

// BranchProgress counts clears within one branch. Completed never reverts.
type BranchProgress struct {
	Attempts  int  `json:"attempts"`
	Correct   int  `json:"correct"`
	Completed bool `json:"completed"`
}

// BossRecord is the HP pool of a branch boss. Completed never reverts.
type BossRecord struct {
	Attempts  int  `json:"attempts"`
	Correct   int  `json:"correct"`
	HP        int  `json:"hp"`
	MaxHP     int  `json:"maxHp"`
	Completed bool `json:"completed"`
}

// Damage returns the HP removed so far, capped at BossMaxHP.
func (b *BossRecord) Damage() int {
	if b == nil {
		return 0
	}
	return max(0, min(BossMaxHP, b.MaxHP-b.HP))
}

// UnmarshalJSON defaults a missing hp to a full pool, so records written
// without it never load as defeated bosses.
func (b *BossRecord) UnmarshalJSON(data []byte) error {
	type plain BossRecord
	var rec struct {
		plain
		HP *int `json:"hp"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*b = BossRecord(rec.plain)
	b.HP = BossMaxHP
	if rec.HP != nil {
		b.HP = *rec.HP
	}
	return nil
}

func newBossRecord() *BossRecord {
	return &BossRecord{HP: BossMaxHP, MaxHP: BossMaxHP}
}

// TypeStats counts answers per question type.
type TypeStats struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
}

// Mastery returns the percentage of correct answers, 0 with no attempts.
func (s *TypeStats) Mastery() int {
	if s == nil || s.Attempts == 0 {
		return 0
	}
	return percent(s.Correct, s.Attempts)
}

// State is everything the zone game persists for one user.
type State struct {
	SchemaVersion  string                              `json:"schemaVersion"`
	CurrentZoneID  string                              `json:"currentZoneId,omitempty"`
	CurrentZone    string                              `json:"currentZone,omitempty"`
	CurrentBranch  string                              `json:"currentBranch,omitempty"`
	Difficulty     adapt.Tier                          `json:"difficultyLevel"`
	Streak         adapt.StreakCounter                 `json:"streak"`
	Health         health.Meter                        `json:"knowledgeHealth"`
	BranchProgress map[string]*BranchProgress          `json:"branchProgress"`
	BossProgress   map[string]*BossRecord              `json:"bossProgress"`
	ZoneUnlocks    map[string]bool                     `json:"zoneUnlocks"`
	Badges         *badges.Ledger                      `json:"badges"`
	Guard          badges.Guard                        `json:"knowledgeGuard"`
	TotalPoints    int                                 `json:"totalPoints"`
	QuestionTypes  map[catalog.QuestionType]*TypeStats `json:"questionTypeStats"`
	ResearchLog    []ResearchEntry                     `json:"researchLog"`
}

// NewState returns a fresh state with only the first zone unlocked.
func NewState(zones []catalog.Zone) *State {
	s := &State{
		SchemaVersion:  StateSchemaVersion,
		Difficulty:     adapt.Beginner,
		Health:         health.Full(),
		BranchProgress: make(map[string]*BranchProgress),
		BossProgress:   make(map[string]*BossRecord),
		ZoneUnlocks:    make(map[string]bool, len(zones)),
		Badges:         badges.NewLedger(nil),
		QuestionTypes: map[catalog.QuestionType]*TypeStats{
			catalog.MultipleChoice: {},
			catalog.Text:           {},
		},
	}
	for i, z := range zones {
		s.ZoneUnlocks[z.ID] = i == 0
	}
	return s
}

// normalize fills defaults after decoding and makes sure the first zone
// is unlocked.
func (s *State) normalize(zones []catalog.Zone) {
	s.SchemaVersion = StateSchemaVersion
	s.Difficulty = adapt.ZoneLadder.Normalize(s.Difficulty, adapt.Beginner)
	if s.BranchProgress == nil {
		s.BranchProgress = make(map[string]*BranchProgress)
	}
	if s.BossProgress == nil {
		s.BossProgress = make(map[string]*BossRecord)
	}
	for k, b := range s.BossProgress {
		if b == nil {
			delete(s.BossProgress, k)
			continue
		}
		b.MaxHP = BossMaxHP
		b.HP = max(0, min(BossMaxHP, b.HP))
		if b.Completed {
			b.HP = 0
		} else if b.HP == 0 {
			b.Completed = true
		}
	}
	for k, p := range s.BranchProgress {
		if p == nil {
			delete(s.BranchProgress, k)
			continue
		}
		if p.Correct >= BranchClearTarget {
			p.Completed = true
		}
	}
	if s.ZoneUnlocks == nil {
		s.ZoneUnlocks = make(map[string]bool)
	}
	if len(zones) > 0 {
		s.ZoneUnlocks[zones[0].ID] = true
	}
	if s.Badges == nil {
		s.Badges = badges.NewLedger(nil)
	}
	if s.QuestionTypes == nil {
		s.QuestionTypes = make(map[catalog.QuestionType]*TypeStats)
	}
	for _, qt := range []catalog.QuestionType{catalog.MultipleChoice, catalog.Text} {
		if s.QuestionTypes[qt] == nil {
			s.QuestionTypes[qt] = &TypeStats{}
		}
	}
	if len(s.ResearchLog) > ResearchLogLimit {
		s.ResearchLog = s.ResearchLog[len(s.ResearchLog)-ResearchLogLimit:]
	}
}

func branchKey(zone, branch string) string {
	return zone + "::" + branch
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(float64(part)/float64(whole)*100 + 0.5)
}
