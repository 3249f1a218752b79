package zone

import (
	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/catalog"
)

// BranchMastery returns capped clears as a percentage of BranchClearTarget.
func (e *Engine) BranchMastery(zone, branch string) int {
	return percent(e.branchEarned(zone, branch), BranchClearTarget)
}

// ZoneMastery combines branch clears and boss damage against what the zone
// requires in total.
func (e *Engine) ZoneMastery(zoneName string) int {
	z, ok := e.zoneByName(zoneName)
	if !ok {
		return 0
	}
	earned, required := e.zoneTotals(z)
	return percent(earned, required)
}

// OverallMastery is ZoneMastery aggregated over every zone.
func (e *Engine) OverallMastery() int {
	var earned, required int
	for _, z := range e.zones {
		ze, zr := e.zoneTotals(z)
		earned += ze
		required += zr
	}
	return percent(earned, required)
}

func (e *Engine) zoneTotals(z catalog.Zone) (earned, required int) {
	for _, b := range z.Branches {
		earned += e.branchEarned(z.Name, b.Name)
		earned += e.state.BossProgress[branchKey(z.Name, b.Name)].Damage()
	}
	required = len(z.Branches) * (BranchClearTarget + BossMaxHP)
	return earned, required
}

func (e *Engine) branchEarned(zone, branch string) int {
	rec := e.state.BranchProgress[branchKey(zone, branch)]
	if rec == nil {
		return 0
	}
	return min(rec.Correct, BranchClearTarget)
}

// QuestionTypeMastery returns the accuracy for a question type.
func (e *Engine) QuestionTypeMastery(qt catalog.QuestionType) int {
	return e.state.QuestionTypes[qt].Mastery()
}

// QuestionTypeMasteryMap returns accuracy per recorded question type.
func (e *Engine) QuestionTypeMasteryMap() map[catalog.QuestionType]int {
	out := make(map[catalog.QuestionType]int, len(e.state.QuestionTypes))
	for qt, s := range e.state.QuestionTypes {
		out[qt] = s.Mastery()
	}
	return out
}

// BranchMasteryView is one branch row of the mastery map.
type BranchMasteryView struct {
	Name    string         `json:"name"`
	Mastery int            `json:"mastery"`
	Badges  []badges.Badge `json:"badges"`
}

// ZoneMasteryView is one zone row of the mastery map.
type ZoneMasteryView struct {
	ZoneID        string              `json:"zoneId"`
	ZoneName      string              `json:"zoneName"`
	Unlocked      bool                `json:"unlocked"`
	Mastery       int                 `json:"mastery"`
	BossMastery   int                 `json:"bossMastery"`
	BossCompleted bool                `json:"bossCompleted"`
	ZoneBadges    []badges.Badge      `json:"zoneBadges"`
	Branches      []BranchMasteryView `json:"branches"`
}

// MasteryMap reports mastery for every zone and branch.
func (e *Engine) MasteryMap() []ZoneMasteryView {
	out := make([]ZoneMasteryView, 0, len(e.zones))
	for _, z := range e.zones {
		view := ZoneMasteryView{
			ZoneID:        z.ID,
			ZoneName:      z.Name,
			Unlocked:      e.state.ZoneUnlocks[z.ID],
			Mastery:       e.ZoneMastery(z.Name),
			BossCompleted: len(z.Branches) > 0,
			ZoneBadges:    []badges.Badge{},
			Branches:      make([]BranchMasteryView, 0, len(z.Branches)),
		}
		for _, b := range e.state.Badges.ZoneBadges(z.Name) {
			if b.Branch == "" {
				view.ZoneBadges = append(view.ZoneBadges, b)
			}
		}
		bossDamage := 0
		for _, b := range z.Branches {
			bossDamage += e.state.BossProgress[branchKey(z.Name, b.Name)].Damage()
			if !e.BossCompleted(z.Name, b.Name) {
				view.BossCompleted = false
			}
			earned := e.state.Badges.BranchBadges(z.Name, b.Name)
			if earned == nil {
				earned = []badges.Badge{}
			}
			view.Branches = append(view.Branches, BranchMasteryView{
				Name:    b.Name,
				Mastery: e.BranchMastery(z.Name, b.Name),
				Badges:  earned,
			})
		}
		view.BossMastery = percent(bossDamage, len(z.Branches)*BossMaxHP)
		out = append(out, view)
	}
	return out
}

// Snapshot is a read-only view of progress for rendering.
type Snapshot struct {
	CurrentZone       string            `json:"currentZone"`
	CurrentBranch     string            `json:"currentBranch"`
	Difficulty        adapt.Tier        `json:"difficultyLevel"`
	KnowledgeHealth   int               `json:"knowledgeHealth"`
	RemediationNeeded bool              `json:"remediationNeeded"`
	OverallMastery    int               `json:"overallMastery"`
	TotalPoints       int               `json:"totalPoints"`
	MasteryMap        []ZoneMasteryView `json:"masteryMap"`
	Badges            []badges.Badge    `json:"badges"`
}

// Snapshot returns the current progress view.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		CurrentZone:       e.state.CurrentZone,
		CurrentBranch:     e.state.CurrentBranch,
		Difficulty:        e.state.Difficulty,
		KnowledgeHealth:   e.state.Health.Value(),
		RemediationNeeded: e.state.Health.RemediationNeeded(),
		OverallMastery:    e.OverallMastery(),
		TotalPoints:       e.state.TotalPoints,
		MasteryMap:        e.MasteryMap(),
		Badges:            e.state.Badges.All(),
	}
}
