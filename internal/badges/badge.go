package badges

import (
	"fmt"
	"time"
)

// Category groups badges by the milestone that awards them.
type Category string

const (
	CategoryBranch          Category = "branch"
	CategoryBossProgress    Category = "boss_progress"
	CategoryBoss            Category = "boss"
	CategoryZone            Category = "zone"
	CategoryKnowledgeHealth Category = "knowledge_health"
	CategoryPractice        Category = "practice"
	CategoryGeneral         Category = "general"
)

// Badge is a permanent achievement. ID is deterministic so that awarding the
// same milestone twice is a no-op.
type Badge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Zone        string    `json:"zone,omitempty"`
	Branch      string    `json:"branch,omitempty"`
	EarnedAt    time.Time `json:"earnedAt"`
}

// BranchMastery is awarded when a branch reaches its clear target.
func BranchMastery(zone, branch string) Badge {
	return Badge{
		ID:          fmt.Sprintf("branch-mastery::%s::%s", zone, branch),
		Title:       fmt.Sprintf("%s Branch Master", branch),
		Description: fmt.Sprintf("Completed branch mastery clears in %s.", branch),
		Category:    CategoryBranch,
		Zone:        zone,
		Branch:      branch,
	}
}

// BossEngaged is awarded on the first damaging hit against a branch boss.
func BossEngaged(zone, branch string) Badge {
	return Badge{
		ID:          fmt.Sprintf("boss-damage::%s::%s", zone, branch),
		Title:       fmt.Sprintf("%s Boss Engaged", branch),
		Description: fmt.Sprintf("Dealt damage to the %s boss in %s.", branch, zone),
		Category:    CategoryBossProgress,
		Zone:        zone,
		Branch:      branch,
	}
}

// BossConqueror is awarded when a branch boss reaches 0 HP.
func BossConqueror(zone, branch string) Badge {
	return Badge{
		ID:          fmt.Sprintf("boss-conqueror::%s::%s", zone, branch),
		Title:       fmt.Sprintf("%s Boss Conqueror", branch),
		Description: fmt.Sprintf("Defeated the %s boss challenge in %s.", branch, zone),
		Category:    CategoryBoss,
		Zone:        zone,
		Branch:      branch,
	}
}

// ZoneComplete is awarded when every branch and boss of a zone is done.
func ZoneComplete(zone string) Badge {
	return Badge{
		ID:          fmt.Sprintf("zone-completion::%s", zone),
		Title:       fmt.Sprintf("%s Zone Complete", zone),
		Description: fmt.Sprintf("Completed all branches and boss milestones in %s.", zone),
		Category:    CategoryZone,
		Zone:        zone,
	}
}

// KnowledgeGuard is awarded after GuardTarget consecutive answers with high health.
func KnowledgeGuard() Badge {
	return Badge{
		ID:          fmt.Sprintf("kh-streak::%d", GuardTarget),
		Title:       "Knowledge Guard",
		Description: fmt.Sprintf("Maintained Knowledge Health above %d for %d challenges.", GuardThreshold, GuardTarget),
		Category:    CategoryKnowledgeHealth,
	}
}

// QuickLearner is awarded in practice after three correct answers.
func QuickLearner() Badge {
	return Badge{
		ID:          "practice::quick-learner",
		Title:       "Quick Learner",
		Description: "Answered three practice questions correctly.",
		Category:    CategoryPractice,
	}
}

// MasteryRising is awarded in practice once accuracy reaches 80%.
func MasteryRising() Badge {
	return Badge{
		ID:          "practice::mastery-rising",
		Title:       "Mastery Rising",
		Description: "Reached 80% practice mastery.",
		Category:    CategoryPractice,
	}
}
