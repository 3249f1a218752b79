package zone

import (
	"slices"
	"time"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/badges"
	"github.com/abhisek/quizionix/internal/catalog"
)

// ExportSchemaVersion is the version of the research export bundle.
// Fields are only ever added.
const ExportSchemaVersion = "1.0"

// ResearchEntry is one anonymised gameplay metric, appended per answer and
// never modified.
type ResearchEntry struct {
	Timestamp             time.Time            `json:"timestamp"`
	Zone                  string               `json:"zone,omitempty"`
	Branch                string               `json:"branch,omitempty"`
	ChallengeType         string               `json:"challengeType"`
	BossHPBefore          int                  `json:"bossHpBefore"`
	BossHPAfter           int                  `json:"bossHpAfter"`
	BossMaxHP             int                  `json:"bossMaxHp"`
	BossCompleted         bool                 `json:"bossCompleted"`
	QuestionType          catalog.QuestionType `json:"questionType"`
	ChallengeID           string               `json:"challengeId,omitempty"`
	IsCorrect             bool                 `json:"isCorrect"`
	DifficultyAtAnswer    adapt.Tier           `json:"difficultyAtAnswer"`
	HealthBefore          float64              `json:"knowledgeHealthBefore"`
	HealthAfter           float64              `json:"knowledgeHealthAfter"`
	BranchMastery         int                  `json:"branchMastery"`
	ZoneMastery           int                  `json:"zoneMastery"`
	OverallMastery        int                  `json:"overallMastery"`
	QuestionTypeMastery   int                  `json:"questionTypeMastery"`
	BadgesEarned          []string             `json:"badgesEarned"`
	PointsEarned          int                  `json:"pointsEarned"`
	TotalPoints           int                  `json:"totalPoints"`
	TimeRatio             float64              `json:"timeRatio"`
	TimeEfficiencyPercent int                  `json:"timeEfficiencyPercent"`
	PerformancePercent    int                  `json:"performancePercent"`
	HealthFactor          float64              `json:"healthFactor"`
	MasteryFactor         float64              `json:"masteryFactor"`
	DifficultyMultiplier  float64              `json:"difficultyMultiplier"`
	RewardMultiplier      float64              `json:"rewardMultiplier"`
}

func (e *Engine) appendResearch(entry ResearchEntry) {
	log := append(e.state.ResearchLog, entry)
	if len(log) > ResearchLogLimit {
		log = log[len(log)-ResearchLogLimit:]
	}
	e.state.ResearchLog = log
}

// ResearchLog returns a copy of the research log, oldest first.
func (e *Engine) ResearchLog() []ResearchEntry {
	return slices.Clone(e.state.ResearchLog)
}

// ExportBundle is the research export. It carries aggregated gameplay
// metrics only, no identifiers.
type ExportBundle struct {
	SchemaVersion       string                       `json:"schemaVersion"`
	ExportedAt          time.Time                    `json:"exportedAt"`
	Metrics             []ResearchEntry              `json:"metrics"`
	Badges              []badges.Badge               `json:"badges"`
	MasteryMap          []ZoneMasteryView            `json:"masteryMap"`
	QuestionTypeMastery map[catalog.QuestionType]int `json:"questionTypeMastery"`
}

// Export builds the research export bundle.
func (e *Engine) Export() ExportBundle {
	metrics := e.ResearchLog()
	if metrics == nil {
		metrics = []ResearchEntry{}
	}
	return ExportBundle{
		SchemaVersion:       ExportSchemaVersion,
		ExportedAt:          e.now().UTC(),
		Metrics:             metrics,
		Badges:              e.state.Badges.All(),
		MasteryMap:          e.MasteryMap(),
		QuestionTypeMastery: e.QuestionTypeMasteryMap(),
	}
}
