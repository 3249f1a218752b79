// Package usermodel keeps per-user learning statistics for the linear quiz:
// subject and topic accuracy, rolling result windows, weak topics, XP and
// coin progression, session summaries and the research telemetry log.
package usermodel

import (
	"time"

	"github.com/abhisek/quizionix/internal/adapt"
)

const (
	// StorageKey is the key of the persisted multi-user root.
	StorageKey = "quizionix_user_model_v3"

	// LegacyStorageKey holds the single-user blob of earlier releases.
	LegacyStorageKey = "quizionix_user_model_v2"

	// RootVersion is the version written to the persisted root.
	RootVersion = 3

	// AnonymousUser is the partition used when no identity is known.
	AnonymousUser = "anonymous-user"

	// SessionLimit bounds the stored session summaries per user.
	SessionLimit = 150

	// TelemetryLimit bounds the stored telemetry events per user.
	TelemetryLimit = 5000

	subjectRecentLimit     = 30
	topicRecentLimit       = 20
	difficultyHistoryLimit = 200
	weakTopicHistoryLimit  = 120
	weakTopicSnapshotSize  = 5
	recentAccuracySample   = 6
	signalSessionWindow    = 10
)

// Outcome classifies how a question ended.
type Outcome string

const (
	OutcomeAnswer    Outcome = "answer"
	OutcomeCorrect   Outcome = "answer_correct"
	OutcomeIncorrect Outcome = "answer_incorrect"
	OutcomeSkip      Outcome = "skip"
	OutcomeTimeout   Outcome = "timeout"
)

// Root is the persisted document holding every user's state.
type Root struct {
	Version   int                   `json:"version"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Users     map[string]*UserState `json:"users"`
}

// UserState is everything stored for one user.
type UserState struct {
	Subjects    map[string]*SubjectState `json:"subjects"`
	Sessions    []SessionSummary         `json:"sessions"`
	Progression Progression              `json:"progression"`
	Telemetry   []TelemetryEvent         `json:"telemetry"`
}

// SubjectState holds the counters and histories of one subject.
type SubjectState struct {
	Attempted         int                    `json:"attempted"`
	Correct           int                    `json:"correct"`
	Incorrect         int                    `json:"incorrect"`
	Skipped           int                    `json:"skipped"`
	TimedOut          int                    `json:"timedOut"`
	Streak            int                    `json:"streak"`
	BestStreak        int                    `json:"bestStreak"`
	RecentResults     []bool                 `json:"recentResults"`
	DifficultyHistory []DifficultyEntry      `json:"difficultyHistory"`
	WeakTopicHistory  []WeakTopicEntry       `json:"weakTopicHistory"`
	TopicStats        map[string]*TopicState `json:"topicStats"`
	LastDifficulty    adapt.Tier             `json:"lastDifficulty"`
}

// TopicState holds the counters of one topic within a subject.
type TopicState struct {
	Attempted     int        `json:"attempted"`
	Correct       int        `json:"correct"`
	Incorrect     int        `json:"incorrect"`
	Skipped       int        `json:"skipped"`
	TimedOut      int        `json:"timedOut"`
	RecentResults []bool     `json:"recentResults"`
	LastSeenAt    *time.Time `json:"lastSeenAt"`
}

// DifficultyEntry is one recorded response in the difficulty history.
type DifficultyEntry struct {
	Difficulty   adapt.Tier `json:"difficulty"`
	IsCorrect    bool       `json:"isCorrect"`
	Topic        string     `json:"topic"`
	LearningGoal adapt.Goal `json:"learningGoal"`
	Outcome      Outcome    `json:"outcome"`
	TimeSpent    float64    `json:"timeSpent"`
	At           time.Time  `json:"at"`
}

// WeakTopicEntry snapshots the weakest topics after a response.
type WeakTopicEntry struct {
	At         time.Time `json:"at"`
	WeakTopics []string  `json:"weakTopics"`
}

// Progression is the stored reward balance. Totals, level and rank are
// derived from it on read.
type Progression struct {
	SubjectXP  map[string]int `json:"subjectXp"`
	TotalCoins int            `json:"totalCoins"`
}

// SessionSummary is appended when a quiz finishes.
type SessionSummary struct {
	SessionID      string     `json:"sessionId,omitempty"`
	Subject        string     `json:"subject"`
	LearningGoal   adapt.Goal `json:"learningGoal"`
	Accuracy       int        `json:"accuracy"`
	CompletionRate int        `json:"completionRate"`
	TotalQuestions int        `json:"totalQuestions"`
	SessionXP      int        `json:"sessionXp"`
	SessionCoins   int        `json:"sessionCoins"`
	FinishedAt     time.Time  `json:"finishedAt"`
}

// TelemetryEvent is one research telemetry record. Nullable fields are
// pointers so absent values serialize as null and the shape stays fixed.
type TelemetryEvent struct {
	Name           string         `json:"event_name"`
	Version        int            `json:"event_version"`
	Timestamp      time.Time      `json:"timestamp"`
	SessionID      string         `json:"session_id"`
	UserIDHash     string         `json:"user_id_hash"`
	Subject        string         `json:"subject"`
	LearningGoal   adapt.Goal     `json:"learning_goal"`
	QuestionID     *string        `json:"question_id"`
	ConceptID      *string        `json:"concept_id"`
	Topic          *string        `json:"topic"`
	DiffBefore     *string        `json:"difficulty_before"`
	DiffAfter      *string        `json:"difficulty_after"`
	IsCorrect      *bool          `json:"is_correct"`
	IsSkipped      *bool          `json:"is_skipped"`
	TimeAllowedSec *float64       `json:"time_allowed_sec"`
	TimeSpentSec   *float64       `json:"time_spent_sec"`
	LatencyBucket  *string        `json:"answer_latency_bucket"`
	QuestionIndex  *int           `json:"question_index"`
	TotalQuestions int            `json:"total_questions"`
	CompletionRate *int           `json:"completion_rate"`
	ErrorCode      *string        `json:"error_code"`
	ErrorStage     *string        `json:"error_stage"`
	Motivation     *int           `json:"motivation_proxy"`
	Engagement     *int           `json:"engagement_proxy"`
	Effectiveness  *int           `json:"perceived_effectiveness_proxy"`
	Usability      *int           `json:"usability_proxy"`
	Metadata       map[string]any `json:"metadata"`
}

// Response is one answered, skipped or timed-out question.
type Response struct {
	Subject    string
	Topic      string
	Difficulty adapt.Tier
	Correct    bool
	TimeSpent  float64
	Goal       adapt.Goal
	Outcome    Outcome
}

// TopicSummary is a topic's standing inside a subject snapshot.
type TopicSummary struct {
	Topic     string `json:"topic"`
	Attempted int    `json:"attempted"`
	Accuracy  int    `json:"accuracy"`
}

// SubjectSnapshot is a read-only view of a subject.
type SubjectSnapshot struct {
	Attempted        int              `json:"attempted"`
	Correct          int              `json:"correct"`
	Incorrect        int              `json:"incorrect"`
	Skipped          int              `json:"skipped"`
	TimedOut         int              `json:"timedOut"`
	Streak           int              `json:"streak"`
	BestStreak       int              `json:"bestStreak"`
	Accuracy         int              `json:"accuracy"`
	WeakTopics       []TopicSummary   `json:"weakTopics"`
	LastDifficulty   adapt.Tier       `json:"lastDifficulty"`
	WeakTopicHistory []WeakTopicEntry `json:"weakTopicHistory"`
}

// Recommendation is a suggested starting difficulty with its reasons.
type Recommendation struct {
	Difficulty adapt.Tier `json:"difficulty"`
	Reasons    []string   `json:"reasons"`
}

// Signals are research proxy metrics, each in [0,100].
type Signals struct {
	Motivation             int `json:"motivation"`
	Engagement             int `json:"engagement"`
	PerceivedEffectiveness int `json:"perceivedEffectiveness"`
	Usability              int `json:"usability"`
}

func newUserState() *UserState {
	return &UserState{
		Subjects:    make(map[string]*SubjectState),
		Progression: Progression{SubjectXP: make(map[string]int)},
	}
}

func newSubjectState() *SubjectState {
	return &SubjectState{
		TopicStats:     make(map[string]*TopicState),
		LastDifficulty: adapt.Intermediate,
	}
}
