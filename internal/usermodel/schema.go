package usermodel

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/validate"
)

var (
	counter   = map[string]any{"type": "integer"}
	boolList  = map[string]any{"type": "array", "items": map[string]any{"type": "boolean"}}
	objectAny = map[string]any{"type": "object"}
)

var topicSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"attempted":     counter,
		"correct":       counter,
		"incorrect":     counter,
		"skipped":       counter,
		"timedOut":      counter,
		"recentResults": boolList,
		"lastSeenAt":    map[string]any{"type": []any{"string", "null"}},
	},
}

var subjectSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"attempted":         counter,
		"correct":           counter,
		"incorrect":         counter,
		"skipped":           counter,
		"timedOut":          counter,
		"streak":            counter,
		"bestStreak":        counter,
		"recentResults":     boolList,
		"difficultyHistory": map[string]any{"type": "array", "items": objectAny},
		"weakTopicHistory": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"weakTopics": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
		},
		"topicStats":     map[string]any{"type": "object", "additionalProperties": topicSchema},
		"lastDifficulty": map[string]any{"type": "string"},
	},
}

var userProperties = map[string]any{
	"subjects": map[string]any{"type": "object", "additionalProperties": subjectSchema},
	"sessions": map[string]any{"type": "array", "items": objectAny},
	"progression": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subjectXp":  map[string]any{"type": "object", "additionalProperties": counter},
			"totalCoins": counter,
		},
	},
	"telemetry": map[string]any{"type": "array", "items": objectAny},
}

var rootSchema = &validate.Schema{
	Name: "user-model",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"version", "users"},
		"properties": map[string]any{
			"version":   map[string]any{"const": RootVersion},
			"updatedAt": map[string]any{"type": "string"},
			"users": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "object", "properties": userProperties},
			},
		},
	},
}

var legacySchema = &validate.Schema{
	Name: "legacy-user-model",
	Definition: map[string]any{
		"type":       "object",
		"required":   []any{"subjects", "progression"},
		"properties": userProperties,
	},
}

func decodeRoot(raw []byte) (*Root, error) {
	if err := validate.JSON(rootSchema, raw); err != nil {
		return nil, err
	}
	var root Root
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decode user model: %w", err)
	}
	if root.Users == nil {
		root.Users = make(map[string]*UserState)
	}
	for id, u := range root.Users {
		if u == nil {
			u = newUserState()
			root.Users[id] = u
		}
		u.normalize()
	}
	return &root, nil
}

func decodeLegacy(raw []byte) (*UserState, error) {
	if err := validate.JSON(legacySchema, raw); err != nil {
		return nil, err
	}
	var u UserState
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode legacy user model: %w", err)
	}
	u.normalize()
	return &u, nil
}

// normalize fills missing collections, clamps counters to zero and
// re-applies the history bounds.
func (u *UserState) normalize() {
	if u.Subjects == nil {
		u.Subjects = make(map[string]*SubjectState)
	}
	for name, s := range u.Subjects {
		if s == nil {
			s = newSubjectState()
			u.Subjects[name] = s
		}
		s.normalize()
	}
	if u.Progression.SubjectXP == nil {
		u.Progression.SubjectXP = make(map[string]int)
	}
	for subject, xp := range u.Progression.SubjectXP {
		u.Progression.SubjectXP[subject] = max(0, xp)
	}
	u.Progression.TotalCoins = max(0, u.Progression.TotalCoins)
	u.Sessions = tail(u.Sessions, SessionLimit)
	u.Telemetry = tail(u.Telemetry, TelemetryLimit)
}

func (s *SubjectState) normalize() {
	for _, c := range []*int{&s.Attempted, &s.Correct, &s.Incorrect, &s.Skipped, &s.TimedOut, &s.Streak, &s.BestStreak} {
		*c = max(0, *c)
	}
	s.RecentResults = tail(s.RecentResults, subjectRecentLimit)
	s.DifficultyHistory = tail(s.DifficultyHistory, difficultyHistoryLimit)
	for i := range s.DifficultyHistory {
		e := &s.DifficultyHistory[i]
		e.Difficulty = adapt.QuizLadder.Normalize(e.Difficulty, adapt.Intermediate)
		if e.LearningGoal == "" {
			e.LearningGoal = adapt.PracticeBasics
		}
		if e.Outcome == "" {
			e.Outcome = OutcomeAnswer
		}
		e.TimeSpent = max(0, e.TimeSpent)
	}
	s.WeakTopicHistory = tail(s.WeakTopicHistory, weakTopicHistoryLimit)
	for i := range s.WeakTopicHistory {
		if len(s.WeakTopicHistory[i].WeakTopics) > weakTopicSnapshotSize {
			s.WeakTopicHistory[i].WeakTopics = s.WeakTopicHistory[i].WeakTopics[:weakTopicSnapshotSize]
		}
	}
	if s.TopicStats == nil {
		s.TopicStats = make(map[string]*TopicState)
	}
	for topic, t := range s.TopicStats {
		if t == nil {
			t = &TopicState{}
			s.TopicStats[topic] = t
		}
		for _, c := range []*int{&t.Attempted, &t.Correct, &t.Incorrect, &t.Skipped, &t.TimedOut} {
			*c = max(0, *c)
		}
		t.RecentResults = tail(t.RecentResults, topicRecentLimit)
	}
	s.LastDifficulty = adapt.QuizLadder.Normalize(s.LastDifficulty, adapt.Intermediate)
}

// tail keeps the newest n entries, evicting oldest first.
func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return slices.Clone(s[len(s)-n:])
}
