package usermodel

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/abhisek/quizionix/internal/adapt"
)

const (
	reasonBasics    = "Practice basics favors stable foundational difficulty."
	reasonWeakAreas = "Weak-area mode starts lower to rebuild confidence."
	reasonChallenge = "Challenge mode targets higher cognitive load."
	reasonRecentUp  = "Recent high accuracy supports one level increase."
	reasonRecentDn  = "Recent low accuracy suggests reducing difficulty."

	// DefaultTelemetryEvents is returned by TelemetryEvents when no limit
	// is given.
	DefaultTelemetryEvents = 100
)

// RecordResponse applies one response to the subject and topic counters
// and appends to the bounded histories.
func (m *Model) RecordResponse(ctx context.Context, r Response) {
	if r.Goal == "" {
		r.Goal = adapt.PracticeBasics
	}
	if r.Outcome == "" {
		r.Outcome = OutcomeAnswer
	}
	now := m.now().UTC()

	s := m.subject(r.Subject)
	t, ok := s.TopicStats[r.Topic]
	if !ok {
		t = &TopicState{}
		s.TopicStats[r.Topic] = t
	}

	s.Attempted++
	t.Attempted++
	if r.Correct {
		s.Correct++
		t.Correct++
		s.Streak++
		s.BestStreak = max(s.BestStreak, s.Streak)
	} else {
		s.Incorrect++
		t.Incorrect++
		s.Streak = 0
		switch r.Outcome {
		case OutcomeSkip:
			s.Skipped++
			t.Skipped++
		case OutcomeTimeout:
			s.TimedOut++
			t.TimedOut++
		}
	}

	s.LastDifficulty = adapt.QuizLadder.Normalize(r.Difficulty, adapt.Intermediate)
	s.RecentResults = tail(append(s.RecentResults, r.Correct), subjectRecentLimit)
	t.RecentResults = tail(append(t.RecentResults, r.Correct), topicRecentLimit)
	t.LastSeenAt = &now

	s.DifficultyHistory = tail(append(s.DifficultyHistory, DifficultyEntry{
		Difficulty:   s.LastDifficulty,
		IsCorrect:    r.Correct,
		Topic:        r.Topic,
		LearningGoal: r.Goal,
		Outcome:      r.Outcome,
		TimeSpent:    max(0, r.TimeSpent),
		At:           now,
	}), difficultyHistoryLimit)

	s.WeakTopicHistory = tail(append(s.WeakTopicHistory, WeakTopicEntry{
		At:         now,
		WeakTopics: m.WeakTopics(r.Subject, weakTopicSnapshotSize),
	}), weakTopicHistoryLimit)

	m.save(ctx)
}

// SubjectSnapshot returns counters, accuracy and topics ordered weakest
// first. Unknown subjects yield an empty snapshot.
func (m *Model) SubjectSnapshot(subject string) SubjectSnapshot {
	s := m.peekSubject(subject)

	type ranked struct {
		TopicSummary
		score float64
	}
	topics := make([]ranked, 0, len(s.TopicStats))
	for name, t := range s.TopicStats {
		acc := 0.0
		if t.Attempted > 0 {
			acc = float64(t.Correct) / float64(t.Attempted)
		}
		topics = append(topics, ranked{
			TopicSummary: TopicSummary{Topic: name, Attempted: t.Attempted, Accuracy: round(acc * 100)},
			score:        acc - float64(min(t.Attempted, 5))*0.04,
		})
	}
	slices.SortFunc(topics, func(a, b ranked) int {
		if c := cmp.Compare(a.score, b.score); c != 0 {
			return c
		}
		return cmp.Compare(a.Topic, b.Topic)
	})
	weak := make([]TopicSummary, len(topics))
	for i, t := range topics {
		weak[i] = t.TopicSummary
	}

	return SubjectSnapshot{
		Attempted:        s.Attempted,
		Correct:          s.Correct,
		Incorrect:        s.Incorrect,
		Skipped:          s.Skipped,
		TimedOut:         s.TimedOut,
		Streak:           s.Streak,
		BestStreak:       s.BestStreak,
		Accuracy:         percent(s.Correct, s.Attempted),
		WeakTopics:       weak,
		LastDifficulty:   s.LastDifficulty,
		WeakTopicHistory: slices.Clone(s.WeakTopicHistory),
	}
}

// WeakTopics returns up to limit topic names, weakest first.
func (m *Model) WeakTopics(subject string, limit int) []string {
	limit = max(0, limit)
	snap := m.SubjectSnapshot(subject)
	names := make([]string, 0, min(limit, len(snap.WeakTopics)))
	for _, t := range snap.WeakTopics {
		if len(names) == limit {
			break
		}
		names = append(names, t.Topic)
	}
	return names
}

// RecentAccuracy returns the fraction correct of the last sample results,
// or 0 when there are none.
func (m *Model) RecentAccuracy(subject string, sample int) float64 {
	recent := m.peekSubject(subject).RecentResults
	if len(recent) > sample {
		recent = recent[len(recent)-sample:]
	}
	if len(recent) == 0 {
		return 0
	}
	correct := 0
	for _, r := range recent {
		if r {
			correct++
		}
	}
	return float64(correct) / float64(len(recent))
}

// RecommendedDifficulty picks a starting tier from the goal and overall
// accuracy, then moves it one tier on strong or weak recent results.
func (m *Model) RecommendedDifficulty(subject string, goal adapt.Goal) Recommendation {
	acc := m.SubjectSnapshot(subject).Accuracy
	recent := m.RecentAccuracy(subject, recentAccuracySample)

	tier := adapt.Intermediate
	var reasons []string
	switch goal {
	case adapt.PracticeBasics:
		tier = pick(acc >= 75, adapt.Intermediate, adapt.Beginner)
		reasons = append(reasons, reasonBasics)
	case adapt.WeakAreas:
		tier = pick(acc >= 65, adapt.Intermediate, adapt.Beginner)
		reasons = append(reasons, reasonWeakAreas)
	case adapt.ChallengeMode:
		tier = pick(acc >= 70, adapt.Advanced, adapt.Intermediate)
		reasons = append(reasons, reasonChallenge)
	}

	ladder := adapt.QuizLadder
	if recent >= 0.8 && tier != ladder.Highest() {
		tier = ladder.Step(tier, 1)
		reasons = append(reasons, reasonRecentUp)
	}
	if recent > 0 && recent <= 0.4 && tier != ladder.Lowest() {
		tier = ladder.Step(tier, -1)
		reasons = append(reasons, reasonRecentDn)
	}
	return Recommendation{Difficulty: tier, Reasons: reasons}
}

// ApplySessionRewards adds non-negative XP to subject and coins to the
// balance, and returns the updated progression.
func (m *Model) ApplySessionRewards(ctx context.Context, subject string, xp, coins int) ProgressionSnapshot {
	p := &m.user().Progression
	p.SubjectXP[subject] = max(0, p.SubjectXP[subject]) + max(0, xp)
	p.TotalCoins = max(0, p.TotalCoins) + max(0, coins)
	m.save(ctx)
	return m.Progression()
}

// SubjectXP returns the XP earned in subject.
func (m *Model) SubjectXP(subject string) int {
	return max(0, m.peek().Progression.SubjectXP[subject])
}

// Progression returns the derived progression view.
func (m *Model) Progression() ProgressionSnapshot {
	return snapshotOf(m.peek().Progression)
}

// RecordSessionSummary appends a finished session, stamping FinishedAt.
func (m *Model) RecordSessionSummary(ctx context.Context, s SessionSummary) {
	u := m.user()
	s.FinishedAt = m.now().UTC()
	u.Sessions = tail(append(u.Sessions, s), SessionLimit)
	m.save(ctx)
}

// Sessions returns the stored session summaries, oldest first.
func (m *Model) Sessions() []SessionSummary {
	return slices.Clone(m.peek().Sessions)
}

// ResearchSignals derives the research proxies for subject from its
// counters and the last sessions played in it.
func (m *Model) ResearchSignals(subject string) Signals {
	snap := m.SubjectSnapshot(subject)

	var sessions []SessionSummary
	for _, s := range m.peek().Sessions {
		if s.Subject == subject {
			sessions = append(sessions, s)
		}
	}
	sessions = tail(sessions, signalSessionWindow)

	avgCompletion := 0
	if len(sessions) > 0 {
		sum := 0
		for _, s := range sessions {
			sum += s.CompletionRate
		}
		avgCompletion = round(float64(sum) / float64(len(sessions)))
	}

	usability := 75 - 8
	if snap.Attempted > 0 {
		usability = 75 + 8
	}
	return Signals{
		Motivation:             clampPercent(round(float64(snap.BestStreak*4) + float64(avgCompletion)*0.6)),
		Engagement:             clampPercent(snap.Attempted*2 + snap.Streak*6),
		PerceivedEffectiveness: clampPercent(snap.Accuracy),
		Usability:              clampPercent(usability),
	}
}

// RecordTelemetry appends ev to the bounded telemetry log.
func (m *Model) RecordTelemetry(ctx context.Context, ev TelemetryEvent) {
	u := m.user()
	u.Telemetry = tail(append(u.Telemetry, ev), TelemetryLimit)
	m.save(ctx)
}

// TelemetryEvents returns the newest limit events, oldest first. A limit
// of zero or less means DefaultTelemetryEvents.
func (m *Model) TelemetryEvents(limit int) []TelemetryEvent {
	if limit <= 0 {
		limit = DefaultTelemetryEvents
	}
	return slices.Clone(tail(m.peek().Telemetry, limit))
}

func pick[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return round(float64(num) / float64(den) * 100)
}

func clampPercent(v int) int {
	return max(0, min(100, v))
}
