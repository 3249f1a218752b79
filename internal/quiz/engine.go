// Package quiz runs a linear quiz session: a fixed number of generated
// questions for one subject, with difficulty adapted after every answer and
// XP and coins committed to the user model when the quiz finishes.
package quiz

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/logging"
	"github.com/abhisek/quizionix/internal/usermodel"
)

const (
	// DefaultTotalQuestions is used when Options.TotalQuestions is not set.
	DefaultTotalQuestions = 5

	baseXP         = 10
	baseCoins      = 5
	streakStep     = 3
	streakBonusPer = 2
)

// Options configure a new quiz.
type Options struct {
	Subject        string
	Goal           adapt.Goal
	TotalQuestions int
}

// Engine owns at most one active quiz. It is not safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	users   *usermodel.Model
	log     *logging.Logger
	now     func() time.Time
	state   *session
}

type session struct {
	id         string
	userHash   string
	subject    string
	goal       adapt.Goal
	total      int
	index      int
	difficulty adapt.Tier
	reasons    []string
	asked      []string
	results    []Record
	question   *catalog.Question
	evaluated  bool
	startedAt  time.Time
	streak     int
	xp         int
	coins      int
	committed  bool
}

// NewEngine creates an idle engine.
func NewEngine(cat *catalog.Catalog, users *usermodel.Model, log *logging.Logger) *Engine {
	return &Engine{
		catalog: cat,
		users:   users,
		log:     logging.OrNop(log),
		now:     time.Now,
	}
}

// Subjects returns the subjects a quiz can be started for.
func (e *Engine) Subjects() []string {
	return e.catalog.Subjects()
}

// Active reports whether a quiz is in progress.
func (e *Engine) Active() bool {
	return e.state != nil
}

// Record is the stored outcome of one question.
type Record struct {
	QuestionID     string            `json:"questionId"`
	ConceptID      string            `json:"conceptId"`
	Topic          string            `json:"topic"`
	Difficulty     adapt.Tier        `json:"difficulty"`
	SelectedChoice string            `json:"selectedChoice,omitempty"`
	CorrectAnswer  string            `json:"correctAnswer"`
	IsCorrect      bool              `json:"isCorrect"`
	IsSkipped      bool              `json:"isSkipped"`
	IsTimedOut     bool              `json:"isTimedOut"`
	Feedback       string            `json:"feedback"`
	Explanation    string            `json:"explanation"`
	XPEarned       int               `json:"xpEarned"`
	CoinsEarned    int               `json:"coinsEarned"`
	TimeSpent      float64           `json:"timeSpent"`
	TimeAllowed    float64           `json:"timeAllowed"`
	Latency        Latency           `json:"latency"`
	Outcome        usermodel.Outcome `json:"outcome"`
}

// AnswerResult is returned by Submit, Skip and Timeout.
type AnswerResult struct {
	Record
	Adaptation  adapt.Adjustment   `json:"adaptation"`
	Progression ProgressionDisplay `json:"progression"`
}

// StartResult is returned by Start.
type StartResult struct {
	Question        catalog.PublicQuestion    `json:"question"`
	Difficulty      adapt.Tier                `json:"difficulty"`
	Rationale       []string                  `json:"rationale"`
	SubjectSnapshot usermodel.SubjectSnapshot `json:"subjectSnapshot"`
	Progression     ProgressionDisplay        `json:"progression"`
}

// Start begins a quiz, replacing any active one. The starting difficulty
// is the user model's recommendation for the subject and goal.
func (e *Engine) Start(ctx context.Context, opts Options) (*StartResult, error) {
	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		return nil, ErrSubjectRequired
	}
	if !e.catalog.HasSubject(subject) {
		return nil, &SubjectError{Subject: subject}
	}
	goal := opts.Goal
	if goal == "" {
		goal = adapt.PracticeBasics
	}
	total := opts.TotalQuestions
	if total <= 0 {
		total = DefaultTotalQuestions
	}

	snap := e.users.SubjectSnapshot(subject)
	rec := e.users.RecommendedDifficulty(subject, goal)

	q, err := e.catalog.Generate(catalog.Request{
		Subject:    subject,
		Goal:       goal,
		Difficulty: rec.Difficulty,
	}, e.users)
	if err != nil {
		return nil, fmt.Errorf("generate first question: %w", err)
	}

	e.state = &session{
		id:         uuid.NewString(),
		userHash:   usermodel.HashUserID(e.users.UserID()),
		subject:    subject,
		goal:       goal,
		total:      total,
		difficulty: rec.Difficulty,
		reasons:    rec.Reasons,
		asked:      []string{q.ConceptID},
		question:   q,
		startedAt:  e.now().UTC(),
	}
	e.log.Info("quiz started",
		"session_id", e.state.id,
		"subject", subject,
		"goal", goal,
		"questions", total,
		"difficulty", rec.Difficulty,
	)

	e.emit(ctx, "session_started", event{
		questionID: &q.ID,
		conceptID:  &q.ConceptID,
		topic:      &q.Topic,
		before:     ptr(string(rec.Difficulty)),
		after:      ptr(string(rec.Difficulty)),
		index:      ptr(1),
		metadata:   map[string]any{"rationale": rec.Reasons},
	})

	return &StartResult{
		Question:        q.Public(),
		Difficulty:      rec.Difficulty,
		Rationale:       slices.Clone(rec.Reasons),
		SubjectSnapshot: snap,
		Progression:     e.ProgressionDisplay(),
	}, nil
}

// Current returns the question awaiting an answer, or nil.
func (e *Engine) Current() (*catalog.PublicQuestion, error) {
	if e.state == nil {
		return nil, ErrNotStarted
	}
	if e.state.question == nil {
		return nil, nil
	}
	pq := e.state.question.Public()
	return &pq, nil
}

// Difficulty returns the difficulty of the next question.
func (e *Engine) Difficulty() (adapt.Tier, error) {
	if e.state == nil {
		return "", ErrNotStarted
	}
	return e.state.difficulty, nil
}

func (e *Engine) ready() error {
	if e.state == nil {
		return ErrNotStarted
	}
	if e.state.question == nil || e.state.evaluated {
		return ErrQuestionUnavailable
	}
	return nil
}

// Submit answers the current question with selected.
func (e *Engine) Submit(ctx context.Context, selected string, t Timing) (*AnswerResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	ev := EvaluateResponse(e.state.question, selected, t)
	outcome := usermodel.OutcomeIncorrect
	if ev.Correct {
		outcome = usermodel.OutcomeCorrect
	}
	res := e.commit(ctx, selected, ev, t, outcome)
	e.emitAnswer(ctx, "answer_submitted", res, t)
	return res, nil
}

// Skip gives up on the current question.
func (e *Engine) Skip(ctx context.Context, t Timing) (*AnswerResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	ev := EvaluateResponse(e.state.question, "", t)
	res := e.commit(ctx, "", ev, t, usermodel.OutcomeSkip)
	e.emitAnswer(ctx, "question_skipped", res, t)
	return res, nil
}

// Timeout records that the question timer ran out.
func (e *Engine) Timeout(ctx context.Context, t Timing) (*AnswerResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	ev := EvaluateResponse(e.state.question, "", t)
	res := e.commit(ctx, "", ev, t, usermodel.OutcomeTimeout)
	e.emitAnswer(ctx, "question_timeout", res, t)
	return res, nil
}

// commit applies one outcome: session rewards, the result record, the
// user model and finally the difficulty adaptation.
func (e *Engine) commit(ctx context.Context, selected string, ev Evaluation, t Timing, outcome usermodel.Outcome) *AnswerResult {
	s := e.state
	q := s.question

	rec := Record{
		QuestionID:     q.ID,
		ConceptID:      q.ConceptID,
		Topic:          q.Topic,
		Difficulty:     s.difficulty,
		SelectedChoice: selected,
		CorrectAnswer:  q.Answer,
		IsCorrect:      ev.Correct,
		Feedback:       ev.Feedback,
		Explanation:    ev.Explanation,
		TimeSpent:      t.Spent,
		TimeAllowed:    t.Allowed,
		Latency:        LatencyBucket(t),
		Outcome:        outcome,
	}

	if ev.Correct {
		s.streak++
		bonus := s.streak / streakStep * streakBonusPer
		rec.XPEarned = baseXP + bonus
		rec.CoinsEarned = baseCoins + bonus
		s.xp += rec.XPEarned
		s.coins += rec.CoinsEarned
	} else {
		s.streak = 0
		switch outcome {
		case usermodel.OutcomeTimeout:
			rec.SelectedChoice = ""
			rec.IsTimedOut = true
			rec.Feedback = fmt.Sprintf("Time is up. %s", ev.Explanation)
			rec.Latency = LatencySlow
		case usermodel.OutcomeSkip:
			rec.SelectedChoice = ""
			rec.IsSkipped = true
		}
	}

	s.results = append(s.results, rec)
	s.evaluated = true

	e.users.RecordResponse(ctx, usermodel.Response{
		Subject:    s.subject,
		Topic:      q.Topic,
		Difficulty: s.difficulty,
		Correct:    rec.IsCorrect,
		TimeSpent:  t.Spent,
		Goal:       s.goal,
		Outcome:    outcome,
	})

	window := make([]bool, len(s.results))
	for i, r := range s.results {
		window[i] = r.IsCorrect
	}
	adj := adapt.AdjustDifficulty(adapt.QuizLadder, s.difficulty, window, s.goal)
	s.difficulty = adj.Next
	if adj.Changed() {
		e.log.Debug("difficulty adapted",
			"session_id", s.id,
			"from", adj.Current,
			"to", adj.Next,
			"reasons", adj.Reasons,
		)
	}

	return &AnswerResult{
		Record:      rec,
		Adaptation:  adj,
		Progression: e.ProgressionDisplay(),
	}
}

// HasNext reports whether another question follows the current one.
func (e *Engine) HasNext() (bool, error) {
	if e.state == nil {
		return false, ErrNotStarted
	}
	return e.state.index+1 < e.state.total, nil
}

// Next moves to the following question. It returns nil without error when
// the quiz has no questions left; call Finish then.
func (e *Engine) Next(ctx context.Context) (*catalog.PublicQuestion, error) {
	if e.state == nil {
		return nil, ErrNotStarted
	}
	s := e.state
	if !s.evaluated {
		return nil, ErrNotEvaluated
	}
	if s.index+1 >= s.total {
		s.question = nil
		return nil, nil
	}

	q, err := e.catalog.Generate(catalog.Request{
		Subject:    s.subject,
		Goal:       s.goal,
		Difficulty: s.difficulty,
		History:    s.asked,
	}, e.users)
	if err != nil {
		return nil, fmt.Errorf("generate question %d: %w", s.index+2, err)
	}

	s.index++
	s.evaluated = false
	s.question = q
	s.asked = append(s.asked, q.ConceptID)

	e.emit(ctx, "question_presented", event{
		questionID: &q.ID,
		conceptID:  &q.ConceptID,
		topic:      &q.Topic,
		before:     ptr(string(s.difficulty)),
		after:      ptr(string(s.difficulty)),
		index:      ptr(s.index + 1),
	})

	pq := q.Public()
	return &pq, nil
}

// Score is the final tally of a quiz.
type Score struct {
	Correct  int `json:"correct"`
	Total    int `json:"total"`
	Accuracy int `json:"accuracy"`
}

// Rewards are the XP and coins earned in a quiz.
type Rewards struct {
	SessionXP    int `json:"sessionXp"`
	SessionCoins int `json:"sessionCoins"`
}

// Summary is returned by Finish.
type Summary struct {
	SessionID       string                        `json:"sessionId"`
	Subject         string                        `json:"subject"`
	LearningGoal    adapt.Goal                    `json:"learningGoal"`
	Score           Score                         `json:"score"`
	Results         []Record                      `json:"results"`
	Recommendations []string                      `json:"recommendations"`
	UserSnapshot    usermodel.SubjectSnapshot     `json:"userSnapshot"`
	ResearchSignals usermodel.Signals             `json:"researchSignals"`
	Progression     usermodel.ProgressionSnapshot `json:"progression"`
	Rewards         Rewards                       `json:"rewards"`
}

// Finish commits the session rewards once, records the session summary
// and ends the quiz.
func (e *Engine) Finish(ctx context.Context) (*Summary, error) {
	if e.state == nil {
		return nil, ErrNotStarted
	}
	s := e.state
	if len(s.results) < s.total {
		return nil, ErrIncomplete
	}

	correct := 0
	for _, r := range s.results {
		if r.IsCorrect {
			correct++
		}
	}
	accuracy := percent(correct, s.total)
	completion := percent(len(s.results), s.total)

	if !s.committed {
		e.users.ApplySessionRewards(ctx, s.subject, s.xp, s.coins)
		s.committed = true
	}

	snap := e.users.SubjectSnapshot(s.subject)
	recs := Recommendations(s.subject, s.goal, snap)
	signals := e.users.ResearchSignals(s.subject)
	progression := e.users.Progression()

	e.users.RecordSessionSummary(ctx, usermodel.SessionSummary{
		SessionID:      s.id,
		Subject:        s.subject,
		LearningGoal:   s.goal,
		Accuracy:       accuracy,
		CompletionRate: completion,
		TotalQuestions: s.total,
		SessionXP:      s.xp,
		SessionCoins:   s.coins,
	})

	e.emit(ctx, "session_completed", event{
		completion:    &completion,
		motivation:    &signals.Motivation,
		engagement:    &signals.Engagement,
		effectiveness: &signals.PerceivedEffectiveness,
		usability:     &signals.Usability,
		index:         ptr(len(s.results)),
		metadata: map[string]any{
			"accuracy":      accuracy,
			"correct":       correct,
			"total":         s.total,
			"session_xp":    s.xp,
			"session_coins": s.coins,
			"final_rank":    progression.Rank,
		},
	})
	e.log.Info("quiz finished",
		"session_id", s.id,
		"subject", s.subject,
		"accuracy", accuracy,
		"session_xp", s.xp,
	)

	summary := &Summary{
		SessionID:       s.id,
		Subject:         s.subject,
		LearningGoal:    s.goal,
		Score:           Score{Correct: correct, Total: s.total, Accuracy: accuracy},
		Results:         slices.Clone(s.results),
		Recommendations: recs,
		UserSnapshot:    snap,
		ResearchSignals: signals,
		Progression:     progression,
		Rewards:         Rewards{SessionXP: s.xp, SessionCoins: s.coins},
	}
	e.state = nil
	return summary, nil
}

// Abandon discards the active quiz. Responses already recorded in the
// user model stay; session XP and coins are never committed.
func (e *Engine) Abandon() {
	if e.state != nil {
		e.log.Info("quiz abandoned", "session_id", e.state.id, "answered", len(e.state.results))
	}
	e.state = nil
}

func percent(num, den int) int {
	if den <= 0 {
		return 0
	}
	return (num*200 + den) / (2 * den)
}
