package quiz

import (
	"context"

	"github.com/abhisek/quizionix/internal/usermodel"
)

// telemetryVersion is written as event_version.
const telemetryVersion = 1

// event carries the optional telemetry fields of one event.
type event struct {
	questionID    *string
	conceptID     *string
	topic         *string
	before        *string
	after         *string
	isCorrect     *bool
	isSkipped     *bool
	timeAllowed   *float64
	timeSpent     *float64
	latency       *string
	index         *int
	completion    *int
	motivation    *int
	engagement    *int
	effectiveness *int
	usability     *int
	metadata      map[string]any
}

func (e *Engine) emit(ctx context.Context, name string, ev event) {
	s := e.state
	if s == nil {
		return
	}
	meta := ev.metadata
	if meta == nil {
		meta = map[string]any{}
	}
	e.users.RecordTelemetry(ctx, usermodel.TelemetryEvent{
		Name:           name,
		Version:        telemetryVersion,
		Timestamp:      e.now().UTC(),
		SessionID:      s.id,
		UserIDHash:     s.userHash,
		Subject:        s.subject,
		LearningGoal:   s.goal,
		QuestionID:     ev.questionID,
		ConceptID:      ev.conceptID,
		Topic:          ev.topic,
		DiffBefore:     ev.before,
		DiffAfter:      ev.after,
		IsCorrect:      ev.isCorrect,
		IsSkipped:      ev.isSkipped,
		TimeAllowedSec: ev.timeAllowed,
		TimeSpentSec:   ev.timeSpent,
		LatencyBucket:  ev.latency,
		QuestionIndex:  ev.index,
		TotalQuestions: s.total,
		CompletionRate: ev.completion,
		Motivation:     ev.motivation,
		Engagement:     ev.engagement,
		Effectiveness:  ev.effectiveness,
		Usability:      ev.usability,
		Metadata:       meta,
	})
}

func (e *Engine) emitAnswer(ctx context.Context, name string, res *AnswerResult, t Timing) {
	e.emit(ctx, name, event{
		questionID:  ptr(res.QuestionID),
		conceptID:   ptr(res.ConceptID),
		topic:       ptr(res.Topic),
		before:      ptr(string(res.Adaptation.Current)),
		after:       ptr(string(res.Adaptation.Next)),
		isCorrect:   ptr(res.IsCorrect),
		isSkipped:   ptr(res.IsSkipped),
		timeAllowed: ptr(t.Allowed),
		timeSpent:   ptr(t.Spent),
		latency:     ptr(string(res.Latency)),
		index:       ptr(e.state.index + 1),
	})
}

func ptr[T any](v T) *T {
	return &v
}
