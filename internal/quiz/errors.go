package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is returned by session calls made without an active quiz.
	ErrNotStarted = errors.New("quiz has not been started")

	// ErrQuestionUnavailable is returned when the current question was
	// already evaluated or there is none.
	ErrQuestionUnavailable = errors.New("current question is not available for submission")

	// ErrNotEvaluated is returned by Next before the current question has
	// an outcome.
	ErrNotEvaluated = errors.New("answer the current question before moving to the next one")

	// ErrIncomplete is returned by Finish while questions remain.
	ErrIncomplete = errors.New("cannot finish quiz before all questions are answered")

	// ErrSubjectRequired is returned by Start without a subject.
	ErrSubjectRequired = errors.New("subject is required")

	// ErrSubjectUnavailable is wrapped by SubjectError.
	ErrSubjectUnavailable = errors.New("subject is not available")
)

// SubjectError reports a subject missing from the catalog.
type SubjectError struct {
	Subject string
}

func (e *SubjectError) Error() string {
	return fmt.Sprintf("subject is not available: %s", e.Subject)
}

func (e *SubjectError) Unwrap() error { return ErrSubjectUnavailable }
