package session

import (
	"time"
)

// timerTickMsg drives the per-question countdown. Gen ties the tick to the
// question it was scheduled for.
type timerTickMsg struct {
	Gen  int64
	Time time.Time
}

// subjectChosenMsg is sent by the subject menu.
type subjectChosenMsg struct {
	Subject string
}

// goalChosenMsg is sent by the goal menu and starts the quiz.
type goalChosenMsg struct {
	Goal string
}
