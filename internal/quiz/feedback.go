package quiz

import (
	"fmt"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/usermodel"
)

// Tone is the register of answer feedback.
type Tone string

const (
	ToneScaffold   Tone = "Scaffold"
	ToneAdvance    Tone = "Advance"
	ToneCorrective Tone = "Corrective"
	ToneReinforce  Tone = "Reinforce"
)

// fastPace is the time ratio under which a correct answer counts as fast.
const fastPace = 0.6

// Timing is the time spent on a question and the time it allowed, in
// seconds.
type Timing struct {
	Spent   float64
	Allowed float64
}

func (t Timing) ratio() float64 {
	if t.Allowed <= 0 {
		return 1
	}
	return max(0, t.Spent) / t.Allowed
}

// Latency buckets answers by the share of the allowed time used.
type Latency string

const (
	LatencyFast     Latency = "fast"
	LatencyExpected Latency = "expected"
	LatencySlow     Latency = "slow"
)

// LatencyBucket classifies spent against allowed: fast up to half the
// allowance, slow from nine tenths.
func LatencyBucket(t Timing) Latency {
	if t.Allowed <= 0 {
		return LatencyExpected
	}
	switch r := t.Spent / t.Allowed; {
	case r <= 0.5:
		return LatencyFast
	case r >= 0.9:
		return LatencySlow
	default:
		return LatencyExpected
	}
}

// Evaluation is the judgement of one response.
type Evaluation struct {
	Correct     bool   `json:"isCorrect"`
	Skipped     bool   `json:"isSkipped"`
	Tone        Tone   `json:"feedbackTone"`
	Feedback    string `json:"feedback"`
	Explanation string `json:"explanation"`
}

// EvaluateResponse judges selected against q. An empty selection is a
// skip. Matching is exact.
func EvaluateResponse(q *catalog.Question, selected string, t Timing) Evaluation {
	skipped := selected == ""
	correct := !skipped && selected == q.Answer

	tone := ToneReinforce
	switch {
	case skipped:
		tone = ToneScaffold
	case correct && t.ratio() <= fastPace:
		tone = ToneAdvance
	case !correct:
		tone = ToneCorrective
	}

	var feedback string
	switch {
	case skipped:
		feedback = fmt.Sprintf("Skipped. Use the hint and retry a similar %s question.", q.Topic)
	case correct && tone == ToneAdvance:
		feedback = fmt.Sprintf("Correct and fast. You are ready for a harder %s item.", q.Topic)
	case correct:
		feedback = fmt.Sprintf("Correct. Keep reinforcing %s.", q.Skill)
	default:
		feedback = fmt.Sprintf("Incorrect. Review the key idea, then try another %s question.", q.Topic)
	}

	return Evaluation{
		Correct:     correct,
		Skipped:     skipped,
		Tone:        tone,
		Feedback:    feedback,
		Explanation: q.Explanation,
	}
}

// Recommendations returns study advice for the learning goal followed by
// one line driven by the subject's accuracy.
func Recommendations(subject string, goal adapt.Goal, snap usermodel.SubjectSnapshot) []string {
	var out []string
	switch goal {
	case adapt.PracticeBasics:
		out = append(out, "Use short retrieval practice on key definitions before harder questions.")
	case adapt.WeakAreas:
		out = append(out, fmt.Sprintf("Focus first on weak topics in %s: %s.", subject, weakTopicText(snap.WeakTopics)))
	case adapt.ChallengeMode:
		out = append(out, "After each advanced item, explain your reasoning in one sentence.")
	}
	if snap.Accuracy < 60 {
		out = append(out, "Review one worked example, then retry similar questions.")
	} else {
		out = append(out, "Mix topics to improve transfer and long-term retention.")
	}
	return out
}

func weakTopicText(topics []usermodel.TopicSummary) string {
	if len(topics) == 0 {
		return "No weak topics yet"
	}
	text := ""
	for i, t := range topics[:min(2, len(topics))] {
		if i > 0 {
			text += ", "
		}
		text += fmt.Sprintf("%s (%d%%)", t.Topic, t.Accuracy)
	}
	return text
}
