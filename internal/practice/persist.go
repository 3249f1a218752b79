package practice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizionix/internal/store"
	"github.com/abhisek/quizionix/internal/validate"
)

// StateKeyPrefix prefixes the per-user practice state key.
const StateKeyPrefix = "quizionix_state_v1"

// StateKey returns the storage key of a user's practice state.
func StateKey(userID string) string {
	return StateKeyPrefix + "::" + userID
}

var nonNegative = map[string]any{"type": "integer", "minimum": 0}

var stateSchema = &validate.Schema{
	Name: "practice-state",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"difficulty":      map[string]any{"type": "string"},
			"knowledgeHealth": map[string]any{"type": "number"},
			"xp":              nonNegative,
			"points":          nonNegative,
			"totalQuestions":  nonNegative,
			"correctAnswers":  nonNegative,
			"wrongAnswers":    nonNegative,
			"branchClears":    nonNegative,
			"badges":          map[string]any{"type": "array"},
			"khHistory": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "integer"},
			},
		},
	},
}

// SaveState persists st for userID.
func SaveState(ctx context.Context, kv store.KV, userID string, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode practice state: %w", err)
	}
	if err := kv.Set(ctx, StateKey(userID), string(data)); err != nil {
		return fmt.Errorf("save practice state: %w", err)
	}
	return nil
}

// LoadState reads the practice state of userID. Like the other loaders it
// always returns a usable state and reports why it fell back.
func LoadState(ctx context.Context, kv store.KV, userID string) (*State, error) {
	raw, ok, err := kv.Get(ctx, StateKey(userID))
	if err != nil {
		return NewState(), fmt.Errorf("read practice state: %w", err)
	}
	if !ok || raw == "" {
		return NewState(), nil
	}
	if err := validate.JSON(stateSchema, []byte(raw)); err != nil {
		return NewState(), err
	}
	st := NewState()
	if err := json.Unmarshal([]byte(raw), st); err != nil {
		return NewState(), fmt.Errorf("decode practice state: %w", err)
	}
	if len(st.HealthHistory) > HealthHistoryLimit {
		st.HealthHistory = st.HealthHistory[len(st.HealthHistory)-HealthHistoryLimit:]
	}
	return st, nil
}
