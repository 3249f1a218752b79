package zone

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/mod/semver"

	"github.com/abhisek/quizionix/internal/adapt"
	"github.com/abhisek/quizionix/internal/catalog"
	"github.com/abhisek/quizionix/internal/health"
	"github.com/abhisek/quizionix/internal/store"
	"github.com/abhisek/quizionix/internal/validate"
)

// StateKeyPrefix prefixes the per-user zone state key.
const StateKeyPrefix = "quizionix_zone_state_v1"

// StateKey returns the storage key of a user's zone state.
func StateKey(userID string) string {
	return StateKeyPrefix + "::" + userID
}

var counterRecord = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"attempts":  map[string]any{"type": "integer", "minimum": 0},
		"correct":   map[string]any{"type": "integer", "minimum": 0},
		"completed": map[string]any{"type": "boolean"},
		"hp":        map[string]any{"type": "integer"},
		"maxHp":     map[string]any{"type": "integer"},
	},
	"required": []any{"attempts", "correct", "completed"},
}

var stateSchema = &validate.Schema{
	Name: "zone-state",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schemaVersion":   map[string]any{"type": "string", "minLength": 1},
			"difficultyLevel": map[string]any{"type": "string"},
			"knowledgeHealth": map[string]any{"type": "number"},
			"branchProgress": map[string]any{
				"type":                 "object",
				"additionalProperties": counterRecord,
			},
			"bossProgress": map[string]any{
				"type":                 "object",
				"additionalProperties": counterRecord,
			},
			"zoneUnlocks": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "boolean"},
			},
			"badges":      map[string]any{"type": "array"},
			"totalPoints": map[string]any{"type": "integer", "minimum": 0},
			"researchLog": map[string]any{"type": "array"},
		},
		"required": []any{"schemaVersion"},
	},
}

// IncompatibleError reports persisted state written by a newer major
// schema version.
type IncompatibleError struct {
	Version string
}

func (e *IncompatibleError) Error() string {
	return fmt.Sprintf("zone state schema %s is not compatible with %s", e.Version, StateSchemaVersion)
}

// SaveState persists st for userID.
func SaveState(ctx context.Context, kv store.KV, userID string, st *State) error {
	st.SchemaVersion = StateSchemaVersion
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode zone state: %w", err)
	}
	if err := kv.Set(ctx, StateKey(userID), string(data)); err != nil {
		return fmt.Errorf("save zone state: %w", err)
	}
	return nil
}

// LoadState reads the zone state of userID. It always returns a usable
// state: a fresh one when nothing is stored, or when the stored blob is
// unreadable, in which case the error says why.
func LoadState(ctx context.Context, kv store.KV, userID string, zones []catalog.Zone) (*State, error) {
	raw, ok, err := kv.Get(ctx, StateKey(userID))
	if err != nil {
		return NewState(zones), fmt.Errorf("read zone state: %w", err)
	}
	if !ok || raw == "" {
		return NewState(zones), nil
	}
	st, err := decodeState([]byte(raw))
	if err != nil {
		return NewState(zones), err
	}
	st.normalize(zones)
	return st, nil
}

func decodeState(raw []byte) (*State, error) {
	if err := validate.JSON(stateSchema, raw); err != nil {
		return nil, err
	}
	// Fields missing from the blob keep these defaults.
	st := State{Health: health.Full(), Difficulty: adapt.Beginner}
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode zone state: %w", err)
	}
	if !compatible(st.SchemaVersion) {
		return nil, &IncompatibleError{Version: st.SchemaVersion}
	}
	return &st, nil
}

// compatible reports whether a persisted version shares the current
// major version.
func compatible(version string) bool {
	v := "v" + version
	if !semver.IsValid(v) {
		return false
	}
	return semver.Major(v) == semver.Major("v"+StateSchemaVersion)
}
