package catalog

import "github.com/abhisek/quizionix/internal/validate"

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var conceptSchema = &validate.Schema{
	Name: "catalog-concept",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":                 map[string]any{"type": "string", "minLength": 1},
			"subject":            map[string]any{"type": "string", "minLength": 1},
			"topic":              map[string]any{"type": "string", "minLength": 1},
			"name":               map[string]any{"type": "string", "minLength": 1},
			"skill":              map[string]any{"type": "string"},
			"learning_target":    map[string]any{"type": "string"},
			"key_idea":           map[string]any{"type": "string"},
			"question_stems":     stringList,
			"correct_statements": stringList,
			"misconceptions":     stringList,
			"applications":       stringList,
			"challenge_prompts":  stringList,
			"hints":              stringList,
		},
		"required": []any{"id", "subject", "topic", "name"},
	},
}
