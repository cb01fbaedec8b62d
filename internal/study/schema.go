package study

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// mcqResponseSchema constrains the service's JSON output (Gemini schema dialect).
var mcqResponseSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"question": map[string]any{"type": "STRING"},
			"options": map[string]any{
				"type":  "ARRAY",
				"items": map[string]any{"type": "STRING"},
			},
			"answer":      map[string]any{"type": "STRING"},
			"explanation": map[string]any{"type": "STRING"},
		},
		"required": []string{"question", "options", "answer", "explanation"},
	},
}

// mcqValidationSchema is the same contract as JSON Schema, checked locally.
const mcqValidationSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "question":    {"type": "string"},
      "options":     {"type": "array", "items": {"type": "string"}, "minItems": 1},
      "answer":      {"type": "string"},
      "explanation": {"type": "string"}
    },
    "required": ["question", "options", "answer", "explanation"]
  }
}`

var mcqSchema = mustSchema(mcqValidationSchema)

func mustSchema(s string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(s))
	if err != nil {
		panic("study: invalid embedded schema: " + err.Error())
	}
	return schema
}

// stripFences removes markdown code-fence markers the service sometimes
// wraps JSON output in.
func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// parseQuestions turns raw service text into validated questions.
func parseQuestions(text string) ([]Question, error) {
	cleaned := stripFences(text)

	result, err := mcqSchema.Validate(gojsonschema.NewStringLoader(cleaned))
	if err != nil {
		return nil, fmt.Errorf("decode mcq payload: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("mcq payload does not match schema: %s", strings.Join(msgs, "; "))
	}

	var questions []Question
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("decode mcq payload: %w", err)
	}
	for i, q := range questions {
		if !slices.Contains(q.Options, q.Answer) {
			return nil, fmt.Errorf("question %d: answer %q is not one of its options", i+1, q.Answer)
		}
	}
	return questions, nil
}
