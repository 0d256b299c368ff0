package practice

import "github.com/abhisek/learnpath/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "practice-question",
	Description: "A single practice question with answer, explanation and hints",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the learner, self-contained",
			},
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{"multiple-choice", "short-answer", "true-false", "fill-blank"},
				"description": "How the learner answers",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-6 options for multiple-choice. Empty array otherwise.",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For multiple-choice: the text of the correct option. For true-false: \"true\" or \"false\".",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Short worked solution shown after answering",
			},
			"hints": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    3,
				"description": "Up to 3 progressive hints",
			},
		},
		"required":             []any{"question", "type", "options", "correct_answer", "explanation", "hints"},
		"additionalProperties": false,
	},
}
