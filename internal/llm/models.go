package llm

// Friendly model names accepted in configuration. Unknown names pass
// through unchanged so full model IDs work too.
var (
	anthropicModels = map[string]string{
		"claude-sonnet": "claude-sonnet-4-5-20250929",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	}

	openaiModels = map[string]string{
		"gpt-4o":      "gpt-4o",
		"gpt-4o-mini": "gpt-4o-mini",
		"gpt-mini":    "gpt-4.1-mini",
	}

	geminiModels = map[string]string{
		"gemini-flash": "gemini-2.5-flash",
		"gemini-lite":  "gemini-2.5-flash-lite",
		"gemini-pro":   "gemini-2.5-pro",
	}
)

func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
