package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return newOpenAICompatible("test-key", server.URL+"/v1", "gpt-4o-mini")
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicGenerate(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK,
		anthropicMessage(`{"name":"Ada","age":10}`, "end_turn")))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write practice questions.",
		Messages:  []Message{{Role: RoleUser, Content: "One please."}},
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, resp.Usage.InputTokens)
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
}

func TestAnthropicTruncatedSchemaResponse(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK,
		anthropicMessage(`{"name":"Ad`, "max_tokens")))

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		Schema:    testSchema(),
		MaxTokens: 5,
	})
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestAnthropicErrors(t *testing.T) {
	errBody := map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "api_error", "message": "nope"},
	}

	p := newTestAnthropic(t, jsonHandler(http.StatusTooManyRequests, errBody))
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 10})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)

	p = newTestAnthropic(t, jsonHandler(http.StatusInternalServerError, errBody))
	_, err = p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 10})
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func openAICompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var sent struct {
		Model    string                         `json:"model"`
		Messages []openai.ChatCompletionMessage `json:"messages"`
	}
	reply := jsonHandler(http.StatusOK, openAICompletion(`{"name":"Ada","age":10}`, string(openai.FinishReasonStop)))
	p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
		reply(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write practice questions.",
		Messages:  []Message{{Role: RoleUser, Content: "One please."}},
		Schema:    testSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, StopEnd, resp.StopReason)

	assert.Equal(t, "gpt-4o-mini", sent.Model)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, sent.Messages[0].Role)
	assert.Equal(t, "You write practice questions.", sent.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, sent.Messages[1].Role)
}

func TestOpenAITruncated(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusOK,
		openAICompletion(`{"name":"A`, string(openai.FinishReasonLength))))

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   testSchema(),
	})
	var mt *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &mt)
}

func TestOpenAISchemaViolation(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, openAICompletion(`{"name":"Ada"}`, "stop")))

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "x"}},
		Schema:   testSchema(),
	})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestOpenAIRateLimit(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "slow down", "type": "rate_limit"},
	}))
	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}})
	var rl *ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"})
	assert.Error(t, err)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "anthropic/claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
}

func TestGeminiSchema(t *testing.T) {
	schema := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":   map[string]any{"type": "string"},
			"age":    map[string]any{"type": "integer"},
			"grade":  map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			"scores": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
			"odd":    map[string]any{"type": "tuple"},
		},
		"required": []string{"name", "age"},
	})

	assert.Equal(t, "OBJECT", string(schema.Type))
	require.Len(t, schema.Properties, 5)
	assert.Equal(t, "INTEGER", string(schema.Properties["age"].Type))
	assert.Len(t, schema.Properties["grade"].Enum, 3)
	assert.Equal(t, "INTEGER", string(schema.Properties["scores"].Items.Type))
	assert.Equal(t, "STRING", string(schema.Properties["odd"].Type))
	assert.Equal(t, []string{"name", "age"}, schema.Required)
}
