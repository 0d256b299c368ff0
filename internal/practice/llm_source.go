package practice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/learnpath/internal/llm"
	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/vark"
)

// LLMConfig controls the behavior of the LLMSource.
type LLMConfig struct {
	// Validators run in order on every generated question; the first
	// failure rejects it.
	Validators []Validator

	// MaxTokens is the token budget for each response.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorQuestions caps the dedup list sent with each prompt.
	MaxPriorQuestions int
}

// DefaultLLMConfig returns the standard validator chain and limits.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Validators:        DefaultValidators(),
		MaxTokens:         512,
		Temperature:       0.7,
		MaxPriorQuestions: 8,
	}
}

// LLMSource writes one question per slot with an LLM. Slots the model
// fails on are filled by the fallback source when one is set.
type LLMSource struct {
	provider llm.Provider
	config   LLMConfig
	fallback Source
	log      *logger.Logger
}

// NewLLMSource creates an LLMSource. fallback may be nil, in which case any
// failed slot fails the request.
func NewLLMSource(provider llm.Provider, cfg LLMConfig, fallback Source, log *logger.Logger) *LLMSource {
	if log == nil {
		log = logger.Nop()
	}
	return &LLMSource{provider: provider, config: cfg, fallback: fallback, log: log}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Hints         []string `json:"hints"`
}

func (s *LLMSource) Questions(ctx context.Context, req Request) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "practice-question")

	out := make([]Question, 0, len(req.Modes))
	var prior []string
	var failed []vark.Mode
	var failedAt []int
	for _, mode := range req.Modes {
		q, err := s.generateOne(ctx, req, mode, prior)
		if err != nil {
			if s.fallback == nil {
				return nil, err
			}
			s.log.Warn("llm question rejected, using fallback",
				"concept_id", req.Gap.ConceptID, "mode", mode, "error", err)
			failed = append(failed, mode)
			failedAt = append(failedAt, len(out))
			out = append(out, Question{})
			continue
		}
		prior = append(prior, q.Text)
		out = append(out, *q)
	}

	if len(failed) == 0 {
		return out, nil
	}
	fb := req
	fb.Modes = failed
	filled, err := s.fallback.Questions(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("fallback source: %w", err)
	}
	for i, idx := range failedAt {
		if i < len(filled) {
			out[idx] = filled[i]
		}
	}
	return out, nil
}

func (s *LLMSource) generateOne(ctx context.Context, req Request, mode vark.Mode, prior []string) (*Question, error) {
	ctx = llm.WithConcept(ctx, req.Gap.ConceptID)
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req, mode, prior, s.config.MaxPriorQuestions)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &Question{
		ConceptID:     req.Gap.ConceptID,
		ConceptName:   req.Gap.ConceptName,
		Mode:          mode,
		Difficulty:    req.Gap.RecommendedDifficulty,
		Type:          QuestionType(raw.Type),
		Text:          raw.Question,
		Options:       raw.Options,
		CorrectAnswer: raw.CorrectAnswer,
		Explanation:   raw.Explanation,
		Hints:         raw.Hints,
	}
	if len(q.Options) == 0 {
		q.Options = nil
	}
	if len(q.Hints) == 0 {
		q.Hints = nil
	}

	for _, v := range s.config.Validators {
		if verr := v.Validate(q, req); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}
