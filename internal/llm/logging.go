package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/learnpath/internal/logger"
	"github.com/abhisek/learnpath/internal/store"
)

// RecordingProvider logs every request and appends it to the event log.
type RecordingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      *logger.Logger
}

// WithRecording wraps p. events and log may be nil.
func WithRecording(p Provider, providerName string, events store.EventRepo, log *logger.Logger) Provider {
	if log == nil {
		log = logger.Nop()
	}
	return &RecordingProvider{inner: p, provider: providerName, events: events, log: log}
}

func (r *RecordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    r.provider,
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		r.log.Warn("llm request failed",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
			"concept_id", ConceptFrom(ctx), "latency_ms", data.LatencyMs,
			"kind", ErrorKind(err), "error", err)
	} else {
		r.log.Debug("llm request",
			"provider", data.Provider, "model", data.Model, "purpose", data.Purpose,
			"concept_id", ConceptFrom(ctx), "latency_ms", data.LatencyMs,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)
	}

	// A failed write must not fail the request.
	if r.events != nil {
		if logErr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
			r.log.Warn("record llm request event", "error", logErr)
		}
	}

	return resp, err
}

func (r *RecordingProvider) ModelID() string {
	return r.inner.ModelID()
}

// serializeRequest renders req as readable text for the event log.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
