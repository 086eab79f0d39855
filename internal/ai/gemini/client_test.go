package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"

	"github.com/spigell/candidate-evaluator/internal/ai"
)

type fakeResponse struct {
	resp *genai.GenerateContentResponse
	err  error
}

type fakeModels struct {
	mu      sync.Mutex
	queue   []fakeResponse
	models  []string
	prompts []string
}

func (f *fakeModels) enqueue(resp *genai.GenerateContentResponse, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, fakeResponse{resp: resp, err: err})
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.models = append(f.models, model)
	for _, content := range contents {
		for _, part := range content.Parts {
			f.prompts = append(f.prompts, part.Text)
		}
	}

	if len(f.queue) == 0 {
		return nil, errors.New("unexpected call")
	}
	res := f.queue[0]
	f.queue = f.queue[1:]
	return res.resp, res.err
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]*genai.Part, 0, len(texts))
	for _, text := range texts {
		parts = append(parts, &genai.Part{Text: text})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func testGenerator(models contentModels, maxRetries int, log *zap.Logger) *Generator {
	g := newGenerator(models, "gemini-pro", maxRetries, log)
	g.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return g
}

func TestGeneratorRetriesOnTemporaryError(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"})
	models.enqueue(textResponse("retry", " ok "), nil)

	core, logs := observer.New(zapcore.WarnLevel)
	g := testGenerator(models, 2, zap.New(core))

	output, err := g.GenerateContent(context.Background(), "  message ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if output != "retry\nok" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.models) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.models))
	}
	for i, prompt := range models.prompts {
		if prompt != "message" || models.models[i] != "gemini-pro" {
			t.Fatalf("unexpected call %d: model=%q prompt=%q", i, models.models[i], prompt)
		}
	}

	entries := logs.FilterMessage("temporary gemini error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one retry warning, got %d", len(entries))
	}
	if entries[0].ContextMap()["ai_model"] != "gemini-pro" {
		t.Fatalf("expected model field on retry warning, got %v", entries[0].ContextMap())
	}
}

func TestGeneratorStopsAfterRetriesExhausted(t *testing.T) {
	models := &fakeModels{}
	tempErr := genai.APIError{Code: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	models.enqueue(nil, tempErr)
	models.enqueue(nil, tempErr)

	g := testGenerator(models, 2, zap.NewNop())

	_, err := g.GenerateContent(context.Background(), "msg")
	if !errors.Is(err, ai.ErrModel) {
		t.Fatalf("expected model error after retries exhausted, got %v", err)
	}
	if len(models.models) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(models.models))
	}
}

func TestGeneratorDoesNotRetryOnLongQuotaDelay(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{
		Code:    http.StatusTooManyRequests,
		Status:  "RESOURCE_EXHAUSTED",
		Message: "quota exhausted, retry after 60 seconds",
	})

	g := testGenerator(models, 3, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), "msg"); err == nil {
		t.Fatal("expected error when quota delay too long")
	}
	if len(models.models) != 1 {
		t.Fatalf("expected single call, got %d", len(models.models))
	}
}

func TestGeneratorDoesNotRetryClientErrors(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(nil, genai.APIError{Code: http.StatusBadRequest, Status: "INVALID_ARGUMENT"})

	g := testGenerator(models, 3, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), "msg"); err == nil {
		t.Fatal("expected error for bad request")
	}
	if len(models.models) != 1 {
		t.Fatalf("expected single call, got %d", len(models.models))
	}
}

func TestGeneratorRejectsEmptyPromptAndResponse(t *testing.T) {
	models := &fakeModels{}
	models.enqueue(textResponse("   "), nil)
	g := testGenerator(models, 1, zap.NewNop())

	if _, err := g.GenerateContent(context.Background(), " "); !errors.Is(err, ai.ErrModel) {
		t.Fatalf("expected model error for empty prompt, got %v", err)
	}
	if len(models.models) != 0 {
		t.Fatalf("empty prompt must not reach the api")
	}

	if _, err := g.GenerateContent(context.Background(), "hello"); !errors.Is(err, ai.ErrModel) {
		t.Fatalf("expected model error for empty response, got %v", err)
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g := newGenerator(&fakeModels{}, " ", 0, nil)
	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", g.Model())
	}
	if g.maxRetries != defaultMaxRetries {
		t.Fatalf("expected default retries, got %d", g.maxRetries)
	}

	if _, err := NewGenerator(context.Background(), " ", "", 0, nil); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestRetryDelay(t *testing.T) {
	cases := []struct {
		message string
		want    float64
		ok      bool
	}{
		{"Please retry in 12.5s.", 12.5, true},
		{"retry after 60 seconds", 60, true},
		{"quota exhausted", 0, false},
	}
	for _, tc := range cases {
		got, ok := retryDelay(tc.message)
		if ok != tc.ok || got.Seconds() != tc.want {
			t.Fatalf("retryDelay(%q) = %v, %v", tc.message, got, ok)
		}
	}
}
