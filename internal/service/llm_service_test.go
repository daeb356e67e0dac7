package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lshigami/interview-coach/config"
)

type recordingCompleter struct {
	system, user string
	reply        string
	err          error
	calls        int
}

func (r *recordingCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	r.calls++
	r.system, r.user = systemPrompt, userPrompt
	return r.reply, r.err
}

func TestLLMGatewayGenerateQuestion(t *testing.T) {
	rec := &recordingCompleter{reply: "\n  **Design a rate limiter**  \n"}
	gw := NewLLMGateway(rec)

	got, err := gw.GenerateQuestion(context.Background(), "Backend Engineer")
	if err != nil {
		t.Fatalf("GenerateQuestion: %v", err)
	}
	if got != "**Design a rate limiter**" {
		t.Fatalf("text not trimmed: %q", got)
	}
	if rec.system != "You are an expert interviewer for software engineering roles." {
		t.Fatalf("unexpected system prompt: %q", rec.system)
	}
	want := "Generate one challenging and well-formatted technical interview question for a Backend Engineer role.\n" +
		"Include detailed requirements and constraints, formatted nicely in Markdown for readability."
	if rec.user != want {
		t.Fatalf("unexpected user prompt:\n%q\nwant\n%q", rec.user, want)
	}
}

func TestLLMGatewayEvaluateAnswer(t *testing.T) {
	rec := &recordingCompleter{reply: "Good. 6/10\n"}
	gw := NewLLMGateway(rec)

	got, err := gw.EvaluateAnswer(context.Background(), "What is a mutex?", "A lock.")
	if err != nil {
		t.Fatalf("EvaluateAnswer: %v", err)
	}
	if got != "Good. 6/10" {
		t.Fatalf("text not trimmed: %q", got)
	}
	if rec.system != "You are a senior interviewer providing detailed feedback." {
		t.Fatalf("unexpected system prompt: %q", rec.system)
	}
	if !strings.HasPrefix(rec.user, "Question: What is a mutex?\nCandidate's Answer: A lock.\n\n") {
		t.Fatalf("unexpected user prompt: %q", rec.user)
	}
	if !strings.HasSuffix(rec.user, "4. ⭐ Rating out of 10\n") {
		t.Fatalf("prompt must ask for a rating out of 10: %q", rec.user)
	}
}

func TestLLMGatewayPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	gw := NewLLMGateway(&recordingCompleter{err: boom})

	if _, err := gw.GenerateQuestion(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("GenerateQuestion error = %v, want wrapped boom", err)
	}
	if _, err := gw.EvaluateAnswer(context.Background(), "q", "a"); !errors.Is(err, boom) {
		t.Fatalf("EvaluateAnswer error = %v, want wrapped boom", err)
	}
}

func TestNewChatCompleterWithoutKeyFails(t *testing.T) {
	for _, provider := range []string{"openai", "gemini"} {
		t.Run(provider, func(t *testing.T) {
			cfg := &config.Config{LLM: config.LLM{Provider: provider, MaxRetries: 2}}
			c, err := NewChatCompleter(cfg)
			if err != nil {
				t.Fatalf("NewChatCompleter: %v", err)
			}
			if _, err := c.Complete(context.Background(), "s", "u"); !errors.Is(err, ErrLLMUnavailable) {
				t.Fatalf("Complete error = %v, want ErrLLMUnavailable", err)
			}
		})
	}
}

func TestNewChatCompleterOpenAIIsRetrying(t *testing.T) {
	cfg := &config.Config{LLM: config.LLM{
		Provider:      "openai",
		Model:         "gpt-4o-mini",
		MaxRetries:    3,
		OpenAIApiKey:  "sk-test",
		OpenAIBaseURL: "http://127.0.0.1:1",
	}}
	c, err := NewChatCompleter(cfg)
	if err != nil {
		t.Fatalf("NewChatCompleter: %v", err)
	}
	r, ok := c.(*retryingCompleter)
	if !ok {
		t.Fatalf("completer type = %T, want *retryingCompleter", c)
	}
	if r.maxRetries != 3 {
		t.Fatalf("maxRetries = %d, want 3", r.maxRetries)
	}
	if _, ok := r.next.(*openAICompleter); !ok {
		t.Fatalf("wrapped completer type = %T, want *openAICompleter", r.next)
	}
}
