package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/interview-coach/config"
	"github.com/rs/zerolog/log"
)

const (
	questionSystemPrompt   = "You are an expert interviewer for software engineering roles."
	evaluationSystemPrompt = "You are a senior interviewer providing detailed feedback."
)

// ErrLLMUnavailable is returned by every call when no provider credentials
// were configured.
var ErrLLMUnavailable = errors.New("llm provider is not configured")

// ChatCompleter sends one system + user prompt pair to a chat model and
// returns the raw completion text.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type LLMGateway interface {
	GenerateQuestion(ctx context.Context, role string) (string, error)
	EvaluateAnswer(ctx context.Context, question, answer string) (string, error)
}

type llmGateway struct {
	completer ChatCompleter
}

func NewLLMGateway(completer ChatCompleter) LLMGateway {
	return &llmGateway{completer: completer}
}

func (g *llmGateway) GenerateQuestion(ctx context.Context, role string) (string, error) {
	text, err := g.completer.Complete(ctx, questionSystemPrompt, QuestionPrompt(role))
	if err != nil {
		return "", fmt.Errorf("generate question: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (g *llmGateway) EvaluateAnswer(ctx context.Context, question, answer string) (string, error) {
	text, err := g.completer.Complete(ctx, evaluationSystemPrompt, EvaluationPrompt(question, answer))
	if err != nil {
		return "", fmt.Errorf("evaluate answer: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func QuestionPrompt(role string) string {
	return fmt.Sprintf("Generate one challenging and well-formatted technical interview question for a %s role.\n"+
		"Include detailed requirements and constraints, formatted nicely in Markdown for readability.", role)
}

func EvaluationPrompt(question, answer string) string {
	return fmt.Sprintf("Question: %s\nCandidate's Answer: %s\n\n"+
		"Evaluate the candidate’s response like a senior interviewer. Provide a structured Markdown answer with:\n"+
		"1. ✅ Strengths\n"+
		"2. ⚠️ Areas for Improvement\n"+
		"3. 🧠 Summary Feedback\n"+
		"4. ⭐ Rating out of 10\n", question, answer)
}

// NewChatCompleter builds the completer for the configured provider, wrapped
// with retries. A missing API key yields a completer that always fails so the
// service can still boot.
func NewChatCompleter(cfg *config.Config) (ChatCompleter, error) {
	var (
		completer ChatCompleter
		err       error
	)
	switch cfg.LLM.Provider {
	case "gemini":
		if cfg.LLM.GeminiApiKey == "" {
			log.Warn().Msg("GEMINI_API_KEY is not set. LLM calls will fail.")
			return unavailableCompleter{}, nil
		}
		completer, err = NewGeminiCompleter(cfg)
	default:
		if cfg.LLM.OpenAIApiKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is not set. LLM calls will fail.")
			return unavailableCompleter{}, nil
		}
		completer = NewOpenAICompleter(cfg.LLM.OpenAIBaseURL, cfg.LLM.OpenAIApiKey, cfg.LLM.Model, cfg.LLM.Timeout)
	}
	if err != nil {
		return nil, err
	}
	return NewRetryingCompleter(completer, cfg.LLM.MaxRetries), nil
}

type unavailableCompleter struct{}

func (unavailableCompleter) Complete(context.Context, string, string) (string, error) {
	return "", ErrLLMUnavailable
}
