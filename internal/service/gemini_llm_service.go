package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/interview-coach/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type geminiCompleter struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
}

func NewGeminiCompleter(cfg *config.Config) (ChatCompleter, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.LLM.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiCompleter{client: client, modelName: cfg.LLM.GeminiModel, timeout: cfg.LLM.Timeout}, nil
}

func (s *geminiCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	model := s.client.GenerativeModel(s.modelName)
	model.SystemInstruction = systemInstruction(systemPrompt)

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini api error: %w", err)
	}
	return responseText(resp)
}

func systemInstruction(prompt string) *genai.Content {
	return &genai.Content{Parts: []genai.Part{genai.Text(prompt)}}
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return sb.String(), nil
}

func (s *geminiCompleter) Close() error {
	return s.client.Close()
}
