package service

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestSystemInstruction(t *testing.T) {
	content := systemInstruction(questionSystemPrompt)
	if len(content.Parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(content.Parts))
	}
	if got, ok := content.Parts[0].(genai.Text); !ok || string(got) != questionSystemPrompt {
		t.Fatalf("part = %#v", content.Parts[0])
	}
}

func TestResponseText(t *testing.T) {
	candidate := func(parts ...genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
		}
	}

	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		want    string
		wantErr bool
	}{
		{name: "joins text parts", resp: candidate(genai.Text("Strengths: clear. "), genai.Text("Rating: 7/10")), want: "Strengths: clear. Rating: 7/10"},
		{name: "skips non-text parts", resp: candidate(genai.Blob{MIMEType: "image/png"}, genai.Text("only text")), want: "only text"},
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, wantErr: true},
		{name: "no text parts", resp: candidate(genai.Blob{MIMEType: "image/png"}), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := responseText(tt.resp)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("responseText: %v", err)
			}
			if got != tt.want {
				t.Fatalf("text = %q, want %q", got, tt.want)
			}
		})
	}
}
