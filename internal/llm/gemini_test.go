package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.5-flash-lite", "gemini-2.5-flash-lite"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiConfig(t *testing.T) {
	cfg := buildGeminiConfig(Request{System: "grader", MaxTokens: 512, Temperature: 0.4})
	if cfg.MaxOutputTokens != 512 {
		t.Errorf("max tokens = %d", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != float32(0.4) {
		t.Errorf("temperature not set")
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "grader" {
		t.Errorf("system instruction not set")
	}

	empty := buildGeminiConfig(Request{})
	if empty.Temperature != nil || empty.SystemInstruction != nil || empty.MaxOutputTokens != 0 {
		t.Errorf("zero request should leave provider defaults: %+v", empty)
	}
}

func TestBuildGeminiContents(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "q"},
		{Role: RoleAssistant, Content: "a"},
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != string(genai.RoleUser) || contents[1].Role != string(genai.RoleModel) {
		t.Errorf("unexpected roles %q, %q", contents[0].Role, contents[1].Role)
	}
	if contents[1].Parts[0].Text != "a" {
		t.Errorf("unexpected text %q", contents[1].Parts[0].Text)
	}
}
