package generate

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini generates plans with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) GeneratePlan(ctx context.Context, req PlanRequest) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(req)), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := cleanMarkdownOutput(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty plan")
	}
	return text, nil
}
