package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAI generates plans through any OpenAI-compatible chat completions
// endpoint (OpenAI, Ollama, vLLM).
type OpenAI struct {
	client   *http.Client
	apiKey   string
	model    string
	endpoint string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewOpenAI(apiKey, model, baseURL string, timeout time.Duration) *OpenAI {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &OpenAI{
		client:   &http.Client{Timeout: timeout},
		apiKey:   apiKey,
		model:    model,
		endpoint: chatEndpoint(baseURL),
	}
}

// chatEndpoint normalizes a base URL to the chat completions path.
func chatEndpoint(baseURL string) string {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		return "https://api.openai.com/v1/chat/completions"
	}
	endpoint = strings.TrimRight(endpoint, "/")
	if strings.HasSuffix(endpoint, "/chat/completions") {
		return endpoint
	}
	if strings.HasSuffix(endpoint, "/v1") {
		return endpoint + "/chat/completions"
	}
	return endpoint + "/v1/chat/completions"
}

func (o *OpenAI) GeneratePlan(ctx context.Context, req PlanRequest) (string, error) {
	if strings.TrimSpace(o.model) == "" {
		return "", fmt.Errorf("openai model is required")
	}

	body, err := json.Marshal(chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a certified personal trainer who writes structured weekly exercise plans."},
			{Role: "user", Content: BuildPrompt(req)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai chat request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai chat request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	text := cleanMarkdownOutput(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai returned an empty plan")
	}
	return text, nil
}
