package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Completer is the contract the generator needs from an AI backend.
type Completer interface {
	Complete(ctx context.Context, model, system, prompt string) (string, error)
}

// ChatClient talks to an OpenAI-compatible chat completions endpoint.
type ChatClient struct {
	APIKey    string
	BaseURL   string
	MaxTokens int
	HTTP      *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Messages  []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewChatClient(apiKey, baseURL string, maxTokens int, timeout time.Duration) *ChatClient {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1/chat/completions"
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &ChatClient{
		APIKey:    apiKey,
		BaseURL:   baseURL,
		MaxTokens: maxTokens,
		HTTP:      &http.Client{Timeout: timeout},
	}
}

func (c *ChatClient) Complete(ctx context.Context, model, system, prompt string) (string, error) {
	// Mock mode check
	if c.APIKey == "mock" || c.BaseURL == "mock://" {
		return mockComplete(prompt)
	}

	if c.APIKey == "" {
		return "", errors.New("api key is required")
	}
	reqBody := chatRequest{
		Model:     model,
		MaxTokens: c.MaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Authorization", "Bearer "+c.APIKey)
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return "", fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 300 {
		var errResp chatResponse
		_ = json.Unmarshal(bodyBytes, &errResp)
		if errResp.Error != nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("api error: status %d, message: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("api error: status %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("invalid api response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("api error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", errors.New("api returned no content")
	}
	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// mockComplete returns canned C programs so the full pipeline can run
// without network access. The shape of the answer tracks the statement the
// prompt embeds, fenced like a real backend reply.
func mockComplete(prompt string) (string, error) {
	promptLower := strings.ToLower(prompt)
	switch {
	case strings.Contains(promptLower, "add two numbers"):
		return "```c\n#include <stdio.h>\n\nint main() {\n    int a, b;\n    printf(\"Enter first number: \");\n    scanf(\"%d\", &a);\n    printf(\"Enter second number: \");\n    scanf(\"%d\", &b);\n    printf(\"Sum: %d\\n\", a + b);\n    return 0;\n}\n```", nil
	case strings.Contains(promptLower, "palindrome"):
		return "```c\n#include <stdio.h>\n#include <string.h>\n\nint main() {\n    char word[100];\n    printf(\"Enter a word: \");\n    scanf(\"%s\", word);\n    int len = strlen(word);\n    int ok = 1;\n    for (int i = 0; i < len / 2; i++) {\n        if (word[i] != word[len - 1 - i]) { ok = 0; break; }\n    }\n    printf(ok ? \"Palindrome\\n\" : \"Not a palindrome\\n\");\n    return 0;\n}\n```", nil
	case strings.Contains(promptLower, "broken"):
		// Deliberately malformed so compile-failure paths are reachable in tests.
		return "```c\n#include <stdio.h>\n\nint main() {\n    printf(\"missing brace\\n\")\n    return 0\n```", nil
	default:
		return "```c\n#include <stdio.h>\n\nint main() {\n    printf(\"Hello, world!\\n\");\n    return 0;\n}\n```", nil
	}
}
