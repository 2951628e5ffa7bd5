package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatClientComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "int main() { return 0; }"}},
			},
		})
	}))
	defer server.Close()

	client := NewChatClient("test-key", server.URL, 1024, 5*time.Second)
	out, err := client.Complete(context.Background(), "gpt-4o-mini", "sys", "solve it")
	require.NoError(t, err)
	assert.Equal(t, "int main() { return 0; }", out)
}

func TestChatClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer server.Close()

	client := NewChatClient("test-key", server.URL, 1024, 5*time.Second)
	_, err := client.Complete(context.Background(), "gpt-4o-mini", "sys", "solve it")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChatClientEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewChatClient("test-key", server.URL, 1024, 5*time.Second)
	_, err := client.Complete(context.Background(), "gpt-4o-mini", "sys", "solve it")
	assert.Error(t, err)
}

func TestChatClientMissingKey(t *testing.T) {
	client := NewChatClient("", "http://unused.invalid", 1024, time.Second)
	_, err := client.Complete(context.Background(), "gpt-4o-mini", "sys", "solve it")
	assert.Error(t, err)
}

func TestChatClientMockMode(t *testing.T) {
	client := NewChatClient("mock", "", 1024, time.Second)

	out, err := client.Complete(context.Background(), "gpt-4o-mini", "sys", "Write a program to add two numbers.")
	require.NoError(t, err)
	assert.Contains(t, out, "scanf")
	assert.Contains(t, out, "```")

	out, err = client.Complete(context.Background(), "gpt-4o-mini", "sys", "anything else")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello, world!")
}
