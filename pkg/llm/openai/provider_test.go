package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-notes-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, status int, payload interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}))
}

func TestChatReturnsFirstChoice(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": "hello"}},
		},
	})
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-3.5-turbo")
	out, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}},
		llm.WithTemperature(0.3), llm.WithMaxTokens(50))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestChatMapsQuotaErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   map[string]interface{}
	}{
		{
			name:   "http 429",
			status: http.StatusTooManyRequests,
			body:   map[string]interface{}{"error": map[string]string{"message": "rate limited"}},
		},
		{
			name:   "insufficient_quota code",
			status: http.StatusForbidden,
			body:   map[string]interface{}{"error": map[string]string{"message": "no credits", "code": "insufficient_quota"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.status, tt.body)
			defer srv.Close()

			p := NewOpenAIProvider(srv.URL, "test-key", "gpt-3.5-turbo")
			_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
			assert.ErrorIs(t, err, llm.ErrQuotaExceeded)
		})
	}
}

func TestChatOtherErrorsAreNotQuota(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]string{"message": "upstream exploded"},
	})
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-3.5-turbo")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.NotErrorIs(t, err, llm.ErrQuotaExceeded)
}

func TestChatEmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, map[string]interface{}{"choices": []interface{}{}})
	defer srv.Close()

	p := NewOpenAIProvider(srv.URL, "test-key", "gpt-3.5-turbo")
	_, err := p.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}
