package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pei_compras/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chatRequest struct {
	Model          string  `json:"model"`
	Temperature    float32 `json:"temperature"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(Config{
		APIKey:    "test",
		BaseURL:   srv.URL + "/v1",
		ModelMini: "mini-model",
		ModelFull: "full-model",
		Backoff:   time.Millisecond,
	}, zap.NewNop())
}

func TestOpenAIClient_Complete(t *testing.T) {
	t.Run("json mode picks mini model and unwraps fences", func(t *testing.T) {
		var got chatRequest
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completionBody("```json\n{\"productos\": []}\n```"))
		})

		out, err := c.Complete(context.Background(), interfaces.CompletionRequest{
			SystemPrompt: "sys", UserPrompt: "user", Tier: interfaces.ModelTierMini, Temperature: 0.3, JSONMode: true,
		})
		require.NoError(t, err)
		assert.Equal(t, `{"productos": []}`, out)
		assert.Equal(t, "mini-model", got.Model)
		assert.InDelta(t, 0.3, got.Temperature, 0.0001)
		require.NotNil(t, got.ResponseFormat)
		assert.Equal(t, "json_object", got.ResponseFormat.Type)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "user", got.Messages[1].Content)
	})

	t.Run("free text on full model", func(t *testing.T) {
		var got chatRequest
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completionBody("Estimado proveedor"))
		})

		out, err := c.Complete(context.Background(), interfaces.CompletionRequest{Tier: interfaces.ModelTierFull, Temperature: 0.7})
		require.NoError(t, err)
		assert.Equal(t, "Estimado proveedor", out)
		assert.Equal(t, "full-model", got.Model)
		assert.Nil(t, got.ResponseFormat)
	})

	t.Run("invalid json is malformed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(completionBody("claro, aquí va: {productos"))
		})

		_, err := c.Complete(context.Background(), interfaces.CompletionRequest{JSONMode: true})
		assert.ErrorIs(t, err, interfaces.ErrMalformedCompletion)
	})

	t.Run("server errors are retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
				return
			}
			_ = json.NewEncoder(w).Encode(completionBody(`{"ok":true}`))
		})

		out, err := c.Complete(context.Background(), interfaces.CompletionRequest{JSONMode: true})
		require.NoError(t, err)
		assert.Equal(t, `{"ok":true}`, out)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		})

		_, err := c.Complete(context.Background(), interfaces.CompletionRequest{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, interfaces.ErrMalformedCompletion)
		assert.Equal(t, int32(1), calls.Load())
	})
}
