package interpret

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGroqClient(baseURL string) *GroqClient {
	cfg := DefaultGroqConfig("test-key")
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	return NewGroqClient(cfg)
}

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestGroqComplete_Success(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(completionBody("  [\"m1\",\"c2\"]\n")))
	}))
	defer srv.Close()

	out, err := newTestGroqClient(srv.URL).Complete(context.Background(), "rules", "query")
	require.NoError(t, err)
	assert.Equal(t, `["m1","c2"]`, out, "result is trimmed")

	assert.Equal(t, "llama-3.1-8b-instant", gotReq.Model)
	assert.InDelta(t, 0.1, gotReq.Temperature, 1e-9)
	assert.Equal(t, 256, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "rules", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "query", gotReq.Messages[1].Content)
}

func TestGroqComplete_MissingKeySkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := DefaultGroqConfig("")
	cfg.BaseURL = srv.URL
	_, err := NewGroqClient(cfg).Complete(context.Background(), "s", "u")

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.False(t, called)
}

func TestGroqComplete_RetriesRateLimit(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(completionBody(`["m1"]`)))
	}))
	defer srv.Close()

	out, err := newTestGroqClient(srv.URL).Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, `["m1"]`, out)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGroqComplete_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"unauthorized", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"no choices", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}},
		{"error payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestGroqClient(srv.URL).Complete(context.Background(), "s", "u")
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestGroqComplete_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(completionBody(`[]`)))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestGroqClient(srv.URL).Complete(ctx, "s", "u")
	assert.ErrorIs(t, err, ErrUnavailable)
}
