package transcribe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWhisperClient(baseURL string) *WhisperClient {
	cfg := DefaultWhisperConfig("test-key")
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	return NewWhisperClient(cfg)
}

func TestTranscribe_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "clip.webm", header.Filename)
		assert.Equal(t, "audio/webm", header.Header.Get("Content-Type"))

		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-audio"), payload)

		w.Write([]byte(`{"text": "  jazz concerts this weekend \n"}`))
	}))
	defer srv.Close()

	text, err := newTestWhisperClient(srv.URL).
		Transcribe(context.Background(), []byte("fake-audio"), "clip.webm", "audio/webm")
	require.NoError(t, err)
	assert.Equal(t, "jazz concerts this weekend", text)
}

func TestTranscribe_EmptySpeechIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": ""}`))
	}))
	defer srv.Close()

	text, err := newTestWhisperClient(srv.URL).
		Transcribe(context.Background(), []byte("silence"), "", "")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTranscribe_MissingKeySkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	cfg := DefaultWhisperConfig("")
	cfg.BaseURL = srv.URL
	_, err := NewWhisperClient(cfg).Transcribe(context.Background(), []byte("x"), "", "")

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.False(t, called)
}

func TestTranscribe_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad request", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}},
		{"malformed body", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestWhisperClient(srv.URL).
				Transcribe(context.Background(), []byte("x"), "", "")
			assert.ErrorIs(t, err, ErrTranscriptionFailed)
		})
	}
}
