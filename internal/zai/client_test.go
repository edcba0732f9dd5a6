package zai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "zai-proxy/internal/errors"
	"zai-proxy/internal/model"
	"zai-proxy/internal/zai"
)

func newRequest() *model.UpstreamRequest {
	return &model.UpstreamRequest{
		Model:    "GLM-4-6-API-V1",
		Messages: []model.UpstreamMessage{{Role: "user", Content: "hi"}},
		Features: model.DefaultFeatures(),
		ChatID:   "chat-1",
		ID:       "req-1",
	}
}

func headerOptions() zai.HeaderOptions {
	return zai.HeaderOptions{
		Origin:         "https://chat.z.ai",
		FEVersion:      "prod-fe-1.0.95",
		UserAgent:      "test-agent",
		AcceptLanguage: "zh-CN",
	}
}

func TestClient_Stream(t *testing.T) {
	t.Run("Sends the request and returns the body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			assert.Equal(t, "prod-fe-1.0.95", r.Header.Get("X-FE-Version"))
			assert.Equal(t, "https://chat.z.ai", r.Header.Get("Origin"))
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, true, body["stream"])
			assert.Equal(t, "GLM-4-6-API-V1", body["model"])
			assert.Equal(t, "chat-1", body["chat_id"])
			features := body["features"].(map[string]any)
			assert.Equal(t, []any{}, features["flags"])
			assert.Equal(t, true, features["enable_thinking"])

			_, _ = io.WriteString(w, "data: {}\n\n")
		}))
		defer server.Close()

		client := zai.NewClient(zai.Options{BaseURL: server.URL, Timeout: time.Second, Headers: zai.DefaultHeaders(headerOptions())})
		body, err := client.Stream(context.Background(), "tok-1", newRequest())
		require.NoError(t, err)
		defer body.Close()

		got, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "data: {}\n\n", string(got))
	})

	t.Run("Non-2xx is an upstream status error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"bad token"}`)
		}))
		defer server.Close()

		client := zai.NewClient(zai.Options{BaseURL: server.URL, Timeout: time.Second})
		_, err := client.Stream(context.Background(), "tok", newRequest())
		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrUpstreamStatus)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "bad token")
	})

	t.Run("Unreachable upstream is a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client := zai.NewClient(zai.Options{BaseURL: url, Timeout: time.Second})
		_, err := client.Stream(context.Background(), "tok", newRequest())
		assert.ErrorIs(t, err, app_errors.ErrUpstreamTransport)
	})
}

func TestClient_Complete(t *testing.T) {
	t.Run("Reads the whole body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, false, body["stream"])
			assert.Equal(t, "/api/chat/completions", r.URL.Path)
			_, _ = io.WriteString(w, "full reply")
		}))
		defer server.Close()

		client := zai.NewClient(zai.Options{BaseURL: server.URL, Timeout: time.Second})
		got, err := client.Complete(context.Background(), "tok", newRequest())
		require.NoError(t, err)
		assert.Equal(t, "full reply", string(got))
	})

	t.Run("Slow upstream hits the timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		client := zai.NewClient(zai.Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
		_, err := client.Complete(context.Background(), "tok", newRequest())
		assert.ErrorIs(t, err, app_errors.ErrUpstreamTransport)
	})
}

func TestClient_TokensDoNotLeakBetweenRequests(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[string]int{}
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen[r.Header.Get("Authorization")]++
		mu.Unlock()
		_, _ = io.WriteString(w, "ok")
	}))
	defer server.Close()

	template := zai.DefaultHeaders(headerOptions())
	client := zai.NewClient(zai.Options{BaseURL: server.URL, Timeout: time.Second, Headers: template})

	var wg sync.WaitGroup
	for _, token := range []string{"a", "b", "c", "d"} {
		for range 5 {
			wg.Add(1)
			go func(token string) {
				defer wg.Done()
				_, err := client.Complete(context.Background(), token, newRequest())
				assert.NoError(t, err)
			}(token)
		}
	}
	wg.Wait()

	assert.Equal(t, map[string]int{"Bearer a": 5, "Bearer b": 5, "Bearer c": 5, "Bearer d": 5}, seen)
	assert.Empty(t, template.Get("Authorization"))
}
