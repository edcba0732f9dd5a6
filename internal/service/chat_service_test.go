package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zai-proxy/internal/config"
	app_errors "zai-proxy/internal/errors"
	"zai-proxy/internal/model"
	"zai-proxy/internal/service"
	"zai-proxy/internal/zai"
)

type recorder struct {
	mu      sync.Mutex
	records []model.UsageRecord
}

func (r *recorder) Record(rec model.UsageRecord) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return true
}

func (r *recorder) last(t *testing.T) model.UsageRecord {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.records)
	return r.records[len(r.records)-1]
}

func line(phase string, fields map[string]any) string {
	data := map[string]any{"phase": phase}
	for k, v := range fields {
		data[k] = v
	}
	b, _ := json.Marshal(map[string]any{"type": "chat:completion", "data": data})
	return "data: " + string(b) + "\n\n"
}

func setupChatService(t *testing.T, handler http.HandlerFunc) (*service.ChatService, *recorder) {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	client := zai.NewClient(zai.Options{BaseURL: upstream.URL, Timeout: 2 * time.Second})
	rec := &recorder{}
	return service.NewChatService(client, config.NewCatalog(config.DefaultModels), rec), rec
}

func streamBody(lines ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, l := range lines {
			_, _ = io.WriteString(w, l)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}

func chatRequest(modelID string, stream bool) *model.ChatRequest {
	return &model.ChatRequest{
		Model:    modelID,
		Stream:   stream,
		Messages: []model.IncomingMessage{{Role: "user", Content: json.RawMessage(`"hi"`)}},
	}
}

func collect(ch <-chan model.StreamFrame) []model.StreamFrame {
	var frames []model.StreamFrame
	for f := range ch {
		frames = append(frames, f)
	}
	return frames
}

func TestChatService_Prepare(t *testing.T) {
	svc, _ := setupChatService(t, streamBody())

	t.Run("Maps the model and builds the upstream request", func(t *testing.T) {
		ex, err := svc.Prepare(chatRequest("glm-4.6-nothinking", true))
		require.NoError(t, err)

		assert.Equal(t, "glm-4.6-nothinking", ex.Model)
		assert.Equal(t, "GLM-4-6-API-V1", ex.Upstream.Model)
		assert.True(t, ex.Upstream.Stream)
		assert.NotEmpty(t, ex.Upstream.ChatID)
		assert.NotEmpty(t, ex.Upstream.ID)
		assert.NotEqual(t, ex.Upstream.ChatID, ex.Upstream.ID)
		assert.Equal(t, model.DefaultFeatures(), ex.Upstream.Features)
		require.Len(t, ex.Upstream.Messages, 1)
		assert.Equal(t, "hi", ex.Upstream.Messages[0].Content)
	})

	t.Run("Rejects models outside the allow-list", func(t *testing.T) {
		_, err := svc.Prepare(chatRequest("gpt-4", false))
		require.ErrorIs(t, err, app_errors.ErrModelNotAllowed)
		assert.Contains(t, err.Error(),
			"Model gpt-4 is not allowed. Allowed models are: glm-4.6, glm-4.5V, glm-4.5, glm-4.6-search, glm-4.6-advanced-search, glm-4.6-nothinking")
	})
}

func TestChatService_StreamCompletion(t *testing.T) {
	t.Run("Thinking, answer and done produce three chunks and DONE", func(t *testing.T) {
		svc, rec := setupChatService(t, streamBody(
			line("thinking", map[string]any{"delta_content": "<details><summary>T</summary>\nstep one"}),
			line("thinking", map[string]any{"delta_content": " step two"}),
			line("answer", map[string]any{"delta_content": "Hello"}),
			line("done", nil),
			line("answer", map[string]any{"delta_content": "never sent"}),
		))
		ex, err := svc.Prepare(chatRequest("glm-4.6", true))
		require.NoError(t, err)

		ch := make(chan model.StreamFrame)
		go svc.StreamCompletion(context.Background(), "tok", ex, ch)
		frames := collect(ch)

		require.Len(t, frames, 4)
		assert.Equal(t, "step one", *frames[0].Chunk.Choices[0].Delta.ReasoningContent)
		assert.Equal(t, " step two", *frames[1].Chunk.Choices[0].Delta.ReasoningContent)
		assert.Equal(t, "Hello", *frames[2].Chunk.Choices[0].Delta.Content)
		assert.True(t, frames[3].Done)
		for _, f := range frames[:3] {
			assert.Equal(t, "glm-4.6", f.Chunk.Model)
			assert.Equal(t, frames[0].Chunk.Created, f.Chunk.Created)
		}

		got := rec.last(t)
		assert.Equal(t, model.OutcomeDone, got.Outcome)
		assert.Equal(t, 3, got.Frames)
		assert.True(t, got.Stream)
	})

	t.Run("Malformed lines and unknown phases are skipped", func(t *testing.T) {
		svc, _ := setupChatService(t, streamBody(
			"data: {not json\n\n",
			": comment\n\n",
			line("tool_call", map[string]any{"delta_content": "x"}),
			line("answer", map[string]any{"delta_content": "ok"}),
			line("other", map[string]any{"usage": map[string]int{"prompt_tokens": 1, "completion_tokens": 2, "total_tokens": 3}}),
			line("done", nil),
		))
		ex, err := svc.Prepare(chatRequest("glm-4.5", true))
		require.NoError(t, err)

		ch := make(chan model.StreamFrame)
		go svc.StreamCompletion(context.Background(), "tok", ex, ch)
		frames := collect(ch)

		require.Len(t, frames, 3)
		assert.Equal(t, "ok", *frames[0].Chunk.Choices[0].Delta.Content)
		other := frames[1].Chunk
		require.NotNil(t, other.Choices[0].FinishReason)
		assert.Equal(t, "stop", *other.Choices[0].FinishReason)
		assert.JSONEq(t, `{"prompt_tokens":1,"completion_tokens":2,"total_tokens":3}`, string(other.Usage))
		assert.True(t, frames[2].Done)
	})

	t.Run("Oversized line is skipped and the stream still ends with DONE", func(t *testing.T) {
		svc, rec := setupChatService(t, streamBody(
			line("answer", map[string]any{"delta_content": "a"}),
			line("answer", map[string]any{"delta_content": strings.Repeat("x", 2*1024*1024)}),
			line("answer", map[string]any{"delta_content": "b"}),
			line("done", nil),
		))
		ex, err := svc.Prepare(chatRequest("glm-4.6", true))
		require.NoError(t, err)

		ch := make(chan model.StreamFrame)
		go svc.StreamCompletion(context.Background(), "tok", ex, ch)
		frames := collect(ch)

		require.Len(t, frames, 3)
		assert.Equal(t, "a", *frames[0].Chunk.Choices[0].Delta.Content)
		assert.Equal(t, "b", *frames[1].Chunk.Choices[0].Delta.Content)
		assert.True(t, frames[2].Done)
		for _, f := range frames {
			assert.Empty(t, f.Err)
		}
		assert.Equal(t, model.OutcomeDone, rec.last(t).Outcome)
	})

	t.Run("Upstream EOF without done closes without a terminal frame", func(t *testing.T) {
		svc, rec := setupChatService(t, streamBody(
			line("answer", map[string]any{"delta_content": "partial"}),
		))
		ex, err := svc.Prepare(chatRequest("glm-4.6", true))
		require.NoError(t, err)

		ch := make(chan model.StreamFrame)
		go svc.StreamCompletion(context.Background(), "tok", ex, ch)
		frames := collect(ch)

		require.Len(t, frames, 1)
		assert.NotNil(t, frames[0].Chunk)
		assert.Equal(t, model.OutcomeEOF, rec.last(t).Outcome)
	})

	t.Run("Upstream error status becomes an error frame", func(t *testing.T) {
		svc, rec := setupChatService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, "boom")
		})
		ex, err := svc.Prepare(chatRequest("glm-4.6", true))
		require.NoError(t, err)

		ch := make(chan model.StreamFrame)
		go svc.StreamCompletion(context.Background(), "tok", ex, ch)
		frames := collect(ch)

		require.Len(t, frames, 1)
		assert.Contains(t, frames[0].Err, "500")
		got := rec.last(t)
		assert.Equal(t, model.OutcomeError, got.Outcome)
		assert.Contains(t, got.Error, "boom")
	})

	t.Run("Caller cancellation stops the producer", func(t *testing.T) {
		lines := make([]string, 0, 100)
		for i := range 100 {
			lines = append(lines, line("answer", map[string]any{"delta_content": fmt.Sprint(i)}))
		}
		svc, rec := setupChatService(t, streamBody(lines...))
		ex, err := svc.Prepare(chatRequest("glm-4.6", true))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		ch := make(chan model.StreamFrame)
		done := make(chan struct{})
		go func() {
			svc.StreamCompletion(ctx, "tok", ex, ch)
			close(done)
		}()

		<-ch
		cancel()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("producer did not stop after cancellation")
		}
		assert.Equal(t, model.OutcomeCanceled, rec.last(t).Outcome)
	})
}

func TestChatService_Complete(t *testing.T) {
	t.Run("Plain body is returned as content", func(t *testing.T) {
		svc, rec := setupChatService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "the whole answer")
		})
		ex, err := svc.Prepare(chatRequest("glm-4.5V", false))
		require.NoError(t, err)

		chunk, err := svc.Complete(context.Background(), "tok", ex)
		require.NoError(t, err)

		assert.Equal(t, "chat.completion", chunk.Object)
		assert.Equal(t, "glm-4.5V", chunk.Model)
		require.Len(t, chunk.Choices, 1)
		assert.Equal(t, "the whole answer", chunk.Choices[0].Message.Content)
		assert.Equal(t, "stop", *chunk.Choices[0].FinishReason)
		assert.Nil(t, chunk.Usage)
		assert.Equal(t, model.OutcomeCompleted, rec.last(t).Outcome)
	})

	t.Run("Event body is folded", func(t *testing.T) {
		svc, rec := setupChatService(t, streamBody(
			line("thinking", map[string]any{"delta_content": "hmm"}),
			line("answer", map[string]any{"delta_content": "Hi"}),
			line("answer", map[string]any{"delta_content": " there"}),
			line("other", map[string]any{"usage": map[string]int{"total_tokens": 9}}),
			line("done", nil),
		))
		ex, err := svc.Prepare(chatRequest("glm-4.6", false))
		require.NoError(t, err)

		chunk, err := svc.Complete(context.Background(), "tok", ex)
		require.NoError(t, err)
		assert.Equal(t, "Hi there", chunk.Choices[0].Message.Content)
		assert.Equal(t, "hmm", chunk.Choices[0].Message.ReasoningContent)
		assert.Equal(t, int64(9), rec.last(t).TotalTokens)
	})

	t.Run("Upstream failure is returned", func(t *testing.T) {
		svc, rec := setupChatService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		ex, err := svc.Prepare(chatRequest("glm-4.6", false))
		require.NoError(t, err)

		_, err = svc.Complete(context.Background(), "tok", ex)
		assert.ErrorIs(t, err, app_errors.ErrUpstreamStatus)
		assert.True(t, app_errors.IsUpstream(err))
		assert.Equal(t, model.OutcomeError, rec.last(t).Outcome)
	})
}

func TestModelService_List(t *testing.T) {
	svc := service.NewModelService(config.NewCatalog(config.DefaultModels))
	list := svc.List()

	assert.Equal(t, "list", list.Object)
	assert.True(t, list.Success)
	require.Len(t, list.Data, len(config.DefaultModels))
	assert.Equal(t, model.ModelEntry{ID: "glm-4.6", Name: "GLM-4.6"}, list.Data[0])

	ids := make([]string, 0, len(list.Data))
	for _, e := range list.Data {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, "glm-4.6,glm-4.5V,glm-4.5,glm-4.6-search,glm-4.6-advanced-search,glm-4.6-nothinking", strings.Join(ids, ","))
}
