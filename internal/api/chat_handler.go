package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	app_errors "zai-proxy/internal/errors"
	"zai-proxy/internal/interfaces"
	"zai-proxy/internal/model"
	"zai-proxy/internal/service"
	"zai-proxy/internal/sse"
)

// ChatHandler serves the OpenAI-compatible chat completions endpoint.
type ChatHandler struct {
	service    interfaces.ChatService
	showDetail bool
}

func NewChatHandler(svc interfaces.ChatService, showDetail bool) *ChatHandler {
	return &ChatHandler{service: svc, showDetail: showDetail}
}

// HandleChatCompletions godoc
// @Summary      Create a chat completion
// @Description  Proxies an OpenAI-style chat completion to chat.z.ai. With "stream": true the reply is a text/event-stream of chat.completion.chunk objects terminated by "data: [DONE]".
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Produce      text/event-stream
// @Param        Authorization  header  string             true  "Bearer <access token>"
// @Param        request        body    model.ChatRequest  true  "Chat completion request"
// @Success      200            {object}  model.Chunk
// @Failure      400            {object}  DetailResponse
// @Failure      401            {object}  ErrorResponse
// @Failure      502            {object}  ErrorResponse
// @Failure      500            {object}  ErrorResponse
// @Router       /v1/chat/completions [post]
func (h *ChatHandler) HandleChatCompletions(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondWithError(w, app_errors.ErrUnauthorized, h.showDetail)
		return
	}

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload: %v", app_errors.ErrValidation, err), h.showDetail)
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err, h.showDetail)
		return
	}
	req.ApplyDefaults()

	ex, err := h.service.Prepare(&req)
	if err != nil {
		respondWithError(w, err, h.showDetail)
		return
	}

	slog.Info("Chat completion requested",
		"id", ex.Upstream.ID,
		"model", ex.Model,
		"upstream_model", ex.Upstream.Model,
		"stream", req.Stream,
		"messages", len(req.Messages),
	)

	if !req.Stream {
		completion, err := h.service.Complete(r.Context(), token, ex)
		if err != nil {
			respondWithError(w, err, h.showDetail)
			return
		}
		respondWithJSON(w, http.StatusOK, completion)
		return
	}

	h.stream(w, r, token, ex)
}

func (h *ChatHandler) stream(w http.ResponseWriter, r *http.Request, token string, ex *service.Exchange) {
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sse.SetHeaders(w.Header())
	w.WriteHeader(http.StatusOK)
	writer := sse.NewWriter(w)

	frames := make(chan model.StreamFrame)
	go h.service.StreamCompletion(ctx, token, ex, frames)

	for frame := range frames {
		var err error
		switch {
		case frame.Err != "":
			slog.Warn("Sending stream error to client", "id", ex.Upstream.ID, "message", frame.Err)
			err = writer.WriteError(frame.Err)
		case frame.Done:
			err = writer.WriteDone()
		case frame.Chunk != nil:
			err = writer.WriteChunk(frame.Chunk)
		}
		if err != nil {
			slog.Warn("Failed to write stream frame, client might have disconnected", "id", ex.Upstream.ID, "error", err)
			cancel()
			break
		}
	}

	slog.Info("Finished streaming response", "id", ex.Upstream.ID, "terminated", writer.Closed())
}

// HandleOptions answers CORS preflight requests.
func (h *ChatHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.WriteHeader(http.StatusOK)
}

// bearerToken returns the text after the last space of the Authorization
// header, so both "Bearer <token>" and a bare token are accepted.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if i := strings.LastIndexByte(header, ' '); i >= 0 {
		return header[i+1:]
	}
	return header
}
