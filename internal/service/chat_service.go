package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"zai-proxy/internal/config"
	app_errors "zai-proxy/internal/errors"
	"zai-proxy/internal/model"
	"zai-proxy/internal/sse"
	"zai-proxy/internal/translate"
	"zai-proxy/internal/usage"
	"zai-proxy/internal/zai"
)

// Exchange is a validated request ready to be sent upstream.
type Exchange struct {
	// Model is the public model id echoed back in every chunk.
	Model    string
	Upstream *model.UpstreamRequest
}

// ChatService drives one chat completion from request translation to the
// outbound chunk sequence.
type ChatService struct {
	client   zai.Client
	catalog  *config.Catalog
	recorder usage.Recorder
	now      func() time.Time
}

func NewChatService(client zai.Client, catalog *config.Catalog, recorder usage.Recorder) *ChatService {
	if recorder == nil {
		recorder = usage.Nop{}
	}
	return &ChatService{client: client, catalog: catalog, recorder: recorder, now: time.Now}
}

// Prepare checks the model against the allow-list and builds the upstream
// request.
func (s *ChatService) Prepare(req *model.ChatRequest) (*Exchange, error) {
	spec, ok := s.catalog.Lookup(req.Model)
	if !ok {
		return nil, fmt.Errorf("%w: Model %s is not allowed. Allowed models are: %s",
			app_errors.ErrModelNotAllowed, req.Model, strings.Join(s.catalog.IDs(), ", "))
	}

	return &Exchange{
		Model: spec.ID,
		Upstream: &model.UpstreamRequest{
			Stream:   req.Stream,
			Model:    spec.UpstreamID,
			Messages: translate.TranslateMessages(req.Messages),
			Features: model.DefaultFeatures(),
			ChatID:   uuid.NewString(),
			ID:       uuid.NewString(),
		},
	}, nil
}

// StreamCompletion consumes the upstream stream and sends one frame per
// emitted chunk on ch, followed by a Done frame when the upstream signals
// completion or an Err frame when it fails. ch is closed on return. If the
// upstream body ends without a done phase, ch is closed without a terminal
// frame.
func (s *ChatService) StreamCompletion(ctx context.Context, token string, ex *Exchange, ch chan<- model.StreamFrame) {
	defer close(ch)

	rec := s.newRecord(ex, true)
	defer func() { s.finish(&rec) }()

	body, err := s.client.Stream(ctx, token, ex.Upstream)
	if err != nil {
		s.fail(ctx, &rec, ch, err)
		return
	}
	defer body.Close()

	enc := translate.NewEncoder(ex.Model, s.now())
	reader := sse.NewReader(body)

	for {
		payload, err := reader.Next()
		if errors.Is(err, io.EOF) {
			slog.Warn("Upstream stream ended without done phase", "id", ex.Upstream.ID, "model", ex.Model, "frames", rec.Frames)
			rec.Outcome = model.OutcomeEOF
			return
		}
		if err != nil {
			if ctx.Err() != nil {
				rec.Outcome = model.OutcomeCanceled
				return
			}
			s.fail(ctx, &rec, ch, fmt.Errorf("%w: reading stream: %v", app_errors.ErrUpstreamTransport, err))
			return
		}

		ev, ok := translate.DecodeEvent(payload)
		if !ok {
			slog.Debug("Skipping malformed upstream line", "id", ex.Upstream.ID, "line", string(payload))
			continue
		}

		if ev.Phase == translate.PhaseDone {
			rec.Outcome = model.OutcomeDone
			if !send(ctx, ch, model.StreamFrame{Done: true}) {
				rec.Outcome = model.OutcomeCanceled
			}
			return
		}
		if !ev.Phase.Emits() {
			slog.Debug("Ignoring upstream event with unknown phase", "id", ex.Upstream.ID, "phase", ev.RawPhase)
			continue
		}

		if ev.Usage != nil {
			rec.ApplyUsage(ev.Usage)
		}
		if !send(ctx, ch, model.StreamFrame{Chunk: enc.Encode(ev)}) {
			rec.Outcome = model.OutcomeCanceled
			return
		}
		rec.Frames++
	}
}

// Complete performs a non-streaming exchange and returns one
// chat.completion. A body made of upstream events is folded into text; any
// other body is returned verbatim as the content.
func (s *ChatService) Complete(ctx context.Context, token string, ex *Exchange) (*model.Chunk, error) {
	rec := s.newRecord(ex, false)
	defer func() { s.finish(&rec) }()

	body, err := s.client.Complete(ctx, token, ex.Upstream)
	if err != nil {
		rec.Outcome = model.OutcomeError
		rec.Error = err.Error()
		return nil, err
	}

	content, reasoning := string(body), ""
	if folded := translate.Fold(body); folded.Events > 0 {
		content, reasoning = folded.Content, folded.Reasoning
		rec.ApplyUsage(folded.Usage)
		rec.Frames = folded.Events
	}

	rec.Outcome = model.OutcomeCompleted
	return translate.NewCompletion(ex.Model, s.now(), content, reasoning), nil
}

func (s *ChatService) newRecord(ex *Exchange, stream bool) model.UsageRecord {
	return model.UsageRecord{
		ID:            ex.Upstream.ID,
		Model:         ex.Model,
		UpstreamModel: ex.Upstream.Model,
		Stream:        stream,
		CreatedAt:     s.now().UTC(),
	}
}

func (s *ChatService) finish(rec *model.UsageRecord) {
	if rec.Outcome == "" {
		rec.Outcome = model.OutcomeError
	}
	rec.DurationMS = s.now().UTC().Sub(rec.CreatedAt).Milliseconds()
	s.recorder.Record(*rec)
}

func (s *ChatService) fail(ctx context.Context, rec *model.UsageRecord, ch chan<- model.StreamFrame, err error) {
	if ctx.Err() != nil {
		rec.Outcome = model.OutcomeCanceled
		return
	}
	slog.Error("Upstream request failed", "id", rec.ID, "model", rec.Model, "error", err)
	rec.Outcome = model.OutcomeError
	rec.Error = err.Error()
	send(ctx, ch, model.StreamFrame{Err: err.Error()})
}

func send(ctx context.Context, ch chan<- model.StreamFrame, frame model.StreamFrame) bool {
	select {
	case ch <- frame:
		return true
	case <-ctx.Done():
		return false
	}
}
