package translate

import (
	"time"

	"github.com/google/uuid"

	"zai-proxy/internal/model"
)

// Encoder builds chat.completion.chunk objects for one streaming exchange.
// The created timestamp is fixed when the encoder is made.
type Encoder struct {
	model   string
	created int64
}

func NewEncoder(modelID string, created time.Time) *Encoder {
	return &Encoder{model: modelID, created: created.Unix()}
}

// Encode returns the chunk for ev, or nil for phases that emit nothing.
func (e *Encoder) Encode(ev Event) *model.Chunk {
	content := ev.Content
	delta := &model.Delta{Role: model.RoleAssistant}
	var finish *string
	var usage []byte

	switch ev.Phase {
	case PhaseThinking:
		delta.ReasoningContent = &content
	case PhaseAnswer:
		delta.Content = &content
	case PhaseOther:
		delta.Content = &content
		stop := model.FinishReasonStop
		finish = &stop
		usage = ev.Usage
	default:
		return nil
	}

	return &model.Chunk{
		ID:      newChunkID(),
		Object:  model.ObjectChunk,
		Created: e.created,
		Model:   e.model,
		Choices: []model.Choice{{Index: 0, Delta: delta, FinishReason: finish}},
		Usage:   usage,
	}
}

// NewCompletion builds the single chat.completion returned in
// non-streaming mode.
func NewCompletion(modelID string, created time.Time, content, reasoning string) *model.Chunk {
	stop := model.FinishReasonStop
	return &model.Chunk{
		ID:      newChunkID(),
		Object:  model.ObjectCompletion,
		Created: created.Unix(),
		Model:   modelID,
		Choices: []model.Choice{{
			Index:        0,
			Message:      &model.Message{Role: model.RoleAssistant, Content: content, ReasoningContent: reasoning},
			FinishReason: &stop,
		}},
	}
}

func newChunkID() string {
	return "chatcmpl-" + uuid.NewString()
}
