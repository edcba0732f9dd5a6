package model

import "encoding/json"

const (
	DefaultTemperature = 0.7
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 8192

	RoleAssistant = "assistant"

	ObjectChunk      = "chat.completion.chunk"
	ObjectCompletion = "chat.completion"

	FinishReasonStop = "stop"
)

// IncomingMessage is one OpenAI-style chat message. Content is kept raw
// because it may be a string, a content-part array, or anything else.
type IncomingMessage struct {
	Role    string          `json:"role" validate:"required"`
	Content json.RawMessage `json:"content" validate:"required" swaggertype:"object"`
}

// ChatRequest is the body of POST /v1/chat/completions.
type ChatRequest struct {
	Model       string            `json:"model" validate:"required" example:"glm-4.6"`
	Messages    []IncomingMessage `json:"messages" validate:"required,min=1,dive"`
	Stream      bool              `json:"stream"`
	Temperature *float64          `json:"temperature,omitempty"`
	TopP        *float64          `json:"top_p,omitempty"`
	MaxTokens   *int              `json:"max_tokens,omitempty"`
}

// ApplyDefaults fills unset sampling parameters.
func (r *ChatRequest) ApplyDefaults() {
	if r.Temperature == nil {
		v := DefaultTemperature
		r.Temperature = &v
	}
	if r.TopP == nil {
		v := DefaultTopP
		r.TopP = &v
	}
	if r.MaxTokens == nil {
		v := DefaultMaxTokens
		r.MaxTokens = &v
	}
}

// ImageData carries an inline image attached to an upstream message.
type ImageData struct {
	ImageBase64 string `json:"imageBase64"`
	FileText    string `json:"fileText"`
	Title       string `json:"title"`
}

// UpstreamMessage is a message in the shape the upstream expects. Content
// holds either a string or a json.RawMessage passed through untouched.
type UpstreamMessage struct {
	Role    string     `json:"role"`
	Content any        `json:"content"`
	Data    *ImageData `json:"data,omitempty"`
}

// FeatureFlags is sent with every upstream request.
type FeatureFlags struct {
	ImageGeneration bool     `json:"image_generation"`
	WebSearch       bool     `json:"web_search"`
	AutoWebSearch   bool     `json:"auto_web_search"`
	PreviewMode     bool     `json:"preview_mode"`
	Flags           []string `json:"flags"`
	EnableThinking  bool     `json:"enable_thinking"`
}

func DefaultFeatures() FeatureFlags {
	return FeatureFlags{
		ImageGeneration: true,
		WebSearch:       false,
		AutoWebSearch:   true,
		PreviewMode:     true,
		Flags:           []string{},
		EnableThinking:  true,
	}
}

type UpstreamRequest struct {
	Stream   bool              `json:"stream"`
	Model    string            `json:"model"`
	Messages []UpstreamMessage `json:"messages"`
	Features FeatureFlags      `json:"features"`
	ChatID   string            `json:"chat_id"`
	ID       string            `json:"id"`
}

// Delta is the incremental payload of a streaming choice. Pointer fields
// distinguish "absent" from "present but empty".
type Delta struct {
	Content          *string `json:"content,omitempty"`
	ReasoningContent *string `json:"reasoning_content,omitempty"`
	Role             string  `json:"role"`
}

// Message is the full payload of a non-streaming choice.
type Message struct {
	Role             string `json:"role"`
	Content          string `json:"content"`
	ReasoningContent string `json:"reasoning_content,omitempty"`
}

type Choice struct {
	Index        int      `json:"index"`
	Delta        *Delta   `json:"delta,omitempty"`
	Message      *Message `json:"message,omitempty"`
	FinishReason *string  `json:"finish_reason"`
}

// Chunk is an OpenAI chat.completion.chunk, or a chat.completion when it
// carries a Message instead of a Delta. A nil Usage encodes as null.
type Chunk struct {
	ID      string          `json:"id"`
	Object  string          `json:"object"`
	Created int64           `json:"created"`
	Model   string          `json:"model"`
	Choices []Choice        `json:"choices"`
	Usage   json.RawMessage `json:"usage" swaggertype:"object"`
}

// StreamFrame is what the chat service hands to the HTTP layer for one
// streaming exchange. Exactly one of the fields is meaningful.
type StreamFrame struct {
	Chunk *Chunk
	Done  bool
	Err   string
}

type ModelEntry struct {
	ID   string `json:"id" example:"glm-4.6"`
	Name string `json:"name" example:"GLM-4.6"`
}

// ModelList is the body of GET /v1/models.
type ModelList struct {
	Object  string       `json:"object" example:"list"`
	Data    []ModelEntry `json:"data"`
	Success bool         `json:"success"`
}
