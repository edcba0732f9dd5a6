package model

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// Outcome is how an exchange ended.
type Outcome string

const (
	// OutcomeDone is a stream that reached the upstream's done phase.
	OutcomeDone Outcome = "done"
	// OutcomeEOF is a stream whose upstream body ended without a done phase.
	OutcomeEOF Outcome = "eof"
	// OutcomeCompleted is a successful non-streaming exchange.
	OutcomeCompleted Outcome = "completed"
	OutcomeError     Outcome = "error"
	OutcomeCanceled  Outcome = "canceled"
)

// UsageRecord is one row of the usage ledger.
type UsageRecord struct {
	ID               string    `json:"id"`
	Model            string    `json:"model"`
	UpstreamModel    string    `json:"upstream_model"`
	Stream           bool      `json:"stream"`
	Outcome          Outcome   `json:"outcome"`
	Frames           int       `json:"frames"`
	PromptTokens     int64     `json:"prompt_tokens"`
	CompletionTokens int64     `json:"completion_tokens"`
	TotalTokens      int64     `json:"total_tokens"`
	DurationMS       int64     `json:"duration_ms"`
	Error            string    `json:"error,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ApplyUsage copies token counts from an upstream usage object. Missing
// fields leave the counts untouched.
func (r *UsageRecord) ApplyUsage(raw json.RawMessage) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return
	}
	u := gjson.ParseBytes(raw)
	if v := u.Get("prompt_tokens"); v.Exists() {
		r.PromptTokens = v.Int()
	}
	if v := u.Get("completion_tokens"); v.Exists() {
		r.CompletionTokens = v.Int()
	}
	if v := u.Get("total_tokens"); v.Exists() {
		r.TotalTokens = v.Int()
	} else {
		r.TotalTokens = r.PromptTokens + r.CompletionTokens
	}
}

// UsageSummary aggregates the ledger for one public model id.
type UsageSummary struct {
	Model            string `json:"model"`
	Requests         int64  `json:"requests"`
	Completed        int64  `json:"completed"`
	EOF              int64  `json:"eof"`
	Errors           int64  `json:"errors"`
	Canceled         int64  `json:"canceled"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
}

// UsageList is the body of GET /v1/usage.
type UsageList struct {
	Object string         `json:"object" example:"list"`
	Data   []UsageSummary `json:"data"`
}
