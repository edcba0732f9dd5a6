package translate

import (
	"bytes"
	"encoding/json"
	"strings"

	"zai-proxy/internal/sse"
)

// Folded is a whole upstream reply reduced to its text.
type Folded struct {
	Content   string
	Reasoning string
	Usage     json.RawMessage
	Events    int
}

// Fold runs a buffered upstream body through the same classifier used for
// streaming. Events is zero when the body held no decodable events, in
// which case callers fall back to the raw text.
func Fold(body []byte) Folded {
	var (
		f         Folded
		content   strings.Builder
		reasoning strings.Builder
	)
	r := sse.NewReader(bytes.NewReader(body))
	for {
		payload, err := r.Next()
		if err != nil {
			// io.EOF or a truncated body; keep what was decoded so far.
			break
		}
		ev, ok := DecodeEvent(payload)
		if !ok {
			continue
		}
		if ev.Phase == PhaseDone {
			f.Events++
			break
		}
		if !ev.Phase.Emits() {
			continue
		}
		f.Events++
		switch ev.Phase {
		case PhaseThinking:
			reasoning.WriteString(ev.Content)
		case PhaseAnswer, PhaseOther:
			content.WriteString(ev.Content)
		}
		if ev.Usage != nil {
			f.Usage = ev.Usage
		}
	}
	f.Content = content.String()
	f.Reasoning = reasoning.String()
	return f
}
