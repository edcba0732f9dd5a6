package translate

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Phase is the upstream's classification of a stream event.
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseThinking
	PhaseAnswer
	PhaseOther
	PhaseDone
)

const (
	summaryMarker = "</summary>\n"
	detailsMarker = "</details>"
)

var emptyUsage = json.RawMessage(`{}`)

func ParsePhase(s string) Phase {
	switch s {
	case "thinking":
		return PhaseThinking
	case "answer":
		return PhaseAnswer
	case "other":
		return PhaseOther
	case "done":
		return PhaseDone
	default:
		return PhaseUnknown
	}
}

func (p Phase) String() string {
	switch p {
	case PhaseThinking:
		return "thinking"
	case PhaseAnswer:
		return "answer"
	case PhaseOther:
		return "other"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Emits reports whether events of this phase produce an outbound chunk.
func (p Phase) Emits() bool {
	return p == PhaseThinking || p == PhaseAnswer || p == PhaseOther
}

// Event is one decoded upstream event. Content is set for thinking, answer
// and other; Usage only for other; RawPhase keeps the upstream's label for
// unknown phases.
type Event struct {
	Phase    Phase
	RawPhase string
	Content  string
	Usage    json.RawMessage
}

// DecodeEvent classifies one data payload and extracts its content. ok is
// false when the payload is not a JSON object with a "data" object; such
// lines are skipped by the caller.
func DecodeEvent(payload []byte) (ev Event, ok bool) {
	if !gjson.ValidBytes(payload) {
		return Event{}, false
	}
	data := gjson.GetBytes(payload, "data")
	if !data.IsObject() {
		return Event{}, false
	}

	raw := data.Get("phase").String()
	ev = Event{Phase: ParsePhase(raw), RawPhase: raw}

	switch ev.Phase {
	case PhaseThinking:
		ev.Content = thinkingContent(data.Get("delta_content").String())
	case PhaseAnswer:
		ev.Content = answerContent(data.Get("edit_content").String(), data.Get("delta_content").String())
	case PhaseOther:
		ev.Content = data.Get("delta_content").String()
		ev.Usage = usageOf(data.Get("usage"))
	}
	return ev, true
}

// thinkingContent drops everything up to the last summary marker.
func thinkingContent(delta string) string {
	if i := strings.LastIndex(delta, summaryMarker); i >= 0 {
		return delta[i+len(summaryMarker):]
	}
	return delta
}

// answerContent prefers an edit that closes the summary block, keeping only
// the text after the last details marker. The marker tested and the marker
// sliced on are not the same.
func answerContent(edit, delta string) string {
	if edit != "" && strings.Contains(edit, summaryMarker) {
		if i := strings.LastIndex(edit, detailsMarker); i >= 0 {
			return edit[i+len(detailsMarker):]
		}
		return edit
	}
	return delta
}

func usageOf(u gjson.Result) json.RawMessage {
	if !u.Exists() {
		return emptyUsage
	}
	if u.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(u.Raw)
}
