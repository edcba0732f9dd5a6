// Package translate converts between the OpenAI chat-completion wire format
// and the upstream's request and event formats.
package translate

import (
	"github.com/tidwall/gjson"

	"zai-proxy/internal/model"
)

const imageTitle = "snapshoot"

// TranslateMessages maps every incoming message to its upstream shape,
// preserving order.
func TranslateMessages(msgs []model.IncomingMessage) []model.UpstreamMessage {
	out := make([]model.UpstreamMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, TranslateMessage(m))
	}
	return out
}

// TranslateMessage maps one message. String content passes through; a
// two-part [text, image_url] array becomes text content with an inline image
// attachment; any other shape is forwarded as raw JSON.
func TranslateMessage(m model.IncomingMessage) model.UpstreamMessage {
	content := gjson.ParseBytes(m.Content)

	switch {
	case content.Type == gjson.String:
		return model.UpstreamMessage{Role: m.Role, Content: content.String()}

	case content.IsArray():
		parts := content.Array()
		if len(parts) != 2 {
			break
		}
		text := parts[0].Get("text")
		url := parts[1].Get("image_url.url")
		if text.Type != gjson.String || url.Type != gjson.String {
			break
		}
		return model.UpstreamMessage{
			Role:    m.Role,
			Content: text.String(),
			Data: &model.ImageData{
				ImageBase64: url.String(),
				FileText:    "",
				Title:       imageTitle,
			},
		}
	}

	return model.UpstreamMessage{Role: m.Role, Content: m.Content}
}
