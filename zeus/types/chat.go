// zeus/types/chat.go
package types

import (
	"encoding/json"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAI        Role = "ai"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Route selects how a chat turn is answered: the store widget consults the
// knowledge table first, the assistant page always asks the model.
type Route string

const (
	RouteStore     Route = "store"
	RouteAssistant Route = "assistant"
)

func ParseRoute(s string) Route {
	if Route(s) == RouteAssistant {
		return RouteAssistant
	}
	return RouteStore
}

// ChatMessage is one bubble of the conversation as the user sees it.
type ChatMessage struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChatMessage(role Role, text string) ChatMessage {
	return ChatMessage{Role: role, Text: text, Timestamp: time.Now()}
}

type PartType string

const (
	PartText     PartType = "text"
	PartImageURL PartType = "image_url"
)

type ImageURL struct {
	URL string `json:"url"`
}

// Part is either a text part or an image reference, tagged by Type.
type Part struct {
	Type     PartType  `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

func TextPart(text string) Part {
	return Part{Type: PartText, Text: text}
}

func ImagePart(url string) Part {
	return Part{Type: PartImageURL, ImageURL: &ImageURL{URL: url}}
}

// MarshalJSON emits only the fields of the active variant. Text parts always
// carry "text", even when empty.
func (p Part) MarshalJSON() ([]byte, error) {
	if p.Type == PartImageURL {
		return json.Marshal(struct {
			Type     PartType  `json:"type"`
			ImageURL *ImageURL `json:"image_url"`
		}{p.Type, p.ImageURL})
	}
	return json.Marshal(struct {
		Type PartType `json:"type"`
		Text string   `json:"text"`
	}{PartText, p.Text})
}

// ProviderMessage is the chat-completion request shape: role plus ordered parts.
type ProviderMessage struct {
	Role    Role   `json:"role"`
	Content []Part `json:"content"`
}

// TextContent joins the text parts of the message.
func (m ProviderMessage) TextContent() string {
	var out string
	for _, p := range m.Content {
		if p.Type == PartText {
			out += p.Text
		}
	}
	return out
}
