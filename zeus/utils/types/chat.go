// zeus/utils/types/chat.go
package types

import (
	zeustypes "zeus/zeus/types"
)

// ChatTurnRequest is a stateless turn: the prior transcript plus the new input.
type ChatTurnRequest struct {
	Route    string                  `json:"route"`
	History  []zeustypes.ChatMessage `json:"history"`
	Text     string                  `json:"text"`
	ImageURL string                  `json:"image_url,omitempty"`
}

type SuggestionsResponse struct {
	Route  string   `json:"route"`
	Pool   []string `json:"pool"`
	Window []string `json:"window"`
	Chips  []string `json:"chips"`
}

// Websocket frame types.
const (
	FrameSend            = "send"
	FrameAnalysis        = "analysis"
	FrameClearAttachment = "clear_attachment"
	FrameTurn            = "turn"
	FrameError           = "error"
)

type ClientFrame struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type ServerFrame struct {
	Type      string                  `json:"type"`
	SessionID string                  `json:"session_id,omitempty"`
	Messages  []zeustypes.ChatMessage `json:"messages,omitempty"`
	Window    []string                `json:"window,omitempty"`
	Chips     []string                `json:"chips,omitempty"`
	State     string                  `json:"state,omitempty"`
	Error     string                  `json:"error,omitempty"`
}
