// zeus/controllers/chat.go
package controllers

import (
	"context"
	"errors"
	"strings"

	"zeus/zeus/agents/configs"
	"zeus/zeus/agents/core"
	"zeus/zeus/agents/suggestions"
	"zeus/zeus/types"
	apitypes "zeus/zeus/utils/types"
)

var ErrEmptyTurn = errors.New("text or image_url is required")

// ChipCount is how many quick-action chips accompany a pool.
const ChipCount = 3

type ChatController struct {
	router   *core.Router
	cfg      *configs.AgentConfig
	uploader core.Uploader
}

func NewChatController(router *core.Router, cfg *configs.AgentConfig, uploader core.Uploader) *ChatController {
	return &ChatController{router: router, cfg: cfg, uploader: uploader}
}

// Turn answers one stateless turn. The user's message is appended to the
// supplied history before routing.
func (c *ChatController) Turn(ctx context.Context, req apitypes.ChatTurnRequest) (core.Reply, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && req.ImageURL == "" {
		return core.Reply{}, ErrEmptyTurn
	}
	route := types.ParseRoute(req.Route)

	userText := text
	if userText == "" {
		userText = core.ImageOnlyText
	}
	history := append(append([]types.ChatMessage(nil), req.History...), types.NewChatMessage(types.RoleUser, userText))

	imageURL := ""
	if route == types.RouteAssistant {
		imageURL = req.ImageURL
	}
	return c.router.Respond(ctx, core.Turn{Route: route, History: history, Text: text, ImageURL: imageURL})
}

func (c *ChatController) Suggestions(route, analysis string) apitypes.SuggestionsResponse {
	r := types.ParseRoute(route)
	rot := suggestions.NewRotator(suggestions.BuildPool(r, analysis, c.cfg))
	return apitypes.SuggestionsResponse{
		Route:  string(r),
		Pool:   rot.Pool(),
		Window: rot.Window(),
		Chips:  rot.Peek(ChipCount),
	}
}

// NewSession starts a conversation that lives as long as its connection.
func (c *ChatController) NewSession(route string) *core.Session {
	return core.NewSession(types.ParseRoute(route), c.router, c.uploader, c.cfg)
}
