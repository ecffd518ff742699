package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"zeus/zeus/agents/configs"
	"zeus/zeus/agents/suggestions"
	"zeus/zeus/types"
	"zeus/zeus/utils/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ErrorReply    = "Sorry, there was an error. Please try again."
	ImageOnlyText = "(image attached)"
	EmptyReply    = "…"
)

var (
	ErrTurnInFlight = errors.New("a chat turn is already in flight")
	ErrNoUploader   = errors.New("image uploads are not configured")
)

type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateWaiting State = "waiting"
)

// Uploader stores a user image and returns a URL the model can fetch.
type Uploader interface {
	UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

// Attachment is the image pending for the next turn. Either URL is already
// known or Data still has to be uploaded.
type Attachment struct {
	URL         string
	Filename    string
	ContentType string
	Data        []byte
}

// TurnResult describes a completed Send.
type TurnResult struct {
	User   types.ChatMessage `json:"user"`
	Reply  types.ChatMessage `json:"reply"`
	Source Source            `json:"source,omitempty"`
	Failed bool              `json:"failed"`
	Err    error             `json:"-"`
}

type Snapshot struct {
	ID          string              `json:"id"`
	Route       types.Route         `json:"route"`
	State       State               `json:"state"`
	Messages    []types.ChatMessage `json:"messages"`
	Window      []string            `json:"window"`
	Attachment  bool                `json:"attachment"`
	HasAnalysis bool                `json:"has_analysis"`
}

// Session is one page's conversation. Turns are serialised: a Send while
// another is in flight is rejected with ErrTurnInFlight.
type Session struct {
	ID string

	route    types.Route
	router   *Router
	uploader Uploader
	cfg      *configs.AgentConfig

	mu              sync.Mutex
	state           State
	messages        []types.ChatMessage
	analysis        string
	rotator         *suggestions.Rotator
	showSuggestions bool
	attachment      *Attachment
}

func NewSession(route types.Route, router *Router, uploader Uploader, cfg *configs.AgentConfig) *Session {
	s := &Session{
		ID:              uuid.New().String(),
		route:           route,
		router:          router,
		uploader:        uploader,
		cfg:             cfg,
		state:           StateIdle,
		messages:        []types.ChatMessage{},
		rotator:         suggestions.NewRotator(suggestions.BuildPool(route, "", cfg)),
		showSuggestions: true,
	}
	logging.AppLogger.Info("Session initialized",
		zap.String("session_id", s.ID),
		zap.String("route", string(route)),
	)
	return s
}

// SetAnalysis replaces the analysis text and resets the suggestion pool.
func (s *Session) SetAnalysis(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analysis = text
	s.rotator.Reset(suggestions.BuildPool(s.route, text, s.cfg))
}

func (s *Session) Attach(a Attachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachment = &a
}

func (s *Session) ClearAttachment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachment = nil
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Window is the visible suggestion window; empty while a turn is in flight.
func (s *Session) Window() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window()
}

func (s *Session) window() []string {
	if !s.showSuggestions {
		return []string{}
	}
	return s.rotator.Window()
}

// Chips are the first n pool entries, shown as quick actions.
func (s *Session) Chips(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotator.Peek(n)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:          s.ID,
		Route:       s.route,
		State:       s.state,
		Messages:    append([]types.ChatMessage(nil), s.messages...),
		Window:      s.window(),
		Attachment:  s.attachment != nil,
		HasAnalysis: strings.TrimSpace(s.analysis) != "",
	}
}

// Send submits text plus any pending attachment. Blank text with no
// attachment is ignored and returns (nil, nil). Transport failures do not
// surface as errors; they become the error bubble in the transcript.
func (s *Session) Send(ctx context.Context, text string) (*TurnResult, error) {
	return s.SendWith(ctx, text, nil)
}

// SendWith is Send with an attachment that replaces the pending one. The
// replacement happens only once the turn is accepted, so a rejected send
// leaves the in-flight turn's attachment alone.
func (s *Session) SendWith(ctx context.Context, text string, att *Attachment) (*TurnResult, error) {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if text == "" && att == nil && s.attachment == nil {
		s.mu.Unlock()
		return nil, nil
	}
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	if att != nil {
		s.attachment = att
	}
	s.state = StateSending
	s.showSuggestions = false

	userText := text
	if userText == "" {
		userText = ImageOnlyText
	}
	user := types.NewChatMessage(types.RoleUser, userText)
	s.messages = append(s.messages, user)
	history := append([]types.ChatMessage(nil), s.messages...)
	att = s.attachment
	s.mu.Unlock()

	reply, err := s.runTurn(ctx, history, text, att)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachment = nil
	s.state = StateIdle
	s.showSuggestions = true

	if err != nil {
		logging.ErrorLogger.Error("chat turn failed",
			zap.String("session_id", s.ID),
			zap.String("route", string(s.route)),
			zap.Error(err),
		)
		msg := types.NewChatMessage(types.RoleAI, ErrorReply)
		s.messages = append(s.messages, msg)
		return &TurnResult{User: user, Reply: msg, Failed: true, Err: err}, nil
	}

	replyText := reply.Text
	if strings.TrimSpace(replyText) == "" {
		replyText = EmptyReply
	}
	msg := types.NewChatMessage(types.RoleAI, replyText)
	s.messages = append(s.messages, msg)
	s.rotator.Rotate()
	logging.AppLogger.Info("chat turn answered",
		zap.String("session_id", s.ID),
		zap.String("source", string(reply.Source)),
		zap.String("language", reply.Language),
	)
	return &TurnResult{User: user, Reply: msg, Source: reply.Source}, nil
}

func (s *Session) runTurn(ctx context.Context, history []types.ChatMessage, text string, att *Attachment) (Reply, error) {
	s.mu.Lock()
	s.state = StateWaiting
	s.mu.Unlock()

	var imageURL string
	if s.route == types.RouteAssistant && att != nil {
		url, err := s.resolveAttachment(ctx, att)
		if err != nil {
			return Reply{}, err
		}
		imageURL = url
	}
	return s.router.Respond(ctx, Turn{Route: s.route, History: history, Text: text, ImageURL: imageURL})
}

func (s *Session) resolveAttachment(ctx context.Context, att *Attachment) (string, error) {
	if att.URL != "" {
		return att.URL, nil
	}
	if s.uploader == nil {
		return "", ErrNoUploader
	}
	url, err := s.uploader.UploadImage(ctx, att.Filename, att.ContentType, att.Data)
	if err != nil {
		return "", fmt.Errorf("upload attachment: %w", err)
	}
	return url, nil
}
