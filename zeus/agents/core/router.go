package core

import (
	"context"
	"strings"

	"zeus/zeus/services/llm"
	"zeus/zeus/types"
	"zeus/zeus/utils/logging"

	"go.uber.org/zap"
)

const (
	DefaultModel       = "Qwen/Qwen2.5-VL-7B-Instruct"
	DefaultTemperature = 0.6
	DefaultMaxTokens   = 512
)

// ChatCompleter answers an escalated turn.
type ChatCompleter interface {
	Run(ctx context.Context, req llm.ChatRequest) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

type Source string

const (
	SourceKnowledge  Source = "knowledge"
	SourceTranslated Source = "knowledge_translated"
	SourceModel      Source = "model"
)

// Turn is one user submission together with the history it belongs to.
// History already ends with the user's message.
type Turn struct {
	Route    types.Route
	History  []types.ChatMessage
	Text     string
	ImageURL string
}

type Reply struct {
	Text      string `json:"reply"`
	Source    Source `json:"source"`
	Language  string `json:"language"`
	Escalated bool   `json:"escalated"`
}

type Router struct {
	knowledge  *Knowledge
	model      ChatCompleter
	translator Translator
	modelID    string
}

// NewRouter wires a router. translator may be nil, in which case store
// answers are always returned in English.
func NewRouter(knowledge *Knowledge, model ChatCompleter, translator Translator, modelID string) *Router {
	if modelID == "" {
		modelID = DefaultModel
	}
	return &Router{knowledge: knowledge, model: model, translator: translator, modelID: modelID}
}

// Respond answers a turn. Store turns with text try the knowledge table
// first; everything else goes to the model.
func (r *Router) Respond(ctx context.Context, turn Turn) (Reply, error) {
	text := strings.TrimSpace(turn.Text)
	lang := DetectLanguage(text)

	if turn.Route == types.RouteStore && text != "" {
		answer := r.knowledge.Answer(text)
		if !r.knowledge.IsUnknown(answer) {
			if lang == "en" {
				return Reply{Text: answer, Source: SourceKnowledge, Language: lang}, nil
			}
			return Reply{Text: r.translate(ctx, answer, lang), Source: SourceTranslated, Language: lang}, nil
		}
	}

	out, err := r.Escalate(ctx, turn.History, turn.ImageURL, lang)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: out, Source: SourceModel, Language: lang, Escalated: true}, nil
}

// Escalate sends the history to the model with the language directive.
func (r *Router) Escalate(ctx context.Context, history []types.ChatMessage, imageURL, lang string) (string, error) {
	defer logging.LogDuration(ctx, "router_escalate")()

	return r.model.Run(ctx, llm.ChatRequest{
		Model:       r.modelID,
		Messages:    WithLanguageDirective(lang, BuildMessages(history, imageURL)),
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	})
}

// translate never fails; the English answer is used when translation does.
func (r *Router) translate(ctx context.Context, text, lang string) string {
	if r.translator == nil {
		return text
	}
	out, err := r.translator.Translate(ctx, text, lang)
	if err != nil || strings.TrimSpace(out) == "" {
		logging.AppLogger.Warn("translation failed, using source text", zap.String("lang", lang), zap.Error(err))
		return text
	}
	return out
}
