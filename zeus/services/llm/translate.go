// zeus/services/llm/translate.go
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zeus/zeus/types"
	httputils "zeus/zeus/utils/http"
	"zeus/zeus/utils/logging"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var ErrInvalidTarget = errors.New("invalid target language")

// ParseTarget validates a BCP 47 tag and returns its canonical form.
func ParseTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", ErrInvalidTarget
	}
	tag, err := language.Parse(target)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return tag.String(), nil
}

// displayName is the English name of the language, e.g. "Spanish" for "es".
func displayName(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	name := display.English.Tags().Name(t)
	if name == "" {
		return tag
	}
	return fmt.Sprintf("%s (%s)", name, tag)
}

// HTTPTranslator calls an external translate endpoint speaking
// {text, target} -> {translated}.
type HTTPTranslator struct {
	url string
}

func NewHTTPTranslator(url string) *HTTPTranslator {
	return &HTTPTranslator{url: url}
}

type translateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type translateResponse struct {
	Translated *string `json:"translated"`
}

func (t *HTTPTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	defer logging.LogDuration(ctx, "translate_http")()

	tag, err := ParseTarget(target)
	if err != nil {
		return "", err
	}
	var resp translateResponse
	if err := httputils.PostJSON(ctx, t.url, translateRequest{Text: text, Target: tag}, &resp); err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	if resp.Translated == nil {
		return "", errors.New("translate: response has no translated text")
	}
	return *resp.Translated, nil
}

const translateInstruction = "You are a translator. Translate the user's message into %s. " +
	"Keep markdown, line breaks, e-mail addresses and phone numbers unchanged. Reply with the translation only."

// ModelTranslator translates with the chat-completion model.
type ModelTranslator struct {
	runner Runner
	model  string
}

func NewModelTranslator(runner Runner, model string) *ModelTranslator {
	return &ModelTranslator{runner: runner, model: model}
}

func (t *ModelTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	defer logging.LogDuration(ctx, "translate_model")()

	tag, err := ParseTarget(target)
	if err != nil {
		return "", err
	}
	out, err := t.runner.Run(ctx, ChatRequest{
		Model: t.model,
		Messages: []types.ProviderMessage{
			{Role: types.RoleSystem, Content: []types.Part{types.TextPart(fmt.Sprintf(translateInstruction, displayName(tag)))}},
			{Role: types.RoleUser, Content: []types.Part{types.TextPart(text)}},
		},
		Temperature: 0.2,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", errors.New("translate: empty translation")
	}
	return out, nil
}
