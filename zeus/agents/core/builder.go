package core

import (
	"fmt"

	"zeus/zeus/types"
)

// BuildMessages converts the visible history into provider messages. The
// image is attached only to the final message, and only if a user sent it.
func BuildMessages(history []types.ChatMessage, imageURL string) []types.ProviderMessage {
	out := make([]types.ProviderMessage, 0, len(history))
	for i, m := range history {
		role := types.RoleAssistant
		if m.Role == types.RoleUser {
			role = types.RoleUser
		}
		parts := []types.Part{types.TextPart(m.Text)}
		if imageURL != "" && i == len(history)-1 && role == types.RoleUser {
			parts = append(parts, types.ImagePart(imageURL))
		}
		out = append(out, types.ProviderMessage{Role: role, Content: parts})
	}
	return out
}

func LanguageDirective(lang string) string {
	return fmt.Sprintf("Always reply in %s. If the user mixes languages, prefer %s. Use concise markdown.", lang, lang)
}

// WithLanguageDirective prepends the system message pinning the reply language.
func WithLanguageDirective(lang string, msgs []types.ProviderMessage) []types.ProviderMessage {
	out := make([]types.ProviderMessage, 0, len(msgs)+1)
	out = append(out, types.ProviderMessage{
		Role:    types.RoleSystem,
		Content: []types.Part{types.TextPart(LanguageDirective(lang))},
	})
	return append(out, msgs...)
}
