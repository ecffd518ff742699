package core

import (
	"regexp"
	"strings"

	"zeus/zeus/agents/configs"
)

// FallbackPhrase marks an answer the knowledge table could not give.
const FallbackPhrase = "I'm not sure about that specific information"

const customerServicePhrase = "contact our customer service"

var punctuation = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")

// Normalize lowercases q and strips punctuation. Whitespace is kept.
func Normalize(q string) string {
	return punctuation.ReplaceAllString(strings.ToLower(q), "")
}

// Knowledge is the read-only store answer table.
type Knowledge struct {
	entries  []configs.KnowledgeEntry
	fallback string
}

func NewKnowledge(cfg *configs.AgentConfig) *Knowledge {
	return &Knowledge{
		entries:  append([]configs.KnowledgeEntry(nil), cfg.Knowledge...),
		fallback: cfg.FallbackAnswer,
	}
}

// Lookup returns the first entry, in table order, whose key occurs in the
// normalized question.
func (k *Knowledge) Lookup(question string) (configs.KnowledgeEntry, bool) {
	q := Normalize(question)
	for _, e := range k.entries {
		if strings.Contains(q, strings.ToLower(e.Key)) {
			return e, true
		}
	}
	return configs.KnowledgeEntry{}, false
}

// Answer is the formatted answer for question, or the fallback text.
func (k *Knowledge) Answer(question string) string {
	if e, ok := k.Lookup(question); ok {
		return FormatEntry(e)
	}
	return k.fallback
}

// FormatEntry renders the answer followed by a blank line and the extra lines.
func FormatEntry(e configs.KnowledgeEntry) string {
	if len(e.ExtraLines) == 0 {
		return e.Answer
	}
	return e.Answer + "\n\n" + strings.Join(e.ExtraLines, "\n")
}

// IsUnknown reports whether answer should be handed to the model instead.
// Answers that send the customer to customer service count as unknown.
func (k *Knowledge) IsUnknown(answer string) bool {
	if answer == k.fallback || strings.Contains(answer, FallbackPhrase) {
		return true
	}
	return strings.Contains(strings.ToLower(answer), customerServicePhrase)
}
