package suggestions

import (
	"fmt"
	"strings"

	"zeus/zeus/agents/configs"
	"zeus/zeus/types"
)

// StorePool is one "What are your {topic}?" prompt per knowledge key, in
// table order.
func StorePool(entries []configs.KnowledgeEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("What are your %s?", e.Key))
	}
	return out
}

// AssistantPool merges the advanced templates with prompts extracted from the
// analysis text. It is empty until an analysis exists.
func AssistantPool(advanced []string, analysis string) []string {
	if strings.TrimSpace(analysis) == "" {
		return []string{}
	}
	merged := make([]string, 0, len(advanced)+MaxExtracted)
	merged = append(merged, advanced...)
	merged = append(merged, Extract(analysis)...)
	return truncate(Dedupe(merged), MaxPool)
}

// BuildPool picks the pool for a route.
func BuildPool(route types.Route, analysis string, cfg *configs.AgentConfig) []string {
	if route == types.RouteAssistant {
		return AssistantPool(cfg.AdvancedSuggestions, analysis)
	}
	return StorePool(cfg.Knowledge)
}
